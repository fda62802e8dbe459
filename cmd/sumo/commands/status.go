package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Database health and row counts",
	Long: `Checks the database connection and reports how much tournament
data is in the store.

Example:
  go run ./cmd/sumo status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Sumo Store Status ===")

	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	status, err := d.db.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}

	fmt.Println()
	fmt.Println("🩺 Database")
	PrintSeparator()
	PrintKeyValue("Healthy", strconv.FormatBool(status.Healthy), 15)
	PrintKeyValue("Response Time", status.ResponseTime.String(), 15)
	PrintKeyValue("Redis", enabledLabel(d.redis.Enabled()), 15)

	counts, err := d.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count rows: %w", err)
	}

	fmt.Println()
	fmt.Println("📊 Row Counts")
	PrintSeparator()
	PrintKeyValue("Bashos", strconv.FormatInt(counts.Bashos, 10), 15)
	PrintKeyValue("Rikishi", strconv.FormatInt(counts.Rikishi, 10), 15)
	PrintKeyValue("Banzuke entries", strconv.FormatInt(counts.BanzukeEntries, 10), 15)
	PrintKeyValue("Measurements", strconv.FormatInt(counts.Measurements, 10), 15)
	PrintKeyValue("Matches", strconv.FormatInt(counts.Matches, 10), 15)

	fmt.Println()
	fmt.Println("🔌 Connection Pool")
	PrintSeparator()
	PrintKeyValue("Max Conns", strconv.FormatInt(int64(status.Stats.MaxConns), 10), 15)
	PrintKeyValue("Total Conns", strconv.FormatInt(int64(status.Stats.TotalConns), 10), 15)
	PrintKeyValue("Idle Conns", strconv.FormatInt(int64(status.Stats.IdleConns), 10), 15)

	fmt.Println()
	PrintSuccess("Store reachable")
	return nil
}

func enabledLabel(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
