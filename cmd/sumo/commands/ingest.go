package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/wplohrmann/sumo/internal/ingest"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest [basho_id...]",
	Short: "Load tournament data from sumo-api.com",
	Long: `Loads tournaments into Postgres: metadata, the banzuke of every
division, rikishi details, measurements and all decided bouts.

Basho ids are YYYYMM; tournaments run in odd months. Pass explicit ids
or expand a range with --from/--to. Data already in the store is
skipped, so re-running is cheap and safe.

Example:
  go run ./cmd/sumo ingest 202301 202303
  go run ./cmd/sumo ingest --from 202101 --to 202311
  go run ./cmd/sumo ingest 202507 --workers 8`,
	RunE: runIngest,
}

var (
	// Ingest flags
	ingestFrom    string
	ingestTo      string
	ingestWorkers int
)

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestFrom, "from", "", "first basho of a YYYYMM range")
	ingestCmd.Flags().StringVar(&ingestTo, "to", "", "last basho of a YYYYMM range")
	ingestCmd.Flags().IntVar(&ingestWorkers, "workers", 4, "concurrent torikumi fetches")
}

func runIngest(cmd *cobra.Command, args []string) error {
	bashoIDs, err := resolveBashoIDs(args, ingestFrom, ingestTo)
	if err != nil {
		return err
	}

	fmt.Println("=== Sumo Data Ingestion ===")
	fmt.Printf("Bashos: %d | Workers: %d\n\n", len(bashoIDs), ingestWorkers)

	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	results, err := d.collector.Run(context.Background(), bashoIDs, ingest.Config{Workers: ingestWorkers})
	if err != nil {
		return err
	}

	widths := []int{8, 9, 9, 8, 7, 10, 6}
	fmt.Println()
	PrintTableHeader([]string{"Basho", "Banzuke", "Rikishi", "Meas.", "Bouts", "Failures", "OK"}, widths)

	failed := 0
	for _, r := range results {
		ok := "yes"
		if r.Error != nil {
			ok = "no"
			failed++
		}
		PrintTableRow([]string{
			r.BashoID,
			strconv.Itoa(r.BanzukeRows),
			strconv.Itoa(r.NewRikishi),
			strconv.Itoa(r.Measurements),
			strconv.Itoa(r.Bouts),
			strconv.Itoa(r.Failures),
			ok,
		}, widths)
	}
	fmt.Println()

	if failed > 0 {
		for _, r := range results {
			if r.Error != nil {
				PrintError(r.Error.Error())
			}
		}
		return fmt.Errorf("%d of %d bashos failed", failed, len(results))
	}

	PrintSuccess(fmt.Sprintf("Ingested %d bashos", len(results)))
	return nil
}

// resolveBashoIDs turns the command line into the list of tournaments
// to load: either explicit ids or a --from/--to range.
func resolveBashoIDs(args []string, from, to string) ([]string, error) {
	if (from == "") != (to == "") {
		return nil, fmt.Errorf("--from and --to must be used together")
	}

	if from != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("pass basho ids or --from/--to, not both")
		}
		return bashoRange(from, to)
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("no bashos given: pass YYYYMM ids or --from/--to")
	}
	for _, id := range args {
		if _, err := time.Parse("200601", id); err != nil {
			return nil, fmt.Errorf("invalid basho id %q: want YYYYMM", id)
		}
	}
	return args, nil
}

// bashoRange expands an inclusive YYYYMM range into the odd-month
// tournament ids it contains.
func bashoRange(from, to string) ([]string, error) {
	start, err := time.Parse("200601", from)
	if err != nil {
		return nil, fmt.Errorf("invalid --from %q: want YYYYMM", from)
	}
	end, err := time.Parse("200601", to)
	if err != nil {
		return nil, fmt.Errorf("invalid --to %q: want YYYYMM", to)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("--to %s is before --from %s", to, from)
	}

	var ids []string
	for t := start; !t.After(end); t = t.AddDate(0, 1, 0) {
		if int(t.Month())%2 == 1 {
			ids = append(ids, t.Format("200601"))
		}
	}
	return ids, nil
}
