package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wplohrmann/sumo/internal/scheduler"
	"github.com/wplohrmann/sumo/internal/scheduler/jobs"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Scheduled basho synchronization",
	Long: `Manages the sync scheduler. The basho_sync job ingests the current
tournament on the cron schedule from SYNC_SCHEDULE; between tournaments
it is a cheap no-op.

Subcommands:
  start  - run the scheduler in the foreground
  list   - show registered jobs
  run    - trigger a job immediately and wait for it

Example:
  go run ./cmd/sumo sync start
  go run ./cmd/sumo sync run basho_sync`,
}

var (
	syncStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Run the scheduler in the foreground",
		RunE:  runSyncStart,
	}

	syncListCmd = &cobra.Command{
		Use:   "list",
		Short: "Show registered jobs",
		RunE:  runSyncList,
	}

	syncRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Trigger a job immediately and wait for it",
		Args:  cobra.ExactArgs(1),
		RunE:  runSyncRun,
	}
)

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.AddCommand(syncStartCmd)
	syncCmd.AddCommand(syncListCmd)
	syncCmd.AddCommand(syncRunCmd)
}

func runSyncStart(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Sumo Sync Scheduler ===")

	sched, cleanup, err := initScheduler()
	if err != nil {
		return err
	}
	defer cleanup()

	sched.Start()

	fmt.Println()
	PrintSuccess("Scheduler started")
	fmt.Println("\nRegistered jobs:")
	for _, jobName := range sched.Jobs() {
		fmt.Printf("  - %s\n", jobName)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	fmt.Println("Scheduler stopped")

	return nil
}

func runSyncList(cmd *cobra.Command, args []string) error {
	sched, cleanup, err := initScheduler()
	if err != nil {
		return err
	}
	defer cleanup()

	stats := sched.Stats()

	fmt.Println("Registered jobs:")
	for _, jobName := range sched.Jobs() {
		fmt.Printf("  - %-12s schedule: %s\n", jobName, stats[jobName].Schedule)
	}

	return nil
}

func runSyncRun(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	sched, cleanup, err := initScheduler()
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Printf("Running job: %s\n", jobName)
	if err := sched.RunNow(jobName); err != nil {
		return err
	}

	// RunNow is asynchronous; wait for the result to land in history.
	for {
		stats := sched.Stats()
		if st, ok := stats[jobName]; ok && st.TotalRuns > 0 {
			if st.FailureCount > 0 {
				history, herr := sched.History(jobName)
				if herr == nil {
					if latest := history.Latest(1); len(latest) > 0 {
						return fmt.Errorf("job %s failed: %s", jobName, latest[0].Error)
					}
				}
				return fmt.Errorf("job %s failed", jobName)
			}
			PrintSuccess(fmt.Sprintf("Job %s completed", jobName))
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// initScheduler wires the collector into a scheduler with the basho
// sync job registered.
func initScheduler() (*scheduler.Scheduler, func(), error) {
	d, err := initDeps()
	if err != nil {
		return nil, nil, err
	}

	sched := scheduler.New(d.log)
	if err := sched.Register(jobs.NewBashoSyncJob(d.collector, d.cfg, d.log)); err != nil {
		d.close()
		return nil, nil, fmt.Errorf("register basho sync: %w", err)
	}

	return sched, d.close, nil
}
