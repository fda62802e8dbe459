// Package jobs holds the scheduled jobs wired into the scheduler.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wplohrmann/sumo/internal/ingest"
	"github.com/wplohrmann/sumo/internal/sumoapi"
	"github.com/wplohrmann/sumo/pkg/config"
	"github.com/wplohrmann/sumo/pkg/logger"
)

// BashoSyncJob keeps the store current with the newest basho. During a
// tournament each run picks up the days fought since the last one;
// between tournaments the existence checks make it a no-op.
type BashoSyncJob struct {
	collector *ingest.Collector
	schedule  string
	logger    *logger.Logger
}

// NewBashoSyncJob creates a new basho sync job.
func NewBashoSyncJob(col *ingest.Collector, cfg *config.Config, log *logger.Logger) *BashoSyncJob {
	return &BashoSyncJob{
		collector: col,
		schedule:  cfg.Sync.Schedule,
		logger:    log.WithField("job", "basho_sync"),
	}
}

// Name returns the job name.
func (j *BashoSyncJob) Name() string {
	return "basho_sync"
}

// Schedule returns the configured cron expression.
func (j *BashoSyncJob) Schedule() string {
	return j.schedule
}

// Run ingests the current basho.
func (j *BashoSyncJob) Run(ctx context.Context) error {
	bashoID := currentBashoID(time.Now())
	j.logger.WithField("basho_id", bashoID).Info("Starting basho sync")

	result := j.collector.IngestBasho(ctx, bashoID, ingest.Config{Workers: 4})
	if result.Error != nil {
		// Early in an odd month the basho is not published yet.
		if errors.Is(result.Error, sumoapi.ErrNotFound) {
			j.logger.WithField("basho_id", bashoID).Info("Basho not available yet")
			return nil
		}
		return result.Error
	}
	if result.Failures > 0 {
		return fmt.Errorf("basho %s: %d fetches failed", bashoID, result.Failures)
	}

	j.logger.WithFields(map[string]interface{}{
		"basho_id": bashoID,
		"bouts":    result.Bouts,
	}).Info("Basho sync completed")

	return nil
}

// currentBashoID returns the YYYYMM id of the newest basho. Tournaments
// run in odd months, so even months map back to the month before.
func currentBashoID(now time.Time) string {
	year, month := now.Year(), int(now.Month())
	if month%2 == 0 {
		month--
	}
	return fmt.Sprintf("%d%02d", year, month)
}
