// Package ingest loads tournament data from the sumo-api into the store.
package ingest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/wplohrmann/sumo/internal/contracts"
	"github.com/wplohrmann/sumo/internal/sumoapi"
	"github.com/wplohrmann/sumo/pkg/logger"
)

// Collector orchestrates per-basho ingestion: tournament metadata, then
// the banzuke of every division, then rikishi details, measurements and
// finally the torikumi day sheets. Everything the store already has is
// skipped, so re-running a basho is idempotent.
type Collector struct {
	client *sumoapi.Client
	store  contracts.Store
	logger *logger.Logger
}

// Config holds collector configuration.
type Config struct {
	Workers int // concurrent torikumi fetches per basho
}

const defaultWorkers = 4

// Result summarizes one basho's ingestion. Error is set when the basho
// had to be abandoned; recoverable fetch failures only bump Failures.
type Result struct {
	BashoID      string
	BanzukeRows  int
	NewRikishi   int
	Measurements int
	Bouts        int
	Failures     int
	Error        error
}

// NewCollector creates a new Collector instance.
func NewCollector(client *sumoapi.Client, store contracts.Store, log *logger.Logger) *Collector {
	return &Collector{
		client: client,
		store:  store,
		logger: log.WithField("module", "ingest"),
	}
}

// Run ingests the given bashos in order. A basho that fails is recorded
// in its Result and does not abort the rest of the run.
func (c *Collector) Run(ctx context.Context, bashoIDs []string, cfg Config) ([]Result, error) {
	c.logger.WithFields(map[string]interface{}{
		"basho_count": len(bashoIDs),
		"workers":     cfg.Workers,
	}).Info("Starting basho ingestion")

	results := make([]Result, 0, len(bashoIDs))
	failed := 0
	for _, bashoID := range bashoIDs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := c.IngestBasho(ctx, bashoID, cfg)
		if result.Error != nil {
			c.logger.WithError(result.Error).WithField("basho_id", bashoID).Error("Basho ingestion failed")
			failed++
		}
		results = append(results, result)
	}

	c.logger.WithFields(map[string]interface{}{
		"success": len(results) - failed,
		"failed":  failed,
		"total":   len(results),
	}).Info("Basho ingestion completed")

	return results, nil
}

// IngestBasho loads a single tournament. Store errors abandon the basho;
// failures against the API are logged, counted and skipped over.
func (c *Collector) IngestBasho(ctx context.Context, bashoID string, cfg Config) Result {
	result := Result{BashoID: bashoID}

	if err := c.ensureBasho(ctx, bashoID); err != nil {
		result.Error = fmt.Errorf("basho %s: %w", bashoID, err)
		return result
	}

	rikishiIDs, err := c.ingestBanzuke(ctx, bashoID, &result)
	if err != nil {
		result.Error = fmt.Errorf("basho %s: %w", bashoID, err)
		return result
	}

	if err := c.ingestRikishi(ctx, rikishiIDs, &result); err != nil {
		result.Error = fmt.Errorf("basho %s: %w", bashoID, err)
		return result
	}

	if err := c.ingestMeasurements(ctx, bashoID, &result); err != nil {
		result.Error = fmt.Errorf("basho %s: %w", bashoID, err)
		return result
	}

	c.ingestTorikumi(ctx, bashoID, cfg, &result)

	c.logger.WithFields(map[string]interface{}{
		"basho_id":     bashoID,
		"banzuke_rows": result.BanzukeRows,
		"new_rikishi":  result.NewRikishi,
		"measurements": result.Measurements,
		"bouts":        result.Bouts,
		"failures":     result.Failures,
	}).Info("Basho ingested")

	return result
}

func (c *Collector) ensureBasho(ctx context.Context, bashoID string) error {
	exists, err := c.store.BashoExists(ctx, bashoID)
	if err != nil {
		return fmt.Errorf("check basho: %w", err)
	}
	if exists {
		c.logger.WithField("basho_id", bashoID).Debug("Basho already in store")
		return nil
	}

	basho, err := c.client.GetBasho(ctx, bashoID)
	if err != nil {
		return fmt.Errorf("fetch basho: %w", err)
	}

	record := contracts.Basho{
		ID:        bashoID,
		Name:      basho.Location,
		StartDate: isoDate(basho.StartDate),
		EndDate:   isoDate(basho.EndDate),
	}
	if err := c.store.SaveBasho(ctx, record); err != nil {
		return fmt.Errorf("save basho: %w", err)
	}

	return nil
}

// ingestBanzuke loads the rank sheet of every division and returns the
// rikishi ids it saw, sorted for a stable fetch order.
func (c *Collector) ingestBanzuke(ctx context.Context, bashoID string, result *Result) ([]int, error) {
	seen := make(map[int]struct{})

	for _, division := range sumoapi.Divisions {
		has, err := c.store.HasBanzuke(ctx, bashoID, division)
		if err != nil {
			return nil, fmt.Errorf("check banzuke: %w", err)
		}
		if has {
			c.logger.WithFields(map[string]interface{}{
				"basho_id": bashoID,
				"division": division,
			}).Debug("Banzuke already in store")
			continue
		}

		banzuke, err := c.client.GetBanzuke(ctx, bashoID, division)
		if err != nil {
			c.logger.WithError(err).WithFields(map[string]interface{}{
				"basho_id": bashoID,
				"division": division,
			}).Warn("Failed to fetch banzuke")
			result.Failures++
			continue
		}

		entries := make([]contracts.BanzukeEntry, 0, len(banzuke.East)+len(banzuke.West))
		for _, slot := range banzuke.East {
			entries = append(entries, contracts.BanzukeEntry{
				BashoID:   bashoID,
				RikishiID: slot.RikishiID,
				Rank:      slot.Rank,
				Division:  division,
			})
			seen[slot.RikishiID] = struct{}{}
		}
		for _, slot := range banzuke.West {
			entries = append(entries, contracts.BanzukeEntry{
				BashoID:   bashoID,
				RikishiID: slot.RikishiID,
				Rank:      slot.Rank,
				Division:  division,
			})
			seen[slot.RikishiID] = struct{}{}
		}

		if err := c.store.SaveBanzukeEntries(ctx, entries); err != nil {
			return nil, fmt.Errorf("save banzuke: %w", err)
		}
		result.BanzukeRows += len(entries)
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids, nil
}

func (c *Collector) ingestRikishi(ctx context.Context, ids []int, result *Result) error {
	for _, id := range ids {
		exists, err := c.store.RikishiExists(ctx, id)
		if err != nil {
			return fmt.Errorf("check rikishi %d: %w", id, err)
		}
		if exists {
			continue
		}

		rikishi, err := c.client.GetRikishi(ctx, id)
		if err != nil {
			c.logger.WithError(err).WithField("rikishi_id", id).Warn("Failed to fetch rikishi")
			result.Failures++
			continue
		}

		record := contracts.Rikishi{
			ID:        id,
			Name:      rikishi.ShikonaEn,
			DebutDate: rikishi.Debut,
			BirthDate: isoDate(rikishi.BirthDate),
		}
		if err := c.store.SaveRikishi(ctx, record); err != nil {
			return fmt.Errorf("save rikishi %d: %w", id, err)
		}
		result.NewRikishi++
	}

	return nil
}

func (c *Collector) ingestMeasurements(ctx context.Context, bashoID string, result *Result) error {
	has, err := c.store.HasMeasurements(ctx, bashoID)
	if err != nil {
		return fmt.Errorf("check measurements: %w", err)
	}
	if has {
		c.logger.WithField("basho_id", bashoID).Debug("Measurements already in store")
		return nil
	}

	measurements, err := c.client.GetMeasurements(ctx, bashoID)
	if err != nil {
		c.logger.WithError(err).WithField("basho_id", bashoID).Warn("Failed to fetch measurements")
		result.Failures++
		return nil
	}

	records := make([]contracts.Measurement, 0, len(measurements))
	for _, m := range measurements {
		records = append(records, contracts.Measurement{
			RikishiID: m.RikishiID,
			BashoID:   bashoID,
			HeightCm:  m.Height,
			WeightKg:  m.Weight,
		})
	}

	if err := c.store.SaveMeasurements(ctx, records); err != nil {
		return fmt.Errorf("save measurements: %w", err)
	}
	result.Measurements = len(records)

	return nil
}

type torikumiTask struct {
	division string
	day      int
}

type torikumiResult struct {
	division string
	day      int
	bouts    int
	err      error
}

// ingestTorikumi fans the (division, day) sheets out over a worker pool.
func (c *Collector) ingestTorikumi(ctx context.Context, bashoID string, cfg Config, result *Result) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	tasks := make([]torikumiTask, 0, len(sumoapi.Divisions)*sumoapi.MaxDays)
	for _, division := range sumoapi.Divisions {
		for day := 1; day <= sumoapi.MaxDays; day++ {
			tasks = append(tasks, torikumiTask{division: division, day: day})
		}
	}

	taskCh := make(chan torikumiTask, len(tasks))
	resultCh := make(chan torikumiResult, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			c.torikumiWorker(ctx, workerID, bashoID, taskCh, resultCh)
		}(i)
	}

	for _, task := range tasks {
		taskCh <- task
	}
	close(taskCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	for r := range resultCh {
		if r.err != nil {
			result.Failures++
			continue
		}
		result.Bouts += r.bouts
	}
}

func (c *Collector) torikumiWorker(ctx context.Context, workerID int, bashoID string, taskCh <-chan torikumiTask, resultCh chan<- torikumiResult) {
	for task := range taskCh {
		select {
		case <-ctx.Done():
			resultCh <- torikumiResult{division: task.division, day: task.day, err: ctx.Err()}
			return
		default:
		}

		has, err := c.store.HasTorikumi(ctx, bashoID, task.division, task.day)
		if err != nil {
			resultCh <- torikumiResult{division: task.division, day: task.day, err: err}
			continue
		}
		if has {
			resultCh <- torikumiResult{division: task.division, day: task.day}
			continue
		}

		torikumi, err := c.client.GetTorikumi(ctx, bashoID, task.division, task.day)
		if err != nil {
			c.logger.WithError(err).WithFields(map[string]interface{}{
				"worker":   workerID,
				"basho_id": bashoID,
				"division": task.division,
				"day":      task.day,
			}).Warn("Failed to fetch torikumi")
			resultCh <- torikumiResult{division: task.division, day: task.day, err: err}
			continue
		}

		bouts := make([]contracts.Match, 0, len(torikumi.Torikumi))
		for _, bout := range torikumi.Torikumi {
			match := contracts.Match{
				ID:         bout.ID,
				BashoID:    bashoID,
				Division:   task.division,
				Day:        task.day,
				Rikishi1ID: bout.EastID,
				Rikishi2ID: bout.WestID,
				WinnerID:   bout.WinnerID,
				Kimarite:   bout.Kimarite,
			}
			// Unfought bouts have no winner yet. Leaving them out keeps
			// the day eligible for a refetch on the next run.
			if !match.HasWinner() {
				continue
			}
			bouts = append(bouts, match)
		}

		if err := c.store.SaveBouts(ctx, bouts); err != nil {
			c.logger.WithError(err).WithFields(map[string]interface{}{
				"worker":   workerID,
				"basho_id": bashoID,
				"division": task.division,
				"day":      task.day,
			}).Error("Failed to save torikumi")
			resultCh <- torikumiResult{division: task.division, day: task.day, err: err}
			continue
		}

		c.logger.WithFields(map[string]interface{}{
			"worker":   workerID,
			"basho_id": bashoID,
			"division": task.division,
			"day":      task.day,
			"count":    len(bouts),
		}).Debug("Fetched torikumi")

		resultCh <- torikumiResult{division: task.division, day: task.day, bouts: len(bouts)}
	}
}

// isoDate trims timestamps like 2023-01-08T00:00:00Z to the calendar
// date so stored dates stay string-comparable.
func isoDate(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
