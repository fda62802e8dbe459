// Package scheduler runs registered jobs on cron schedules with retry
// and a bounded execution history.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/wplohrmann/sumo/pkg/logger"
)

// entry pairs a registered job with its run history.
type entry struct {
	job     Job
	history *JobHistory
}

// Scheduler manages scheduled jobs.
type Scheduler struct {
	cron *cron.Cron
	log  *logger.Logger

	mu      sync.RWMutex
	entries map[string]*entry

	maxRetries int
	retryDelay time.Duration
}

// New creates a scheduler. Jobs retry up to three times with a one
// minute delay between attempts.
func New(log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithSeconds()),
		log:        log.WithField("module", "scheduler"),
		entries:    make(map[string]*entry),
		maxRetries: 3,
		retryDelay: time.Minute,
	}
}

// Register adds a job to the scheduler.
func (s *Scheduler) Register(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := job.Name()
	if _, ok := s.entries[name]; ok {
		return fmt.Errorf("job %s already exists", name)
	}

	e := &entry{job: job, history: &JobHistory{}}
	if _, err := s.cron.AddFunc(job.Schedule(), func() { s.runJob(e) }); err != nil {
		return fmt.Errorf("schedule job %s: %w", name, err)
	}
	s.entries[name] = e

	s.log.WithFields(map[string]interface{}{
		"job":      name,
		"schedule": job.Schedule(),
	}).Info("Job registered")
	return nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.log.Info("Starting scheduler")
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.log.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
	s.log.Info("Scheduler stopped")
}

// RunNow triggers a job immediately, outside its schedule. The run is
// asynchronous; its result lands in the job history.
func (s *Scheduler) RunNow(name string) error {
	s.mu.RLock()
	e, ok := s.entries[name]
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("job %s not found", name)
	}
	go s.runJob(e)
	return nil
}

// runJob executes a job, retrying failures with a fixed delay, and
// records the outcome.
func (s *Scheduler) runJob(e *entry) {
	name := e.job.Name()
	start := time.Now()

	s.log.WithField("job", name).Info("Job started")

	var lastErr error
	for attempt := 1; attempt <= s.maxRetries+1; attempt++ {
		if lastErr = e.job.Run(context.Background()); lastErr == nil {
			break
		}
		s.log.WithFields(map[string]interface{}{
			"job":     name,
			"attempt": attempt,
			"error":   lastErr.Error(),
		}).Warn("Job attempt failed")
		if attempt <= s.maxRetries {
			time.Sleep(s.retryDelay)
		}
	}

	result := JobResult{
		JobName:   name,
		StartTime: start,
		EndTime:   time.Now(),
		Success:   lastErr == nil,
	}
	result.Duration = result.EndTime.Sub(start)
	if lastErr != nil {
		result.Error = lastErr.Error()
	}

	s.mu.Lock()
	e.history.AddResult(result)
	s.mu.Unlock()

	log := s.log.WithFields(map[string]interface{}{
		"job":      name,
		"duration": result.Duration,
	})
	if lastErr != nil {
		log.WithError(lastErr).Error("Job failed after all retries")
		return
	}
	log.Info("Job completed")
}

// History returns the execution history for a job.
func (s *Scheduler) History(name string) (*JobHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[name]
	if !ok {
		return nil, fmt.Errorf("job %s not found", name)
	}
	return e.history, nil
}

// Jobs returns the registered job names, sorted.
func (s *Scheduler) Jobs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// JobStats summarizes a job's recorded runs.
type JobStats struct {
	JobName      string     `json:"job_name"`
	Schedule     string     `json:"schedule"`
	TotalRuns    int        `json:"total_runs"`
	SuccessCount int        `json:"success_count"`
	FailureCount int        `json:"failure_count"`
	SuccessRate  float64    `json:"success_rate"`
	LastRun      *time.Time `json:"last_run,omitempty"`
	LastSuccess  *time.Time `json:"last_success,omitempty"`
	LastFailure  *time.Time `json:"last_failure,omitempty"`
}

// Stats returns per-job run statistics.
func (s *Scheduler) Stats() map[string]JobStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[string]JobStats, len(s.entries))
	for name, e := range s.entries {
		st := JobStats{
			JobName:      name,
			Schedule:     e.job.Schedule(),
			TotalRuns:    len(e.history.Results),
			FailureCount: e.history.Failures(),
			SuccessRate:  e.history.SuccessRate(),
		}
		st.SuccessCount = st.TotalRuns - st.FailureCount

		if latest := e.history.Latest(1); len(latest) > 0 {
			last := latest[0]
			st.LastRun = &last.StartTime
			if last.Success {
				st.LastSuccess = &last.StartTime
			} else {
				st.LastFailure = &last.StartTime
			}
		}

		stats[name] = st
	}
	return stats
}
