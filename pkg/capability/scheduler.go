package capability

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a job on a cron schedule. It backs periodic capability
// resyncs on filesystems where change events are unreliable.
//
// Common expressions:
//   - "*/5 * * * *"  every five minutes
//   - "0 * * * *"    hourly
//   - "@every 30s"   fixed interval
type Scheduler struct {
	schedule string
	job      func(ctx context.Context) error
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler. The schedule is validated here so
// misconfiguration surfaces at startup.
func NewScheduler(schedule string, job func(ctx context.Context) error, logger *slog.Logger) (*Scheduler, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		schedule: schedule,
		job:      job,
		cron:     cron.New(),
		logger:   logger.With("component", "capability.scheduler"),
	}, nil
}

// Run starts the schedule and blocks until ctx is cancelled. It waits for
// an in-flight job to finish before returning.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("scheduler already running")
	}

	if _, err := s.cron.AddFunc(s.schedule, func() { s.runJob(ctx) }); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to schedule resync: %w", err)
	}
	s.cron.Start()
	s.running = true
	s.mu.Unlock()

	s.logger.Info("resync scheduler started", "schedule", s.schedule)

	<-ctx.Done()

	stopped := s.cron.Stop()
	<-stopped.Done()

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	s.logger.Info("resync scheduler stopped")
	return nil
}

func (s *Scheduler) runJob(ctx context.Context) {
	start := time.Now()
	if err := s.job(ctx); err != nil {
		s.logger.Error("scheduled resync failed", "error", err)
		return
	}
	s.logger.Debug("scheduled resync completed", "duration", time.Since(start))
}

// IsRunning reports whether the schedule is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next scheduled run, or nil when not running.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
