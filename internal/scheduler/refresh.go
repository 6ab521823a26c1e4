package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Loader rebuilds in-memory state from storage.
type Loader interface {
	Load(ctx context.Context) error
}

// Pruner removes list memberships whose list or book is gone.
type Pruner interface {
	PruneOrphanMemberships(ctx context.Context) (int, error)
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a standard five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// RefreshScheduler periodically prunes orphaned memberships and reloads the
// collection from storage.
type RefreshScheduler struct {
	loader   Loader
	pruner   Pruner
	schedule string
	timeout  time.Duration

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	runMu     sync.Mutex
}

// NewRefreshScheduler creates a scheduler. pruner may be nil, in which case
// only the reload runs.
func NewRefreshScheduler(loader Loader, pruner Pruner, schedule string) *RefreshScheduler {
	return &RefreshScheduler{
		loader:   loader,
		pruner:   pruner,
		schedule: schedule,
		timeout:  2 * time.Minute,
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start registers the refresh job and starts the cron loop. It stops on its
// own when ctx is cancelled.
func (s *RefreshScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.run(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule refresh job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("[SCHEDULER] Refresh started with schedule '%s'. Next run: %v", s.schedule, s.nextRunLocked())

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job and stops the cron loop.
func (s *RefreshScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.isRunning = false

	log.Printf("[SCHEDULER] Refresh stopped")
}

// RunNow performs one refresh synchronously.
func (s *RefreshScheduler) RunNow(ctx context.Context) error {
	return s.run(ctx)
}

// IsRunning reports whether the cron loop is active.
func (s *RefreshScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next refresh will occur, or nil when the
// scheduler is stopped.
func (s *RefreshScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	return s.nextRunLocked()
}

func (s *RefreshScheduler) nextRunLocked() *time.Time {
	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return nil
	}
	t := entry.Next
	if t.IsZero() {
		t = entry.Schedule.Next(time.Now())
	}
	return &t
}

// run executes at most one refresh at a time; overlapping ticks wait.
func (s *RefreshScheduler) run(ctx context.Context) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()

	if s.pruner != nil {
		pruned, err := s.pruner.PruneOrphanMemberships(ctx)
		if err != nil {
			// A failed prune leaves stale rows that Load skips, so keep going.
			log.Printf("[SCHEDULER] Prune failed: %v", err)
		} else if pruned > 0 {
			log.Printf("[SCHEDULER] Pruned %d orphan memberships", pruned)
		}
	}

	if err := s.loader.Load(ctx); err != nil {
		log.Printf("[SCHEDULER] Refresh failed: %v", err)
		return fmt.Errorf("refresh collection: %w", err)
	}

	log.Printf("[SCHEDULER] Refresh completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
