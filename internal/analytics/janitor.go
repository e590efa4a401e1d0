package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/mahdiarghyani/portfolio/internal/logfields"
)

// DefaultCleanupInterval is how often the janitor prunes old records.
const DefaultCleanupInterval = 24 * time.Hour

// Janitor periodically deletes records older than the retention window.
type Janitor struct {
	scheduler gocron.Scheduler
	store     *Store
	retention time.Duration
}

// NewJanitor schedules a cleanup every interval, starting immediately.
func NewJanitor(store *Store, retention, interval time.Duration) (*Janitor, error) {
	if retention <= 0 {
		retention = DefaultRetention
	}
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	j := &Janitor{scheduler: s, store: store, retention: retention}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(j.run),
		gocron.WithName("privacy-cleanup"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create cleanup job: %w", err)
	}
	return j, nil
}

// Start begins the schedule.
func (j *Janitor) Start() {
	slog.Info("Starting privacy cleanup scheduler", slog.Duration("retention", j.retention))
	j.scheduler.Start()
}

// Stop shuts the scheduler down and waits for a running cleanup.
func (j *Janitor) Stop() error {
	slog.Info("Stopping privacy cleanup scheduler")
	return j.scheduler.Shutdown()
}

// RunNow performs one cleanup synchronously.
func (j *Janitor) RunNow(ctx context.Context) (int64, error) {
	return j.store.Cleanup(ctx, j.retention)
}

func (j *Janitor) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := j.RunNow(ctx); err != nil {
		slog.Error("Error cleaning up old visitor data", logfields.Error(err))
	}
}
