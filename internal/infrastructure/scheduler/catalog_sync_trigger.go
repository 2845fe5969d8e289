package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/catalogsync/backend/internal/domain/integration"
)

// SyncSubmitter queues catalog sync runs
type SyncSubmitter interface {
	ScheduleSync(source, destination integration.PlatformCode, opts integration.SyncOptions) (CatalogSyncJob, error)
}

// IntervalTriggerConfig holds configuration for the interval trigger
type IntervalTriggerConfig struct {
	Interval    time.Duration
	Source      integration.PlatformCode
	Destination integration.PlatformCode
	Options     integration.SyncOptions
	// RunOnStart submits the first run immediately instead of after one interval
	RunOnStart bool
}

// Validate validates the configuration
func (c IntervalTriggerConfig) Validate() error {
	if c.Interval <= 0 || !c.Source.IsValid() || !c.Destination.IsValid() || c.Source == c.Destination {
		return ErrInvalidConfig
	}
	return nil
}

// IntervalTrigger submits a catalog sync for one source and destination
// pair on a fixed interval. Ticks that find the previous run still active
// are skipped.
type IntervalTrigger struct {
	config    IntervalTriggerConfig
	submitter SyncSubmitter
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewIntervalTrigger creates a new interval trigger
func NewIntervalTrigger(config IntervalTriggerConfig, submitter SyncSubmitter, logger *zap.Logger) (*IntervalTrigger, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntervalTrigger{
		config:    config,
		submitter: submitter,
		logger:    logger.Named("catalog_sync_trigger"),
	}, nil
}

// Start starts the trigger loop
func (t *IntervalTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isRunning {
		return nil
	}
	t.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.wg.Add(1)
	go t.runLoop(ctx)

	t.logger.Info("Catalog sync trigger started",
		zap.Duration("interval", t.config.Interval),
		zap.String("source_platform", t.config.Source.String()),
		zap.String("destination", t.config.Destination.String()),
		zap.Bool("dry_run", t.config.Options.DryRun),
	)
	return nil
}

// Stop stops the trigger loop
func (t *IntervalTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		t.logger.Info("Catalog sync trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *IntervalTrigger) runLoop(ctx context.Context) {
	defer t.wg.Done()

	if t.config.RunOnStart {
		t.trigger()
	}

	ticker := time.NewTicker(t.config.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.trigger()
		}
	}
}

func (t *IntervalTrigger) trigger() {
	job, err := t.submitter.ScheduleSync(t.config.Source, t.config.Destination, t.config.Options)
	switch {
	case err == nil:
		t.logger.Info("Scheduled catalog sync submitted", zap.String("job_id", job.ID.String()))
	case errors.Is(err, ErrSyncAlreadyInProgress):
		t.logger.Info("Previous catalog sync still running, tick skipped")
	default:
		t.logger.Error("Failed to submit scheduled catalog sync", zap.Error(err))
	}
}
