package scheduler

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/catalogsync/backend/internal/domain/integration"
)

// JobExecutor runs one catalog sync job
type JobExecutor interface {
	Execute(ctx context.Context, job *CatalogSyncJob) (RunSummary, error)
}

// CatalogSyncSchedulerConfig holds configuration for the catalog sync scheduler
type CatalogSyncSchedulerConfig struct {
	// MaxConcurrentJobs is the number of workers
	MaxConcurrentJobs int
	// QueueSize bounds jobs waiting for a worker
	QueueSize int
	// JobTimeout is the maximum time one attempt can run
	JobTimeout time.Duration
	// RetryAttempts is the number of retries after a failed attempt
	RetryAttempts int
	// RetryDelay is the base delay between retries (exponential backoff)
	RetryDelay time.Duration
	// MaxHistory bounds finished jobs kept for inspection
	MaxHistory int
}

// DefaultCatalogSyncSchedulerConfig returns default configuration
func DefaultCatalogSyncSchedulerConfig() CatalogSyncSchedulerConfig {
	return CatalogSyncSchedulerConfig{
		MaxConcurrentJobs: 2,
		QueueSize:         32,
		JobTimeout:        30 * time.Minute,
		RetryAttempts:     3,
		RetryDelay:        time.Minute,
		MaxHistory:        100,
	}
}

// Validate validates the configuration
func (c *CatalogSyncSchedulerConfig) Validate() error {
	if c.MaxConcurrentJobs <= 0 || c.QueueSize <= 0 || c.JobTimeout <= 0 {
		return ErrInvalidConfig
	}
	if c.RetryAttempts < 0 || c.RetryDelay < 0 || c.MaxHistory < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// CatalogSyncScheduler runs catalog sync jobs on a worker pool. At most one
// job per source and destination pair is queued or running at a time.
type CatalogSyncScheduler struct {
	config   CatalogSyncSchedulerConfig
	executor JobExecutor
	logger   *zap.Logger

	jobs      chan *CatalogSyncJob
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	active    map[string]*CatalogSyncJob
	history   []*CatalogSyncJob
}

// NewCatalogSyncScheduler creates a new catalog sync scheduler
func NewCatalogSyncScheduler(config CatalogSyncSchedulerConfig, executor JobExecutor, logger *zap.Logger) (*CatalogSyncScheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogSyncScheduler{
		config:   config,
		executor: executor,
		logger:   logger.Named("catalog_sync_scheduler"),
		jobs:     make(chan *CatalogSyncJob, config.QueueSize),
		active:   make(map[string]*CatalogSyncJob),
	}, nil
}

// Start starts the worker pool
func (s *CatalogSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return nil
	}
	s.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	for i := range s.config.MaxConcurrentJobs {
		s.wg.Add(1)
		go s.worker(ctx, i)
	}

	s.logger.Info("Catalog sync scheduler started",
		zap.Int("workers", s.config.MaxConcurrentJobs),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)
	return nil
}

// Stop cancels running jobs and waits for workers until ctx ends.
// A stopped scheduler cannot be restarted.
func (s *CatalogSyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Catalog sync scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Catalog sync scheduler stop timed out")
		return ctx.Err()
	}
}

// ScheduleSync queues a full catalog sync from source to destination
func (s *CatalogSyncScheduler) ScheduleSync(
	source, destination integration.PlatformCode,
	opts integration.SyncOptions,
) (CatalogSyncJob, error) {
	job := NewCatalogSyncJob(source, destination, opts, s.config.RetryAttempts)
	snapshot := job.Snapshot()
	if err := s.SubmitJob(job); err != nil {
		return CatalogSyncJob{}, err
	}
	return snapshot, nil
}

// SubmitJob queues a job
func (s *CatalogSyncScheduler) SubmitJob(job *CatalogSyncJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isRunning {
		return ErrSchedulerNotRunning
	}
	if _, busy := s.active[job.Key()]; busy {
		return ErrSyncAlreadyInProgress
	}

	select {
	case s.jobs <- job:
		s.active[job.Key()] = job
		s.logger.Debug("Catalog sync job submitted",
			zap.String("job_id", job.ID.String()),
			zap.String("source_platform", job.Source.String()),
			zap.String("destination", job.Destination.String()),
		)
		return nil
	default:
		return ErrJobQueueFull
	}
}

// GetJob returns a snapshot of an active or recently finished job
func (s *CatalogSyncScheduler) GetJob(id uuid.UUID) (CatalogSyncJob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, job := range s.active {
		if job.ID == id {
			return job.Snapshot(), true
		}
	}
	for _, job := range s.history {
		if job.ID == id {
			return job.Snapshot(), true
		}
	}
	return CatalogSyncJob{}, false
}

// ActiveJobs returns snapshots of queued and running jobs
func (s *CatalogSyncScheduler) ActiveJobs() []CatalogSyncJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CatalogSyncJob, 0, len(s.active))
	for _, job := range s.active {
		out = append(out, job.Snapshot())
	}
	slices.SortFunc(out, func(a, b CatalogSyncJob) int {
		return a.SubmittedAt.Compare(b.SubmittedAt)
	})
	return out
}

// GetJobHistory returns finished jobs, most recent first
func (s *CatalogSyncScheduler) GetJobHistory(limit int) []CatalogSyncJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 || limit > len(s.history) {
		limit = len(s.history)
	}
	out := make([]CatalogSyncJob, 0, limit)
	for _, job := range s.history[:limit] {
		out = append(out, job.Snapshot())
	}
	return out
}

func (s *CatalogSyncScheduler) worker(ctx context.Context, workerID int) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-s.jobs:
			s.processJob(ctx, job, workerID)
		}
	}
}

func (s *CatalogSyncScheduler) processJob(ctx context.Context, job *CatalogSyncJob, workerID int) {
	s.mu.Lock()
	job.Start()
	s.mu.Unlock()

	log := s.logger.With(
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID.String()),
		zap.String("source_platform", job.Source.String()),
		zap.String("destination", job.Destination.String()),
		zap.Int("attempt", job.RetryCount+1),
	)
	log.Info("Processing catalog sync job")

	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	summary, err := s.executor.Execute(jobCtx, job)
	cancel()

	switch {
	case err == nil:
		s.finish(job, func() { job.Complete(summary) })
		log.Info("Catalog sync job completed",
			zap.String("status", string(job.Status)),
			zap.Int("pages", summary.Pages),
			zap.Int("total", summary.Total),
			zap.Int("failed", summary.Failed),
		)
	case errors.Is(err, integration.ErrSyncCancelled):
		summary.Cancelled = true
		s.finish(job, func() { job.Complete(summary) })
		log.Warn("Catalog sync job cancelled", zap.Int("pages", summary.Pages))
	default:
		s.retryOrFinish(job, summary, err, log)
	}
}

// retryOrFinish requeues retryable failures. Configuration errors are final.
func (s *CatalogSyncScheduler) retryOrFinish(job *CatalogSyncJob, summary RunSummary, err error, log *zap.Logger) {
	s.mu.Lock()
	job.Fail(summary, err.Error())
	retry := job.ShouldRetry() && !integration.IsConfigurationError(err)
	if retry {
		job.ScheduleRetry(s.config.RetryDelay)
	} else {
		job.GiveUp()
	}
	s.mu.Unlock()

	if !retry {
		s.finish(job, func() {})
		log.Error("Catalog sync job failed", zap.Error(err))
		return
	}

	log.Warn("Catalog sync job scheduled for retry",
		zap.Error(err),
		zap.Int("retry_count", job.RetryCount),
		zap.Int("max_retries", job.MaxRetries),
	)
	time.AfterFunc(time.Until(*job.NextRetryAt), func() { s.requeue(job, log) })
}

// requeue puts a job waiting for retry back on the queue
func (s *CatalogSyncScheduler) requeue(job *CatalogSyncJob, log *zap.Logger) {
	s.mu.Lock()
	running := s.isRunning
	queued := false
	if running {
		select {
		case s.jobs <- job:
			queued = true
		default:
		}
	}
	s.mu.Unlock()

	switch {
	case queued:
	case !running:
		s.finish(job, func() { job.Complete(RunSummary{Cancelled: true}) })
	default:
		s.finish(job, func() {
			job.Fail(job.Summary, ErrJobQueueFull.Error())
			job.GiveUp()
		})
		log.Warn("Failed to re-queue catalog sync job for retry")
	}
}

// finish applies the final state change and moves the job to history
func (s *CatalogSyncScheduler) finish(job *CatalogSyncJob, apply func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply()
	delete(s.active, job.Key())
	if s.config.MaxHistory == 0 {
		return
	}
	s.history = append([]*CatalogSyncJob{job}, s.history...)
	if len(s.history) > s.config.MaxHistory {
		s.history = s.history[:s.config.MaxHistory]
	}
}
