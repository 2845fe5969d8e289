package scheduler

import "errors"

var (
	// ErrSchedulerNotRunning is returned when submitting to a stopped scheduler
	ErrSchedulerNotRunning = errors.New("scheduler is not running")

	// ErrJobQueueFull is returned when the job queue is full
	ErrJobQueueFull = errors.New("job queue is full")

	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid scheduler configuration")

	// ErrSyncAlreadyInProgress is returned when the same source and
	// destination pair already has a queued or running job
	ErrSyncAlreadyInProgress = errors.New("catalog sync already in progress for this source and destination")

	// ErrSyncTimeout is returned when a job runs past its timeout
	ErrSyncTimeout = errors.New("catalog sync timed out")

	// ErrPageLimitReached is returned when a run walks more pages than allowed
	ErrPageLimitReached = errors.New("catalog sync page limit reached")
)
