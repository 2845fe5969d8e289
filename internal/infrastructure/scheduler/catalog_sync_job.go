package scheduler

import (
	"time"

	"github.com/google/uuid"

	"github.com/catalogsync/backend/internal/domain/integration"
)

// JobStatus represents the status of a catalog sync job
type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusSuccess   JobStatus = "SUCCESS"
	JobStatusPartial   JobStatus = "PARTIAL"
	JobStatusFailed    JobStatus = "FAILED"
	JobStatusCancelled JobStatus = "CANCELLED"
)

// maxRetryDelay caps the exponential retry backoff
const maxRetryDelay = 30 * time.Minute

// RunSummary accumulates page reports of one run
type RunSummary struct {
	Pages     int `json:"pages"`
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	// Cancelled is true when the run stopped before the last page
	Cancelled bool `json:"cancelled"`
	// FailedSourceIDs lists item failures, capped at maxFailedIDs
	FailedSourceIDs []string `json:"failed_source_ids,omitempty"`
}

const maxFailedIDs = 100

// AddPage accumulates one page report
func (r *RunSummary) AddPage(report *integration.BatchReport) {
	if report == nil {
		return
	}
	r.Pages++
	r.Total += report.Total
	r.Succeeded += report.Succeeded
	r.Failed += report.Failed
	r.Cancelled = r.Cancelled || report.Cancelled
	for _, res := range report.Results {
		if !res.Success && len(r.FailedSourceIDs) < maxFailedIDs {
			r.FailedSourceIDs = append(r.FailedSourceIDs, res.SourceID)
		}
	}
}

// CatalogSyncJob walks every page of a source catalog and syncs it to a
// destination platform. Jobs are mutated only by the scheduler that owns them.
type CatalogSyncJob struct {
	ID          uuid.UUID                `json:"id"`
	Source      integration.PlatformCode `json:"source"`
	Destination integration.PlatformCode `json:"destination"`
	Options     integration.SyncOptions  `json:"options"`
	Status      JobStatus                `json:"status"`
	Error       string                   `json:"error,omitempty"`
	SubmittedAt time.Time                `json:"submitted_at"`
	StartedAt   *time.Time               `json:"started_at,omitempty"`
	CompletedAt *time.Time               `json:"completed_at,omitempty"`
	RetryCount  int                      `json:"retry_count"`
	MaxRetries  int                      `json:"max_retries"`
	NextRetryAt *time.Time               `json:"next_retry_at,omitempty"`
	Summary     RunSummary               `json:"summary"`
}

// NewCatalogSyncJob creates a pending job
func NewCatalogSyncJob(source, destination integration.PlatformCode, opts integration.SyncOptions, maxRetries int) *CatalogSyncJob {
	return &CatalogSyncJob{
		ID:          uuid.New(),
		Source:      source,
		Destination: destination,
		Options:     opts,
		Status:      JobStatusPending,
		SubmittedAt: time.Now(),
		MaxRetries:  maxRetries,
	}
}

// Key identifies the source and destination pair of the job
func (j *CatalogSyncJob) Key() string {
	return string(j.Source) + "->" + string(j.Destination)
}

// Start marks the job as running and clears the summary of an earlier attempt
func (j *CatalogSyncJob) Start() {
	now := time.Now()
	j.Status = JobStatusRunning
	j.StartedAt = &now
	j.CompletedAt = nil
	j.NextRetryAt = nil
	j.Error = ""
	j.Summary = RunSummary{}
}

// Complete stores the summary and derives the final status from it
func (j *CatalogSyncJob) Complete(summary RunSummary) {
	now := time.Now()
	j.Summary = summary
	j.CompletedAt = &now
	switch {
	case summary.Cancelled:
		j.Status = JobStatusCancelled
	case summary.Failed == 0:
		j.Status = JobStatusSuccess
	case summary.Succeeded > 0:
		j.Status = JobStatusPartial
	default:
		j.Status = JobStatusFailed
	}
}

// Fail marks the job as failed, keeping the pages reached so far
func (j *CatalogSyncJob) Fail(summary RunSummary, err string) {
	now := time.Now()
	j.Summary = summary
	j.Status = JobStatusFailed
	j.CompletedAt = &now
	j.Error = err
}

// ShouldRetry returns true if the job failed and has retries left
func (j *CatalogSyncJob) ShouldRetry() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// GiveUp marks a failed job as final by spending its remaining retries
func (j *CatalogSyncJob) GiveUp() {
	j.MaxRetries = j.RetryCount
}

// ScheduleRetry schedules the job for retry with exponential backoff
func (j *CatalogSyncJob) ScheduleRetry(baseDelay time.Duration) {
	j.RetryCount++
	j.Status = JobStatusPending
	delay := min(baseDelay*time.Duration(1<<(j.RetryCount-1)), maxRetryDelay)
	next := time.Now().Add(delay)
	j.NextRetryAt = &next
}

// IsFinished reports whether the job will not run again
func (j *CatalogSyncJob) IsFinished() bool {
	switch j.Status {
	case JobStatusSuccess, JobStatusPartial, JobStatusCancelled:
		return true
	case JobStatusFailed:
		return !j.ShouldRetry()
	}
	return false
}

// Snapshot returns a deep copy
func (j *CatalogSyncJob) Snapshot() CatalogSyncJob {
	cp := *j
	cp.Summary.FailedSourceIDs = append([]string(nil), j.Summary.FailedSourceIDs...)
	return cp
}
