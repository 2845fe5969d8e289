package integration

import (
	"context"
	"time"
)

// ---------------------------------------------------------------------------
// SyncStep is the per-item pipeline state
// ---------------------------------------------------------------------------

// SyncStep is a state of the per-item sync pipeline:
// Pending -> Fetched -> Normalized -> Denormalized -> Pushed -> Recorded,
// with Failed reachable from any step.
type SyncStep string

const (
	SyncStepPending      SyncStep = "pending"
	SyncStepFetched      SyncStep = "fetched"
	SyncStepNormalized   SyncStep = "normalized"
	SyncStepDenormalized SyncStep = "denormalized"
	SyncStepPushed       SyncStep = "pushed"
	SyncStepRecorded     SyncStep = "recorded"
	SyncStepFailed       SyncStep = "failed"
)

// IsTerminal returns true for Recorded and Failed
func (s SyncStep) IsTerminal() bool {
	return s == SyncStepRecorded || s == SyncStepFailed
}

// String returns the string representation of SyncStep
func (s SyncStep) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// SyncOptions controls a sync or export run
type SyncOptions struct {
	// DryRun runs fetch and both transforms but never pushes or records
	DryRun bool `json:"dry_run"`
	// Upsert updates the mapped destination product when a mapping exists
	Upsert bool `json:"upsert"`
	// Concurrency bounds parallel items in a batch; <= 1 is sequential
	Concurrency int `json:"concurrency,omitempty"`
}

// ---------------------------------------------------------------------------
// SyncResult
// ---------------------------------------------------------------------------

// SyncResult is the outcome of one item. One is always produced, even on
// failure, and dry runs use the same shape as real pushes.
type SyncResult struct {
	Success bool `json:"success"`
	// SourceID is the source platform ID, or the canonical external ID on export
	SourceID string `json:"source_id"`
	// DestinationID is the destination platform ID (empty on failure or dry run)
	DestinationID string `json:"destination_id,omitempty"`
	// Error is the human-readable failure message
	Error string `json:"error,omitempty"`
	// Step is the last state the item reached
	Step SyncStep `json:"step"`
	// FailedStep is the step that was running when the item failed
	FailedStep SyncStep `json:"failed_step,omitempty"`
	// Created is true when the push created a new destination product
	Created bool `json:"created,omitempty"`
	DryRun  bool `json:"dry_run,omitempty"`
	// Preview is what would be sent to the destination on a dry run
	Preview   *Denormalized `json:"preview,omitempty"`
	Timestamp time.Time     `json:"timestamp"`

	err error
}

// Err returns the underlying error of a failed result
func (r SyncResult) Err() error {
	return r.err
}

// NewFailedResult builds a failed result for an item that failed while
// running step.
func NewFailedResult(sourceID string, step SyncStep, err error) SyncResult {
	return SyncResult{
		Success:    false,
		SourceID:   sourceID,
		Error:      err.Error(),
		Step:       SyncStepFailed,
		FailedStep: step,
		Timestamp:  time.Now(),
		err:        err,
	}
}

// ---------------------------------------------------------------------------
// BatchReport
// ---------------------------------------------------------------------------

// BatchReport aggregates a batch run. Results are in source order.
type BatchReport struct {
	Results   []SyncResult `json:"results"`
	Total     int          `json:"total"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	// Cancelled is true when the context ended before every item started
	Cancelled bool `json:"cancelled"`
	// NextCursor and NextPage continue pagination of the source
	NextCursor string    `json:"next_cursor,omitempty"`
	NextPage   int       `json:"next_page,omitempty"`
	HasMore    bool      `json:"has_more"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// NewBatchReport tallies results into a report
func NewBatchReport(results []SyncResult, startedAt time.Time) *BatchReport {
	r := &BatchReport{
		Results:    results,
		Total:      len(results),
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}
	for _, res := range results {
		if res.Success {
			r.Succeeded++
		} else {
			r.Failed++
		}
	}
	return r
}

// ImportedProduct is one item of an import run
type ImportedProduct struct {
	Result  SyncResult        `json:"result"`
	Product *CanonicalProduct `json:"product,omitempty"`
}

// ImportReport aggregates an import run. Items are in source order.
type ImportReport struct {
	Items      []ImportedProduct `json:"items"`
	Total      int               `json:"total"`
	Succeeded  int               `json:"succeeded"`
	Failed     int               `json:"failed"`
	Cancelled  bool              `json:"cancelled"`
	NextCursor string            `json:"next_cursor,omitempty"`
	NextPage   int               `json:"next_page,omitempty"`
	HasMore    bool              `json:"has_more"`
}

// ---------------------------------------------------------------------------
// Pacer Port
// ---------------------------------------------------------------------------

// Pacer spaces out items in a batch to respect third-party rate limits.
// Wait blocks until the next item may start or ctx ends.
type Pacer interface {
	Wait(ctx context.Context) error
}
