package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/catalogsync/backend/internal/domain/integration"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when a metrics recorder is built without a meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// Outcome values of the outcome attribute
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// SyncItemDurationBuckets are bucket boundaries for per-item sync duration (ms).
// Items are dominated by platform round trips.
var SyncItemDurationBuckets = []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000}

// SyncMetrics records catalog sync outcomes.
type SyncMetrics struct {
	logger *zap.Logger

	itemsTotal   *Counter
	itemDuration *Histogram
	batchesTotal *Counter
}

// NewSyncMetrics creates the sync instruments on meter
func NewSyncMetrics(meter metric.Meter, logger *zap.Logger) (*SyncMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &SyncMetrics{logger: logger}
	var err error

	m.itemsTotal, err = NewCounter(meter,
		"catsync_sync_items_total",
		"Total number of catalog items processed by sync, export or import",
		"{items}",
	)
	if err != nil {
		return nil, err
	}

	m.itemDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "catsync_sync_item_duration_ms",
		Description: "Duration of one item through the sync pipeline",
		Unit:        "ms",
		Boundaries:  SyncItemDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	m.batchesTotal, err = NewCounter(meter,
		"catsync_sync_batches_total",
		"Total number of batch sync runs",
		"{batches}",
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordItem records one item outcome and its duration
func (m *SyncMetrics) RecordItem(
	ctx context.Context,
	source, destination integration.PlatformCode,
	result integration.SyncResult,
	d time.Duration,
) {
	outcome := OutcomeSuccess
	if !result.Success {
		outcome = OutcomeFailed
	}
	attrs := []attribute.KeyValue{
		AttrSource.String(source.String()),
		AttrDestination.String(destination.String()),
		AttrOutcome.String(outcome),
		AttrDryRun.Bool(result.DryRun),
	}
	if !result.Success {
		attrs = append(attrs, AttrFailedStep.String(result.FailedStep.String()))
	}
	m.itemsTotal.Inc(ctx, attrs...)
	m.itemDuration.Record(ctx, float64(d.Microseconds())/1000, attrs[:3]...)
}

// RecordBatch records one batch run
func (m *SyncMetrics) RecordBatch(ctx context.Context, source, destination integration.PlatformCode, report *integration.BatchReport) {
	if report == nil {
		return
	}
	m.batchesTotal.Inc(ctx,
		AttrSource.String(source.String()),
		AttrDestination.String(destination.String()),
		AttrCancelled.Bool(report.Cancelled),
	)
	if report.Failed > 0 {
		m.logger.Debug("Batch finished with failures",
			zap.String("source", source.String()),
			zap.String("destination", destination.String()),
			zap.Int("failed", report.Failed),
			zap.Int("total", report.Total),
		)
	}
}
