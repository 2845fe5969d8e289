// Package telemetry wires OpenTelemetry traces, metrics and logs plus
// Pyroscope profiling for the catalog sync service.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the tracer sync spans come from.
const TracerName = "catsync-backend"

const syncSpanPrefix = "catalog_sync."

// Span attributes of sync operations.
var (
	SpanAttrSourcePlatform = attribute.Key("sync.source_platform")
	SpanAttrDestination    = attribute.Key("sync.destination")
	SpanAttrSourceID       = attribute.Key("sync.source_id")
	SpanAttrDryRun         = attribute.Key("sync.dry_run")
	SpanAttrItemsTotal     = attribute.Key("sync.items_total")
	SpanAttrItemsFailed    = attribute.Key("sync.items_failed")
)

// StartSyncSpan opens an internal span named catalog_sync.<operation> on the
// global provider. The caller ends it.
//
//	ctx, span := telemetry.StartSyncSpan(ctx, "sync_batch",
//		telemetry.SpanAttrSourcePlatform.String("SHOPIFY"))
//	defer span.End()
func StartSyncSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, syncSpanPrefix+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// RecordError marks span failed with err. A nil err is ignored.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// RecordItemCounts tags span with how many items a batch touched and how
// many of them failed. Item failures do not fail the span.
func RecordItemCounts(span trace.Span, total, failed int) {
	span.SetAttributes(SpanAttrItemsTotal.Int(total), SpanAttrItemsFailed.Int(failed))
}

// GetTraceID returns the trace ID of the span in ctx, or "".
func GetTraceID(ctx context.Context) string {
	if id := trace.SpanContextFromContext(ctx).TraceID(); id.IsValid() {
		return id.String()
	}
	return ""
}

// GetSpanID returns the span ID of the span in ctx, or "".
func GetSpanID(ctx context.Context) string {
	if id := trace.SpanContextFromContext(ctx).SpanID(); id.IsValid() {
		return id.String()
	}
	return ""
}
