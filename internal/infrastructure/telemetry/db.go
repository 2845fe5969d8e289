package telemetry

import (
	"context"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBConfig configures instrumentation of the gorm connection that holds
// sync mappings and canonical products.
type DBConfig struct {
	// Tracing registers otelgorm so every statement becomes a child span
	Tracing bool
	// LogFullSQL keeps query variables in spans (dev only)
	LogFullSQL bool
	// SlowQueryThreshold marks and logs slower statements (default 200ms)
	SlowQueryThreshold time.Duration
	// DBSystem is the db.system span attribute (default "postgresql")
	DBSystem string
}

const (
	dbStartKey       = "catsync:query_start"
	defaultSlowQuery = 200 * time.Millisecond
)

var (
	spanAttrSlowQuery   = attribute.Key("db.slow_query")
	spanAttrQueryTimeMs = attribute.Key("db.duration_ms")
)

// dbInstrumentation is a gorm.Plugin recording query durations
type dbInstrumentation struct {
	duration  *Histogram
	slowQuery time.Duration
	logger    *zap.Logger
}

// InstrumentDB attaches tracing and query metrics to db. meter may be nil
// to skip metrics.
func InstrumentDB(db *gorm.DB, cfg DBConfig, meter metric.Meter, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThreshold <= 0 {
		cfg.SlowQueryThreshold = defaultSlowQuery
	}
	if cfg.DBSystem == "" {
		cfg.DBSystem = "postgresql"
	}

	if cfg.Tracing {
		opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
		if !cfg.LogFullSQL {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
			return err
		}
	}

	p := &dbInstrumentation{slowQuery: cfg.SlowQueryThreshold, logger: logger.Named("db")}
	if meter != nil {
		h, err := NewHistogram(meter, HistogramOpts{
			Name:        "catsync_db_query_duration_seconds",
			Description: "Duration of sync store queries",
			Unit:        "s",
			Boundaries:  DBDurationBuckets,
		})
		if err != nil {
			return err
		}
		p.duration = h
	}
	if err := db.Use(p); err != nil {
		return err
	}

	logger.Info("Database instrumentation enabled",
		zap.Bool("tracing", cfg.Tracing),
		zap.Bool("metrics", meter != nil),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThreshold),
	)
	return nil
}

// Name implements gorm.Plugin
func (p *dbInstrumentation) Name() string {
	return "catsync:db_instrumentation"
}

// Initialize implements gorm.Plugin
func (p *dbInstrumentation) Initialize(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(dbStartKey, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) { p.record(tx, operation) }
	}

	cb := db.Callback()
	registrations := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("catsync:before_create", before) },
		func() error { return cb.Create().After("gorm:create").Register("catsync:after_create", after("insert")) },
		func() error { return cb.Query().Before("gorm:query").Register("catsync:before_query", before) },
		func() error { return cb.Query().After("gorm:query").Register("catsync:after_query", after("select")) },
		func() error { return cb.Update().Before("gorm:update").Register("catsync:before_update", before) },
		func() error { return cb.Update().After("gorm:update").Register("catsync:after_update", after("update")) },
		func() error { return cb.Delete().Before("gorm:delete").Register("catsync:before_delete", before) },
		func() error { return cb.Delete().After("gorm:delete").Register("catsync:after_delete", after("delete")) },
		func() error { return cb.Raw().Before("gorm:raw").Register("catsync:before_raw", before) },
		func() error { return cb.Raw().After("gorm:raw").Register("catsync:after_raw", after("raw")) },
	}
	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}

func (p *dbInstrumentation) record(tx *gorm.DB, operation string) {
	v, ok := tx.InstanceGet(dbStartKey)
	if !ok {
		return
	}
	start, ok := v.(time.Time)
	if !ok {
		return
	}
	elapsed := time.Since(start)

	ctx := tx.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	table := tx.Statement.Table

	if p.duration != nil {
		p.duration.RecordDuration(ctx, elapsed,
			AttrDBOperation.String(operation),
			AttrDBTable.String(table),
		)
	}

	if elapsed < p.slowQuery {
		return
	}
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			spanAttrSlowQuery.Bool(true),
			spanAttrQueryTimeMs.Int64(elapsed.Milliseconds()),
		)
	}
	p.logger.Warn("Slow query",
		zap.String("operation", operation),
		zap.String("table", table),
		zap.Duration("duration", elapsed),
		zap.String("trace_id", GetTraceID(ctx)),
	)
}
