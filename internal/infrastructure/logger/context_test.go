package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func contextWithSpan(t *testing.T) context.Context {
	t.Helper()
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	ctx, span := tp.Tracer("test").Start(context.Background(), "sync_batch")
	t.Cleanup(func() { span.End() })
	return ctx
}

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	l := zap.NewExample()
	assert.Same(t, l, FromContext(WithContext(context.Background(), l)))

	wrong := context.WithValue(context.Background(), loggerKey, "not a logger")
	assert.NotNil(t, FromContext(wrong))
}

func TestWithRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx, l := WithRequestID(context.Background(), zap.New(core), "req-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))

	l.Info("accepted")
	FromContext(ctx).Info("stored")
	require.Len(t, logs.All(), 2)
	for _, e := range logs.All() {
		assert.Equal(t, "req-1", e.ContextMap()["request_id"])
	}
}

func TestWithSyncRun(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	run := SyncRun{ID: "run-7", Operation: "scheduled_sync", Source: "SHOPIFY", Destination: "WOOCOMMERCE"}
	ctx, l := WithSyncRun(context.Background(), zap.New(core), run)

	got, ok := GetSyncRun(ctx)
	require.True(t, ok)
	assert.Equal(t, run, got)
	_, ok = GetSyncRun(context.Background())
	assert.False(t, ok)

	l.Info("page synced")
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "run-7", fields["sync_run_id"])
	assert.Equal(t, "scheduled_sync", fields["sync_operation"])
	assert.Equal(t, "SHOPIFY", fields["source_platform"])
	assert.Equal(t, "WOOCOMMERCE", fields["destination"])
}

func TestSyncRunOmitsEmptyFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	_, l := WithSyncRun(context.Background(), zap.New(core), SyncRun{ID: "run-8"})
	l.Info("x")
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "run-8", fields["sync_run_id"])
	assert.NotContains(t, fields, "source_platform")
}

func TestTraceIDs(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
	assert.Empty(t, GetSpanID(context.Background()))

	ctx := contextWithSpan(t)
	assert.Len(t, GetTraceID(ctx), 32)
	assert.Len(t, GetSpanID(ctx), 16)
}

func TestWithTraceContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	assert.Same(t, base, WithTraceContext(context.Background(), base))

	ctx := contextWithSpan(t)
	WithTraceContext(ctx, base).Info("traced")
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, GetTraceID(ctx), fields["trace_id"])
	assert.Equal(t, GetSpanID(ctx), fields["span_id"])
}

func TestContextLogger(t *testing.T) {
	t.Run("stored logger is not given request_id twice", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		ctx, _ := WithRequestID(context.Background(), zap.New(core), "req-2")

		L(ctx).Info("hello")
		entry := logs.All()[0]
		count := 0
		for _, f := range entry.Context {
			if f.Key == "request_id" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("explicit logger picks up request_id and trace", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		ctx := context.WithValue(contextWithSpan(t), requestIDKey, "req-3")

		WithLogger(ctx, zap.New(core)).With(zap.String("platform", "SHOPIFY")).Warn("throttled")
		fields := logs.All()[0].ContextMap()
		assert.Equal(t, "req-3", fields["request_id"])
		assert.Equal(t, "SHOPIFY", fields["platform"])
		assert.NotEmpty(t, fields["trace_id"])
	})

	t.Run("levels", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		cl := WithLogger(context.Background(), zap.New(core))
		cl.Debug("d")
		cl.Info("i")
		cl.Warn("w")
		cl.Error("e")
		assert.Equal(t, 4, logs.Len())
		assert.NotNil(t, cl.Zap())
	})

	t.Run("nil logger is safe", func(t *testing.T) {
		cl := WithLogger(context.Background(), nil)
		assert.NotPanics(t, func() {
			cl.Info("x")
			cl.With(zap.Int("n", 1)).Error("y")
		})
	})
}
