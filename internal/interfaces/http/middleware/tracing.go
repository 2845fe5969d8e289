package middleware

import (
	"net/http"
	"slices"

	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type TracingConfig struct {
	ServiceName string
	Enabled     bool
	// SkipPaths get no server span, e.g. /health.
	SkipPaths []string
}

// Tracing returns the otelgin server middleware followed by a handler that
// annotates its span. Mount both after RequestID:
//
//	engine.Use(middleware.Tracing(cfg)...)
//
// Spans are named "METHOD /route/pattern". They carry the request ID and, on
// platform routes, the parsed platform code. 4xx and 5xx responses mark
// the span as failed.
func Tracing(cfg TracingConfig) []gin.HandlerFunc {
	if !cfg.Enabled {
		return []gin.HandlerFunc{passthrough}
	}
	var opts []otelgin.Option
	if len(cfg.SkipPaths) > 0 {
		opts = append(opts, otelgin.WithFilter(func(r *http.Request) bool {
			return !slices.Contains(cfg.SkipPaths, r.URL.Path)
		}))
	}
	return []gin.HandlerFunc{otelgin.Middleware(cfg.ServiceName, opts...), annotateSpan}
}

func annotateSpan(c *gin.Context) {
	span := trace.SpanFromContext(c.Request.Context())
	if !span.IsRecording() {
		c.Next()
		return
	}

	if id := GetRequestID(c); id != "" {
		span.SetAttributes(attribute.String("request_id", id))
	}
	if p := c.Param("platform"); p != "" {
		if code, err := integration.ParsePlatformCode(p); err == nil {
			span.SetAttributes(attribute.String("sync.platform", code.String()))
		}
	}

	c.Next()

	if status := c.Writer.Status(); status >= http.StatusBadRequest {
		span.SetStatus(codes.Error, http.StatusText(status))
	}
}
