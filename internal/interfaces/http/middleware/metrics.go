// Package middleware provides HTTP middleware for the catalog sync API.
package middleware

import (
	"time"

	"github.com/catalogsync/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPMetricsConfig enables request metrics against a configured provider.
type HTTPMetricsConfig struct {
	MeterProvider *telemetry.MeterProvider
	Enabled       bool
}

// Body sizes in bytes, up to the largest batch request we accept.
var sizeBuckets = []float64{256, 1 << 10, 4 << 10, 16 << 10, 64 << 10, 256 << 10, 1 << 20, 4 << 20, 16 << 20}

type serverInstruments struct {
	requests *telemetry.Counter
	latency  *telemetry.Histogram
	reqBytes *telemetry.Histogram
	resBytes *telemetry.Histogram
	inFlight metric.Int64UpDownCounter
}

func newServerInstruments(meter metric.Meter) (*serverInstruments, error) {
	var (
		in  serverInstruments
		err error
	)
	if in.requests, err = telemetry.NewCounter(meter, "http_server_request_total", "Handled HTTP requests", "{request}"); err != nil {
		return nil, err
	}

	histograms := []struct {
		dst  **telemetry.Histogram
		opts telemetry.HistogramOpts
	}{
		{&in.latency, telemetry.HistogramOpts{Name: "http_server_request_duration_seconds", Description: "Time to serve a request", Unit: "s", Boundaries: telemetry.HTTPDurationBuckets}},
		{&in.reqBytes, telemetry.HistogramOpts{Name: "http_server_request_size_bytes", Description: "Request body size", Unit: "By", Boundaries: sizeBuckets}},
		{&in.resBytes, telemetry.HistogramOpts{Name: "http_server_response_size_bytes", Description: "Response body size", Unit: "By", Boundaries: sizeBuckets}},
	}
	for _, h := range histograms {
		if *h.dst, err = telemetry.NewHistogram(meter, h.opts); err != nil {
			return nil, err
		}
	}

	in.inFlight, err = meter.Int64UpDownCounter("http_server_active_requests",
		metric.WithDescription("Requests currently being served"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

// HTTPMetrics records request metrics when cfg names an enabled provider.
func HTTPMetrics(cfg HTTPMetricsConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.MeterProvider == nil || !cfg.MeterProvider.IsEnabled() {
		return passthrough
	}
	return HTTPMetricsWithMeter(cfg.MeterProvider.Meter("http.server"), true)
}

// HTTPMetricsWithMeter counts requests by method, route, status and
// platform. Latency and body sizes are keyed by method and route only.
// Unmatched paths share the "unknown" route.
func HTTPMetricsWithMeter(meter metric.Meter, enabled bool) gin.HandlerFunc {
	if !enabled {
		return passthrough
	}
	in, err := newServerInstruments(meter)
	if err != nil {
		return passthrough
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		reqBytes := c.Request.ContentLength

		in.inFlight.Add(ctx, 1)
		c.Next()
		in.inFlight.Add(ctx, -1)

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		keyed := []attribute.KeyValue{
			telemetry.AttrHTTPMethod.String(c.Request.Method),
			telemetry.AttrHTTPRoute.String(route),
		}

		counted := append(keyed[:len(keyed):len(keyed)], telemetry.AttrHTTPStatusCode.Int(c.Writer.Status()))
		if p := c.Param("platform"); p != "" {
			counted = append(counted, telemetry.AttrPlatform.String(p))
		}
		in.requests.Inc(ctx, counted...)

		in.latency.RecordDuration(ctx, time.Since(start), keyed...)
		if reqBytes > 0 {
			in.reqBytes.Record(ctx, float64(reqBytes), keyed...)
		}
		if n := c.Writer.Size(); n > 0 {
			in.resBytes.Record(ctx, float64(n), keyed...)
		}
	}
}

func passthrough(c *gin.Context) {
	c.Next()
}
