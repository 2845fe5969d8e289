package middleware

import (
	"context"
	"slices"
	"strings"

	"github.com/catalogsync/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// ProfilingConfig controls the pprof request labels.
type ProfilingConfig struct {
	Enabled   bool
	SkipPaths []string
}

func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Enabled:   true,
		SkipPaths: []string{"/health", "/metrics"},
	}
}

func Profiling() gin.HandlerFunc {
	return ProfilingWithConfig(DefaultProfilingConfig())
}

// ProfilingWithConfig labels each request's goroutine so Pyroscope profiles
// can be sliced by method, route, resource and platform.
func ProfilingWithConfig(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return passthrough
	}

	return func(c *gin.Context) {
		if slices.Contains(cfg.SkipPaths, c.Request.URL.Path) {
			c.Next()
			return
		}
		telemetry.WithProfilingLabels(c.Request.Context(), requestLabels(c), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func requestLabels(c *gin.Context) map[string]string {
	route := c.FullPath()
	labels := map[string]string{telemetry.ProfilingLabelMethod: c.Request.Method}
	if route != "" {
		labels[telemetry.ProfilingLabelRoute] = route
	}
	if res := routeResource(route); res != "" {
		labels[telemetry.ProfilingLabelResource] = res
	}
	if platform := c.Param("platform"); platform != "" {
		labels[telemetry.ProfilingLabelPlatform] = strings.ToUpper(platform)
	}
	return labels
}

// routeResource names what a route operates on:
//
//	/api/v1/sync/products/:platform/:id/sync -> products
//	/api/v1/sync/snapshots/:name             -> snapshots
//	/health                                  -> health
func routeResource(route string) string {
	route = strings.TrimPrefix(route, "/api")
	var static []string
	for seg := range strings.SplitSeq(route, "/") {
		if seg == "" || seg[0] == ':' || seg[0] == '*' || isAPIVersion(seg) {
			continue
		}
		static = append(static, seg)
	}
	switch {
	case len(static) == 0:
		return ""
	case static[0] == "sync" && len(static) > 1:
		return static[1]
	default:
		return static[0]
	}
}

func isAPIVersion(seg string) bool {
	if len(seg) < 2 || seg[0] != 'v' {
		return false
	}
	return strings.Trim(seg[1:], "0123456789") == ""
}
