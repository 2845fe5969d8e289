package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHealth(t *testing.T, h *HealthHandler) (int, map[string]string) {
	t.Helper()
	engine := gin.New()
	engine.GET("/health", h.Health)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealthHandler_NoChecks(t *testing.T) {
	code, body := runHealth(t, NewHealthHandler())

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["time"])
}

func TestHealthHandler_AllPass(t *testing.T) {
	ok := func(context.Context) error { return nil }
	code, body := runHealth(t, NewHealthHandler(
		HealthCheck{Name: "database", Check: ok},
		HealthCheck{Name: "redis", Check: ok},
	))

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["database"])
	assert.Equal(t, "ok", body["redis"])
}

func TestHealthHandler_FailingCheck(t *testing.T) {
	var ran []string
	check := func(name string, err error) HealthCheck {
		return HealthCheck{Name: name, Check: func(ctx context.Context) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			ran = append(ran, name)
			return err
		}}
	}

	code, body := runHealth(t, NewHealthHandler(
		check("database", errors.New("connection refused")),
		check("redis", nil),
	))

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "error", body["database"])
	assert.Equal(t, "ok", body["redis"])
	assert.Equal(t, []string{"database", "redis"}, ran)
	assert.NotContains(t, body, "connection refused")
}
