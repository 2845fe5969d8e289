package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/catalogsync/backend/internal/infrastructure/auth"
	"github.com/catalogsync/backend/internal/infrastructure/config"
	"github.com/catalogsync/backend/internal/infrastructure/ecommerce"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap/zaptest"
)

func TestPlatformConfigs(t *testing.T) {
	assert.Nil(t, shopifyConfig(config.ShopifyConfig{}))
	assert.Nil(t, wooCommerceConfig(config.WooCommerceConfig{}))

	shop := shopifyConfig(config.ShopifyConfig{ShopDomain: "acme.myshopify.com", AccessToken: "shpat_x"})
	require.NotNil(t, shop)
	assert.Equal(t, ecommerce.DefaultShopifyAPIVersion, shop.APIVersion)

	woo := wooCommerceConfig(config.WooCommerceConfig{
		BaseURL:        "https://shop.example.com",
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
		WeightUnit:     "lbs",
		Timeout:        5 * time.Second,
	})
	require.NotNil(t, woo)
	assert.Equal(t, "lbs", woo.WeightUnit)
	assert.Equal(t, 5*time.Second, woo.Timeout)
}

func TestNewEngine_RateLimitAndRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			MaxBodySize:       1 << 20,
			RateLimitEnabled:  true,
			RateLimitRequests: 2,
			RateLimitWindow:   time.Minute,
		},
	}
	tel := &telemetryStack{meter: noop.NewMeterProvider().Meter("test")}

	engine, limiter := newEngine(cfg, tel, zaptest.NewLogger(t))
	require.NotNil(t, limiter)
	t.Cleanup(limiter.Stop)
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewEngine_NoRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tel := &telemetryStack{meter: noop.NewMeterProvider().Meter("test")}

	_, limiter := newEngine(&config.Config{}, tel, zaptest.NewLogger(t))
	assert.Nil(t, limiter)
}

func TestBuildSnapshots(t *testing.T) {
	ctx := context.Background()
	log := zaptest.NewLogger(t)

	disabled, err := buildSnapshots(ctx, config.StorageConfig{}, nil, log)
	require.NoError(t, err)
	assert.Nil(t, disabled)

	memory, err := buildSnapshots(ctx, config.StorageConfig{Driver: "memory", KeyPrefix: "snapshots/"}, nil, log)
	require.NoError(t, err)
	require.NotNil(t, memory)
	list, err := memory.ListSnapshots(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = buildSnapshots(ctx, config.StorageConfig{Driver: "gcs"}, nil, log)
	assert.ErrorContains(t, err, "unknown storage driver")

	_, err = buildSnapshots(ctx, config.StorageConfig{Driver: "s3"}, nil, log)
	assert.ErrorContains(t, err, "bucket is required")
}

func TestBuildAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := zaptest.NewLogger(t)

	disabled, err := buildAuth(&config.Config{}, log)
	require.NoError(t, err)
	assert.Empty(t, disabled.middleware)
	assert.NoError(t, disabled.closer())

	authCfg := config.AuthConfig{Secret: "wiring-test-secret-at-least-32-chars", Issuer: "catsync"}
	enabled, err := buildAuth(&config.Config{Auth: authCfg}, log)
	require.NoError(t, err)
	require.Len(t, enabled.middleware, 2)

	engine := gin.New()
	engine.Use(enabled.middleware...)
	engine.GET("/sync/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sync/products", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	issued, err := auth.NewTokenService(authCfg).IssueToken(auth.IssueTokenInput{
		Client: "wiring",
		Scopes: []string{auth.ScopeSyncRead},
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/sync/products", nil)
	req.Header.Set("Authorization", "Bearer "+issued.Token)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterDocs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(cfg config.SwaggerConfig, chain ...gin.HandlerFunc) *httptest.ResponseRecorder {
		engine := gin.New()
		registerDocs(engine, cfg, chain)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
		return w
	}

	assert.Equal(t, http.StatusNotFound, serve(config.SwaggerConfig{}).Code)

	w := serve(config.SwaggerConfig{Enabled: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/sync/batch"`)
	assert.Contains(t, w.Body.String(), "Catalog Sync API")

	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	assert.Equal(t, http.StatusUnauthorized, serve(config.SwaggerConfig{Enabled: true, RequireAuth: true}, deny).Code)
}
