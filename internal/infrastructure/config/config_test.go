package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every CATSYNC_ variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "CATSYNC_") {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "catsync", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "catsync", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)

		assert.Equal(t, "fixed", cfg.Sync.PacingMode)
		assert.Equal(t, 150*time.Millisecond, cfg.Sync.PacingDelay)
		assert.Equal(t, 1, cfg.Sync.Concurrency)
		assert.Equal(t, 8, cfg.Sync.MaxConcurrency)
		assert.Equal(t, 50, cfg.Sync.PageSize)
		assert.Equal(t, 10*time.Minute, cfg.Sync.MappingCacheTTL)

		assert.False(t, cfg.Shopify.Enabled())
		assert.Equal(t, "2024-07", cfg.Shopify.APIVersion)
		assert.False(t, cfg.WooCommerce.Enabled())
		assert.Equal(t, "kg", cfg.WooCommerce.WeightUnit)
		assert.Empty(t, cfg.Redis.Host)
		assert.Equal(t, 200*time.Millisecond, cfg.Telemetry.DBSlowQueryThresh)

		assert.False(t, cfg.Auth.Enabled())
		assert.Equal(t, "catsync", cfg.Auth.Issuer)
		assert.Equal(t, 30*24*time.Hour, cfg.Auth.TokenTTL)
		assert.False(t, cfg.Swagger.Enabled)
		assert.False(t, cfg.Storage.Enabled())
		assert.Equal(t, "snapshots/", cfg.Storage.KeyPrefix)
		assert.Equal(t, 15*time.Minute, cfg.Storage.PresignExpiration)
	})

	t.Run("loads values from environment variables with CATSYNC prefix", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CATSYNC_APP_PORT", "9000")
		t.Setenv("CATSYNC_DATABASE_HOST", "testdb.local")
		t.Setenv("CATSYNC_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("CATSYNC_SYNC_PACING_MODE", "token_bucket")
		t.Setenv("CATSYNC_SYNC_PACING_QPS", "4.5")
		t.Setenv("CATSYNC_SYNC_CONCURRENCY", "4")
		t.Setenv("CATSYNC_SHOPIFY_SHOP_DOMAIN", "acme.myshopify.com")
		t.Setenv("CATSYNC_SHOPIFY_ACCESS_TOKEN", "shpat_x")
		t.Setenv("CATSYNC_WOOCOMMERCE_BASE_URL", "https://shop.example.com")
		t.Setenv("CATSYNC_WOOCOMMERCE_CONSUMER_KEY", "ck_x")
		t.Setenv("CATSYNC_WOOCOMMERCE_CONSUMER_SECRET", "cs_x")
		t.Setenv("CATSYNC_WOOCOMMERCE_TIMEOUT", "5s")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, "token_bucket", cfg.Sync.PacingMode)
		assert.InDelta(t, 4.5, cfg.Sync.PacingQPS, 0.0001)
		assert.Equal(t, 4, cfg.Sync.Concurrency)
		assert.True(t, cfg.Shopify.Enabled())
		assert.True(t, cfg.WooCommerce.Enabled())
		assert.Equal(t, 5*time.Second, cfg.WooCommerce.Timeout)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CATSYNC_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("CATSYNC_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects unknown pacing mode", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CATSYNC_SYNC_PACING_MODE", "burst")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sync.pacing_mode")
	})

	t.Run("concurrency cannot exceed max concurrency", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CATSYNC_SYNC_CONCURRENCY", "16")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sync.max_concurrency")
	})

	t.Run("shopify domain requires token", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CATSYNC_SHOPIFY_SHOP_DOMAIN", "acme.myshopify.com")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "shopify.access_token")
	})

	t.Run("woocommerce base url requires credentials", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CATSYNC_WOOCOMMERCE_BASE_URL", "https://shop.example.com")
		t.Setenv("CATSYNC_WOOCOMMERCE_CONSUMER_KEY", "ck_x")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "woocommerce.consumer_secret")
	})

	t.Run("schedule requires distinct source and destination", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CATSYNC_SYNC_SCHEDULE_ENABLED", "true")
		t.Setenv("CATSYNC_SYNC_SCHEDULE_SOURCE", "SHOPIFY")
		t.Setenv("CATSYNC_SYNC_SCHEDULE_DESTINATION", "shopify")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must differ")
	})

	t.Run("s3 storage requires bucket and credentials", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CATSYNC_STORAGE_DRIVER", "s3")
		t.Setenv("CATSYNC_STORAGE_BUCKET", "catalog")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.access_key")
	})

	t.Run("rejects unknown storage driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CATSYNC_STORAGE_DRIVER", "gcs")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.driver")
	})

	t.Run("profiling requires server address", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CATSYNC_TELEMETRY_PROFILING_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "profiling_server_address")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CATSYNC_APP_ENV", "production")
		t.Setenv("CATSYNC_DATABASE_PASSWORD", "secure-password")
		t.Setenv("CATSYNC_DATABASE_SSLMODE", "require")
		t.Setenv("CATSYNC_AUTH_SECRET", "0123456789abcdef0123456789abcdef")
	}

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})

	t.Run("requires database.password in production", func(t *testing.T) {
		setValidProductionBase(t)
		os.Unsetenv("CATSYNC_DATABASE_PASSWORD")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("CATSYNC_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("requires auth.secret in production", func(t *testing.T) {
		setValidProductionBase(t)
		os.Unsetenv("CATSYNC_AUTH_SECRET")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "auth.secret is required in production")
	})

	t.Run("rejects short auth.secret in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("CATSYNC_AUTH_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("rejects open swagger in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("CATSYNC_SWAGGER_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "swagger endpoint must be disabled")
	})

	t.Run("allows protected swagger in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("CATSYNC_SWAGGER_ENABLED", "true")
		t.Setenv("CATSYNC_SWAGGER_REQUIRE_AUTH", "true")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Swagger.RequireAuth)
	})

	t.Run("rejects full SQL logging in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("CATSYNC_TELEMETRY_DB_LOG_FULL_SQL", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db_log_full_sql")
	})
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "catsync.toml")
	content := `
[sync]
pacing_mode = "none"
page_size = 100
schedule_enabled = true
schedule_source = "WOOCOMMERCE"
schedule_destination = "SHOPIFY"
schedule_interval = "15m"

[woocommerce]
base_url = "https://shop.example.com"
consumer_key = "ck_file"
consumer_secret = "cs_file"
weight_unit = "lb"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CATSYNC_SYNC_PAGE_SIZE", "20")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "none", cfg.Sync.PacingMode)
	assert.Equal(t, 20, cfg.Sync.PageSize, "env overrides file")
	assert.True(t, cfg.Sync.ScheduleEnabled)
	assert.Equal(t, 15*time.Minute, cfg.Sync.ScheduleInterval)
	assert.Equal(t, "lb", cfg.WooCommerce.WeightUnit)
	assert.Equal(t, "ck_file", cfg.WooCommerce.ConsumerKey)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
