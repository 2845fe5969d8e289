package integration

import (
	"context"
	"testing"
	"time"

	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/infrastructure/cache"
	"github.com/catalogsync/backend/internal/infrastructure/config"
	"github.com/catalogsync/backend/internal/infrastructure/persistence"
	"github.com/catalogsync/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRedisMappingCache(t *testing.T) {
	tr := NewTestRedis(t)
	ctx := context.Background()
	c := cache.NewRedisMappingCacheWithClient(tr.Client, cache.WithKeyPrefix("test:mapping:"))

	m := testutil.NewSyncMapping(t, integration.PlatformShopify, "100", integration.PlatformWooCommerce, "501")
	require.NoError(t, m.SetVariantID("TEE-S", "502"))
	key := cache.CanonicalPlatformKey(m.CanonicalProductID, m.Platform)

	t.Run("miss", func(t *testing.T) {
		got, err := c.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, key, m, time.Minute))

		got, err := c.Get(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, m.ID, got.ID)
		assert.Equal(t, "501", got.PlatformProductID)
		variant, ok := got.VariantID("TEE-S")
		assert.True(t, ok)
		assert.Equal(t, "502", variant)

		ttl, err := tr.Client.TTL(ctx, "test:mapping:"+key).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("corrupted entry is dropped", func(t *testing.T) {
		require.NoError(t, tr.Client.Set(ctx, "test:mapping:bad", "{not json", time.Minute).Err())

		_, err := c.Get(ctx, "bad")
		assert.Error(t, err)
		exists, err := tr.Client.Exists(ctx, "test:mapping:bad").Result()
		require.NoError(t, err)
		assert.Zero(t, exists)
	})

	t.Run("invalidate all keeps foreign keys", func(t *testing.T) {
		require.NoError(t, tr.Client.Set(ctx, "other:key", "1", 0).Err())
		require.NoError(t, c.Set(ctx, cache.PlatformProductKey(m.Platform, m.PlatformProductID), m, 0))

		require.NoError(t, c.InvalidateAll(ctx))

		got, err := c.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, got)
		exists, err := tr.Client.Exists(ctx, "other:key").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, c.Ping(ctx))
	})
}

func TestOpenMappingCache_Redis(t *testing.T) {
	tr := NewTestRedis(t)

	c, err := cache.OpenMappingCache(context.Background(), config.RedisConfig{Host: tr.Host, Port: tr.Port}, cache.OpenOptions{
		TTL:          time.Minute,
		Logger:       zaptest.NewLogger(t),
		RequireRedis: true,
	})
	require.NoError(t, err)
	defer c.Close()

	_, isRedis := c.(*cache.RedisMappingCache)
	assert.True(t, isRedis)
}

func TestCachedSyncMappingRepository_RedisAndPostgres(t *testing.T) {
	testDB := NewSharedTestDB(t)
	testDB.CleanTables()
	tr := NewTestRedis(t)
	ctx := context.Background()

	inner := persistence.NewGormSyncMappingRepository(testDB.DB)
	redisCache := cache.NewRedisMappingCacheWithClient(tr.Client)
	repo := cache.NewCachedSyncMappingRepository(inner, redisCache, time.Minute, zaptest.NewLogger(t))

	m := testutil.NewSyncMapping(t, integration.PlatformShopify, "100", integration.PlatformWooCommerce, "501")
	require.NoError(t, repo.Save(ctx, m))

	found, err := repo.FindByCanonicalAndPlatform(ctx, m.CanonicalProductID, integration.PlatformWooCommerce)
	require.NoError(t, err)
	assert.Equal(t, "501", found.PlatformProductID)

	// Served from Redis once the row is gone underneath the cache
	require.NoError(t, testDB.DB.Exec("DELETE FROM sync_mappings WHERE id = ?", m.ID).Error)
	cached, err := repo.FindByCanonicalAndPlatform(ctx, m.CanonicalProductID, integration.PlatformWooCommerce)
	require.NoError(t, err)
	assert.Equal(t, m.ID, cached.ID)

	// Save invalidates both lookup keys
	require.NoError(t, repo.Save(ctx, m))
	_, err = repo.FindByPlatformProduct(ctx, integration.PlatformWooCommerce, "501")
	require.NoError(t, err)
	m.PlatformProductID = "777"
	require.NoError(t, repo.Save(ctx, m))

	reloaded, err := repo.FindByCanonicalAndPlatform(ctx, m.CanonicalProductID, integration.PlatformWooCommerce)
	require.NoError(t, err)
	assert.Equal(t, "777", reloaded.PlatformProductID)

	// Delete drops the cached entry too
	require.NoError(t, repo.Delete(ctx, m.ID))
	_, err = repo.FindByCanonicalAndPlatform(ctx, m.CanonicalProductID, integration.PlatformWooCommerce)
	assert.ErrorIs(t, err, integration.ErrMappingNotFound)
}
