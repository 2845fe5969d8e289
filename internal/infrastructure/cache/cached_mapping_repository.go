package cache

import (
	"context"
	"time"

	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CachedSyncMappingRepository is a read-through cache in front of a
// SyncMappingRepository. The two single-mapping lookups the sync service
// makes are cached; writes invalidate the keys of the written mapping.
// Cache failures are logged and fall through to the repository.
type CachedSyncMappingRepository struct {
	inner  integration.SyncMappingRepository
	cache  MappingCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedSyncMappingRepository wraps inner with cache
func NewCachedSyncMappingRepository(
	inner integration.SyncMappingRepository,
	cache MappingCache,
	ttl time.Duration,
	logger *zap.Logger,
) *CachedSyncMappingRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = DefaultMappingTTL
	}
	return &CachedSyncMappingRepository{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger.Named("mapping_cache"),
	}
}

// FindByID is not cached
func (r *CachedSyncMappingRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.SyncMapping, error) {
	return r.inner.FindByID(ctx, id)
}

// FindByCanonicalAndPlatform reads through the cache
func (r *CachedSyncMappingRepository) FindByCanonicalAndPlatform(ctx context.Context, canonicalProductID uuid.UUID, platform integration.PlatformCode) (*integration.SyncMapping, error) {
	return r.readThrough(ctx, CanonicalPlatformKey(canonicalProductID, platform), func() (*integration.SyncMapping, error) {
		return r.inner.FindByCanonicalAndPlatform(ctx, canonicalProductID, platform)
	})
}

// FindByCanonicalProduct is not cached
func (r *CachedSyncMappingRepository) FindByCanonicalProduct(ctx context.Context, canonicalProductID uuid.UUID) ([]integration.SyncMapping, error) {
	return r.inner.FindByCanonicalProduct(ctx, canonicalProductID)
}

// FindByPlatformProduct reads through the cache
func (r *CachedSyncMappingRepository) FindByPlatformProduct(ctx context.Context, platform integration.PlatformCode, platformProductID string) (*integration.SyncMapping, error) {
	return r.readThrough(ctx, PlatformProductKey(platform, platformProductID), func() (*integration.SyncMapping, error) {
		return r.inner.FindByPlatformProduct(ctx, platform, platformProductID)
	})
}

// Save writes through to the repository, then drops the cached keys
func (r *CachedSyncMappingRepository) Save(ctx context.Context, mapping *integration.SyncMapping) error {
	if err := r.inner.Save(ctx, mapping); err != nil {
		return err
	}
	r.invalidate(ctx, mappingKeys(mapping)...)
	return nil
}

// Delete removes the mapping and its cached keys
func (r *CachedSyncMappingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, mappingKeys(existing)...)
	return nil
}

func (r *CachedSyncMappingRepository) readThrough(
	ctx context.Context,
	key string,
	load func() (*integration.SyncMapping, error),
) (*integration.SyncMapping, error) {
	cached, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("Mapping cache read failed", zap.String("key", key), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	mapping, err := load()
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, key, mapping, r.ttl); err != nil {
		r.logger.Warn("Mapping cache write failed", zap.String("key", key), zap.Error(err))
	}
	return mapping, nil
}

func (r *CachedSyncMappingRepository) invalidate(ctx context.Context, keys ...string) {
	if err := r.cache.Delete(ctx, keys...); err != nil {
		r.logger.Warn("Mapping cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

var _ integration.SyncMappingRepository = (*CachedSyncMappingRepository)(nil)
