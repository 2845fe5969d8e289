// Package cache holds the sync mapping lookup caches: a Redis cache shared
// across instances, a process-local in-memory cache, and a read-through
// repository decorator that uses either.
package cache

import (
	"context"
	"time"

	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/google/uuid"
)

// DefaultMappingTTL is how long a cached mapping lives when no TTL is given
const DefaultMappingTTL = 10 * time.Minute

// MappingCache stores sync mappings under lookup keys. Get returns
// (nil, nil) on a miss.
type MappingCache interface {
	Get(ctx context.Context, key string) (*integration.SyncMapping, error)
	Set(ctx context.Context, key string, mapping *integration.SyncMapping, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	InvalidateAll(ctx context.Context) error
	Close() error
}

// CanonicalPlatformKey is the cache key of the upsert lookup
func CanonicalPlatformKey(canonicalID uuid.UUID, platform integration.PlatformCode) string {
	return "canonical:" + canonicalID.String() + ":" + string(platform)
}

// PlatformProductKey is the cache key of the reverse lookup
func PlatformProductKey(platform integration.PlatformCode, platformProductID string) string {
	return "platform:" + string(platform) + ":" + platformProductID
}

// mappingKeys returns every key a mapping can be cached under
func mappingKeys(m *integration.SyncMapping) []string {
	return []string{
		CanonicalPlatformKey(m.CanonicalProductID, m.Platform),
		PlatformProductKey(m.Platform, m.PlatformProductID),
	}
}
