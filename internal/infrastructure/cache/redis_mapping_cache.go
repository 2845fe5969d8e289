package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultMappingKeyPrefix = "catsync:mapping:"
	defaultScanBatchSize    = 100
)

// RedisMappingCache implements MappingCache using Redis
type RedisMappingCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	keyPrefix  string
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisMappingCacheOption is a functional option for configuring the cache
type RedisMappingCacheOption func(*RedisMappingCache)

// WithKeyPrefix sets the Redis key prefix
func WithKeyPrefix(prefix string) RedisMappingCacheOption {
	return func(c *RedisMappingCache) {
		if prefix != "" {
			c.keyPrefix = prefix
		}
	}
}

// WithDefaultTTL sets the TTL used when Set is called with zero
func WithDefaultTTL(ttl time.Duration) RedisMappingCacheOption {
	return func(c *RedisMappingCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisMappingCacheOption {
	return func(c *RedisMappingCache) {
		c.logger = logger
	}
}

// NewRedisMappingCacheWithClient creates a cache with an existing Redis client.
// The caller keeps ownership of the client.
func NewRedisMappingCacheWithClient(client *redis.Client, opts ...RedisMappingCacheOption) *RedisMappingCache {
	c := &RedisMappingCache{
		client:    client,
		keyPrefix: defaultMappingKeyPrefix,
		ttl:       DefaultMappingTTL,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisMappingCache) redisKey(key string) string {
	return c.keyPrefix + key
}

// Get retrieves a mapping from cache
func (c *RedisMappingCache) Get(ctx context.Context, key string) (*integration.SyncMapping, error) {
	redisKey := c.redisKey(key)

	data, err := c.client.Get(ctx, redisKey).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("Cache miss for sync mapping", zap.String("key", key))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mapping from cache: %w", err)
	}

	var mapping integration.SyncMapping
	if err := json.Unmarshal(data, &mapping); err != nil {
		c.logger.Warn("Dropping corrupted sync mapping cache entry",
			zap.String("key", key),
			zap.Error(err))
		_ = c.client.Del(ctx, redisKey)
		return nil, fmt.Errorf("failed to unmarshal mapping: %w", err)
	}

	return &mapping, nil
}

// Set stores a mapping in cache
func (c *RedisMappingCache) Set(ctx context.Context, key string, mapping *integration.SyncMapping, ttl time.Duration) error {
	if mapping == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = c.ttl
	}

	data, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := c.client.Set(ctx, c.redisKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set mapping in cache: %w", err)
	}
	return nil
}

// Delete removes keys from cache
func (c *RedisMappingCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	redisKeys := make([]string, len(keys))
	for i, k := range keys {
		redisKeys[i] = c.redisKey(k)
	}
	if err := c.client.Del(ctx, redisKeys...).Err(); err != nil {
		return fmt.Errorf("failed to delete mapping from cache: %w", err)
	}
	return nil
}

// InvalidateAll removes every cached mapping under the key prefix
func (c *RedisMappingCache) InvalidateAll(ctx context.Context) error {
	// SCAN instead of KEYS so Redis is not blocked
	var cursor uint64
	var deletedCount int64

	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.keyPrefix+"*", defaultScanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			deleted, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deletedCount += deleted
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	c.logger.Info("Invalidated sync mapping cache", zap.Int64("deleted_count", deletedCount))
	return nil
}

// Ping checks the Redis connection
func (c *RedisMappingCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the client if the cache created it
func (c *RedisMappingCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

var _ MappingCache = (*RedisMappingCache)(nil)
