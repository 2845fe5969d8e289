package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/catalogsync/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisDialTimeout = 5 * time.Second

// OpenOptions controls OpenMappingCache.
type OpenOptions struct {
	TTL    time.Duration
	Logger *zap.Logger
	// RequireRedis turns a missing or unreachable Redis into an error
	// instead of a process-local cache.
	RequireRedis bool
}

// OpenMappingCache prefers Redis and falls back to an in-memory cache.
// The in-memory cache is not shared between instances, so another
// instance may serve a stale mapping until its TTL expires.
func OpenMappingCache(ctx context.Context, cfg config.RedisConfig, opts OpenOptions) (MappingCache, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	c, err := dialRedis(ctx, cfg, opts.TTL, log)
	if err == nil {
		log.Info("Mapping cache backed by Redis", zap.String("addr", cfg.Addr()))
		return c, nil
	}
	if opts.RequireRedis {
		return nil, fmt.Errorf("redis required for mapping cache: %w", err)
	}

	log.Warn("Redis unavailable, using in-memory mapping cache", zap.Error(err))
	return NewInMemoryMappingCache(opts.TTL), nil
}

func dialRedis(ctx context.Context, cfg config.RedisConfig, ttl time.Duration, log *zap.Logger) (*RedisMappingCache, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("redis host not configured")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr(), err)
	}

	c := NewRedisMappingCacheWithClient(client, WithDefaultTTL(ttl), WithCacheLogger(log))
	c.ownsClient = true
	return c, nil
}
