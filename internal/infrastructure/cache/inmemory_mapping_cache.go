package cache

import (
	"context"
	"sync"
	"time"

	"github.com/catalogsync/backend/internal/domain/integration"
)

type mappingEntry struct {
	mapping   *integration.SyncMapping
	expiresAt time.Time
}

// InMemoryMappingCache implements MappingCache with a process-local map.
// Entries are cloned on the way in and out so callers cannot mutate them.
type InMemoryMappingCache struct {
	mu        sync.RWMutex
	entries   map[string]mappingEntry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryMappingCache creates the cache and starts its cleanup loop
func NewInMemoryMappingCache(ttl time.Duration) *InMemoryMappingCache {
	if ttl <= 0 {
		ttl = DefaultMappingTTL
	}
	c := &InMemoryMappingCache{
		entries:  make(map[string]mappingEntry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop(cleanupInterval(ttl))

	return c
}

func cleanupInterval(ttl time.Duration) time.Duration {
	return min(max(ttl/2, time.Second), 5*time.Minute)
}

// Get retrieves a mapping from cache
func (c *InMemoryMappingCache) Get(_ context.Context, key string) (*integration.SyncMapping, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil, nil
	}
	return e.mapping.Clone(), nil
}

// Set stores a mapping in cache
func (c *InMemoryMappingCache) Set(_ context.Context, key string, mapping *integration.SyncMapping, ttl time.Duration) error {
	if mapping == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = c.ttl
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = mappingEntry{mapping: mapping.Clone(), expiresAt: time.Now().Add(ttl)}
	return nil
}

// Delete removes keys from cache
func (c *InMemoryMappingCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

// InvalidateAll empties the cache
func (c *InMemoryMappingCache) InvalidateAll(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (c *InMemoryMappingCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

func (c *InMemoryMappingCache) cleanupLoop(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *InMemoryMappingCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// Size returns the number of entries, expired ones included until cleanup
func (c *InMemoryMappingCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ MappingCache = (*InMemoryMappingCache)(nil)
