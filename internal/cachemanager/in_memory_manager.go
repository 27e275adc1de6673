package cachemanager

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/ledge/internal/log"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// InMemoryCacheManager is a CacheManager backed by go-cache.
type InMemoryCacheManager[K ~string, V any] struct {
	name  string
	cache *gocache.Cache
}

// NewInMemoryCacheManager creates a cache. name only appears in log lines.
func NewInMemoryCacheManager[K ~string, V any](name string, expiration, cleanup time.Duration) *InMemoryCacheManager[K, V] {
	return &InMemoryCacheManager[K, V]{
		name:  name,
		cache: gocache.New(expiration, cleanup),
	}
}

// Get returns the cached value for key. A stored value of the wrong type is
// reported as a miss.
func (c *InMemoryCacheManager[K, V]) Get(_ context.Context, key K) (V, bool) {
	var zero V

	raw, found := c.cache.Get(string(key))
	if !found {
		log.Debug(log.CatCache, "cache miss", "cache", c.name, "key", key)
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		log.Error(log.CatCache, "cached value has unexpected type", "cache", c.name, "key", key)
		return zero, false
	}
	log.Debug(log.CatCache, "cache hit", "cache", c.name, "key", key)
	return v, true
}

// Set stores value under key. A zero ttl uses the cache's default expiration.
func (c *InMemoryCacheManager[K, V]) Set(_ context.Context, key K, value V, ttl time.Duration) {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(string(key), value, ttl)
}

// Delete removes keys from the cache.
func (c *InMemoryCacheManager[K, V]) Delete(_ context.Context, keys ...K) {
	for _, key := range keys {
		c.cache.Delete(string(key))
	}
}

// Flush empties the cache.
func (c *InMemoryCacheManager[K, V]) Flush(_ context.Context) {
	log.Debug(log.CatCache, "cache flushed", "cache", c.name, "items", c.cache.ItemCount())
	c.cache.Flush()
}

// Len returns the number of items, including expired ones not yet cleaned up.
func (c *InMemoryCacheManager[K, V]) Len() int {
	return c.cache.ItemCount()
}
