package cachemanager

import (
	"context"
	"time"
)

// Loader computes a value on a cache miss.
type Loader[V any, I any] func(ctx context.Context, input I) (V, error)

// ReadThroughCache returns cached values and fills misses from a Loader.
// Loader errors are returned and never cached.
type ReadThroughCache[K ~string, V any, I any] struct {
	cache CacheManager[K, V]
	load  Loader[V, I]
	ttl   time.Duration
	skip  bool
}

// NewReadThroughCache wraps cache with load. When skip is true every call
// goes straight to load.
func NewReadThroughCache[K ~string, V any, I any](cache CacheManager[K, V], load Loader[V, I], ttl time.Duration, skip bool) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{cache: cache, load: load, ttl: ttl, skip: skip}
}

// Get returns the value under key, loading it from input on a miss.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I) (V, error) {
	if r.skip {
		return r.load(ctx, input)
	}
	if v, ok := r.cache.Get(ctx, key); ok {
		return v, nil
	}

	v, err := r.load(ctx, input)
	if err != nil {
		return v, err
	}
	r.cache.Set(ctx, key, v, r.ttl)
	return v, nil
}

// Invalidate drops keys so the next Get reloads them.
func (r *ReadThroughCache[K, V, I]) Invalidate(ctx context.Context, keys ...K) {
	r.cache.Delete(ctx, keys...)
}

// Reset drops everything.
func (r *ReadThroughCache[K, V, I]) Reset(ctx context.Context) {
	r.cache.Flush(ctx)
}
