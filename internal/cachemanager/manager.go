// Package cachemanager holds short-lived computed values keyed by string,
// such as playlist URLs built from a channel's recent messages.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager stores values of one type under string keys.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K)
	Flush(ctx context.Context)
}
