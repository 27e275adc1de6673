package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type channelKey string

func newTestCache() *InMemoryCacheManager[channelKey, string] {
	return NewInMemoryCacheManager[channelKey, string]("playlist", DefaultExpiration, DefaultCleanupInterval)
}

func TestInMemoryCacheManager_SetGet(t *testing.T) {
	ctx := context.Background()
	c := newTestCache()

	_, ok := c.Get(ctx, "general")
	require.False(t, ok)

	c.Set(ctx, "general", "http://www.youtube.com/watch_videos?video_ids=abc", 0)
	got, ok := c.Get(ctx, "general")
	require.True(t, ok)
	require.Equal(t, "http://www.youtube.com/watch_videos?video_ids=abc", got)
	require.Equal(t, 1, c.Len())
}

func TestInMemoryCacheManager_WrongTypeIsMiss(t *testing.T) {
	c := newTestCache()
	c.cache.Set("general", 42, DefaultExpiration)

	got, ok := c.Get(context.Background(), "general")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	ctx := context.Background()
	c := newTestCache()

	c.Set(ctx, "general", "url", 10*time.Millisecond)
	require.Eventually(t, func() bool {
		_, ok := c.Get(ctx, "general")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	ctx := context.Background()
	c := newTestCache()
	c.Set(ctx, "a", "1", 0)
	c.Set(ctx, "b", "2", 0)
	c.Set(ctx, "c", "3", 0)

	c.Delete(ctx)
	require.Equal(t, 3, c.Len())

	c.Delete(ctx, "a", "b")
	_, ok := c.Get(ctx, "a")
	require.False(t, ok)
	_, ok = c.Get(ctx, "c")
	require.True(t, ok)

	c.Flush(ctx)
	require.Zero(t, c.Len())
}
