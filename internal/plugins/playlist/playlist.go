// Package playlist builds an ad-hoc YouTube playlist from the links posted
// in a channel and offers it as a toolbar button.
package playlist

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/zjrosen/ledge/internal/cachemanager"
	"github.com/zjrosen/ledge/internal/log"
	"github.com/zjrosen/ledge/internal/store"
)

const (
	// MaxVideos is the most ids the watch_videos endpoint accepts.
	MaxVideos = 50

	// messageWindow bounds how far back a channel is scanned for links.
	messageWindow = 500

	watchVideosURL = "http://www.youtube.com/watch_videos?video_ids="
)

var (
	// ErrNoChannel is returned when no channel is selected.
	ErrNoChannel = errors.New("playlist: no channel")

	// ErrNoVideos is returned when a channel has no YouTube links.
	ErrNoVideos = errors.New("playlist: no videos")
)

var videoIDPattern = regexp.MustCompile(`youtube\.com/watch\?v=([^&]+)`)

// Playlist is the resolved playlist for one channel.
type Playlist struct {
	URL      string
	VideoIDs []string
}

// VideoIDs extracts YouTube ids from the embeds of msgs, given oldest first.
// Each id is kept at its first occurrence and only the MaxVideos most recent
// distinct ids are returned.
func VideoIDs(msgs []store.Message) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, m := range msgs {
		for _, e := range m.Embeds {
			match := videoIDPattern.FindStringSubmatch(e.URL)
			if match == nil || seen[match[1]] {
				continue
			}
			seen[match[1]] = true
			ids = append(ids, match[1])
		}
	}
	if len(ids) > MaxVideos {
		ids = ids[len(ids)-MaxVideos:]
	}
	return ids
}

// BuildURL returns the watch_videos URL for ids.
func BuildURL(ids []string) string {
	return watchVideosURL + strings.Join(ids, ",")
}

// MessageSource reads a channel's recent messages.
type MessageSource interface {
	Messages(ctx context.Context, channelID string, limit int) ([]store.Message, error)
}

// Resolver turns a channel into its Playlist, caching results per channel
// until Invalidate is called.
type Resolver struct {
	cache *cachemanager.ReadThroughCache[string, Playlist, string]
}

// NewResolver creates a resolver reading from source.
func NewResolver(source MessageSource) *Resolver {
	load := func(ctx context.Context, channelID string) (Playlist, error) {
		msgs, err := source.Messages(ctx, channelID, messageWindow)
		if err != nil {
			return Playlist{}, fmt.Errorf("loading messages: %w", err)
		}
		// An empty playlist is cached too, so channels without links do not
		// query the store on every render.
		ids := VideoIDs(msgs)
		if len(ids) == 0 {
			return Playlist{}, nil
		}
		log.Debug(log.CatPlugin, "Built playlist", "channel", channelID, "videos", len(ids))
		return Playlist{URL: BuildURL(ids), VideoIDs: ids}, nil
	}

	cache := cachemanager.NewInMemoryCacheManager[string, Playlist]("playlist", 5*time.Minute, 10*time.Minute)
	return &Resolver{
		cache: cachemanager.NewReadThroughCache[string, Playlist, string](cache, load, 0, false),
	}
}

// Resolve returns the playlist for channelID.
func (r *Resolver) Resolve(ctx context.Context, channelID string) (Playlist, error) {
	if channelID == "" {
		return Playlist{}, ErrNoChannel
	}
	pl, err := r.cache.Get(ctx, channelID, channelID)
	if err != nil {
		return Playlist{}, err
	}
	if len(pl.VideoIDs) == 0 {
		return Playlist{}, ErrNoVideos
	}
	return pl, nil
}

// Invalidate forgets cached playlists so the next Resolve reloads them.
// With no ids every channel is forgotten.
func (r *Resolver) Invalidate(channelIDs ...string) {
	if len(channelIDs) == 0 {
		r.cache.Reset(context.Background())
		return
	}
	r.cache.Invalidate(context.Background(), channelIDs...)
}
