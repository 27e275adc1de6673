package store

import (
	"errors"
	"fmt"
	"time"
)

// ErrChannelNotFound is returned when a channel id or name has no row.
var ErrChannelNotFound = errors.New("store: channel not found")

// Channel is a named stream of messages.
type Channel struct {
	ID        string
	Name      string
	Topic     string
	CreatedAt time.Time
}

// Message is one post in a channel.
type Message struct {
	ID        string
	ChannelID string
	Author    string
	Content   string
	Embeds    []Embed
	CreatedAt time.Time
}

// Embed is a link preview attached to a message.
type Embed struct {
	URL   string
	Title string
}

// ValidationError reports input the store refuses to write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("store: invalid %s: %s", e.Field, e.Reason)
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
