// Package pubsub fans typed events out to any number of subscribers.
//
// ledge uses it for three streams: log entries for the debug overlay,
// database change notifications from the watcher, and plugin lifecycle
// changes so the header can refresh after a contributor is toggled.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened to the payload.
type EventType string

const (
	CreatedEvent EventType = "created"
	UpdatedEvent EventType = "updated"
	DeletedEvent EventType = "deleted"

	// RegisteredEvent and UnregisteredEvent describe toolbar contributions.
	RegisteredEvent   EventType = "registered"
	UnregisteredEvent EventType = "unregistered"
)

// Event is a published payload stamped with its type and publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out event channels tied to a context.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher sends events to subscribers.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
