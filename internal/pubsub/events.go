// Package pubsub provides a generic publish/subscribe event system used to
// broadcast registry changes (registrations, overwrites, removals).
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// RegisteredEvent is published when a new entry is registered.
	RegisteredEvent EventType = "registered"
	// OverwrittenEvent is published when an existing entry is replaced.
	OverwrittenEvent EventType = "overwritten"
	// UnregisteredEvent is published when an entry is removed.
	UnregisteredEvent EventType = "unregistered"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
