// Package events carries domain events between bounded contexts.
// Definitions of concrete events live with the domains; this package only
// holds the bus contract and the shared base type.
package events

import (
	"context"
	"time"
)

// Event is implemented by every domain event.
type Event interface {
	// EventName uniquely identifies the event type and is the key
	// handlers subscribe on.
	EventName() string
	// OccurredAt is the publish timestamp.
	OccurredAt() time.Time
}

// BaseEvent supplies the timestamp; embed it in concrete events.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps a base event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler reacts to a published event.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus dispatches events to subscribed handlers.
type Bus interface {
	// Publish dispatches asynchronously; handler errors are logged, not
	// returned. Use for fire-and-forget reactions on the request path.
	Publish(ctx context.Context, event Event)

	// PublishSync runs every handler before returning and reports their
	// joined errors. Batch work uses this so task completion implies all
	// reactions have run.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler under an Event's EventName.
	Subscribe(eventName string, handler Handler)
}
