package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tune_outbound_backend/platform/logger"
)

// InMemoryBus is a process-local Bus implementation. Handlers for the same
// event name run sequentially; Publish detaches from the caller's goroutine.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for the given event name.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish dispatches the event asynchronously. Handler errors are logged,
// never returned; a panicking handler does not take down the process.
func (b *InMemoryBus) Publish(ctx context.Context, event Event) {
	go func() {
		// The request context may be cancelled as soon as the response is
		// written; detached handlers get a fresh one.
		if err := b.dispatch(context.WithoutCancel(ctx), event); err != nil && b.log != nil {
			b.log.Error("event handler failed", "event", event.EventName(), "error", err)
		}
	}()
}

// PublishSync dispatches the event and waits for all handlers.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	return b.dispatch(ctx, event)
}

func (b *InMemoryBus) dispatch(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.EventName()]))
	copy(handlers, b.handlers[event.EventName()])
	b.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := b.safeHandle(ctx, h, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *InMemoryBus) safeHandle(ctx context.Context, h Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h.Handle(ctx, event)
}
