package shared

import (
	"context"
	"sync"
)

// EventHandler processes a single domain event
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventType() string
}

// EventPublisher publishes domain events to registered handlers
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
}

// InMemoryEventBus dispatches events synchronously to in-process handlers.
// Handler errors are collected by the caller; a failing handler does not
// prevent the remaining handlers from running.
type InMemoryEventBus struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus() *InMemoryEventBus {
	return &InMemoryEventBus{
		handlers: make(map[string][]EventHandler),
	}
}

// Subscribe registers a handler for its declared event type
func (b *InMemoryEventBus) Subscribe(handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	eventType := handler.EventType()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish delivers the event to every handler subscribed to its type.
// The first handler error is returned after all handlers have run.
func (b *InMemoryEventBus) Publish(ctx context.Context, event DomainEvent) error {
	b.mu.RLock()
	handlers := b.handlers[event.EventType()]
	b.mu.RUnlock()

	var firstErr error
	for _, h := range handlers {
		if err := h.Handle(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Ensure InMemoryEventBus implements EventPublisher
var _ EventPublisher = (*InMemoryEventBus)(nil)
