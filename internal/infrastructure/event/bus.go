// Package event dispatches domain events to in-process handlers such as the
// WhatsApp notifier.
package event

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/jeenmata/impex/internal/domain/shared"
	"go.uber.org/zap"
)

// InMemoryEventBus implements EventBus with in-memory pub/sub. Handlers run
// synchronously on the publishing goroutine, type-specific handlers first.
type InMemoryEventBus struct {
	mu       sync.RWMutex
	byType   map[string][]shared.EventHandler
	wildcard []shared.EventHandler
	logger   *zap.Logger
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryEventBus{
		byType: make(map[string][]shared.EventHandler),
		logger: logger,
	}
}

// Publish hands every event to its handlers. Handler failures are logged
// and never returned to the publisher.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		for _, handler := range b.handlersFor(event.EventType()) {
			if err := b.dispatch(ctx, handler, event); err != nil {
				b.logger.Error("handler failed to process event",
					zap.String("event_type", event.EventType()),
					zap.String("event_id", event.EventID()),
					zap.String("aggregate_id", event.AggregateID()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Subscribe registers a handler. Without explicit event types the handler's
// own EventTypes are used; an empty list subscribes to every event.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}

	b.mu.Lock()
	if len(eventTypes) == 0 {
		b.wildcard = append(b.wildcard, handler)
	}
	for _, t := range eventTypes {
		b.byType[t] = append(b.byType[t], handler)
	}
	b.mu.Unlock()

	b.logger.Debug("handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler from every event type
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	drop := func(h shared.EventHandler) bool { return h == handler }
	b.wildcard = slices.DeleteFunc(b.wildcard, drop)
	for t, hs := range b.byType {
		if hs = slices.DeleteFunc(hs, drop); len(hs) == 0 {
			delete(b.byType, t)
		} else {
			b.byType[t] = hs
		}
	}
}

func (b *InMemoryEventBus) handlersFor(eventType string) []shared.EventHandler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]shared.EventHandler, 0, len(b.byType[eventType])+len(b.wildcard))
	out = append(out, b.byType[eventType]...)
	return append(out, b.wildcard...)
}

func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler.Handle(ctx, event)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
