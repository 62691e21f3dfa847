package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is something that happened to a product, order, user or
// dealer application. Services publish events after the change is stored.
type DomainEvent interface {
	EventID() string
	EventType() string
	OccurredAt() time.Time
	AggregateID() string
	AggregateType() string
}

// BaseDomainEvent is embedded by the concrete events of each domain package
type BaseDomainEvent struct {
	ID        string    `json:"event_id"`
	Type      string    `json:"event_type"`
	At        time.Time `json:"occurred_at"`
	Aggregate string    `json:"aggregate_id"`
	Kind      string    `json:"aggregate_type"`
}

// NewBaseDomainEvent stamps a new event with a fresh ID and the current time
func NewBaseDomainEvent(eventType, kind, aggregateID string) BaseDomainEvent {
	return BaseDomainEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		At:        time.Now(),
		Aggregate: aggregateID,
		Kind:      kind,
	}
}

func (e *BaseDomainEvent) EventID() string       { return e.ID }
func (e *BaseDomainEvent) EventType() string     { return e.Type }
func (e *BaseDomainEvent) OccurredAt() time.Time { return e.At }
func (e *BaseDomainEvent) AggregateID() string   { return e.Aggregate }
func (e *BaseDomainEvent) AggregateType() string { return e.Kind }

// BaseAggregateRoot is an entity that records events while it is changed.
// The owning service takes them with GetDomainEvents and ClearDomainEvents
// once the row is saved.
type BaseAggregateRoot struct {
	BaseEntity
	pending []DomainEvent
}

// NewBaseAggregateRoot returns a root with a fresh entity ID
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity()}
}

func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.pending = append(a.pending, event)
}

func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.pending
}

func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.pending = nil
}

// EventHandler reacts to published events. An empty EventTypes subscribes
// the handler to every event.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventTypes() []string
}

// EventPublisher is what services depend on to announce changes
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventBus delivers published events to subscribed handlers. Without
// explicit types a handler is subscribed to its own EventTypes.
type EventBus interface {
	EventPublisher
	Subscribe(handler EventHandler, eventTypes ...string)
}
