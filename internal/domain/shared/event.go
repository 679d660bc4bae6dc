package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact about one aggregate, published after the change is stored.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() int64
	AggregateType() string
}

// BaseDomainEvent carries the identity and origin every event shares.
// Concrete events embed it and add their payload fields.
type BaseDomainEvent struct {
	ID     uuid.UUID   `json:"id"`
	Kind   string      `json:"type"`
	At     time.Time   `json:"timestamp"`
	Source EventSource `json:"aggregate"`
}

// EventSource names the aggregate an event was raised on
type EventSource struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

func (e *BaseDomainEvent) EventID() uuid.UUID    { return e.ID }
func (e *BaseDomainEvent) EventType() string     { return e.Kind }
func (e *BaseDomainEvent) OccurredAt() time.Time { return e.At }
func (e *BaseDomainEvent) AggregateID() int64    { return e.Source.ID }
func (e *BaseDomainEvent) AggregateType() string { return e.Source.Type }

// BindAggregateID fills in an aggregate ID that was still zero when the event was raised
func (e *BaseDomainEvent) BindAggregateID(id int64) {
	if e.Source.ID == 0 {
		e.Source.ID = id
	}
}

// NewBaseDomainEvent stamps a fresh event ID and the current time
func NewBaseDomainEvent(eventType, aggregateType string, aggregateID int64) BaseDomainEvent {
	return BaseDomainEvent{
		ID:     uuid.New(),
		Kind:   eventType,
		At:     time.Now(),
		Source: EventSource{ID: aggregateID, Type: aggregateType},
	}
}
