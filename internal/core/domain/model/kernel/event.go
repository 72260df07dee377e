package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate and relayed through the outbox.
type DomainEvent struct {
	ID            UUID
	Type          string
	AggregateType string
	AggregateID   UUID
	OccurredAt    time.Time
	Payload       map[string]any
}

func NewDomainEvent(aggregateType string, aggregateID UUID, eventType string, at time.Time, payload map[string]any) DomainEvent {
	return DomainEvent{
		ID:            NewUUID(),
		Type:          eventType,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		OccurredAt:    at,
		Payload:       payload,
	}
}

// EventSource is implemented by aggregates that buffer domain events until persisted.
type EventSource interface {
	PullEvents() []DomainEvent
}

// Events is embedded by aggregates to buffer domain events.
type Events struct {
	pending []DomainEvent
}

func (e *Events) Record(event DomainEvent) {
	e.pending = append(e.pending, event)
}

// PullEvents hands over the buffered events and clears the buffer.
func (e *Events) PullEvents() []DomainEvent {
	out := e.pending
	e.pending = nil
	return out
}

// Pending reports buffered events without clearing them.
func (e *Events) Pending() []DomainEvent {
	return e.pending
}
