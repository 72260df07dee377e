package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
)

// OutboxMessage is a committed domain event waiting to be published.
type OutboxMessage struct {
	ID            kernel.UUID
	EventType     string
	AggregateType string
	AggregateID   kernel.UUID
	Payload       []byte
	OccurredAt    time.Time
}

// OutboxRepository stores domain events next to the state change that produced them.
type OutboxRepository interface {
	Append(ctx context.Context, events []kernel.DomainEvent) error
	// ListUnpublished returns the oldest unpublished messages first.
	ListUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
	// DeletePublishedBefore removes published messages older than before.
	DeletePublishedBefore(ctx context.Context, before time.Time) (int64, error)
}

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}
