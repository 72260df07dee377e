package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
)

// RelayOutboxCommandHandler moves committed domain events to the broker.
//
// The batch stays row-locked while it is published, so concurrent relays pick
// disjoint batches. Delivery is at least once: when marking fails after a
// successful publish the batch is sent again on the next run.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	clock      clock.Clock
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	clk clock.Clock,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
	}
}

// Handle returns the number of messages published.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	messages, err := outbox.ListUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, messages...); err != nil {
		return 0, err
	}

	ids := make([]kernel.UUID, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	if err = outbox.MarkPublished(ctx, ids, h.clock.Now()); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return len(messages), nil
}

// PurgeOutboxCommandHandler keeps the outbox table small.
type PurgeOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	clock      clock.Clock
}

func NewPurgeOutboxCommandHandler(uowFactory OutboxUoWFactory, clk clock.Clock) PurgeOutboxCommandHandler {
	return PurgeOutboxCommandHandler{uowFactory: uowFactory, clock: clk}
}

// Handle returns the number of deleted messages. Unpublished messages are never deleted.
func (h PurgeOutboxCommandHandler) Handle(ctx context.Context, cmd PurgeOutboxCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	before := h.clock.Now().Add(-time.Duration(cmd.RetentionDays()) * 24 * time.Hour)
	deleted, err := uow.OutboxRepository().DeletePublishedBefore(ctx, before)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return deleted, nil
}
