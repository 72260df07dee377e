package commands

import (
	"errors"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

const DefaultRelayBatchSize = 100

var ErrRelayOutboxCommandIsNotConstructed = errors.New(
	"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
)

// RelayOutboxCommand publishes the oldest unpublished outbox messages, at most
// batchSize of them.
//
// Example:
//
//	cmd, err := NewRelayOutboxCommand(DefaultRelayBatchSize)
//	handler := NewRelayOutboxCommandHandler(uowFactory, publisher, clock.Real{})
//
//	// Run periodically from the relay job
//	published, err := handler.Handle(ctx, cmd)
type RelayOutboxCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewRelayOutboxCommand(batchSize int) (RelayOutboxCommand, error) {
	if batchSize < 1 || batchSize > 1000 {
		return RelayOutboxCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, 1000)
	}
	return RelayOutboxCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RelayOutboxCommand) BatchSize() int {
	return c.batchSize
}

func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}

var ErrPurgeOutboxCommandIsNotConstructed = errors.New(
	"PurgeOutboxCommand must be created via NewPurgeOutboxCommand constructor",
)

// PurgeOutboxCommand deletes published messages older than the retention period.
type PurgeOutboxCommand struct {
	retentionDays int

	guard guard.ConstructorGuard
}

func NewPurgeOutboxCommand(retentionDays int) (PurgeOutboxCommand, error) {
	if retentionDays < 1 {
		return PurgeOutboxCommand{}, errs.NewValueIsOutOfRangeError("retentionDays", retentionDays, 1, "unbounded")
	}
	return PurgeOutboxCommand{
		retentionDays: retentionDays,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c PurgeOutboxCommand) RetentionDays() int {
	return c.retentionDays
}

func (c PurgeOutboxCommand) Validate() error {
	return c.guard.Validate(ErrPurgeOutboxCommandIsNotConstructed)
}
