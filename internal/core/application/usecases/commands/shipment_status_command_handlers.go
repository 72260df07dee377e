package commands

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/clock"
)

type AcceptShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	clock      clock.Clock
}

func NewAcceptShipmentCommandHandler(uowFactory ShipmentUoWFactory, clk clock.Clock) AcceptShipmentCommandHandler {
	return AcceptShipmentCommandHandler{uowFactory: uowFactory, clock: clk}
}

// Handle fails with errs.ErrInvalidState unless the shipment is requested.
func (h AcceptShipmentCommandHandler) Handle(ctx context.Context, cmd AcceptShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return changeShipment(ctx, h.uowFactory, cmd.ShipmentID(), func(s *shipment.Shipment) error {
		return s.Accept(cmd.Actor(), h.clock.Now())
	})
}

type CancelShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	clock      clock.Clock
}

func NewCancelShipmentCommandHandler(uowFactory ShipmentUoWFactory, clk clock.Clock) CancelShipmentCommandHandler {
	return CancelShipmentCommandHandler{uowFactory: uowFactory, clock: clk}
}

// Handle fails with errs.ErrInvalidState when the shipment is completed or already canceled.
func (h CancelShipmentCommandHandler) Handle(ctx context.Context, cmd CancelShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return changeShipment(ctx, h.uowFactory, cmd.ShipmentID(), func(s *shipment.Shipment) error {
		return s.Cancel(cmd.Actor(), h.clock.Now())
	})
}

func changeShipment(
	ctx context.Context,
	uowFactory ShipmentUoWFactory,
	id kernel.UUID,
	change func(s *shipment.Shipment) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()
	s, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return err
	}

	if err = change(s); err != nil {
		return err
	}

	if err = repo.Update(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
