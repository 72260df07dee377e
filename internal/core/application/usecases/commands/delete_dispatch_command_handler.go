package commands

import (
	"context"

	"freight/internal/core/domain/services"
	"freight/internal/pkg/clock"
)

// DeleteDispatchCommandHandler deletes the dispatch row and resets the shipment to
// awaiting-dispatch in one transaction.
type DeleteDispatchCommandHandler struct {
	uowFactory  DispatchUoWFactory
	coordinator services.DispatchCoordinator
	clock       clock.Clock
}

func NewDeleteDispatchCommandHandler(uowFactory DispatchUoWFactory, clk clock.Clock) DeleteDispatchCommandHandler {
	return DeleteDispatchCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewDispatchCoordinator(),
		clock:       clk,
	}
}

// Handle fails with errs.ErrObjectNotFound for an unknown dispatch and with
// errs.ErrInvalidState when the shipment is completed or held by a settlement bundle.
func (h DeleteDispatchCommandHandler) Handle(ctx context.Context, cmd DeleteDispatchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	dispatchRepo := uow.DispatchRepository()
	shipmentRepo := uow.ShipmentRepository()

	s, d, err := lockDispatch(ctx, uow, cmd.DispatchID())
	if err != nil {
		return err
	}

	bundled, err := uow.BundleRepository().IsShipmentBundled(ctx, s.ID())
	if err != nil {
		return err
	}

	if err = h.coordinator.Release(s, d, bundled, cmd.Actor(), h.clock.Now()); err != nil {
		return err
	}

	if err = dispatchRepo.Delete(ctx, d); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
