package commands

import (
	"context"
	"errors"
	"fmt"

	"freight/internal/core/domain/model/dispatch"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/errs"
)

// CreateDispatchCommandHandler inserts a dispatch and advances its shipment to
// dispatched in one transaction.
//
// Example:
//
//	handler := NewCreateDispatchCommandHandler(uowFactory, directory, clock.Real{})
//	err := handler.Handle(ctx, cmd)
//	switch errs.KindOf(err) {
//	case errs.KindConflictingDispatch:
//	    // the shipment already has a dispatch
//	case errs.KindInvalidReference:
//	    // counterparty, manager or driver is unknown
//	}
type CreateDispatchCommandHandler struct {
	uowFactory  DispatchUoWFactory
	directory   ports.PartyDirectory
	coordinator services.DispatchCoordinator
	clock       clock.Clock
}

func NewCreateDispatchCommandHandler(
	uowFactory DispatchUoWFactory,
	directory ports.PartyDirectory,
	clk clock.Clock,
) CreateDispatchCommandHandler {
	return CreateDispatchCommandHandler{
		uowFactory:  uowFactory,
		directory:   directory,
		coordinator: services.NewDispatchCoordinator(),
		clock:       clk,
	}
}

// Handle checks, in order: the shipment exists (NotFound), it has no dispatch yet
// (ConflictingDispatch), it is dispatchable (InvalidState) and every party resolves
// (InvalidReference). A concurrent insert for the same shipment is reported as
// ConflictingDispatch by the repository.
func (h CreateDispatchCommandHandler) Handle(ctx context.Context, cmd CreateDispatchCommand) error {
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

	shipmentRepo := uow.ShipmentRepository()
	dispatchRepo := uow.DispatchRepository()

	s, err := shipmentRepo.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	existing, err := dispatchRepo.GetByShipment(ctx, s.ID())
	switch {
	case err == nil:
		return errs.NewConflictingDispatchErrorWithCause(s.ID(), fmt.Errorf("dispatch %s is active", existing.ID()))
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	if err = s.EnsureDispatchable(); err != nil {
		return err
	}

	assignment, err := h.assignment(ctx, cmd)
	if err != nil {
		return err
	}

	d, err := h.coordinator.Assign(s, cmd.DispatchID(), assignment, cmd.Actor(), h.clock.Now())
	if err != nil {
		return err
	}

	if err = dispatchRepo.Add(ctx, d); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CreateDispatchCommandHandler) assignment(ctx context.Context, cmd CreateDispatchCommand) (dispatch.Assignment, error) {
	counterparty, errCounterparty := resolveParty(ctx, h.directory, kernel.PartyCompany, cmd.CounterpartyID(), "counterpartyId")
	driver, errDriver := resolveParty(ctx, h.directory, kernel.PartyDriver, cmd.DriverID(), "driverId")

	var manager *kernel.Snapshot
	var errManager error
	if id := cmd.ManagerID(); id != nil {
		var snapshot kernel.Snapshot
		if snapshot, errManager = resolveParty(ctx, h.directory, kernel.PartyUser, *id, "managerId"); errManager == nil {
			manager = &snapshot
		}
	}

	if err := errors.Join(errCounterparty, errManager, errDriver); err != nil {
		return dispatch.Assignment{}, err
	}

	return dispatch.Assignment{
		Counterparty: counterparty,
		Manager:      manager,
		Driver:       driver,
		Vehicle:      cmd.Vehicle(),
		AgreedPrice:  cmd.AgreedPrice(),
		Memo:         cmd.Memo(),
	}, nil
}
