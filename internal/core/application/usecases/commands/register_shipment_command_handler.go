package commands

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
)

// RegisterShipmentCommandHandler snapshots the owner company and stores the shipment
// in the requested status.
type RegisterShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	directory  ports.PartyDirectory
	clock      clock.Clock
}

func NewRegisterShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	directory ports.PartyDirectory,
	clk clock.Clock,
) RegisterShipmentCommandHandler {
	return RegisterShipmentCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		clock:      clk,
	}
}

// Handle fails with errs.ErrInvalidReference when the owner is not a known company.
func (h RegisterShipmentCommandHandler) Handle(ctx context.Context, cmd RegisterShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	owner, err := resolveParty(ctx, h.directory, kernel.PartyCompany, cmd.OwnerID(), "owner")
	if err != nil {
		return err
	}

	s, err := shipment.NewShipment(cmd.ShipmentID(), owner, shipment.Details{
		Pickup:      cmd.Pickup(),
		Delivery:    cmd.Delivery(),
		Cargo:       cmd.Cargo(),
		VehicleType: cmd.VehicleType(),
		Tonnage:     cmd.Tonnage(),
		Charge:      cmd.Charge(),
	}, cmd.Actor(), h.clock.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().Add(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
