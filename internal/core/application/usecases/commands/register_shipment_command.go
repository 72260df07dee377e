package commands

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrRegisterShipmentCommandIsNotConstructed = errors.New(
	"RegisterShipmentCommand must be created via NewRegisterShipmentCommand constructor",
)

// RegisterShipmentCommand records a new transport request for an owner company.
//
// Example:
//
//	pickup, _ := kernel.NewPlace("Busan new port", "Park", "010-1234-5678", pickupAt)
//	delivery, _ := kernel.NewPlace("Icheon center", "Choi", "010-8765-4321", deliverAt)
//	cmd, err := NewRegisterShipmentCommand(kernel.NewUUID(), ownerID, pickup, delivery,
//	    "pallets", "wing body", decimal.NewFromInt(5), decimal.NewFromInt(100000), actor)
type RegisterShipmentCommand struct {
	shipmentID  kernel.UUID
	ownerID     kernel.UUID
	pickup      kernel.Place
	delivery    kernel.Place
	cargo       string
	vehicleType string
	tonnage     decimal.Decimal
	charge      decimal.Decimal
	actor       kernel.Actor

	guard guard.ConstructorGuard
}

func NewRegisterShipmentCommand(
	shipmentID kernel.UUID,
	ownerID kernel.UUID,
	pickup kernel.Place,
	delivery kernel.Place,
	cargo string,
	vehicleType string,
	tonnage decimal.Decimal,
	charge decimal.Decimal,
	actor kernel.Actor,
) (RegisterShipmentCommand, error) {
	cmd := RegisterShipmentCommand{
		cargo:       strings.TrimSpace(cargo),
		vehicleType: strings.TrimSpace(vehicleType),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setOwnerID(ownerID),
		cmd.setPlaces(pickup, delivery),
		cmd.setAmounts(tonnage, charge),
		cmd.setActor(actor),
	); err != nil {
		return RegisterShipmentCommand{}, err
	}

	return cmd, nil
}

func (c RegisterShipmentCommand) Validate() error {
	return c.guard.Validate(ErrRegisterShipmentCommandIsNotConstructed)
}

func (c RegisterShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c RegisterShipmentCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

func (c RegisterShipmentCommand) Pickup() kernel.Place {
	return c.pickup
}

func (c RegisterShipmentCommand) Delivery() kernel.Place {
	return c.delivery
}

func (c RegisterShipmentCommand) Cargo() string {
	return c.cargo
}

func (c RegisterShipmentCommand) VehicleType() string {
	return c.vehicleType
}

func (c RegisterShipmentCommand) Tonnage() decimal.Decimal {
	return c.tonnage
}

func (c RegisterShipmentCommand) Charge() decimal.Decimal {
	return c.charge
}

func (c RegisterShipmentCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *RegisterShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shipmentID = id
	return nil
}

func (c *RegisterShipmentCommand) setOwnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}
	c.ownerID = id
	return nil
}

func (c *RegisterShipmentCommand) setPlaces(pickup, delivery kernel.Place) error {
	var errPickup, errDelivery error
	if pickup.IsZero() {
		errPickup = errs.NewValueIsRequiredError("pickup")
	}
	if delivery.IsZero() {
		errDelivery = errs.NewValueIsRequiredError("delivery")
	}
	if err := errors.Join(errPickup, errDelivery); err != nil {
		return err
	}
	if delivery.ScheduledAt().Before(pickup.ScheduledAt()) {
		return errs.NewValueIsInvalidErrorWithCause("delivery", errors.New("delivery is scheduled before pickup"))
	}
	c.pickup = pickup
	c.delivery = delivery
	return nil
}

func (c *RegisterShipmentCommand) setAmounts(tonnage, charge decimal.Decimal) error {
	var errTonnage, errCharge error
	if tonnage.IsNegative() {
		errTonnage = errs.NewValueIsInvalidError("tonnage")
	}
	if charge.IsNegative() {
		errCharge = errs.NewValueIsInvalidError("charge")
	}
	if err := errors.Join(errTonnage, errCharge); err != nil {
		return err
	}
	c.tonnage = tonnage
	c.charge = charge
	return nil
}

func (c *RegisterShipmentCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
