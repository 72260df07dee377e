package commands

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateDispatchCommandIsNotConstructed = errors.New(
	"CreateDispatchCommand must be created via NewCreateDispatchCommand constructor",
)

// CreateDispatchCommand assigns a carrier company, driver and vehicle to a shipment.
// The manager is optional.
//
// Example:
//
//	vehicle, _ := kernel.NewVehicle("80바1234", "wing body", decimal.NewFromInt(5))
//	cmd, err := NewCreateDispatchCommand(kernel.NewUUID(), shipmentID, carrierID, nil,
//	    driverID, vehicle, decimal.NewFromInt(80000), "", actor)
type CreateDispatchCommand struct {
	dispatchID     kernel.UUID
	shipmentID     kernel.UUID
	counterpartyID kernel.UUID
	managerID      *kernel.UUID
	driverID       kernel.UUID
	vehicle        kernel.Vehicle
	agreedPrice    decimal.Decimal
	memo           string
	actor          kernel.Actor

	guard guard.ConstructorGuard
}

func NewCreateDispatchCommand(
	dispatchID kernel.UUID,
	shipmentID kernel.UUID,
	counterpartyID kernel.UUID,
	managerID *kernel.UUID,
	driverID kernel.UUID,
	vehicle kernel.Vehicle,
	agreedPrice decimal.Decimal,
	memo string,
	actor kernel.Actor,
) (CreateDispatchCommand, error) {
	cmd := CreateDispatchCommand{
		memo:  memo,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(dispatchID, shipmentID),
		cmd.setParties(counterpartyID, managerID, driverID),
		cmd.setVehicle(vehicle),
		cmd.setAgreedPrice(agreedPrice),
		cmd.setActor(actor),
	); err != nil {
		return CreateDispatchCommand{}, err
	}

	return cmd, nil
}

func (c CreateDispatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateDispatchCommandIsNotConstructed)
}

func (c CreateDispatchCommand) DispatchID() kernel.UUID {
	return c.dispatchID
}

func (c CreateDispatchCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c CreateDispatchCommand) CounterpartyID() kernel.UUID {
	return c.counterpartyID
}

// ManagerID is nil when no manager is assigned.
func (c CreateDispatchCommand) ManagerID() *kernel.UUID {
	return c.managerID
}

func (c CreateDispatchCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c CreateDispatchCommand) Vehicle() kernel.Vehicle {
	return c.vehicle
}

func (c CreateDispatchCommand) AgreedPrice() decimal.Decimal {
	return c.agreedPrice
}

func (c CreateDispatchCommand) Memo() string {
	return c.memo
}

func (c CreateDispatchCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *CreateDispatchCommand) setIDs(dispatchID, shipmentID kernel.UUID) error {
	var errDispatch, errShipment error
	if err := dispatchID.Validate(); err != nil {
		errDispatch = errs.NewValueIsRequiredErrorWithCause("dispatchId", err)
	}
	if err := shipmentID.Validate(); err != nil {
		errShipment = errs.NewValueIsRequiredErrorWithCause("shipmentId", err)
	}
	if err := errors.Join(errDispatch, errShipment); err != nil {
		return err
	}
	c.dispatchID = dispatchID
	c.shipmentID = shipmentID
	return nil
}

func (c *CreateDispatchCommand) setParties(counterpartyID kernel.UUID, managerID *kernel.UUID, driverID kernel.UUID) error {
	var errCounterparty, errManager, errDriver error
	if err := counterpartyID.Validate(); err != nil {
		errCounterparty = errs.NewValueIsRequiredErrorWithCause("counterpartyId", err)
	}
	if managerID != nil {
		if err := managerID.Validate(); err != nil {
			errManager = errs.NewValueIsInvalidErrorWithCause("managerId", err)
		}
	}
	if err := driverID.Validate(); err != nil {
		errDriver = errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}
	if err := errors.Join(errCounterparty, errManager, errDriver); err != nil {
		return err
	}
	c.counterpartyID = counterpartyID
	if managerID != nil {
		id := *managerID
		c.managerID = &id
	}
	c.driverID = driverID
	return nil
}

func (c *CreateDispatchCommand) setVehicle(vehicle kernel.Vehicle) error {
	if vehicle.IsZero() {
		return errs.NewValueIsRequiredError("vehicle")
	}
	c.vehicle = vehicle
	return nil
}

func (c *CreateDispatchCommand) setAgreedPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("agreedPrice", fmt.Errorf("%s is negative", price))
	}
	c.agreedPrice = price
	return nil
}

func (c *CreateDispatchCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
