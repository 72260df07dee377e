package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrAcceptShipmentCommandIsNotConstructed = errors.New(
		"AcceptShipmentCommand must be created via NewAcceptShipmentCommand constructor",
	)
	ErrCancelShipmentCommandIsNotConstructed = errors.New(
		"CancelShipmentCommand must be created via NewCancelShipmentCommand constructor",
	)
)

// AcceptShipmentCommand moves a requested shipment into the dispatch queue.
type AcceptShipmentCommand struct {
	shipmentID kernel.UUID
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewAcceptShipmentCommand(shipmentID kernel.UUID, actor kernel.Actor) (AcceptShipmentCommand, error) {
	if err := errors.Join(shipmentID.Validate(), actor.Validate()); err != nil {
		return AcceptShipmentCommand{}, err
	}
	return AcceptShipmentCommand{
		shipmentID: shipmentID,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptShipmentCommand) Validate() error {
	return c.guard.Validate(ErrAcceptShipmentCommandIsNotConstructed)
}

func (c AcceptShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c AcceptShipmentCommand) Actor() kernel.Actor {
	return c.actor
}

// CancelShipmentCommand sets the cancellation flag of a shipment.
type CancelShipmentCommand struct {
	shipmentID kernel.UUID
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewCancelShipmentCommand(shipmentID kernel.UUID, actor kernel.Actor) (CancelShipmentCommand, error) {
	if err := errors.Join(shipmentID.Validate(), actor.Validate()); err != nil {
		return CancelShipmentCommand{}, err
	}
	return CancelShipmentCommand{
		shipmentID: shipmentID,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CancelShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelShipmentCommandIsNotConstructed)
}

func (c CancelShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c CancelShipmentCommand) Actor() kernel.Actor {
	return c.actor
}
