package commands

import (
	"errors"

	"freight/internal/core/domain/model/dispatch"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
	"freight/internal/pkg/patch"

	"github.com/shopspring/decimal"
)

var ErrUpdateDispatchCommandIsNotConstructed = errors.New(
	"UpdateDispatchCommand must be created via NewUpdateDispatchCommand constructor",
)

// Field names reported by UpdateDispatchResult.
const (
	DispatchFieldCounterparty = "counterpartyId"
	DispatchFieldManager      = "managerId"
	DispatchFieldDriver       = "driverId"
	DispatchFieldVehicle      = "vehicle"
	DispatchFieldAgreedPrice  = "agreedPrice"
	DispatchFieldMemo         = "memo"
	DispatchFieldStatus       = "status"
)

// DispatchChanges is a partial dispatch update. Party ids are resolved into fresh
// snapshots; a cleared party drops its snapshot.
type DispatchChanges struct {
	CounterpartyID patch.Field[kernel.UUID]
	ManagerID      patch.Field[kernel.UUID]
	DriverID       patch.Field[kernel.UUID]
	Vehicle        patch.Field[kernel.Vehicle]
	AgreedPrice    patch.Field[decimal.Decimal]
	Memo           patch.Field[string]
	Status         patch.Field[dispatch.Status]
}

// UpdateDispatchCommand applies DispatchChanges to one dispatch.
//
// Example:
//
//	cmd, err := NewUpdateDispatchCommand(dispatchID, DispatchChanges{
//	    DriverID: patch.Clear[kernel.UUID](),
//	    Status:   patch.Set(dispatch.Loading),
//	}, actor)
type UpdateDispatchCommand struct {
	dispatchID kernel.UUID
	changes    DispatchChanges
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewUpdateDispatchCommand(dispatchID kernel.UUID, changes DispatchChanges, actor kernel.Actor) (UpdateDispatchCommand, error) {
	if err := errors.Join(dispatchID.Validate(), actor.Validate()); err != nil {
		return UpdateDispatchCommand{}, err
	}
	return UpdateDispatchCommand{
		dispatchID: dispatchID,
		changes:    changes,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDispatchCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDispatchCommandIsNotConstructed)
}

func (c UpdateDispatchCommand) DispatchID() kernel.UUID {
	return c.dispatchID
}

func (c UpdateDispatchCommand) Changes() DispatchChanges {
	return c.changes
}

func (c UpdateDispatchCommand) Actor() kernel.Actor {
	return c.actor
}
