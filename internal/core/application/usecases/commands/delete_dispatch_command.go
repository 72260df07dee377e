package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrDeleteDispatchCommandIsNotConstructed = errors.New(
	"DeleteDispatchCommand must be created via NewDeleteDispatchCommand constructor",
)

// DeleteDispatchCommand removes a dispatch and puts its shipment back in the dispatch queue.
type DeleteDispatchCommand struct {
	dispatchID kernel.UUID
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewDeleteDispatchCommand(dispatchID kernel.UUID, actor kernel.Actor) (DeleteDispatchCommand, error) {
	if err := errors.Join(dispatchID.Validate(), actor.Validate()); err != nil {
		return DeleteDispatchCommand{}, err
	}
	return DeleteDispatchCommand{
		dispatchID: dispatchID,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteDispatchCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDispatchCommandIsNotConstructed)
}

func (c DeleteDispatchCommand) DispatchID() kernel.UUID {
	return c.dispatchID
}

func (c DeleteDispatchCommand) Actor() kernel.Actor {
	return c.actor
}
