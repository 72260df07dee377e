package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrRequestBundleMatchingCommandIsNotConstructed = errors.New(
		"RequestBundleMatchingCommand must be created via NewRequestBundleMatchingCommand constructor",
	)
	ErrCompleteBundleCommandIsNotConstructed = errors.New(
		"CompleteBundleCommand must be created via NewCompleteBundleCommand constructor",
	)
	ErrDeleteBundleCommandIsNotConstructed = errors.New(
		"DeleteBundleCommand must be created via NewDeleteBundleCommand constructor",
	)
)

// bundleRef is the payload shared by commands that only name a bundle.
type bundleRef struct {
	bundleID kernel.UUID
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

func newBundleRef(bundleID kernel.UUID, actor kernel.Actor) (bundleRef, error) {
	if err := errors.Join(bundleID.Validate(), actor.Validate()); err != nil {
		return bundleRef{}, err
	}
	return bundleRef{bundleID: bundleID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (r bundleRef) BundleID() kernel.UUID {
	return r.bundleID
}

func (r bundleRef) Actor() kernel.Actor {
	return r.actor
}

// RequestBundleMatchingCommand moves a draft bundle into matching.
type RequestBundleMatchingCommand struct {
	bundleRef
}

func NewRequestBundleMatchingCommand(bundleID kernel.UUID, actor kernel.Actor) (RequestBundleMatchingCommand, error) {
	ref, err := newBundleRef(bundleID, actor)
	if err != nil {
		return RequestBundleMatchingCommand{}, err
	}
	return RequestBundleMatchingCommand{bundleRef: ref}, nil
}

func (c RequestBundleMatchingCommand) Validate() error {
	return c.guard.Validate(ErrRequestBundleMatchingCommandIsNotConstructed)
}

// CompleteBundleCommand marks a bundle in matching as paid.
type CompleteBundleCommand struct {
	bundleRef
}

func NewCompleteBundleCommand(bundleID kernel.UUID, actor kernel.Actor) (CompleteBundleCommand, error) {
	ref, err := newBundleRef(bundleID, actor)
	if err != nil {
		return CompleteBundleCommand{}, err
	}
	return CompleteBundleCommand{bundleRef: ref}, nil
}

func (c CompleteBundleCommand) Validate() error {
	return c.guard.Validate(ErrCompleteBundleCommandIsNotConstructed)
}

// DeleteBundleCommand removes a bundle with its adjustments. Its members return to
// the eligible pool.
type DeleteBundleCommand struct {
	bundleRef
}

func NewDeleteBundleCommand(bundleID kernel.UUID, actor kernel.Actor) (DeleteBundleCommand, error) {
	ref, err := newBundleRef(bundleID, actor)
	if err != nil {
		return DeleteBundleCommand{}, err
	}
	return DeleteBundleCommand{bundleRef: ref}, nil
}

func (c DeleteBundleCommand) Validate() error {
	return c.guard.Validate(ErrDeleteBundleCommandIsNotConstructed)
}
