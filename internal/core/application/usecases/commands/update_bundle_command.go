package commands

import (
	"errors"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"
	"freight/internal/pkg/guard"
	"freight/internal/pkg/patch"
)

var ErrUpdateBundleCommandIsNotConstructed = errors.New(
	"UpdateBundleCommand must be created via NewUpdateBundleCommand constructor",
)

// BundleChanges is a partial bundle update. Field semantics follow patch.Field:
// absent keeps, cleared empties, set replaces. A cleared period is derived again.
type BundleChanges struct {
	ItemIDs       patch.Field[[]kernel.UUID]
	Counterparty  patch.Field[PartyFields]
	Manager       patch.Field[PartyFields]
	Period        patch.Field[kernel.Period]
	TaxExempt     patch.Field[bool]
	PaymentMethod patch.Field[string]
	Bank          patch.Field[settlement.BankAccount]
	DueDate       patch.Field[time.Time]
	Memo          patch.Field[string]
}

// UpdateBundleCommand changes the members or descriptive fields of a bundle. The
// reason is kept on the revision only.
type UpdateBundleCommand struct {
	bundleID kernel.UUID
	changes  BundleChanges
	reason   string
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

func NewUpdateBundleCommand(
	bundleID kernel.UUID,
	changes BundleChanges,
	reason string,
	actor kernel.Actor,
) (UpdateBundleCommand, error) {
	if err := errors.Join(bundleID.Validate(), actor.Validate()); err != nil {
		return UpdateBundleCommand{}, err
	}
	return UpdateBundleCommand{
		bundleID: bundleID,
		changes:  changes,
		reason:   strings.TrimSpace(reason),
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateBundleCommand) Validate() error {
	return c.guard.Validate(ErrUpdateBundleCommandIsNotConstructed)
}

func (c UpdateBundleCommand) BundleID() kernel.UUID {
	return c.bundleID
}

func (c UpdateBundleCommand) Changes() BundleChanges {
	return c.changes
}

func (c UpdateBundleCommand) Reason() string {
	return c.reason
}

func (c UpdateBundleCommand) Actor() kernel.Actor {
	return c.actor
}
