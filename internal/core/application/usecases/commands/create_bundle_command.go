package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrCreateBundleCommandIsNotConstructed = errors.New(
	"CreateBundleCommand must be created via NewCreateBundleCommand constructor",
)

// CreateBundleCommand groups eligible items into a new draft bundle. Item ids are
// shipment ids; their order is kept.
//
// Example:
//
//	cmd, err := NewCreateBundleCommand(kernel.NewUUID(), []kernel.UUID{s1, s2}, BundleForm{
//	    Counterparty:  PartyFields{ID: shipperID, Name: "Shipper Co"},
//	    PaymentMethod: "transfer",
//	}, actor)
type CreateBundleCommand struct {
	bundleID kernel.UUID
	itemIDs  []kernel.UUID
	form     settlement.Form
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

// NewCreateBundleCommand fails with errs.ErrEmptySelection when itemIDs is empty.
func NewCreateBundleCommand(
	bundleID kernel.UUID,
	itemIDs []kernel.UUID,
	form BundleForm,
	actor kernel.Actor,
) (CreateBundleCommand, error) {
	cmd := CreateBundleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBundleID(bundleID),
		cmd.setItemIDs(itemIDs),
		cmd.setForm(form),
		cmd.setActor(actor),
	); err != nil {
		return CreateBundleCommand{}, err
	}

	return cmd, nil
}

func (c CreateBundleCommand) Validate() error {
	return c.guard.Validate(ErrCreateBundleCommandIsNotConstructed)
}

func (c CreateBundleCommand) BundleID() kernel.UUID {
	return c.bundleID
}

func (c CreateBundleCommand) ItemIDs() []kernel.UUID {
	return c.itemIDs
}

func (c CreateBundleCommand) Form() settlement.Form {
	return c.form
}

func (c CreateBundleCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *CreateBundleCommand) setBundleID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.bundleID = id
	return nil
}

func (c *CreateBundleCommand) setItemIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewEmptySelectionError("itemIds")
	}
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("itemIds", err)
		}
	}
	c.itemIDs = append([]kernel.UUID(nil), ids...)
	return nil
}

func (c *CreateBundleCommand) setForm(form BundleForm) error {
	f, err := form.settlementForm()
	if err != nil {
		return err
	}
	c.form = f
	return nil
}

func (c *CreateBundleCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
