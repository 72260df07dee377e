package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"
	"freight/internal/pkg/guard"
	"freight/internal/pkg/validation"

	"github.com/shopspring/decimal"
)

var (
	ErrAdjustmentCommandIsNotConstructed = errors.New(
		"AdjustmentCommand must be created via NewAdjustmentCommand constructor",
	)
	ErrRemoveAdjustmentCommandIsNotConstructed = errors.New(
		"RemoveAdjustmentCommand must be created via NewRemoveAdjustmentCommand constructor",
	)
)

// AdjustmentForm is a signed amount with its tag. Negative amounts are discounts.
type AdjustmentForm struct {
	Amount      decimal.Decimal `json:"amount" validate:"-"`
	Category    string          `json:"category" validate:"required,max=50"`
	Description string          `json:"description" validate:"max=500"`
}

// AdjustmentCommand adds or edits one adjustment. Target is the bundle id for
// bundle-wide adjustments and the item (shipment) id for item adjustments.
//
// Example:
//
//	cmd, err := NewAdjustmentCommand(bundleID, kernel.NewUUID(), AdjustmentForm{
//	    Amount:   decimal.NewFromInt(-10000),
//	    Category: string(settlement.CategoryDiscount),
//	}, actor)
type AdjustmentCommand struct {
	targetID     kernel.UUID
	adjustmentID kernel.UUID
	input        settlement.AdjustmentInput
	actor        kernel.Actor

	guard guard.ConstructorGuard
}

func NewAdjustmentCommand(
	targetID kernel.UUID,
	adjustmentID kernel.UUID,
	form AdjustmentForm,
	actor kernel.Actor,
) (AdjustmentCommand, error) {
	if err := errors.Join(
		targetID.Validate(),
		adjustmentID.Validate(),
		validation.Struct(form),
		actor.Validate(),
	); err != nil {
		return AdjustmentCommand{}, err
	}
	return AdjustmentCommand{
		targetID:     targetID,
		adjustmentID: adjustmentID,
		input: settlement.AdjustmentInput{
			Amount:      form.Amount,
			Category:    settlement.Category(form.Category),
			Description: form.Description,
		},
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c AdjustmentCommand) Validate() error {
	return c.guard.Validate(ErrAdjustmentCommandIsNotConstructed)
}

func (c AdjustmentCommand) TargetID() kernel.UUID {
	return c.targetID
}

func (c AdjustmentCommand) AdjustmentID() kernel.UUID {
	return c.adjustmentID
}

func (c AdjustmentCommand) Input() settlement.AdjustmentInput {
	return c.input
}

func (c AdjustmentCommand) Actor() kernel.Actor {
	return c.actor
}

// RemoveAdjustmentCommand deletes one adjustment of the target bundle or item.
type RemoveAdjustmentCommand struct {
	targetID     kernel.UUID
	adjustmentID kernel.UUID
	actor        kernel.Actor

	guard guard.ConstructorGuard
}

func NewRemoveAdjustmentCommand(targetID, adjustmentID kernel.UUID, actor kernel.Actor) (RemoveAdjustmentCommand, error) {
	if err := errors.Join(targetID.Validate(), adjustmentID.Validate(), actor.Validate()); err != nil {
		return RemoveAdjustmentCommand{}, err
	}
	return RemoveAdjustmentCommand{
		targetID:     targetID,
		adjustmentID: adjustmentID,
		actor:        actor,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveAdjustmentCommand) Validate() error {
	return c.guard.Validate(ErrRemoveAdjustmentCommandIsNotConstructed)
}

func (c RemoveAdjustmentCommand) TargetID() kernel.UUID {
	return c.targetID
}

func (c RemoveAdjustmentCommand) AdjustmentID() kernel.UUID {
	return c.adjustmentID
}

func (c RemoveAdjustmentCommand) Actor() kernel.Actor {
	return c.actor
}
