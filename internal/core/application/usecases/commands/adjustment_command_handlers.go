package commands

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/errs"
)

// AdjustmentResult carries the stored adjustment and the bundle totals after the change.
type AdjustmentResult struct {
	BundleResult
	Adjustment settlement.Adjustment
}

// AdjustmentScope selects whether the handlers address bundle-wide or item adjustments.
type AdjustmentScope int

const (
	BundleScope AdjustmentScope = iota
	ItemScope
)

// AdjustmentCommandHandler adds, edits and removes adjustments of one direction and
// scope. Every call recomputes the bundle totals before it returns them.
//
// Example:
//
//	items := NewAdjustmentCommandHandler(uowFactory, settlement.Payable, ItemScope, clock.Real{})
//	result, err := items.Add(ctx, cmd) // cmd.TargetID() is the item id
type AdjustmentCommandHandler struct {
	uowFactory BundleUoWFactory
	direction  settlement.Direction
	scope      AdjustmentScope
	clock      clock.Clock
}

func NewAdjustmentCommandHandler(
	uowFactory BundleUoWFactory,
	direction settlement.Direction,
	scope AdjustmentScope,
	clk clock.Clock,
) AdjustmentCommandHandler {
	return AdjustmentCommandHandler{
		uowFactory: uowFactory,
		direction:  direction,
		scope:      scope,
		clock:      clk,
	}
}

func (h AdjustmentCommandHandler) Add(ctx context.Context, cmd AdjustmentCommand) (AdjustmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return AdjustmentResult{}, err
	}
	return h.adjust(ctx, cmd.TargetID(), func(b *settlement.Bundle) (settlement.Adjustment, error) {
		if h.scope == ItemScope {
			return b.AddItemAdjustment(cmd.TargetID(), cmd.AdjustmentID(), cmd.Input(), cmd.Actor(), h.clock.Now())
		}
		return b.AddAdjustment(cmd.AdjustmentID(), cmd.Input(), cmd.Actor(), h.clock.Now())
	})
}

// Edit fails with errs.ErrObjectNotFound when the adjustment is not the target's.
func (h AdjustmentCommandHandler) Edit(ctx context.Context, cmd AdjustmentCommand) (AdjustmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return AdjustmentResult{}, err
	}
	return h.adjust(ctx, cmd.TargetID(), func(b *settlement.Bundle) (settlement.Adjustment, error) {
		if h.scope == ItemScope {
			return b.EditItemAdjustment(cmd.TargetID(), cmd.AdjustmentID(), cmd.Input(), cmd.Actor(), h.clock.Now())
		}
		return b.EditAdjustment(cmd.AdjustmentID(), cmd.Input(), cmd.Actor(), h.clock.Now())
	})
}

// Remove fails with errs.ErrObjectNotFound when the adjustment is not the target's,
// including adjustments of another bundle.
func (h AdjustmentCommandHandler) Remove(ctx context.Context, cmd RemoveAdjustmentCommand) (BundleResult, error) {
	if err := cmd.Validate(); err != nil {
		return BundleResult{}, err
	}
	result, err := h.adjust(ctx, cmd.TargetID(), func(b *settlement.Bundle) (settlement.Adjustment, error) {
		if h.scope == ItemScope {
			return settlement.Adjustment{}, b.RemoveItemAdjustment(cmd.TargetID(), cmd.AdjustmentID(), cmd.Actor(), h.clock.Now())
		}
		return settlement.Adjustment{}, b.RemoveAdjustment(cmd.AdjustmentID(), cmd.Actor(), h.clock.Now())
	})
	return result.BundleResult, err
}

func (h AdjustmentCommandHandler) adjust(
	ctx context.Context,
	targetID kernel.UUID,
	change func(b *settlement.Bundle) (settlement.Adjustment, error),
) (AdjustmentResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AdjustmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.BundleRepository()
	b, err := h.load(ctx, repo, targetID)
	if err != nil {
		return AdjustmentResult{}, err
	}

	adjustment, err := change(b)
	if err != nil {
		return AdjustmentResult{}, err
	}

	if err = repo.Update(ctx, b); err != nil {
		return AdjustmentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AdjustmentResult{}, err
	}
	return AdjustmentResult{BundleResult: resultOf(b), Adjustment: adjustment}, nil
}

func (h AdjustmentCommandHandler) load(ctx context.Context, repo ports.BundleRepository, targetID kernel.UUID) (*settlement.Bundle, error) {
	if h.scope == BundleScope {
		return getBundle(ctx, repo, h.direction, targetID)
	}
	b, err := repo.GetByItemForUpdate(ctx, h.direction, targetID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewObjectNotFoundErrorWithCause("item", targetID.String(), err)
	}
	return b, err
}
