package commands

import (
	"context"

	"freight/internal/core/domain/model/settlement"
	"freight/internal/pkg/clock"

	"github.com/shopspring/decimal"
)

// CreateBundleCommandHandler builds a draft bundle of one direction from eligible items.
// The same handler type serves receivable and payable bundles.
//
// Example:
//
//	receivables := NewCreateBundleCommandHandler(uowFactory, settlement.Receivable, taxRate, clock.Real{})
//	result, err := receivables.Handle(ctx, cmd)
//	if errs.KindOf(err) == errs.KindConflictingItem {
//	    // someone bundled one of the items first
//	}
type CreateBundleCommandHandler struct {
	uowFactory BundleUoWFactory
	direction  settlement.Direction
	taxRate    decimal.Decimal
	clock      clock.Clock
}

func NewCreateBundleCommandHandler(
	uowFactory BundleUoWFactory,
	direction settlement.Direction,
	taxRate decimal.Decimal,
	clk clock.Clock,
) CreateBundleCommandHandler {
	return CreateBundleCommandHandler{
		uowFactory: uowFactory,
		direction:  direction,
		taxRate:    taxRate,
		clock:      clk,
	}
}

// Handle is all-or-nothing. Membership is checked against the pool inside the
// transaction and enforced again by the repository on insert.
func (h CreateBundleCommandHandler) Handle(ctx context.Context, cmd CreateBundleCommand) (BundleResult, error) {
	if err := cmd.Validate(); err != nil {
		return BundleResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return BundleResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	items, err := eligibleItems(ctx, uow, h.direction, cmd.ItemIDs(), nil)
	if err != nil {
		return BundleResult{}, err
	}

	b, err := settlement.NewBundle(cmd.BundleID(), h.direction, items, cmd.Form(), h.taxRate, cmd.Actor(), h.clock.Now())
	if err != nil {
		return BundleResult{}, err
	}

	if err = uow.BundleRepository().Add(ctx, b); err != nil {
		return BundleResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return BundleResult{}, err
	}
	return resultOf(b), nil
}
