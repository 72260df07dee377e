package commands

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/patch"
)

// UpdateBundleResult lists applied and rejected fields with the totals after the update.
type UpdateBundleResult struct {
	BundleResult
	Applied  []string
	Rejected []errs.FieldError
}

// UpdateBundleCommandHandler applies a partial bundle update. A field that fails
// is reported and the remaining fields still apply.
type UpdateBundleCommandHandler struct {
	uowFactory BundleUoWFactory
	direction  settlement.Direction
	clock      clock.Clock
}

func NewUpdateBundleCommandHandler(
	uowFactory BundleUoWFactory,
	direction settlement.Direction,
	clk clock.Clock,
) UpdateBundleCommandHandler {
	return UpdateBundleCommandHandler{
		uowFactory: uowFactory,
		direction:  direction,
		clock:      clk,
	}
}

// Handle fails with errs.ErrObjectNotFound for an unknown bundle and with
// errs.ErrInvalidState for a completed one.
func (h UpdateBundleCommandHandler) Handle(ctx context.Context, cmd UpdateBundleCommand) (UpdateBundleResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateBundleResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateBundleResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.BundleRepository()
	b, err := getBundle(ctx, repo, h.direction, cmd.BundleID())
	if err != nil {
		return UpdateBundleResult{}, err
	}
	if err = b.EnsureEditable(); err != nil {
		return UpdateBundleResult{}, err
	}

	changes, rejected, err := h.domainChanges(ctx, uow, b, cmd.Changes())
	if err != nil {
		return UpdateBundleResult{}, err
	}

	applied, err := b.ApplyChanges(changes, cmd.Reason(), cmd.Actor(), h.clock.Now())
	if err != nil {
		return UpdateBundleResult{}, err
	}

	result := UpdateBundleResult{
		BundleResult: resultOf(b),
		Applied:      applied.Applied,
		Rejected:     append(rejected, applied.Rejected...),
	}
	if len(result.Applied) == 0 {
		return result, nil
	}

	if err = repo.Update(ctx, b); err != nil {
		return UpdateBundleResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return UpdateBundleResult{}, err
	}
	return result, nil
}

// domainChanges resolves command input into domain changes. Input that cannot be
// resolved becomes a rejected field and is left out of the returned changes.
func (h UpdateBundleCommandHandler) domainChanges(
	ctx context.Context,
	uow BundleUoW,
	b *settlement.Bundle,
	in BundleChanges,
) (settlement.Changes, []errs.FieldError, error) {
	var rejected []errs.FieldError
	reject := func(field string, err error) {
		rejected = append(rejected, errs.NewFieldError(field, err))
	}

	out := settlement.Changes{
		Period:        in.Period,
		TaxExempt:     in.TaxExempt,
		PaymentMethod: in.PaymentMethod,
		Bank:          in.Bank,
		DueDate:       in.DueDate,
		Memo:          in.Memo,
	}

	if in.ItemIDs.IsClear() {
		out.Items = patch.Clear[[]settlement.EligibleItem]()
	}
	if ids, ok := in.ItemIDs.Value(); ok {
		bundleID := b.ID()
		items, err := eligibleItems(ctx, uow, h.direction, ids, &bundleID)
		switch {
		case err == nil:
			out.Items = patch.Set(items)
		case errs.KindOf(err) == errs.KindUnknown:
			return settlement.Changes{}, nil, err
		default:
			reject(settlement.FieldItems, err)
		}
	}

	out.Counterparty, rejected = snapshotChange(in.Counterparty, kernel.PartyCompany, settlement.FieldCounterparty, rejected)
	out.Manager, rejected = snapshotChange(in.Manager, kernel.PartyUser, settlement.FieldManager, rejected)

	return out, rejected, nil
}

func snapshotChange(
	in patch.Field[PartyFields],
	kind kernel.PartyKind,
	field string,
	rejected []errs.FieldError,
) (patch.Field[kernel.Snapshot], []errs.FieldError) {
	if in.IsClear() {
		return patch.Clear[kernel.Snapshot](), rejected
	}
	fields, ok := in.Value()
	if !ok {
		return patch.Keep[kernel.Snapshot](), rejected
	}
	snapshot, err := fields.Snapshot(kind)
	if err != nil {
		return patch.Keep[kernel.Snapshot](), append(rejected, errs.NewFieldError(field, err))
	}
	return patch.Set(snapshot), rejected
}
