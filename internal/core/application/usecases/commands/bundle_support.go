package commands

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// BundleResult is what every bundle mutation hands back: the authoritative state
// after the change.
type BundleResult struct {
	BundleID kernel.UUID
	Status   settlement.Status
	Totals   settlement.Totals
}

func resultOf(b *settlement.Bundle) BundleResult {
	return BundleResult{
		BundleID: b.ID(),
		Status:   b.Status(),
		Totals:   b.Totals(),
	}
}

// getBundle loads and locks a bundle of the handler's direction. A bundle of the
// other direction is reported as not found.
func getBundle(ctx context.Context, repo ports.BundleRepository, direction settlement.Direction, id kernel.UUID) (*settlement.Bundle, error) {
	b, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Direction() != direction {
		return nil, errs.NewObjectNotFoundError("bundle", id.String())
	}
	return b, nil
}

// eligibleItems loads ids from the eligible pool in the requested order. Ids held
// by another bundle of the direction are conflicts. Any other missing id does not
// resolve to a settle-eligible shipment.
func eligibleItems(
	ctx context.Context,
	uow BundleUoW,
	direction settlement.Direction,
	ids []kernel.UUID,
	exceptBundle *kernel.UUID,
) ([]settlement.EligibleItem, error) {
	found, err := uow.EligibleItemRepository().Find(ctx, direction, ids, exceptBundle)
	if err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]settlement.EligibleItem, len(found))
	for _, item := range found {
		byID[item.ShipmentID] = item
	}

	items := make([]settlement.EligibleItem, 0, len(ids))
	var conflicts, unresolved []error
	for _, id := range ids {
		item, ok := byID[id]
		if ok {
			items = append(items, item)
			continue
		}
		owner, err := uow.BundleRepository().GetByItem(ctx, direction, id)
		switch {
		case err == nil:
			conflicts = append(conflicts, errs.NewConflictingItemErrorWithCause(id, errors.New("held by bundle "+owner.ID().String())))
		case errors.Is(err, errs.ErrObjectNotFound):
			unresolved = append(unresolved, errs.NewInvalidReferenceError("item", id))
		default:
			return nil, err
		}
	}
	// Conflicts win so a lost race is reported as such.
	if len(conflicts) > 0 {
		return nil, errors.Join(conflicts...)
	}
	if len(unresolved) > 0 {
		return nil, errors.Join(unresolved...)
	}
	return items, nil
}
