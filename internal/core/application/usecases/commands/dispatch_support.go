package commands

import (
	"context"

	"freight/internal/core/domain/model/dispatch"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
)

// lockDispatch locks the shipment and then the dispatch, always in that order,
// and returns both as committed. The first read only finds the shipment id, which
// never changes; the dispatch is read again under the shipment lock because
// another writer may have committed in between.
func lockDispatch(ctx context.Context, uow DispatchUoW, dispatchID kernel.UUID) (*shipment.Shipment, *dispatch.Dispatch, error) {
	dispatchRepo := uow.DispatchRepository()

	peek, err := dispatchRepo.Get(ctx, dispatchID)
	if err != nil {
		return nil, nil, err
	}
	s, err := uow.ShipmentRepository().GetForUpdate(ctx, peek.ShipmentID())
	if err != nil {
		return nil, nil, err
	}
	d, err := dispatchRepo.GetForUpdate(ctx, dispatchID)
	if err != nil {
		return nil, nil, err
	}
	return s, d, nil
}
