package ports

import (
	"context"

	"freight/internal/core/domain/model/dispatch"
	"freight/internal/core/domain/model/kernel"
)

// DispatchRepository defines the persistence contract for dispatch aggregates.
type DispatchRepository interface {
	// Add persists a new dispatch. A second dispatch for the same shipment fails
	// with errs.ErrConflictingDispatch.
	Add(ctx context.Context, aggregate *dispatch.Dispatch) error

	Update(ctx context.Context, aggregate *dispatch.Dispatch) error

	// Get returns errs.ErrObjectNotFound when the dispatch does not exist.
	Get(ctx context.Context, id kernel.UUID) (*dispatch.Dispatch, error)

	// GetForUpdate is Get with the row locked until the transaction ends. Callers
	// lock the shipment first so dispatch writers always queue in the same order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*dispatch.Dispatch, error)

	// GetByShipment returns errs.ErrObjectNotFound when the shipment has no dispatch.
	GetByShipment(ctx context.Context, shipmentID kernel.UUID) (*dispatch.Dispatch, error)

	// Delete removes the dispatch row.
	Delete(ctx context.Context, aggregate *dispatch.Dispatch) error
}
