// Package ports defines the contracts between the freight core and its adapters:
// repositories bound to a unit of work, the party directory, the eligibility
// cache and the event publisher.
package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
type ShipmentRepository interface {
	// Add persists a new shipment.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists the flow status, cancellation flag and audit fields.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get returns errs.ErrObjectNotFound when the shipment does not exist.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetForUpdate behaves like Get and locks the row until the transaction ends.
	// Writers of a shipment's flow status read it through this method so concurrent
	// dispatch operations on the same shipment serialize.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)
}
