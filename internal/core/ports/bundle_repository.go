package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"
)

// BundleRepository defines the persistence contract for settlement bundles.
// Members, adjustments and revisions are stored with their bundle.
type BundleRepository interface {
	// Add persists a new bundle. A member already bound to another bundle of the
	// same direction fails with errs.ErrConflictingItem.
	Add(ctx context.Context, aggregate *settlement.Bundle) error

	// Update replaces the stored members, adjustments and revisions with the
	// aggregate's. Membership conflicts fail like Add.
	Update(ctx context.Context, aggregate *settlement.Bundle) error

	// Get returns errs.ErrObjectNotFound when the bundle does not exist.
	Get(ctx context.Context, id kernel.UUID) (*settlement.Bundle, error)

	// GetForUpdate is Get with the bundle row locked until the transaction ends.
	// Every bundle mutation loads through it, so writers of one bundle run one
	// after another and always start from the committed state.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*settlement.Bundle, error)

	// GetByItem returns the bundle of the given direction the item belongs to,
	// or errs.ErrObjectNotFound.
	GetByItem(ctx context.Context, direction settlement.Direction, itemID kernel.UUID) (*settlement.Bundle, error)

	// GetByItemForUpdate is GetByItem with the owning bundle row locked.
	GetByItemForUpdate(ctx context.Context, direction settlement.Direction, itemID kernel.UUID) (*settlement.Bundle, error)

	// Delete removes the bundle with its adjustments. Member shipments are untouched.
	Delete(ctx context.Context, aggregate *settlement.Bundle) error

	// IsShipmentBundled reports whether any bundle, of either direction, holds the shipment.
	IsShipmentBundled(ctx context.Context, shipmentID kernel.UUID) (bool, error)
}
