package bundlerepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBundleRepository implements ports.BundleRepository using GORM. Child rows
// are rewritten as a whole on every update.
type GormBundleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormBundleRepository(db *gorm.DB, tracker aggregateTracker) *GormBundleRepository {
	return &GormBundleRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormBundleRepository) Add(ctx context.Context, aggregate *settlement.Bundle) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rec := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Create(&rec.bundle).Error; err != nil {
		return err
	}
	if err := r.insertChildren(db, rec); err != nil {
		return conflict(aggregate, err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormBundleRepository) Update(ctx context.Context, aggregate *settlement.Bundle) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rec := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	result := db.Model(&BundleDTO{}).Where("id = ?", rec.bundle.ID).Select("*").Omit("id").Updates(&rec.bundle)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("bundle", aggregate.ID().String())
	}

	if err := r.deleteChildren(db, rec.bundle.ID); err != nil {
		return err
	}
	if err := r.insertChildren(db, rec); err != nil {
		return conflict(aggregate, err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormBundleRepository) Get(ctx context.Context, id kernel.UUID) (*settlement.Bundle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.load(r.db.WithContext(ctx), id, false)
}

// GetForUpdate locks the bundle row until the surrounding transaction ends.
// Child rows are read after the lock is granted, so they are current too.
func (r *GormBundleRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*settlement.Bundle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.load(r.db.WithContext(ctx), id, true)
}

func (r *GormBundleRepository) GetByItem(
	ctx context.Context,
	direction settlement.Direction,
	itemID kernel.UUID,
) (*settlement.Bundle, error) {
	return r.byItem(ctx, direction, itemID, false)
}

// GetByItemForUpdate locks the owning bundle. The item may have left the bundle
// while the lock was awaited; that is reported as not found.
func (r *GormBundleRepository) GetByItemForUpdate(
	ctx context.Context,
	direction settlement.Direction,
	itemID kernel.UUID,
) (*settlement.Bundle, error) {
	return r.byItem(ctx, direction, itemID, true)
}

func (r *GormBundleRepository) byItem(
	ctx context.Context,
	direction settlement.Direction,
	itemID kernel.UUID,
	lock bool,
) (*settlement.Bundle, error) {
	if err := errors.Join(direction.Validate(), itemID.Validate()); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	var member ItemDTO
	err := db.Where("direction = ? AND shipment_id = ?", direction.String(), itemID.Bytes()).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bundle of item", itemID.String())
		}
		return nil, err
	}

	bundleID, err := kernel.UUIDFromGoogle(member.BundleID)
	if err != nil {
		return nil, err
	}
	b, err := r.load(db, bundleID, lock)
	if err != nil {
		return nil, err
	}
	if _, ok := b.Item(itemID); !ok {
		return nil, errs.NewObjectNotFoundError("bundle of item", itemID.String())
	}
	return b, nil
}

// Delete removes the bundle and its child rows. Member shipments are untouched
// and become eligible again.
func (r *GormBundleRepository) Delete(ctx context.Context, aggregate *settlement.Bundle) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	id := aggregate.ID().Bytes()
	if err := r.deleteChildren(db, id); err != nil {
		return err
	}

	result := db.Delete(&BundleDTO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("bundle", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormBundleRepository) IsShipmentBundled(ctx context.Context, shipmentID kernel.UUID) (bool, error) {
	if err := shipmentID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&ItemDTO{}).Where("shipment_id = ?", shipmentID.Bytes()).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormBundleRepository) load(db *gorm.DB, id kernel.UUID, lock bool) (*settlement.Bundle, error) {
	head := db
	if lock {
		head = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rec record
	if err := head.First(&rec.bundle, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bundle", id.String())
		}
		return nil, err
	}

	if err := db.Where("bundle_id = ?", id.Bytes()).Order("position").Find(&rec.items).Error; err != nil {
		return nil, err
	}
	if err := db.Where("bundle_id = ?", id.Bytes()).Order("position").Find(&rec.adjustments).Error; err != nil {
		return nil, err
	}
	if err := db.Where("bundle_id = ?", id.Bytes()).Order("position").Find(&rec.revisions).Error; err != nil {
		return nil, err
	}

	return toDomain(rec)
}

func (r *GormBundleRepository) insertChildren(db *gorm.DB, rec record) error {
	if len(rec.items) > 0 {
		if err := db.Create(&rec.items).Error; err != nil {
			return err
		}
	}
	if len(rec.adjustments) > 0 {
		if err := db.Create(&rec.adjustments).Error; err != nil {
			return err
		}
	}
	if len(rec.revisions) > 0 {
		if err := db.Create(&rec.revisions).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormBundleRepository) deleteChildren(db *gorm.DB, bundleID any) error {
	for _, model := range []any{&RevisionDTO{}, &AdjustmentDTO{}, &ItemDTO{}} {
		if err := db.Where("bundle_id = ?", bundleID).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func conflict(aggregate *settlement.Bundle, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictingItemErrorWithCause(aggregate.ItemIDs(), err)
	}
	return err
}
