package dispatchrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/dispatch"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDispatchRepository implements ports.DispatchRepository using GORM.
type GormDispatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormDispatchRepository(db *gorm.DB, tracker aggregateTracker) *GormDispatchRepository {
	return &GormDispatchRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add relies on the unique shipment index: a second dispatch for the same
// shipment fails with errs.ErrConflictingDispatch even under concurrent inserts.
func (r *GormDispatchRepository) Add(ctx context.Context, aggregate *dispatch.Dispatch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictingDispatchErrorWithCause(aggregate.ShipmentID(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormDispatchRepository) Update(ctx context.Context, aggregate *dispatch.Dispatch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DispatchDTO{}).Where("id = ?", dto.ID).Select("*").Omit("id").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("dispatch", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormDispatchRepository) Get(ctx context.Context, id kernel.UUID) (*dispatch.Dispatch, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate locks the row until the surrounding transaction ends.
func (r *GormDispatchRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*dispatch.Dispatch, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormDispatchRepository) get(db *gorm.DB, id kernel.UUID) (*dispatch.Dispatch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DispatchDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dispatch", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormDispatchRepository) GetByShipment(ctx context.Context, shipmentID kernel.UUID) (*dispatch.Dispatch, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dto DispatchDTO
	if err := r.db.WithContext(ctx).First(&dto, "shipment_id = ?", shipmentID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dispatch of shipment", shipmentID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes the row. The aggregate is still tracked so its deletion event is stored.
func (r *GormDispatchRepository) Delete(ctx context.Context, aggregate *dispatch.Dispatch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&DispatchDTO{}, "id = ?", aggregate.ID().Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("dispatch", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
