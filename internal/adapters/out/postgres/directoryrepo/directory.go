// Package directoryrepo reads companies, users and drivers, which other systems
// own and write. Lookups return snapshots; nothing here is ever mutated.
package directoryrepo

import (
	"context"
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"size:200"`
	Phone          string    `gorm:"size:50"`
	Email          string    `gorm:"size:200"`
	Address        string    `gorm:"size:500"`
	BusinessNumber string    `gorm:"size:50"`
}

func (CompanyDTO) TableName() string {
	return "companies"
}

type UserDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"size:200"`
	Phone string    `gorm:"size:50"`
	Email string    `gorm:"size:200"`
}

func (UserDTO) TableName() string {
	return "users"
}

type DriverDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"size:200"`
	Phone string    `gorm:"size:50"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

// GormPartyDirectory implements ports.PartyDirectory.
type GormPartyDirectory struct {
	db *gorm.DB
}

func NewGormPartyDirectory(db *gorm.DB) *GormPartyDirectory {
	return &GormPartyDirectory{db: db}
}

func (d *GormPartyDirectory) Resolve(ctx context.Context, kind kernel.PartyKind, id kernel.UUID) (kernel.Snapshot, error) {
	if err := errors.Join(kind.Validate(), id.Validate()); err != nil {
		return kernel.Snapshot{}, err
	}

	db := d.db.WithContext(ctx)
	switch kind {
	case kernel.PartyCompany:
		var dto CompanyDTO
		if err := first(db, &dto, kind, id); err != nil {
			return kernel.Snapshot{}, err
		}
		return kernel.NewSnapshot(id, kind, kernel.SnapshotFields{
			Name:           dto.Name,
			Phone:          dto.Phone,
			Email:          dto.Email,
			Address:        dto.Address,
			BusinessNumber: dto.BusinessNumber,
		})
	case kernel.PartyUser:
		var dto UserDTO
		if err := first(db, &dto, kind, id); err != nil {
			return kernel.Snapshot{}, err
		}
		return kernel.NewSnapshot(id, kind, kernel.SnapshotFields{
			Name:  dto.Name,
			Phone: dto.Phone,
			Email: dto.Email,
		})
	case kernel.PartyDriver:
		var dto DriverDTO
		if err := first(db, &dto, kind, id); err != nil {
			return kernel.Snapshot{}, err
		}
		return kernel.NewSnapshot(id, kind, kernel.SnapshotFields{
			Name:  dto.Name,
			Phone: dto.Phone,
		})
	}
	return kernel.Snapshot{}, fmt.Errorf("unsupported party kind %s", kind)
}

func first(db *gorm.DB, dest any, kind kernel.PartyKind, id kernel.UUID) error {
	if err := db.First(dest, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundErrorWithCause(kind.String(), id.String(), err)
		}
		return err
	}
	return nil
}
