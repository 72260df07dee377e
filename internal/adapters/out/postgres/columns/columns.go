// Package columns holds the column groups shared by several tables: party
// snapshots, audit stamps, places and vehicles. Each group is embedded into a
// DTO with its own prefix.
package columns

import (
	"time"

	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Party stores a frozen snapshot. A nil ID means the snapshot is absent.
type Party struct {
	ID             *uuid.UUID `gorm:"type:uuid;index"`
	Name           string     `gorm:"size:200"`
	Phone          string     `gorm:"size:50"`
	Email          string     `gorm:"size:200"`
	Address        string     `gorm:"size:500"`
	BusinessNumber string     `gorm:"size:50"`
}

func FromSnapshot(s *kernel.Snapshot) Party {
	if s == nil || s.IsZero() {
		return Party{}
	}
	id := s.ID().Bytes()
	return Party{
		ID:             &id,
		Name:           s.Name(),
		Phone:          s.Phone(),
		Email:          s.Email(),
		Address:        s.Address(),
		BusinessNumber: s.BusinessNumber(),
	}
}

// Snapshot returns nil when the party is absent.
func (p Party) Snapshot(kind kernel.PartyKind) (*kernel.Snapshot, error) {
	if p.ID == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromGoogle(*p.ID)
	if err != nil {
		return nil, err
	}
	s, err := kernel.NewSnapshot(id, kind, kernel.SnapshotFields{
		Name:           p.Name,
		Phone:          p.Phone,
		Email:          p.Email,
		Address:        p.Address,
		BusinessNumber: p.BusinessNumber,
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Audit stamps are written from the domain clock, never by gorm.
type Audit struct {
	CreatedByID   uuid.UUID `gorm:"type:uuid"`
	CreatedByName string    `gorm:"size:200"`
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
	UpdatedByID   uuid.UUID `gorm:"type:uuid"`
	UpdatedByName string    `gorm:"size:200"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
}

func FromAudit(a kernel.Audit) Audit {
	return Audit{
		CreatedByID:   a.CreatedBy().ID().Bytes(),
		CreatedByName: a.CreatedBy().Name(),
		CreatedAt:     a.CreatedAt(),
		UpdatedByID:   a.UpdatedBy().ID().Bytes(),
		UpdatedByName: a.UpdatedBy().Name(),
		UpdatedAt:     a.UpdatedAt(),
	}
}

func (a Audit) Audit() (kernel.Audit, error) {
	createdBy, err := actor(a.CreatedByID, a.CreatedByName)
	if err != nil {
		return kernel.Audit{}, err
	}
	updatedBy, err := actor(a.UpdatedByID, a.UpdatedByName)
	if err != nil {
		return kernel.Audit{}, err
	}
	return kernel.RestoreAudit(createdBy, a.CreatedAt, updatedBy, a.UpdatedAt), nil
}

func actor(id uuid.UUID, name string) (kernel.Actor, error) {
	actorID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return kernel.Actor{}, err
	}
	return kernel.NewActor(actorID, name)
}

type Place struct {
	Address      string    `gorm:"size:500"`
	ContactName  string    `gorm:"size:200"`
	ContactPhone string    `gorm:"size:50"`
	ScheduledAt  time.Time `gorm:"index"`
}

func FromPlace(p kernel.Place) Place {
	return Place{
		Address:      p.Address(),
		ContactName:  p.ContactName(),
		ContactPhone: p.ContactPhone(),
		ScheduledAt:  p.ScheduledAt(),
	}
}

func (p Place) Place() (kernel.Place, error) {
	return kernel.NewPlace(p.Address, p.ContactName, p.ContactPhone, p.ScheduledAt)
}

// Vehicle is absent when Number is empty.
type Vehicle struct {
	Number  string           `gorm:"size:50;index"`
	Type    string           `gorm:"size:50"`
	Tonnage *decimal.Decimal `gorm:"type:numeric(10,2)"`
}

func FromVehicle(v *kernel.Vehicle) Vehicle {
	if v == nil || v.IsZero() {
		return Vehicle{}
	}
	tonnage := v.Tonnage()
	return Vehicle{
		Number:  v.Number(),
		Type:    v.Type(),
		Tonnage: &tonnage,
	}
}

func (v Vehicle) Vehicle() (*kernel.Vehicle, error) {
	if v.Number == "" || v.Tonnage == nil {
		return nil, nil
	}
	vehicle, err := kernel.NewVehicle(v.Number, v.Type, *v.Tonnage)
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}
