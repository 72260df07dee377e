// Package shipmentrepo persists shipment aggregates in the shipments table.
package shipmentrepo

import (
	"time"

	"freight/internal/adapters/out/postgres/columns"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentDTO is one row of the shipments table. Flow status is stored by name
// so raw SQL can filter on it.
type ShipmentDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Owner       columns.Party   `gorm:"embedded;embeddedPrefix:owner_"`
	Pickup      columns.Place   `gorm:"embedded;embeddedPrefix:pickup_"`
	Delivery    columns.Place   `gorm:"embedded;embeddedPrefix:delivery_"`
	Cargo       string          `gorm:"size:500"`
	VehicleType string          `gorm:"size:50"`
	Tonnage     decimal.Decimal `gorm:"type:numeric(10,2)"`
	Charge      decimal.Decimal `gorm:"type:numeric(18,2)"`
	FlowStatus  string          `gorm:"size:30;index"`
	CanceledAt  *time.Time
	Audit       columns.Audit `gorm:"embedded"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	owner := s.Owner()
	details := s.Details()
	return ShipmentDTO{
		ID:          s.ID().Bytes(),
		Owner:       columns.FromSnapshot(&owner),
		Pickup:      columns.FromPlace(details.Pickup),
		Delivery:    columns.FromPlace(details.Delivery),
		Cargo:       details.Cargo,
		VehicleType: details.VehicleType,
		Tonnage:     details.Tonnage,
		Charge:      details.Charge,
		FlowStatus:  s.FlowStatus().String(),
		CanceledAt:  s.CanceledAt(),
		Audit:       columns.FromAudit(s.Audit()),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	owner, err := dto.Owner.Snapshot(kernel.PartyCompany)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		owner = &kernel.Snapshot{}
	}
	pickup, err := dto.Pickup.Place()
	if err != nil {
		return nil, err
	}
	delivery, err := dto.Delivery.Place()
	if err != nil {
		return nil, err
	}
	flow, err := shipment.ParseFlowStatus(dto.FlowStatus)
	if err != nil {
		return nil, err
	}
	audit, err := dto.Audit.Audit()
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(id, *owner, shipment.Details{
		Pickup:      pickup,
		Delivery:    delivery,
		Cargo:       dto.Cargo,
		VehicleType: dto.VehicleType,
		Tonnage:     dto.Tonnage,
		Charge:      dto.Charge,
	}, flow, dto.CanceledAt, audit)
}
