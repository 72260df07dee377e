// Package dispatchrepo persists dispatch aggregates in the dispatches table.
// At most one row exists per shipment.
package dispatchrepo

import (
	"freight/internal/adapters/out/postgres/columns"
	"freight/internal/core/domain/model/dispatch"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DispatchDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ShipmentID   uuid.UUID       `gorm:"type:uuid;uniqueIndex:ux_dispatches_shipment"`
	Counterparty columns.Party   `gorm:"embedded;embeddedPrefix:counterparty_"`
	Manager      columns.Party   `gorm:"embedded;embeddedPrefix:manager_"`
	Driver       columns.Party   `gorm:"embedded;embeddedPrefix:driver_"`
	Vehicle      columns.Vehicle `gorm:"embedded;embeddedPrefix:vehicle_"`
	AgreedPrice  decimal.Decimal `gorm:"type:numeric(18,2)"`
	Memo         string          `gorm:"size:2000"`
	Status       string          `gorm:"size:30;index"`
	Audit        columns.Audit   `gorm:"embedded"`
}

func (DispatchDTO) TableName() string {
	return "dispatches"
}

func fromDomain(d *dispatch.Dispatch) DispatchDTO {
	counterparty := d.Counterparty()
	return DispatchDTO{
		ID:           d.ID().Bytes(),
		ShipmentID:   d.ShipmentID().Bytes(),
		Counterparty: columns.FromSnapshot(&counterparty),
		Manager:      columns.FromSnapshot(d.Manager()),
		Driver:       columns.FromSnapshot(d.Driver()),
		Vehicle:      columns.FromVehicle(d.Vehicle()),
		AgreedPrice:  d.AgreedPrice(),
		Memo:         d.Memo(),
		Status:       d.Status().String(),
		Audit:        columns.FromAudit(d.Audit()),
	}
}

func toDomain(dto DispatchDTO) (*dispatch.Dispatch, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromGoogle(dto.ShipmentID)
	if err != nil {
		return nil, err
	}
	counterparty, err := dto.Counterparty.Snapshot(kernel.PartyCompany)
	if err != nil {
		return nil, err
	}
	if counterparty == nil {
		counterparty = &kernel.Snapshot{}
	}
	manager, err := dto.Manager.Snapshot(kernel.PartyUser)
	if err != nil {
		return nil, err
	}
	driver, err := dto.Driver.Snapshot(kernel.PartyDriver)
	if err != nil {
		return nil, err
	}
	vehicle, err := dto.Vehicle.Vehicle()
	if err != nil {
		return nil, err
	}
	status, err := dispatch.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	audit, err := dto.Audit.Audit()
	if err != nil {
		return nil, err
	}

	return dispatch.RestoreDispatch(
		id,
		shipmentID,
		*counterparty,
		manager,
		driver,
		vehicle,
		dto.AgreedPrice,
		dto.Memo,
		status,
		audit,
	)
}
