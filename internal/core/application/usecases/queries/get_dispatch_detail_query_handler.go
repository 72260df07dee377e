package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"freight/internal/core/domain/model/dispatch"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetDispatchDetailQueryHandler joins the dispatch with its shipment and the
// current directory names at read time. Nothing it reads is stored back.
type GetDispatchDetailQueryHandler struct {
	db *gorm.DB
}

func NewGetDispatchDetailQueryHandler(db *gorm.DB) GetDispatchDetailQueryHandler {
	return GetDispatchDetailQueryHandler{db: db}
}

func (h GetDispatchDetailQueryHandler) Handle(
	ctx context.Context,
	query GetDispatchDetailQuery,
) (GetDispatchDetailQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDispatchDetailQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.shipment_id,
			d.status,
			s.flow_status,
			s.canceled_at,
			s.owner_id,
			s.owner_name,
			oc.name,
			s.pickup_address,
			s.pickup_scheduled_at,
			s.delivery_address,
			s.delivery_scheduled_at,
			s.cargo,
			s.charge,
			d.counterparty_id,
			d.counterparty_name,
			cc.name,
			d.manager_id,
			d.manager_name,
			mu.name,
			d.driver_id,
			d.driver_name,
			dr.name,
			d.driver_phone,
			d.vehicle_number,
			d.vehicle_type,
			d.vehicle_tonnage,
			d.agreed_price,
			d.memo,
			d.created_by_name,
			d.created_at,
			d.updated_by_name,
			d.updated_at
		FROM dispatches d
		JOIN shipments s ON s.id = d.shipment_id
		LEFT JOIN companies oc ON oc.id = s.owner_id
		LEFT JOIN companies cc ON cc.id = d.counterparty_id
		LEFT JOIN users mu ON mu.id = d.manager_id
		LEFT JOIN drivers dr ON dr.id = d.driver_id
		WHERE d.id = ?
	`, query.DispatchID().Bytes()).Row()

	var (
		resp                                 GetDispatchDetailQueryResponse
		id, shipmentID                       uuid.UUID
		status, flowStatus                   string
		canceledAt                           *time.Time
		ownerID, counterpartyID              *uuid.UUID
		managerID, driverID                  *uuid.UUID
		ownerName, counterpartyName          string
		managerName, driverName, driverPhone *string
		ownerNow, counterpartyNow            *string
		managerNow, driverNow                *string
		tonnage                              decimal.NullDecimal
	)
	err := row.Scan(
		&id,
		&shipmentID,
		&status,
		&flowStatus,
		&canceledAt,
		&ownerID,
		&ownerName,
		&ownerNow,
		&resp.PickupAddress,
		&resp.PickupAt,
		&resp.DeliveryAddress,
		&resp.DeliveryAt,
		&resp.Cargo,
		&resp.Charge,
		&counterpartyID,
		&counterpartyName,
		&counterpartyNow,
		&managerID,
		&managerName,
		&managerNow,
		&driverID,
		&driverName,
		&driverNow,
		&driverPhone,
		&resp.VehicleNumber,
		&resp.VehicleType,
		&tonnage,
		&resp.AgreedPrice,
		&resp.Memo,
		&resp.CreatedBy,
		&resp.CreatedAt,
		&resp.UpdatedBy,
		&resp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetDispatchDetailQueryResponse{}, errs.NewObjectNotFoundError("dispatch", query.DispatchID().String())
		}
		return GetDispatchDetailQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromGoogle(id); err != nil {
		return GetDispatchDetailQueryResponse{}, err
	}
	if resp.ShipmentID, err = kernel.UUIDFromGoogle(shipmentID); err != nil {
		return GetDispatchDetailQueryResponse{}, err
	}
	if resp.Status, err = dispatch.ParseStatus(status); err != nil {
		return GetDispatchDetailQueryResponse{}, err
	}
	if resp.FlowStatus, err = shipment.ParseFlowStatus(flowStatus); err != nil {
		return GetDispatchDetailQueryResponse{}, err
	}
	resp.Canceled = canceledAt != nil

	owner, err := partyView(ownerID, &ownerName, ownerNow)
	if err != nil {
		return GetDispatchDetailQueryResponse{}, err
	}
	if owner != nil {
		resp.Owner = *owner
	}
	counterparty, err := partyView(counterpartyID, &counterpartyName, counterpartyNow)
	if err != nil {
		return GetDispatchDetailQueryResponse{}, err
	}
	if counterparty != nil {
		resp.Counterparty = *counterparty
	}
	if resp.Manager, err = partyView(managerID, managerName, managerNow); err != nil {
		return GetDispatchDetailQueryResponse{}, err
	}
	if resp.Driver, err = partyView(driverID, driverName, driverNow); err != nil {
		return GetDispatchDetailQueryResponse{}, err
	}
	if driverPhone != nil {
		resp.DriverPhone = *driverPhone
	}
	if tonnage.Valid {
		resp.Tonnage = &tonnage.Decimal
	}
	resp.Profit = resp.Charge.Sub(resp.AgreedPrice)

	return resp, nil
}

func partyView(id *uuid.UUID, name, current *string) (*PartyView, error) {
	if id == nil {
		return nil, nil
	}
	partyID, err := kernel.UUIDFromGoogle(*id)
	if err != nil {
		return nil, err
	}
	view := &PartyView{ID: partyID}
	if name != nil {
		view.Name = *name
	}
	if current != nil {
		view.CurrentName = *current
	}
	return view, nil
}
