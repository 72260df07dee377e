// Package queries contains read operations. Each query is a validated value
// object with a handler that returns a read model shaped for its caller.
package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/dispatch"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetDispatchDetailQueryIsNotConstructed = errors.New(
	"GetDispatchDetailQuery must be created via NewGetDispatchDetailQuery constructor",
)

// GetDispatchDetailQuery reads one dispatch together with its shipment.
//
// Example:
//
//	query, err := NewGetDispatchDetailQuery(dispatchID)
//	detail, err := handler.Handle(ctx, query)
//	fmt.Println(detail.Counterparty.Name, detail.Counterparty.CurrentName)
type GetDispatchDetailQuery struct {
	dispatchID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDispatchDetailQuery(dispatchID kernel.UUID) (GetDispatchDetailQuery, error) {
	if err := dispatchID.Validate(); err != nil {
		return GetDispatchDetailQuery{}, err
	}
	return GetDispatchDetailQuery{
		dispatchID: dispatchID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetDispatchDetailQuery) DispatchID() kernel.UUID {
	return q.dispatchID
}

func (q GetDispatchDetailQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchDetailQueryIsNotConstructed)
}

// PartyView pairs the name frozen on the record with the directory's name at read
// time. CurrentName is empty when the directory entry no longer exists.
type PartyView struct {
	ID          kernel.UUID
	Name        string
	CurrentName string
}

type GetDispatchDetailQueryResponse struct {
	ID         kernel.UUID
	ShipmentID kernel.UUID
	Status     dispatch.Status
	FlowStatus shipment.FlowStatus
	Canceled   bool

	Owner           PartyView
	PickupAddress   string
	PickupAt        time.Time
	DeliveryAddress string
	DeliveryAt      time.Time
	Cargo           string
	Charge          decimal.Decimal

	Counterparty  PartyView
	Manager       *PartyView
	Driver        *PartyView
	DriverPhone   string
	VehicleNumber string
	VehicleType   string
	Tonnage       *decimal.Decimal
	AgreedPrice   decimal.Decimal
	Profit        decimal.Decimal
	Memo          string

	CreatedBy string
	CreatedAt time.Time
	UpdatedBy string
	UpdatedAt time.Time
}
