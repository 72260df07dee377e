package settlement

import (
	"time"

	"freight/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// EligibleItem is the projected read model of one completed shipment and its dispatch.
// It is never stored on its own; eligibility comes from the absence of an owning bundle.
type EligibleItem struct {
	ShipmentID      kernel.UUID
	DispatchID      kernel.UUID
	ShipperID       kernel.UUID
	ShipperName     string
	CarrierID       kernel.UUID
	CarrierName     string
	Charge          decimal.Decimal
	Cost            decimal.Decimal
	Date            time.Time
	PickupAddress   string
	DeliveryAddress string
	VehicleNumber   string
	VehicleType     string
	Tonnage         decimal.Decimal
	DriverName      string
}

func (e EligibleItem) Profit() decimal.Decimal {
	return e.Charge.Sub(e.Cost)
}

// CounterpartyID is the shipper for receivables and the carrier for payables.
func (e EligibleItem) CounterpartyID(direction Direction) kernel.UUID {
	if direction == Payable {
		return e.CarrierID
	}
	return e.ShipperID
}

func (e EligibleItem) CounterpartyName(direction Direction) string {
	if direction == Payable {
		return e.CarrierName
	}
	return e.ShipperName
}

// Amount is the charge for receivables and the cost for payables.
func (e EligibleItem) Amount(direction Direction) decimal.Decimal {
	if direction == Payable {
		return e.Cost
	}
	return e.Charge
}

// Item is a bundle member. Amounts are captured when the item joins the bundle.
type Item struct {
	shipmentID     kernel.UUID
	dispatchID     kernel.UUID
	counterpartyID kernel.UUID
	charge         decimal.Decimal
	cost           decimal.Decimal
	date           time.Time
	adjustments    []*Adjustment
}

func newItem(e EligibleItem, direction Direction) *Item {
	return &Item{
		shipmentID:     e.ShipmentID,
		dispatchID:     e.DispatchID,
		counterpartyID: e.CounterpartyID(direction),
		charge:         e.Charge,
		cost:           e.Cost,
		date:           e.Date,
	}
}

// RestoreItem rebuilds a persisted member with its item-level adjustments.
func RestoreItem(
	shipmentID, dispatchID, counterpartyID kernel.UUID,
	charge, cost decimal.Decimal,
	date time.Time,
	adjustments []Adjustment,
) Item {
	item := Item{
		shipmentID:     shipmentID,
		dispatchID:     dispatchID,
		counterpartyID: counterpartyID,
		charge:         charge,
		cost:           cost,
		date:           date,
	}
	for i := range adjustments {
		a := adjustments[i]
		item.adjustments = append(item.adjustments, &a)
	}
	return item
}

// ID is the member's shipment id, which also identifies the eligible item.
func (i Item) ID() kernel.UUID {
	return i.shipmentID
}

func (i Item) DispatchID() kernel.UUID {
	return i.dispatchID
}

func (i Item) CounterpartyID() kernel.UUID {
	return i.counterpartyID
}

func (i Item) Charge() decimal.Decimal {
	return i.charge
}

func (i Item) Cost() decimal.Decimal {
	return i.cost
}

func (i Item) Date() time.Time {
	return i.date
}

func (i Item) Amount(direction Direction) decimal.Decimal {
	if direction == Payable {
		return i.cost
	}
	return i.charge
}

func (i Item) Adjustments() []Adjustment {
	out := make([]Adjustment, 0, len(i.adjustments))
	for _, a := range i.adjustments {
		out = append(out, *a)
	}
	return out
}

func (i Item) AdjustmentTotal() decimal.Decimal {
	return sumAdjustments(i.adjustments)
}

func (i *Item) findAdjustment(id kernel.UUID) (int, bool) {
	for idx, a := range i.adjustments {
		if a.id.IsEqual(id) {
			return idx, true
		}
	}
	return -1, false
}
