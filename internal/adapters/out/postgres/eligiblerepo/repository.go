// Package eligiblerepo projects settlement-eligible items out of the shipments
// and dispatches tables. Nothing is stored here: an item is eligible while no
// bundle of the requested direction holds its shipment.
package eligiblerepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const selectItems = `
	SELECT
		s.id,
		d.id,
		s.owner_id,
		s.owner_name,
		d.counterparty_id,
		d.counterparty_name,
		s.charge,
		d.agreed_price,
		s.pickup_scheduled_at,
		s.pickup_address,
		s.delivery_address,
		d.vehicle_number,
		COALESCE(NULLIF(d.vehicle_type, ''), s.vehicle_type),
		COALESCE(d.vehicle_tonnage, s.tonnage),
		d.driver_name
	FROM shipments s
	JOIN dispatches d ON d.shipment_id = s.id`

// GormEligibleItemRepository implements ports.EligibleItemRepository with raw SQL.
type GormEligibleItemRepository struct {
	db *gorm.DB
}

func NewGormEligibleItemRepository(db *gorm.DB) *GormEligibleItemRepository {
	return &GormEligibleItemRepository{db: db}
}

func (r *GormEligibleItemRepository) List(
	ctx context.Context,
	direction settlement.Direction,
	filter ports.EligibilityFilter,
	page ports.Page,
) ([]settlement.EligibleItem, error) {
	if err := direction.Validate(); err != nil {
		return nil, err
	}

	where := newConditions(direction, nil)
	where.apply(direction, filter)

	query := selectItems + where.String() + " ORDER BY s.pickup_scheduled_at, s.id"
	args := where.args
	if page.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, page.Limit)
	}
	if page.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, page.Offset)
	}

	return r.scanItems(r.db.WithContext(ctx).Raw(query, args...))
}

func (r *GormEligibleItemRepository) Summarize(
	ctx context.Context,
	direction settlement.Direction,
	filter ports.EligibilityFilter,
) (ports.EligibleSummary, error) {
	if err := direction.Validate(); err != nil {
		return ports.EligibleSummary{}, err
	}

	where := newConditions(direction, nil)
	where.apply(direction, filter)

	query := `
	SELECT
		COUNT(*),
		COALESCE(SUM(s.charge), 0),
		COALESCE(SUM(d.agreed_price), 0)
	FROM shipments s
	JOIN dispatches d ON d.shipment_id = s.id` + where.String()

	var summary ports.EligibleSummary
	row := r.db.WithContext(ctx).Raw(query, where.args...).Row()
	if err := row.Scan(&summary.Count, &summary.Charge, &summary.Cost); err != nil {
		return ports.EligibleSummary{}, err
	}
	summary.Profit = summary.Charge.Sub(summary.Cost)
	return summary, nil
}

func (r *GormEligibleItemRepository) Find(
	ctx context.Context,
	direction settlement.Direction,
	ids []kernel.UUID,
	exceptBundle *kernel.UUID,
) ([]settlement.EligibleItem, error) {
	if err := direction.Validate(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []settlement.EligibleItem{}, nil
	}

	where := newConditions(direction, exceptBundle)
	where.add("s.id = ANY(?)", pq.Array(uuidStrings(ids)))

	query := selectItems + where.String() + " ORDER BY s.pickup_scheduled_at, s.id FOR UPDATE OF s"
	return r.scanItems(r.db.WithContext(ctx).Raw(query, where.args...))
}

func (r *GormEligibleItemRepository) scanItems(db *gorm.DB) ([]settlement.EligibleItem, error) {
	rows, err := db.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]settlement.EligibleItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanItem(rows *sql.Rows) (settlement.EligibleItem, error) {
	var (
		shipmentID, dispatchID         uuid.UUID
		shipperID, carrierID           *uuid.UUID
		shipperName, carrierName       string
		charge, cost                   decimal.Decimal
		date                           time.Time
		pickupAddress, deliveryAddress string
		vehicleNumber, vehicleType     string
		tonnage                        decimal.NullDecimal
		driverName                     string
	)
	err := rows.Scan(
		&shipmentID,
		&dispatchID,
		&shipperID,
		&shipperName,
		&carrierID,
		&carrierName,
		&charge,
		&cost,
		&date,
		&pickupAddress,
		&deliveryAddress,
		&vehicleNumber,
		&vehicleType,
		&tonnage,
		&driverName,
	)
	if err != nil {
		return settlement.EligibleItem{}, err
	}

	item := settlement.EligibleItem{
		ShipperName:     shipperName,
		CarrierName:     carrierName,
		Charge:          charge,
		Cost:            cost,
		Date:            date.UTC(),
		PickupAddress:   pickupAddress,
		DeliveryAddress: deliveryAddress,
		VehicleNumber:   vehicleNumber,
		VehicleType:     vehicleType,
		Tonnage:         tonnage.Decimal,
		DriverName:      driverName,
	}
	if item.ShipmentID, err = kernel.UUIDFromGoogle(shipmentID); err != nil {
		return settlement.EligibleItem{}, err
	}
	if item.DispatchID, err = kernel.UUIDFromGoogle(dispatchID); err != nil {
		return settlement.EligibleItem{}, err
	}
	if shipperID != nil {
		if item.ShipperID, err = kernel.UUIDFromGoogle(*shipperID); err != nil {
			return settlement.EligibleItem{}, err
		}
	}
	if carrierID != nil {
		if item.CarrierID, err = kernel.UUIDFromGoogle(*carrierID); err != nil {
			return settlement.EligibleItem{}, err
		}
	}
	return item, nil
}

// conditions accumulates WHERE clauses with their positional arguments.
type conditions struct {
	clauses []string
	args    []any
}

// newConditions starts with the eligibility rule itself. Members of exceptBundle
// count as unbound so a bundle being edited can keep its own items.
func newConditions(direction settlement.Direction, exceptBundle *kernel.UUID) *conditions {
	c := &conditions{}
	c.add("s.flow_status = ANY(?)", pq.Array(settleEligibleNames()))
	c.add("s.canceled_at IS NULL")
	if exceptBundle != nil {
		c.add(`NOT EXISTS (
			SELECT 1 FROM bundle_items bi
			WHERE bi.shipment_id = s.id AND bi.direction = ? AND bi.bundle_id <> ?
		)`, direction.String(), exceptBundle.Bytes())
	} else {
		c.add(`NOT EXISTS (
			SELECT 1 FROM bundle_items bi
			WHERE bi.shipment_id = s.id AND bi.direction = ?
		)`, direction.String())
	}
	return c
}

func (c *conditions) add(clause string, args ...any) {
	c.clauses = append(c.clauses, clause)
	c.args = append(c.args, args...)
}

func (c *conditions) apply(direction settlement.Direction, filter ports.EligibilityFilter) {
	counterpartyID, counterpartyName := "s.owner_id", "s.owner_name"
	if direction == settlement.Payable {
		counterpartyID, counterpartyName = "d.counterparty_id", "d.counterparty_name"
	}

	if filter.CounterpartyID != nil {
		c.add(counterpartyID+" = ?", filter.CounterpartyID.Bytes())
	}
	if filter.From != nil {
		c.add("s.pickup_scheduled_at >= ?", dayStart(*filter.From))
	}
	if filter.To != nil {
		c.add("s.pickup_scheduled_at < ?", dayStart(*filter.To).AddDate(0, 0, 1))
	}
	if filter.VehicleType != "" {
		c.add("COALESCE(NULLIF(d.vehicle_type, ''), s.vehicle_type) = ?", filter.VehicleType)
	}
	if filter.VehicleNumber != "" {
		c.add("d.vehicle_number ILIKE ?", like(filter.VehicleNumber))
	}
	if filter.MinTonnage != nil {
		c.add("COALESCE(d.vehicle_tonnage, s.tonnage) >= ?", *filter.MinTonnage)
	}
	if filter.MaxTonnage != nil {
		c.add("COALESCE(d.vehicle_tonnage, s.tonnage) <= ?", *filter.MaxTonnage)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := like(search)
		c.add(
			fmt.Sprintf("(s.id::text ILIKE ? OR s.pickup_address ILIKE ? OR s.delivery_address ILIKE ? OR %s ILIKE ?)", counterpartyName),
			pattern, pattern, pattern, pattern,
		)
	}
}

func (c *conditions) String() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return "\n\tWHERE " + strings.Join(c.clauses, "\n\t\tAND ")
}

func settleEligibleNames() []string {
	statuses := shipment.SettleEligibleStatuses()
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}

func uuidStrings(ids []kernel.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func like(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
