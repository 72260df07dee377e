package dispatch

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const AggregateType = "dispatch"

const (
	EventCreated = "dispatch.created"
	EventUpdated = "dispatch.updated"
	EventDeleted = "dispatch.deleted"
)

var ErrDispatchIsNotConstructed = errors.New("Dispatch must be created via NewDispatch constructor")

// Assignment groups the parties and terms a dispatch is created with.
type Assignment struct {
	Counterparty kernel.Snapshot
	Manager      *kernel.Snapshot
	Driver       kernel.Snapshot
	Vehicle      kernel.Vehicle
	AgreedPrice  decimal.Decimal
	Memo         string
}

// Dispatch is the aggregate root for a shipment assignment.
type Dispatch struct {
	id           kernel.UUID
	shipmentID   kernel.UUID
	counterparty kernel.Snapshot
	manager      *kernel.Snapshot
	driver       *kernel.Snapshot
	vehicle      *kernel.Vehicle
	agreedPrice  decimal.Decimal
	memo         string
	status       Status
	audit        kernel.Audit

	kernel.Events
	isConstructed bool
}

// NewDispatch creates a dispatch in the Assigned status.
func NewDispatch(
	id kernel.UUID,
	shipmentID kernel.UUID,
	assignment Assignment,
	actor kernel.Actor,
	now time.Time,
) (*Dispatch, error) {
	d := &Dispatch{
		id:            id,
		shipmentID:    shipmentID,
		status:        Assigned,
		audit:         kernel.NewAudit(actor, now),
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		shipmentID.Validate(),
		actor.Validate(),
		d.ChangeCounterparty(assignment.Counterparty),
		d.setManager(assignment.Manager),
		d.AssignDriver(assignment.Driver),
		d.ChangeVehicle(assignment.Vehicle),
		d.ChangePrice(assignment.AgreedPrice),
	); err != nil {
		return nil, err
	}
	d.ChangeMemo(assignment.Memo)

	d.record(EventCreated, now, map[string]any{
		"shipmentId":     shipmentID,
		"counterpartyId": assignment.Counterparty.ID(),
		"agreedPrice":    assignment.AgreedPrice.String(),
	})
	return d, nil
}

// RestoreDispatch rebuilds a persisted dispatch without recording events.
func RestoreDispatch(
	id kernel.UUID,
	shipmentID kernel.UUID,
	counterparty kernel.Snapshot,
	manager *kernel.Snapshot,
	driver *kernel.Snapshot,
	vehicle *kernel.Vehicle,
	agreedPrice decimal.Decimal,
	memo string,
	status Status,
	audit kernel.Audit,
) (*Dispatch, error) {
	if err := errors.Join(id.Validate(), shipmentID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Dispatch{
		id:            id,
		shipmentID:    shipmentID,
		counterparty:  counterparty,
		manager:       manager,
		driver:        driver,
		vehicle:       vehicle,
		agreedPrice:   agreedPrice,
		memo:          memo,
		status:        status,
		audit:         audit,
		isConstructed: true,
	}, nil
}

func (d *Dispatch) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDispatchIsNotConstructed
	}
	return nil
}

func (d *Dispatch) ID() kernel.UUID {
	return d.id
}

func (d *Dispatch) ShipmentID() kernel.UUID {
	return d.shipmentID
}

func (d *Dispatch) Counterparty() kernel.Snapshot {
	return d.counterparty
}

// Manager returns the broker manager snapshot or nil when none is assigned.
func (d *Dispatch) Manager() *kernel.Snapshot {
	return d.manager
}

// Driver returns the driver snapshot or nil when the driver was cleared.
func (d *Dispatch) Driver() *kernel.Snapshot {
	return d.driver
}

// DriverPhone is derived from the driver snapshot.
func (d *Dispatch) DriverPhone() string {
	if d.driver == nil {
		return ""
	}
	return d.driver.Phone()
}

func (d *Dispatch) Vehicle() *kernel.Vehicle {
	return d.vehicle
}

func (d *Dispatch) AgreedPrice() decimal.Decimal {
	return d.agreedPrice
}

func (d *Dispatch) Memo() string {
	return d.memo
}

func (d *Dispatch) Status() Status {
	return d.status
}

func (d *Dispatch) Audit() kernel.Audit {
	return d.audit
}

func (d *Dispatch) ChangeCounterparty(s kernel.Snapshot) error {
	if err := requireKind(s, kernel.PartyCompany, "counterparty"); err != nil {
		return err
	}
	d.counterparty = s
	return nil
}

func (d *Dispatch) AssignManager(s kernel.Snapshot) error {
	return d.setManager(&s)
}

func (d *Dispatch) ClearManager() {
	d.manager = nil
}

func (d *Dispatch) AssignDriver(s kernel.Snapshot) error {
	if err := requireKind(s, kernel.PartyDriver, "driver"); err != nil {
		return err
	}
	d.driver = &s
	return nil
}

// ClearDriver drops the driver snapshot and with it the derived phone.
func (d *Dispatch) ClearDriver() {
	d.driver = nil
}

func (d *Dispatch) ChangeVehicle(v kernel.Vehicle) error {
	if v.IsZero() {
		return errs.NewValueIsRequiredError("vehicle")
	}
	d.vehicle = &v
	return nil
}

func (d *Dispatch) ClearVehicle() {
	d.vehicle = nil
}

func (d *Dispatch) ChangePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("agreed price", fmt.Errorf("%s is negative", price))
	}
	d.agreedPrice = price
	return nil
}

func (d *Dispatch) ChangeMemo(memo string) {
	d.memo = strings.TrimSpace(memo)
}

// ChangeStatus moves the dispatch status forward. Callers keep the shipment in step.
func (d *Dispatch) ChangeStatus(target Status) error {
	next, err := d.status.TransitionTo(target)
	if err != nil {
		return err
	}
	d.status = next
	return nil
}

// Touch stamps the audit fields and records which fields an update changed.
func (d *Dispatch) Touch(actor kernel.Actor, now time.Time, changed []string) {
	d.audit = d.audit.Touch(actor, now)
	d.record(EventUpdated, now, map[string]any{
		"fields": changed,
		"status": d.status.String(),
	})
}

// MarkDeleted records the deletion event before the row is removed.
func (d *Dispatch) MarkDeleted(actor kernel.Actor, now time.Time) {
	d.audit = d.audit.Touch(actor, now)
	d.record(EventDeleted, now, map[string]any{"shipmentId": d.shipmentID})
}

func (d *Dispatch) setManager(s *kernel.Snapshot) error {
	if s == nil {
		d.manager = nil
		return nil
	}
	if err := requireKind(*s, kernel.PartyUser, "manager"); err != nil {
		return err
	}
	manager := *s
	d.manager = &manager
	return nil
}

func (d *Dispatch) record(eventType string, at time.Time, payload map[string]any) {
	d.Record(kernel.NewDomainEvent(AggregateType, d.id, eventType, at, payload))
}

func requireKind(s kernel.Snapshot, kind kernel.PartyKind, param string) error {
	if err := s.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	if s.Kind() != kind {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("expected a %s snapshot, got %s", kind, s.Kind()))
	}
	return nil
}
