package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const AggregateType = "shipment"

const (
	EventRegistered  = "shipment.registered"
	EventAccepted    = "shipment.accepted"
	EventCanceled    = "shipment.canceled"
	EventFlowChanged = "shipment.flow_changed"
)

var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

// Details are the caller-supplied parts of a shipment. They do not change after registration.
type Details struct {
	Pickup      kernel.Place
	Delivery    kernel.Place
	Cargo       string
	VehicleType string
	Tonnage     decimal.Decimal
	Charge      decimal.Decimal
}

func (d Details) validate() error {
	var errPickup, errDelivery, errCharge, errTonnage error
	if d.Pickup.IsZero() {
		errPickup = errs.NewValueIsRequiredError("pickup")
	}
	if d.Delivery.IsZero() {
		errDelivery = errs.NewValueIsRequiredError("delivery")
	}
	if d.Charge.IsNegative() {
		errCharge = errs.NewValueIsInvalidErrorWithCause("charge", fmt.Errorf("%s is negative", d.Charge))
	}
	if d.Tonnage.IsNegative() {
		errTonnage = errs.NewValueIsInvalidErrorWithCause("tonnage", fmt.Errorf("%s is negative", d.Tonnage))
	}
	return errors.Join(errPickup, errDelivery, errCharge, errTonnage)
}

// Shipment is the aggregate root for a transport request.
//
// Invariants:
//   - the owner snapshot is frozen at registration
//   - flow status never decreases except through ReleaseDispatch
//   - a canceled shipment cannot be dispatched or advanced
type Shipment struct {
	id         kernel.UUID
	owner      kernel.Snapshot
	details    Details
	flowStatus FlowStatus
	canceledAt *time.Time
	audit      kernel.Audit

	kernel.Events
	isConstructed bool
}

// NewShipment registers a shipment in the Requested status.
func NewShipment(
	id kernel.UUID,
	owner kernel.Snapshot,
	details Details,
	actor kernel.Actor,
	now time.Time,
) (*Shipment, error) {
	details.Cargo = strings.TrimSpace(details.Cargo)
	details.VehicleType = strings.TrimSpace(details.VehicleType)

	if err := errors.Join(
		id.Validate(),
		owner.Validate(),
		details.validate(),
		actor.Validate(),
	); err != nil {
		return nil, err
	}

	s := &Shipment{
		id:            id,
		owner:         owner,
		details:       details,
		flowStatus:    Requested,
		audit:         kernel.NewAudit(actor, now),
		isConstructed: true,
	}
	s.record(EventRegistered, now, map[string]any{
		"ownerId": owner.ID(),
		"charge":  details.Charge.String(),
	})
	return s, nil
}

// RestoreShipment rebuilds a persisted shipment without recording events.
func RestoreShipment(
	id kernel.UUID,
	owner kernel.Snapshot,
	details Details,
	flowStatus FlowStatus,
	canceledAt *time.Time,
	audit kernel.Audit,
) (*Shipment, error) {
	if err := errors.Join(id.Validate(), flowStatus.Validate()); err != nil {
		return nil, err
	}

	return &Shipment{
		id:            id,
		owner:         owner,
		details:       details,
		flowStatus:    flowStatus,
		canceledAt:    canceledAt,
		audit:         audit,
		isConstructed: true,
	}, nil
}

func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

func (s *Shipment) ID() kernel.UUID {
	return s.id
}

func (s *Shipment) Owner() kernel.Snapshot {
	return s.owner
}

func (s *Shipment) Details() Details {
	return s.details
}

func (s *Shipment) FlowStatus() FlowStatus {
	return s.flowStatus
}

func (s *Shipment) IsCanceled() bool {
	return s.canceledAt != nil
}

func (s *Shipment) CanceledAt() *time.Time {
	return s.canceledAt
}

func (s *Shipment) Audit() kernel.Audit {
	return s.audit
}

// PickupDate is the date settlement uses for the shipment.
func (s *Shipment) PickupDate() time.Time {
	return s.details.Pickup.ScheduledAt()
}

func (s *Shipment) Accept(actor kernel.Actor, now time.Time) error {
	if err := s.ensureActive(); err != nil {
		return err
	}
	next, err := s.flowStatus.Accept()
	if err != nil {
		return err
	}
	s.flowStatus = next
	s.audit = s.audit.Touch(actor, now)
	s.record(EventAccepted, now, nil)
	return nil
}

// Cancel sets the cancellation flag. Completed and already canceled shipments are refused.
func (s *Shipment) Cancel(actor kernel.Actor, now time.Time) error {
	if s.IsCanceled() {
		return errs.NewInvalidStateError("shipment", "shipment is already canceled")
	}
	if s.flowStatus == Completed {
		return errs.NewInvalidStateError("shipment", "completed shipments cannot be canceled")
	}
	at := now
	s.canceledAt = &at
	s.audit = s.audit.Touch(actor, now)
	s.record(EventCanceled, now, map[string]any{"flowStatus": s.flowStatus.String()})
	return nil
}

// EnsureDispatchable returns InvalidState when a new dispatch must not be created.
func (s *Shipment) EnsureDispatchable() error {
	if s.IsCanceled() {
		return errs.NewInvalidStateError("shipment", "canceled shipments cannot be dispatched")
	}
	if !s.flowStatus.IsDispatchable() {
		return errs.NewInvalidStateError(
			"shipment",
			fmt.Sprintf("flow status %s is past %s", s.flowStatus, AwaitingDispatch),
		)
	}
	return nil
}

// AdvanceTo moves the flow status forward to target.
func (s *Shipment) AdvanceTo(target FlowStatus, actor kernel.Actor, now time.Time) error {
	if err := s.ensureActive(); err != nil {
		return err
	}
	next, err := s.flowStatus.AdvanceTo(target)
	if err != nil {
		return err
	}
	if next == s.flowStatus {
		return nil
	}
	from := s.flowStatus
	s.flowStatus = next
	s.audit = s.audit.Touch(actor, now)
	s.record(EventFlowChanged, now, map[string]any{"from": from.String(), "to": next.String()})
	return nil
}

// ReleaseDispatch returns the shipment to AwaitingDispatch after its dispatch is deleted.
func (s *Shipment) ReleaseDispatch(actor kernel.Actor, now time.Time) error {
	if s.flowStatus == Completed {
		return errs.NewInvalidStateError("shipment", "completed shipments keep their dispatch")
	}
	from := s.flowStatus
	s.flowStatus = AwaitingDispatch
	s.audit = s.audit.Touch(actor, now)
	s.record(EventFlowChanged, now, map[string]any{"from": from.String(), "to": AwaitingDispatch.String()})
	return nil
}

func (s *Shipment) ensureActive() error {
	if s.IsCanceled() {
		return errs.NewInvalidStateError("shipment", "shipment is canceled")
	}
	return nil
}

func (s *Shipment) record(eventType string, at time.Time, payload map[string]any) {
	s.Record(kernel.NewDomainEvent(AggregateType, s.id, eventType, at, payload))
}
