package services

import (
	"fmt"
	"time"

	"freight/internal/core/domain/model/dispatch"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"
)

// DispatchCoordinator is a domain service that applies dispatch lifecycle changes
// together with the matching shipment flow change.
//
// Business rules:
//   - a dispatch may only be created for a dispatchable, non-canceled shipment,
//     which then moves to dispatched
//   - a dispatch status change advances the shipment through the fixed mapping;
//     unmapped statuses leave the shipment untouched
//   - either both aggregates change or neither does
//   - releasing a dispatch returns the shipment to awaiting-dispatch, unless the
//     shipment is completed or bound to a settlement bundle
type DispatchCoordinator struct{}

func NewDispatchCoordinator() DispatchCoordinator {
	return DispatchCoordinator{}
}

// Assign creates a dispatch for s and marks s as dispatched.
func (c DispatchCoordinator) Assign(
	s *shipment.Shipment,
	dispatchID kernel.UUID,
	assignment dispatch.Assignment,
	actor kernel.Actor,
	now time.Time,
) (*dispatch.Dispatch, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := s.EnsureDispatchable(); err != nil {
		return nil, err
	}

	d, err := dispatch.NewDispatch(dispatchID, s.ID(), assignment, actor, now)
	if err != nil {
		return nil, err
	}

	if err = s.AdvanceTo(shipment.Dispatched, actor, now); err != nil {
		return nil, err
	}
	return d, nil
}

// ChangeStatus moves d to target and advances s to the mapped flow status. Nothing
// changes when either move is refused.
func (c DispatchCoordinator) ChangeStatus(
	s *shipment.Shipment,
	d *dispatch.Dispatch,
	target dispatch.Status,
	actor kernel.Actor,
	now time.Time,
) error {
	if err := c.ensurePair(s, d); err != nil {
		return err
	}
	if _, err := d.Status().TransitionTo(target); err != nil {
		return err
	}

	if flow, ok := target.ShipmentFlow(); ok {
		if err := s.AdvanceTo(flow, actor, now); err != nil {
			return err
		}
	}

	return d.ChangeStatus(target)
}

// Release prepares d for deletion and returns s to the dispatch queue.
func (c DispatchCoordinator) Release(
	s *shipment.Shipment,
	d *dispatch.Dispatch,
	bundled bool,
	actor kernel.Actor,
	now time.Time,
) error {
	if err := c.ensurePair(s, d); err != nil {
		return err
	}
	if bundled {
		return errs.NewInvalidStateError("dispatch", "the shipment is part of a settlement bundle")
	}
	if err := s.ReleaseDispatch(actor, now); err != nil {
		return err
	}
	d.MarkDeleted(actor, now)
	return nil
}

func (c DispatchCoordinator) ensurePair(s *shipment.Shipment, d *dispatch.Dispatch) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}
	if !d.ShipmentID().IsEqual(s.ID()) {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipment",
			fmt.Errorf("dispatch %s belongs to shipment %s, not %s", d.ID(), d.ShipmentID(), s.ID()),
		)
	}
	return nil
}
