package dispatch

import (
	"fmt"

	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota
	Assigned
	Loading
	Loaded
	InTransit
	Unloaded
	Completed
	Settled
)

var statusNames = map[Status]string{
	Assigned:  "assigned",
	Loading:   "loading",
	Loaded:    "loaded",
	InTransit: "in-transit",
	Unloaded:  "unloaded",
	Completed: "completed",
	Settled:   "settled",
}

// shipmentFlow is the fixed mapping used to keep the shipment in step with its dispatch.
// Settled has no entry and leaves the shipment untouched.
var shipmentFlow = map[Status]shipment.FlowStatus{
	Assigned:  shipment.Dispatched,
	Loading:   shipment.AwaitingLoad,
	Loaded:    shipment.Loaded,
	InTransit: shipment.InTransit,
	Unloaded:  shipment.Unloaded,
	Completed: shipment.Completed,
}

func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("dispatch status", fmt.Errorf("%q is not a valid dispatch status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("dispatch status", fmt.Errorf("%d is not a valid dispatch status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// ShipmentFlow returns the shipment flow status that accompanies s, if any.
func (s Status) ShipmentFlow() (shipment.FlowStatus, bool) {
	flow, ok := shipmentFlow[s]
	return flow, ok
}

// TransitionTo validates a move to target. Moving to the current status is a no-op.
// Forward moves may skip steps, except that only a completed dispatch can be settled.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if target < s {
		return Unknown, errs.NewInvalidStateError(
			"dispatch",
			fmt.Sprintf("status cannot move back from %s to %s", s, target),
		)
	}
	if target == Settled && s < Completed {
		return Unknown, errs.NewInvalidStateError(
			"dispatch",
			fmt.Sprintf("status cannot move from %s to %s before completion", s, target),
		)
	}
	return target, nil
}
