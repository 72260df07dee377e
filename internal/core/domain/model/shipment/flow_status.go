package shipment

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// FlowStatus is the shipment's position in its physical-fulfillment lifecycle.
// Values are ordered; a larger value is further along.
type FlowStatus int

const (
	FlowUnknown FlowStatus = iota
	Requested
	AwaitingDispatch
	Dispatched
	AwaitingLoad
	Loaded
	InTransit
	Unloaded
	Completed
)

var flowStatusNames = map[FlowStatus]string{
	Requested:        "requested",
	AwaitingDispatch: "awaiting-dispatch",
	Dispatched:       "dispatched",
	AwaitingLoad:     "awaiting-load",
	Loaded:           "loaded",
	InTransit:        "in-transit",
	Unloaded:         "unloaded",
	Completed:        "completed",
}

// ParseFlowStatus reads the string form produced by String.
func ParseFlowStatus(s string) (FlowStatus, error) {
	for status, name := range flowStatusNames {
		if name == s {
			return status, nil
		}
	}
	return FlowUnknown, errs.NewValueIsInvalidErrorWithCause("flow status", fmt.Errorf("%q is not a valid flow status", s))
}

func (s FlowStatus) Validate() error {
	if _, ok := flowStatusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("flow status", fmt.Errorf("%d is not a valid flow status", s))
	}
	return nil
}

func (s FlowStatus) String() string {
	if name, ok := flowStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// SettleEligibleStatuses lists the flow statuses whose shipments may be settled.
func SettleEligibleStatuses() []FlowStatus {
	return []FlowStatus{Completed}
}

func (s FlowStatus) IsSettleEligible() bool {
	for _, eligible := range SettleEligibleStatuses() {
		if s == eligible {
			return true
		}
	}
	return false
}

// IsDispatchable reports whether a dispatch may still be created in this status.
func (s FlowStatus) IsDispatchable() bool {
	return s == Requested || s == AwaitingDispatch
}

// AdvanceTo returns target when it does not move the status backwards.
// Staying in place is allowed so repeated updates are idempotent.
func (s FlowStatus) AdvanceTo(target FlowStatus) (FlowStatus, error) {
	if err := target.Validate(); err != nil {
		return FlowUnknown, err
	}
	if target < s {
		return FlowUnknown, errs.NewInvalidStateError(
			"shipment",
			fmt.Sprintf("flow status cannot move back from %s to %s", s, target),
		)
	}
	return target, nil
}

// Accept moves a freshly requested shipment into the dispatch queue.
func (s FlowStatus) Accept() (FlowStatus, error) {
	if s != Requested {
		return FlowUnknown, errs.NewInvalidStateError(
			"shipment",
			fmt.Sprintf("only requested shipments can be accepted, status is %s", s),
		)
	}
	return AwaitingDispatch, nil
}
