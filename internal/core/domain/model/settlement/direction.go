package settlement

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Direction discriminates receivable bundles (billed to shippers) from payable bundles (paid to carriers).
type Direction int

const (
	DirectionUnknown Direction = iota
	Receivable
	Payable
)

func ParseDirection(s string) (Direction, error) {
	switch s {
	case "receivable":
		return Receivable, nil
	case "payable":
		return Payable, nil
	}
	return DirectionUnknown, errs.NewValueIsInvalidErrorWithCause("direction", fmt.Errorf("%q is not a valid direction", s))
}

func (d Direction) Validate() error {
	if d != Receivable && d != Payable {
		return errs.NewValueIsInvalidErrorWithCause("direction", fmt.Errorf("%d is not a valid direction", d))
	}
	return nil
}

func (d Direction) String() string {
	switch d {
	case Receivable:
		return "receivable"
	case Payable:
		return "payable"
	case DirectionUnknown:
		return "unknown"
	}
	return "unknown"
}
