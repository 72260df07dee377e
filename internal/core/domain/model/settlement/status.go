package settlement

import (
	"fmt"

	"freight/internal/pkg/errs"
)

type Status int

const (
	StatusUnknown Status = iota
	Draft
	Matching
	Completed
)

var statusNames = map[Status]string{
	Draft:     "draft",
	Matching:  "matching",
	Completed: "completed",
}

func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("bundle status", fmt.Errorf("%q is not a valid bundle status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("bundle status", fmt.Errorf("%d is not a valid bundle status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsEditable reports whether fields, members and adjustments may still change.
func (s Status) IsEditable() bool {
	return s == Draft || s == Matching
}

func (s Status) RequestMatching() (Status, error) {
	if s != Draft {
		return StatusUnknown, errs.NewInvalidStateError(
			"bundle",
			fmt.Sprintf("only draft bundles can enter matching, status is %s", s),
		)
	}
	return Matching, nil
}

func (s Status) Complete() (Status, error) {
	if s != Matching {
		return StatusUnknown, errs.NewInvalidStateError(
			"bundle",
			fmt.Sprintf("only bundles in matching can be completed, status is %s", s),
		)
	}
	return Completed, nil
}
