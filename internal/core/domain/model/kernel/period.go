package kernel

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/pkg/errs"
)

// Period is an inclusive date range.
type Period struct {
	start time.Time
	end   time.Time
}

func NewPeriod(start, end time.Time) (Period, error) {
	var errStart, errEnd error
	if start.IsZero() {
		errStart = errs.NewValueIsRequiredError("period start")
	}
	if end.IsZero() {
		errEnd = errs.NewValueIsRequiredError("period end")
	}
	if err := errors.Join(errStart, errEnd); err != nil {
		return Period{}, err
	}
	if end.Before(start) {
		return Period{}, errs.NewValueIsInvalidErrorWithCause(
			"period",
			fmt.Errorf("end %s is before start %s", end.Format(time.DateOnly), start.Format(time.DateOnly)),
		)
	}
	return Period{start: start.UTC(), end: end.UTC()}, nil
}

// PeriodCovering returns the smallest period containing every date.
func PeriodCovering(dates ...time.Time) (Period, error) {
	if len(dates) == 0 {
		return Period{}, errs.NewValueIsRequiredError("period dates")
	}
	start, end := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(start) {
			start = d
		}
		if d.After(end) {
			end = d
		}
	}
	return NewPeriod(start, end)
}

func (p Period) Start() time.Time {
	return p.start
}

func (p Period) End() time.Time {
	return p.end
}

func (p Period) IsZero() bool {
	return p.start.IsZero()
}
