package kernel

import (
	"errors"
	"strings"
	"time"

	"freight/internal/pkg/errs"
)

// Place is a pickup or delivery stop as written on the shipment.
type Place struct {
	address      string
	contactName  string
	contactPhone string
	scheduledAt  time.Time
}

func NewPlace(address, contactName, contactPhone string, scheduledAt time.Time) (Place, error) {
	address = strings.TrimSpace(address)

	var errAddress, errDate error
	if address == "" {
		errAddress = errs.NewValueIsRequiredError("address")
	}
	if scheduledAt.IsZero() {
		errDate = errs.NewValueIsRequiredError("scheduled date")
	}
	if err := errors.Join(errAddress, errDate); err != nil {
		return Place{}, err
	}

	return Place{
		address:      address,
		contactName:  strings.TrimSpace(contactName),
		contactPhone: strings.TrimSpace(contactPhone),
		scheduledAt:  scheduledAt.UTC(),
	}, nil
}

func (p Place) Address() string {
	return p.address
}

func (p Place) ContactName() string {
	return p.contactName
}

func (p Place) ContactPhone() string {
	return p.contactPhone
}

func (p Place) ScheduledAt() time.Time {
	return p.scheduledAt
}

func (p Place) IsZero() bool {
	return p.address == ""
}
