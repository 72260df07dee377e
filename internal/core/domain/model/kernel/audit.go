package kernel

import (
	"errors"
	"strings"
	"time"

	"freight/internal/pkg/errs"
)

// Actor is the authenticated user performing an operation, captured by value.
type Actor struct {
	id   UUID
	name string
}

func NewActor(id UUID, name string) (Actor, error) {
	name = strings.TrimSpace(name)
	var errName error
	if name == "" {
		errName = errs.NewValueIsRequiredError("actor name")
	}
	if err := errors.Join(id.Validate(), errName); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, name: name}, nil
}

func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Name() string {
	return a.name
}

func (a Actor) IsZero() bool {
	return a.id.IsZero()
}

func (a Actor) Validate() error {
	if a.IsZero() {
		return errs.NewValueIsRequiredError("actor")
	}
	return nil
}

// Audit records who created and last changed a record.
type Audit struct {
	createdBy Actor
	createdAt time.Time
	updatedBy Actor
	updatedAt time.Time
}

func NewAudit(actor Actor, at time.Time) Audit {
	return Audit{createdBy: actor, createdAt: at, updatedBy: actor, updatedAt: at}
}

func RestoreAudit(createdBy Actor, createdAt time.Time, updatedBy Actor, updatedAt time.Time) Audit {
	return Audit{createdBy: createdBy, createdAt: createdAt, updatedBy: updatedBy, updatedAt: updatedAt}
}

// Touch returns a copy stamped with the latest change.
func (a Audit) Touch(actor Actor, at time.Time) Audit {
	a.updatedBy = actor
	a.updatedAt = at
	return a
}

func (a Audit) CreatedBy() Actor {
	return a.createdBy
}

func (a Audit) CreatedAt() time.Time {
	return a.createdAt
}

func (a Audit) UpdatedBy() Actor {
	return a.updatedBy
}

func (a Audit) UpdatedAt() time.Time {
	return a.updatedAt
}
