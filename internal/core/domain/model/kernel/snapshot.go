package kernel

import (
	"errors"
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrSnapshotIsNotConstructed = errors.New("Snapshot must be created via NewSnapshot constructor")

// PartyKind tells which directory collection a snapshot was taken from.
type PartyKind int

const (
	PartyUnknown PartyKind = iota
	PartyCompany
	PartyUser
	PartyDriver
)

func (k PartyKind) String() string {
	switch k {
	case PartyCompany:
		return "company"
	case PartyUser:
		return "user"
	case PartyDriver:
		return "driver"
	case PartyUnknown:
		return "unknown"
	}
	return "unknown"
}

func (k PartyKind) Validate() error {
	if k < PartyCompany || k > PartyDriver {
		return errs.NewValueIsInvalidErrorWithCause("party kind", fmt.Errorf("%d is not a valid party kind", k))
	}
	return nil
}

// SnapshotFields are the display fields copied from the directory. Only Name is mandatory.
type SnapshotFields struct {
	Name           string
	Phone          string
	Email          string
	Address        string
	BusinessNumber string
}

// Snapshot is an immutable copy of a company, user or driver as seen at reference time.
type Snapshot struct {
	id     UUID
	kind   PartyKind
	fields SnapshotFields

	guard guard.ConstructorGuard
}

func NewSnapshot(id UUID, kind PartyKind, fields SnapshotFields) (Snapshot, error) {
	fields.Name = strings.TrimSpace(fields.Name)

	if err := errors.Join(
		id.Validate(),
		kind.Validate(),
		requireName(fields.Name),
	); err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		id:     id,
		kind:   kind,
		fields: fields,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func requireName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("snapshot name")
	}
	return nil
}

func (s Snapshot) Validate() error {
	return s.guard.Validate(ErrSnapshotIsNotConstructed)
}

func (s Snapshot) IsZero() bool {
	return s.id.IsZero()
}

func (s Snapshot) ID() UUID {
	return s.id
}

func (s Snapshot) Kind() PartyKind {
	return s.kind
}

func (s Snapshot) Name() string {
	return s.fields.Name
}

func (s Snapshot) Phone() string {
	return s.fields.Phone
}

func (s Snapshot) Email() string {
	return s.fields.Email
}

func (s Snapshot) Address() string {
	return s.fields.Address
}

func (s Snapshot) BusinessNumber() string {
	return s.fields.BusinessNumber
}

func (s Snapshot) Fields() SnapshotFields {
	return s.fields
}

func (s Snapshot) Equal(other Snapshot) bool {
	return s.id.IsEqual(other.id) && s.kind == other.kind && s.fields == other.fields
}
