package commands

import (
	"errors"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/validation"
)

// PartyFields are caller-supplied snapshot fields. They are stored as given and
// never re-read from the directory.
type PartyFields struct {
	ID             kernel.UUID `json:"id" validate:"-"`
	Name           string      `json:"name" validate:"required,max=200"`
	Phone          string      `json:"phone" validate:"max=50"`
	Email          string      `json:"email" validate:"omitempty,email"`
	Address        string      `json:"address" validate:"max=500"`
	BusinessNumber string      `json:"businessNumber" validate:"max=50"`
}

// Snapshot validates the fields and freezes them as a snapshot of kind.
func (p PartyFields) Snapshot(kind kernel.PartyKind) (kernel.Snapshot, error) {
	if err := validation.Struct(p); err != nil {
		return kernel.Snapshot{}, err
	}
	return kernel.NewSnapshot(p.ID, kind, kernel.SnapshotFields{
		Name:           p.Name,
		Phone:          p.Phone,
		Email:          p.Email,
		Address:        p.Address,
		BusinessNumber: p.BusinessNumber,
	})
}

// BundleForm is the descriptive part of a new bundle.
type BundleForm struct {
	Counterparty  PartyFields  `json:"counterparty"`
	Manager       *PartyFields `json:"manager"`
	PeriodStart   *time.Time   `json:"periodStart"`
	PeriodEnd     *time.Time   `json:"periodEnd"`
	TaxExempt     bool         `json:"taxExempt"`
	PaymentMethod string       `json:"paymentMethod" validate:"omitempty,oneof=transfer card cash bill offset"`
	BankName      string       `json:"bankName" validate:"max=100"`
	AccountNumber string       `json:"accountNumber" validate:"max=50"`
	AccountHolder string       `json:"accountHolder" validate:"max=100"`
	DueDate       *time.Time   `json:"dueDate"`
	Memo          string       `json:"memo" validate:"max=2000"`
}

func (f BundleForm) settlementForm() (settlement.Form, error) {
	if err := validation.Struct(f); err != nil {
		return settlement.Form{}, err
	}

	counterparty, errCounterparty := f.Counterparty.Snapshot(kernel.PartyCompany)
	if errCounterparty != nil {
		errCounterparty = errs.NewValueIsInvalidErrorWithCause("counterparty", errCounterparty)
	}

	var manager *kernel.Snapshot
	var errManager error
	if f.Manager != nil {
		snapshot, err := f.Manager.Snapshot(kernel.PartyUser)
		if err != nil {
			errManager = errs.NewValueIsInvalidErrorWithCause("manager", err)
		} else {
			manager = &snapshot
		}
	}

	period, errPeriod := periodOf(f.PeriodStart, f.PeriodEnd)

	if err := errors.Join(errCounterparty, errManager, errPeriod); err != nil {
		return settlement.Form{}, err
	}

	return settlement.Form{
		Counterparty:  counterparty,
		Manager:       manager,
		Period:        period,
		TaxExempt:     f.TaxExempt,
		PaymentMethod: f.PaymentMethod,
		Bank: settlement.BankAccount{
			BankName:      strings.TrimSpace(f.BankName),
			AccountNumber: strings.TrimSpace(f.AccountNumber),
			AccountHolder: strings.TrimSpace(f.AccountHolder),
		},
		DueDate: f.DueDate,
		Memo:    f.Memo,
	}, nil
}

// periodOf returns nil when neither bound is given so the period is derived from the items.
func periodOf(start, end *time.Time) (*kernel.Period, error) {
	if start == nil && end == nil {
		return nil, nil
	}
	if start == nil || end == nil {
		return nil, errs.NewValueIsRequiredError("period needs both start and end")
	}
	period, err := kernel.NewPeriod(*start, *end)
	if err != nil {
		return nil, err
	}
	return &period, nil
}
