package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetBundleQueryIsNotConstructed = errors.New(
	"GetBundleQuery must be created via NewGetBundleQuery constructor",
)

// GetBundleQuery reads one bundle of the given direction. A bundle of the other
// direction is not found.
type GetBundleQuery struct {
	direction settlement.Direction
	bundleID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetBundleQuery(direction settlement.Direction, bundleID kernel.UUID) (GetBundleQuery, error) {
	if err := errors.Join(direction.Validate(), bundleID.Validate()); err != nil {
		return GetBundleQuery{}, err
	}
	return GetBundleQuery{
		direction: direction,
		bundleID:  bundleID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetBundleQuery) Direction() settlement.Direction {
	return q.direction
}

func (q GetBundleQuery) BundleID() kernel.UUID {
	return q.bundleID
}

func (q GetBundleQuery) Validate() error {
	return q.guard.Validate(ErrGetBundleQueryIsNotConstructed)
}

type AdjustmentView struct {
	ID          kernel.UUID
	ItemID      *kernel.UUID
	Amount      decimal.Decimal
	Category    settlement.Category
	Description string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedBy   string
	UpdatedAt   time.Time
}

type BundleItemView struct {
	ID              kernel.UUID
	DispatchID      kernel.UUID
	CounterpartyID  kernel.UUID
	Charge          decimal.Decimal
	Cost            decimal.Decimal
	Amount          decimal.Decimal
	Date            time.Time
	Adjustments     []AdjustmentView
	AdjustmentTotal decimal.Decimal
}

type RevisionView struct {
	At     time.Time
	Actor  string
	Reason string
	Fields []string
}

type GetBundleQueryResponse struct {
	ID            kernel.UUID
	Direction     settlement.Direction
	Status        settlement.Status
	Counterparty  kernel.Snapshot
	Manager       *kernel.Snapshot
	PeriodStart   time.Time
	PeriodEnd     time.Time
	TaxExempt     bool
	TaxRate       decimal.Decimal
	PaymentMethod string
	Bank          settlement.BankAccount
	DueDate       *time.Time
	Memo          string
	Items         []BundleItemView
	Adjustments   []AdjustmentView
	Revisions     []RevisionView
	Totals        settlement.Totals
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedBy     string
	UpdatedAt     time.Time
}
