package settlement

import (
	"errors"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Category is a free-form adjustment tag. The constants are the tags the back office offers.
type Category string

const (
	CategoryWaitingFee     Category = "waiting-fee"
	CategoryDetourFee      Category = "detour-fee"
	CategoryRoundTripFee   Category = "round-trip-fee"
	CategoryUnloadingFee   Category = "unloading-fee"
	CategoryManualLaborFee Category = "manual-labor-fee"
	CategoryOther          Category = "other"
	CategoryDiscount       Category = "discount"
)

// Scope tells whether an adjustment applies to the whole bundle or to one member item.
type Scope int

const (
	ScopeUnknown Scope = iota
	ScopeBundle
	ScopeItem
)

// AdjustmentInput is what a caller supplies when adding or editing an adjustment.
type AdjustmentInput struct {
	Amount      decimal.Decimal
	Category    Category
	Description string
}

func (in AdjustmentInput) normalize() (AdjustmentInput, error) {
	in.Category = Category(strings.TrimSpace(string(in.Category)))
	in.Description = strings.TrimSpace(in.Description)

	var errAmount, errCategory error
	if in.Amount.IsZero() {
		errAmount = errs.NewValueIsInvalidError("adjustment amount")
	}
	if in.Category == "" {
		errCategory = errs.NewValueIsRequiredError("adjustment category")
	}
	return in, errors.Join(errAmount, errCategory)
}

// Adjustment is a signed amount; negative values are discounts.
// ItemID is set for item-scoped adjustments and holds the member's shipment id.
type Adjustment struct {
	id          kernel.UUID
	scope       Scope
	itemID      *kernel.UUID
	amount      decimal.Decimal
	category    Category
	description string
	audit       kernel.Audit
}

func newAdjustment(id kernel.UUID, scope Scope, itemID *kernel.UUID, in AdjustmentInput, actor kernel.Actor, now time.Time) (*Adjustment, error) {
	in, err := in.normalize()
	if err = errors.Join(id.Validate(), err); err != nil {
		return nil, err
	}
	return &Adjustment{
		id:          id,
		scope:       scope,
		itemID:      itemID,
		amount:      in.Amount,
		category:    in.Category,
		description: in.Description,
		audit:       kernel.NewAudit(actor, now),
	}, nil
}

// RestoreAdjustment rebuilds a persisted adjustment.
func RestoreAdjustment(
	id kernel.UUID,
	itemID *kernel.UUID,
	amount decimal.Decimal,
	category Category,
	description string,
	audit kernel.Audit,
) Adjustment {
	scope := ScopeBundle
	if itemID != nil {
		scope = ScopeItem
	}
	return Adjustment{
		id:          id,
		scope:       scope,
		itemID:      itemID,
		amount:      amount,
		category:    category,
		description: description,
		audit:       audit,
	}
}

func (a *Adjustment) edit(in AdjustmentInput, actor kernel.Actor, now time.Time) error {
	in, err := in.normalize()
	if err != nil {
		return err
	}
	a.amount = in.Amount
	a.category = in.Category
	a.description = in.Description
	a.audit = a.audit.Touch(actor, now)
	return nil
}

func (a Adjustment) ID() kernel.UUID {
	return a.id
}

func (a Adjustment) Scope() Scope {
	return a.scope
}

// ItemID returns the owning member's shipment id, or nil for bundle-wide adjustments.
func (a Adjustment) ItemID() *kernel.UUID {
	return a.itemID
}

func (a Adjustment) Amount() decimal.Decimal {
	return a.amount
}

func (a Adjustment) Category() Category {
	return a.category
}

func (a Adjustment) Description() string {
	return a.description
}

func (a Adjustment) Audit() kernel.Audit {
	return a.audit
}

func sumAdjustments(adjustments []*Adjustment) decimal.Decimal {
	total := decimal.Zero
	for _, a := range adjustments {
		total = total.Add(a.amount)
	}
	return total
}
