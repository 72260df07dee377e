package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"

	"github.com/shopspring/decimal"
)

// EligibilityFilter narrows the settlement-eligible pool. Zero values match everything.
type EligibilityFilter struct {
	CounterpartyID *kernel.UUID
	From           *time.Time
	To             *time.Time
	VehicleType    string
	VehicleNumber  string
	MinTonnage     *decimal.Decimal
	MaxTonnage     *decimal.Decimal
	// Search matches shipment ids, addresses and the counterparty name, case-insensitively.
	Search string
}

type Page struct {
	Limit  int
	Offset int
}

// EligibleSummary aggregates the whole filtered pool, not just one page.
type EligibleSummary struct {
	Count  int64
	Charge decimal.Decimal
	Cost   decimal.Decimal
	Profit decimal.Decimal
}

// EligibleItemRepository projects settlement-eligible items out of shipments and
// dispatches. An item is eligible while its shipment is settle-eligible, not
// canceled, dispatched and not a member of a bundle of the requested direction.
type EligibleItemRepository interface {
	// List returns one page ordered by date, then shipment id.
	List(ctx context.Context, direction settlement.Direction, filter EligibilityFilter, page Page) ([]settlement.EligibleItem, error)

	// Summarize aggregates the filtered pool in a single query.
	Summarize(ctx context.Context, direction settlement.Direction, filter EligibilityFilter) (EligibleSummary, error)

	// Find returns the requested items that are eligible, treating members of
	// exceptBundle as unbound. The shipment rows are locked until the transaction ends.
	// Ids that are not eligible are simply absent from the result.
	Find(
		ctx context.Context,
		direction settlement.Direction,
		ids []kernel.UUID,
		exceptBundle *kernel.UUID,
	) ([]settlement.EligibleItem, error)
}
