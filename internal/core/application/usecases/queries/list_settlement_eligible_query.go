package queries

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 500
)

var ErrListSettlementEligibleQueryIsNotConstructed = errors.New(
	"ListSettlementEligibleQuery must be created via NewListSettlementEligibleQuery constructor",
)

// ListSettlementEligibleQuery pages through the items that may still be put into a
// bundle of one direction. A zero Limit selects DefaultPageLimit.
type ListSettlementEligibleQuery struct {
	direction settlement.Direction
	filter    ports.EligibilityFilter
	page      ports.Page

	guard guard.ConstructorGuard
}

func NewListSettlementEligibleQuery(
	direction settlement.Direction,
	filter ports.EligibilityFilter,
	page ports.Page,
) (ListSettlementEligibleQuery, error) {
	var errRange, errLimit, errOffset error
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		errRange = errs.NewValueIsInvalidErrorWithCause("to", fmt.Errorf("%s is before from", filter.To.Format("2006-01-02")))
	}
	if filter.MinTonnage != nil && filter.MaxTonnage != nil && filter.MaxTonnage.LessThan(*filter.MinTonnage) {
		errRange = errors.Join(errRange, errs.NewValueIsInvalidErrorWithCause("maxTonnage", fmt.Errorf("%s is below minTonnage", filter.MaxTonnage)))
	}
	if page.Limit == 0 {
		page.Limit = DefaultPageLimit
	}
	if page.Limit < 0 || page.Limit > MaxPageLimit {
		errLimit = errs.NewValueIsOutOfRangeError("limit", page.Limit, 1, MaxPageLimit)
	}
	if page.Offset < 0 {
		errOffset = errs.NewValueIsInvalidErrorWithCause("offset", fmt.Errorf("%d is negative", page.Offset))
	}
	if err := errors.Join(direction.Validate(), errRange, errLimit, errOffset); err != nil {
		return ListSettlementEligibleQuery{}, err
	}

	return ListSettlementEligibleQuery{
		direction: direction,
		filter:    filter,
		page:      page,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListSettlementEligibleQuery) Direction() settlement.Direction {
	return q.direction
}

func (q ListSettlementEligibleQuery) Filter() ports.EligibilityFilter {
	return q.filter
}

func (q ListSettlementEligibleQuery) Page() ports.Page {
	return q.page
}

func (q ListSettlementEligibleQuery) Validate() error {
	return q.guard.Validate(ErrListSettlementEligibleQueryIsNotConstructed)
}

// EligibleItemView is an eligible item as seen from one direction.
type EligibleItemView struct {
	settlement.EligibleItem
	CounterpartyID   kernel.UUID
	CounterpartyName string
	Amount           decimal.Decimal
	Profit           decimal.Decimal
}

// ListSettlementEligibleQueryResponse carries one page and the aggregates of the
// whole filtered pool. Total is the pool size, not the page size.
type ListSettlementEligibleQueryResponse struct {
	Items   []EligibleItemView
	Total   int64
	Summary ports.EligibleSummary
}
