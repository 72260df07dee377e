package queries

import (
	"context"
	"log/slog"

	"freight/internal/core/ports"
)

// ListSettlementEligibleQueryHandler reads the page from storage and the aggregates
// through the eligibility cache when one is configured. Cache failures fall back to
// storage; they never fail the query.
type ListSettlementEligibleQueryHandler struct {
	items  ports.EligibleItemRepository
	cache  ports.EligibilityCache
	logger *slog.Logger
}

// NewListSettlementEligibleQueryHandler accepts a nil cache.
func NewListSettlementEligibleQueryHandler(
	items ports.EligibleItemRepository,
	cache ports.EligibilityCache,
	logger *slog.Logger,
) ListSettlementEligibleQueryHandler {
	return ListSettlementEligibleQueryHandler{
		items:  items,
		cache:  cache,
		logger: logger.With("component", "list_settlement_eligible"),
	}
}

func (h ListSettlementEligibleQueryHandler) Handle(
	ctx context.Context,
	query ListSettlementEligibleQuery,
) (ListSettlementEligibleQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListSettlementEligibleQueryResponse{}, err
	}

	items, err := h.items.List(ctx, query.Direction(), query.Filter(), query.Page())
	if err != nil {
		return ListSettlementEligibleQueryResponse{}, err
	}

	summary, err := h.summary(ctx, query)
	if err != nil {
		return ListSettlementEligibleQueryResponse{}, err
	}

	direction := query.Direction()
	views := make([]EligibleItemView, 0, len(items))
	for _, item := range items {
		views = append(views, EligibleItemView{
			EligibleItem:     item,
			CounterpartyID:   item.CounterpartyID(direction),
			CounterpartyName: item.CounterpartyName(direction),
			Amount:           item.Amount(direction),
			Profit:           item.Profit(),
		})
	}

	return ListSettlementEligibleQueryResponse{
		Items:   views,
		Total:   summary.Count,
		Summary: summary,
	}, nil
}

// summary stores a freshly computed value only under the key its own lookup
// resolved to; a failed lookup skips the write.
func (h ListSettlementEligibleQueryHandler) summary(ctx context.Context, query ListSettlementEligibleQuery) (ports.EligibleSummary, error) {
	var key ports.SummaryKey
	if h.cache != nil {
		cached, k, ok, err := h.cache.GetSummary(ctx, query.Direction(), query.Filter())
		if err != nil {
			h.logger.WarnContext(ctx, "eligibility cache read failed", "direction", query.Direction().String(), "error", err)
		} else if ok {
			return cached, nil
		} else {
			key = k
		}
	}

	summary, err := h.items.Summarize(ctx, query.Direction(), query.Filter())
	if err != nil {
		return ports.EligibleSummary{}, err
	}

	if key != "" {
		if err = h.cache.PutSummary(ctx, key, summary); err != nil {
			h.logger.WarnContext(ctx, "eligibility cache write failed", "direction", query.Direction().String(), "error", err)
		}
	}
	return summary, nil
}
