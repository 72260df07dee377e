package rediscache

import (
	"context"
	"log/slog"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"
)

// Bundle events that never move an item in or out of the eligible pool.
var poolNeutral = map[string]struct{}{
	settlement.EventAdjusted:  {},
	settlement.EventMatching:  {},
	settlement.EventCompleted: {},
}

// InvalidationHook runs after a commit and drops both directions' summaries when
// any committed event may have changed the eligible pool. Failures are logged;
// stale entries still expire through their TTL.
func (c *EligibilityCache) InvalidationHook(logger *slog.Logger) func(ctx context.Context, events []kernel.DomainEvent) {
	logger = logger.With("component", "eligibility_cache")
	return func(ctx context.Context, events []kernel.DomainEvent) {
		if !affectsPool(events) {
			return
		}
		if err := c.Invalidate(ctx, settlement.Receivable, settlement.Payable); err != nil {
			logger.WarnContext(ctx, "eligibility cache invalidation failed", "error", err)
		}
	}
}

func affectsPool(events []kernel.DomainEvent) bool {
	for _, e := range events {
		if _, ok := poolNeutral[e.Type]; !ok {
			return true
		}
	}
	return false
}
