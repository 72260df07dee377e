package ports

import (
	"context"

	"freight/internal/core/domain/model/settlement"
)

// SummaryKey names the cache slot a lookup resolved to. A summary computed after a
// miss is stored under the key of that lookup, so an invalidation that happens in
// between leaves the stored value unreachable.
type SummaryKey string

// EligibilityCache keeps EligibleSummary values per direction and filter.
// It only ever serves reads; uniqueness decisions never consult it.
type EligibilityCache interface {
	// GetSummary reports false on a miss. The key is returned on hits and misses.
	GetSummary(ctx context.Context, direction settlement.Direction, filter EligibilityFilter) (EligibleSummary, SummaryKey, bool, error)
	PutSummary(ctx context.Context, key SummaryKey, summary EligibleSummary) error
	// Invalidate drops every cached summary of the given directions.
	Invalidate(ctx context.Context, directions ...settlement.Direction) error
}
