package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
)

// PartyDirectory resolves companies, users and drivers into snapshots.
type PartyDirectory interface {
	// Resolve returns errs.ErrObjectNotFound when no party of that kind has the id.
	Resolve(ctx context.Context, kind kernel.PartyKind, id kernel.UUID) (kernel.Snapshot, error)
}
