package commands

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// resolveParty snapshots a directory entry. An id the directory does not know is an
// invalid reference, not a missing object of this operation.
func resolveParty(
	ctx context.Context,
	directory ports.PartyDirectory,
	kind kernel.PartyKind,
	id kernel.UUID,
	param string,
) (kernel.Snapshot, error) {
	snapshot, err := directory.Resolve(ctx, kind, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.Snapshot{}, errs.NewInvalidReferenceErrorWithCause(param, id, err)
	}
	if err != nil {
		return kernel.Snapshot{}, err
	}
	return snapshot, nil
}
