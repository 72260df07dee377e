package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/settlement"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBundleLifecycleCommandHandlers(t *testing.T) {
	ctx := t.Context()
	f := newBundleFixture(t)
	w := f.w
	b := f.bundle(t)

	matching, err := commands.NewRequestBundleMatchingCommand(b.ID(), f.actor)
	require.NoError(t, err)
	complete, err := commands.NewCompleteBundleCommand(b.ID(), f.actor)
	require.NoError(t, err)

	w.uow.On("Begin", mock.Anything).Return(nil).Times(3)
	w.bundles.On("GetForUpdate", mock.Anything, b.ID()).Return(b, nil).Times(3)
	w.bundles.On("Update", mock.Anything, b).Return(nil).Twice()
	w.uow.On("Commit", mock.Anything).Return(nil).Twice()

	completeHandler := commands.NewCompleteBundleCommandHandler(w.bundleFactory, settlement.Receivable, clk)
	_, err = completeHandler.Handle(ctx, complete)
	assert.Equal(t, errs.KindInvalidState, errs.KindOf(err), "draft bundles cannot complete")

	result, err := commands.NewRequestBundleMatchingCommandHandler(w.bundleFactory, settlement.Receivable, clk).
		Handle(ctx, matching)
	require.NoError(t, err)
	assert.Equal(t, settlement.Matching, result.Status)

	result, err = completeHandler.Handle(ctx, complete)
	require.NoError(t, err)
	assert.Equal(t, settlement.Completed, result.Status)
	requireAmount(t, 165000, result.Totals.Grand)
	w.assertExpectations(t)
}

func TestDeleteBundleCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	f := newBundleFixture(t)
	w := f.w
	b := f.bundle(t)
	b.PullEvents()

	cmd, err := commands.NewDeleteBundleCommand(b.ID(), f.actor)
	require.NoError(t, err)

	w.begins()
	w.bundles.On("GetForUpdate", mock.Anything, b.ID()).Return(b, nil).Once()
	w.bundles.On("Delete", mock.Anything, b).Return(nil).Once()
	w.commits()

	h := commands.NewDeleteBundleCommandHandler(w.bundleFactory, settlement.Receivable, clk)
	require.NoError(t, h.Handle(ctx, cmd))

	events := b.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, settlement.EventDeleted, events[0].Type)
	w.assertExpectations(t)
}
