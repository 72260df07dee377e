package commands

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"
	"freight/internal/pkg/clock"
)

type RequestBundleMatchingCommandHandler struct {
	uowFactory BundleUoWFactory
	direction  settlement.Direction
	clock      clock.Clock
}

func NewRequestBundleMatchingCommandHandler(
	uowFactory BundleUoWFactory,
	direction settlement.Direction,
	clk clock.Clock,
) RequestBundleMatchingCommandHandler {
	return RequestBundleMatchingCommandHandler{uowFactory: uowFactory, direction: direction, clock: clk}
}

// Handle fails with errs.ErrInvalidState unless the bundle is a draft.
func (h RequestBundleMatchingCommandHandler) Handle(ctx context.Context, cmd RequestBundleMatchingCommand) (BundleResult, error) {
	if err := cmd.Validate(); err != nil {
		return BundleResult{}, err
	}
	return changeBundle(ctx, h.uowFactory, h.direction, cmd.BundleID(), func(b *settlement.Bundle) error {
		return b.RequestMatching(cmd.Actor(), h.clock.Now())
	})
}

type CompleteBundleCommandHandler struct {
	uowFactory BundleUoWFactory
	direction  settlement.Direction
	clock      clock.Clock
}

func NewCompleteBundleCommandHandler(
	uowFactory BundleUoWFactory,
	direction settlement.Direction,
	clk clock.Clock,
) CompleteBundleCommandHandler {
	return CompleteBundleCommandHandler{uowFactory: uowFactory, direction: direction, clock: clk}
}

// Handle fails with errs.ErrInvalidState unless the bundle is in matching.
func (h CompleteBundleCommandHandler) Handle(ctx context.Context, cmd CompleteBundleCommand) (BundleResult, error) {
	if err := cmd.Validate(); err != nil {
		return BundleResult{}, err
	}
	return changeBundle(ctx, h.uowFactory, h.direction, cmd.BundleID(), func(b *settlement.Bundle) error {
		return b.Complete(cmd.Actor(), h.clock.Now())
	})
}

type DeleteBundleCommandHandler struct {
	uowFactory BundleUoWFactory
	direction  settlement.Direction
	clock      clock.Clock
}

func NewDeleteBundleCommandHandler(
	uowFactory BundleUoWFactory,
	direction settlement.Direction,
	clk clock.Clock,
) DeleteBundleCommandHandler {
	return DeleteBundleCommandHandler{uowFactory: uowFactory, direction: direction, clock: clk}
}

// Handle deletes bundles in any status.
func (h DeleteBundleCommandHandler) Handle(ctx context.Context, cmd DeleteBundleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.BundleRepository()
	b, err := getBundle(ctx, repo, h.direction, cmd.BundleID())
	if err != nil {
		return err
	}

	b.MarkDeleted(cmd.Actor(), h.clock.Now())
	if err = repo.Delete(ctx, b); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// changeBundle loads a bundle, applies change and stores it in one transaction.
func changeBundle(
	ctx context.Context,
	uowFactory BundleUoWFactory,
	direction settlement.Direction,
	id kernel.UUID,
	change func(b *settlement.Bundle) error,
) (BundleResult, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return BundleResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.BundleRepository()
	b, err := getBundle(ctx, repo, direction, id)
	if err != nil {
		return BundleResult{}, err
	}

	if err = change(b); err != nil {
		return BundleResult{}, err
	}

	if err = repo.Update(ctx, b); err != nil {
		return BundleResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return BundleResult{}, err
	}
	return resultOf(b), nil
}
