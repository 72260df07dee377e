package postgres_test

import (
	"context"
	"time"

	postgres_adapter "freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/directoryrepo"
	"freight/internal/adapters/out/postgres/eligiblerepo"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/dispatch"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/patch"

	"github.com/shopspring/decimal"
)

type dispatchUoWFactory struct{ ports.UnitOfWorkFactory }

func (f dispatchUoWFactory) Create() commands.DispatchUoW {
	return f.UnitOfWorkFactory.Create()
}

type bundleUoWFactory struct{ ports.UnitOfWorkFactory }

func (f bundleUoWFactory) Create() commands.BundleUoW {
	return f.UnitOfWorkFactory.Create()
}

type outcome[T any] struct {
	value T
	err   error
}

// hookless keeps commits from other goroutines away from suite.committed.
func (suite *UnitOfWorkIntegrationTestSuite) hookless() ports.UnitOfWorkFactory {
	return postgres_adapter.NewGormUnitOfWorkFactory(suite.db)
}

// waitForLockWaiter blocks until some backend of this database waits on a row lock.
func (suite *UnitOfWorkIntegrationTestSuite) waitForLockWaiter() {
	suite.Require().Eventually(func() bool {
		var waiting int64
		err := suite.db.Raw(
			"SELECT count(*) FROM pg_stat_activity WHERE datname = current_database() AND wait_event_type = 'Lock'",
		).Scan(&waiting).Error
		return err == nil && waiting > 0
	}, 10*time.Second, 20*time.Millisecond)
}

func (suite *UnitOfWorkIntegrationTestSuite) storedDispatch() (*shipment.Shipment, *dispatch.Dispatch) {
	ctx := suite.T().Context()
	owner := suite.seed.Company(suite.T(), "Hanjin Shipping")
	carrier := suite.seed.Company(suite.T(), "Daehan Trucking")
	driver := suite.seed.Driver(suite.T(), "Park Jisung")
	s := suite.seed.Shipment(suite.T(), owner, 150000, 3)
	d := suite.seed.Dispatch(suite.T(), s, carrier, driver, 120000)
	suite.Require().NoError(s.AdvanceTo(shipment.Dispatched, suite.seed.Actor, suite.seed.Now))

	uow := suite.hookless().Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))
	suite.Require().NoError(uow.DispatchRepository().Add(ctx, d))
	suite.Require().NoError(uow.Commit(ctx))
	return s, d
}

func (suite *UnitOfWorkIntegrationTestSuite) storedMatchingBundle() *settlement.Bundle {
	ctx := suite.T().Context()
	shipper := suite.seed.Company(suite.T(), "Hanjin Shipping")
	carrier := suite.seed.Company(suite.T(), "Daehan Trucking")
	driver := suite.seed.Driver(suite.T(), "Park Jisung")
	first, _ := suite.seed.CompletedShipment(suite.T(), shipper, carrier, driver, 100000, 80000, 2)
	second, _ := suite.seed.CompletedShipment(suite.T(), shipper, carrier, driver, 50000, 40000, 5)

	items, err := eligiblerepo.NewGormEligibleItemRepository(suite.db).
		Find(ctx, settlement.Receivable, []kernel.UUID{first.ID(), second.ID()}, nil)
	suite.Require().NoError(err)
	b, err := settlement.NewBundle(kernel.NewUUID(), settlement.Receivable, items,
		settlement.Form{Counterparty: shipper, PaymentMethod: "transfer"},
		decimal.RequireFromString("0.1"), suite.seed.Actor, suite.seed.Now)
	suite.Require().NoError(err)
	suite.Require().NoError(b.RequestMatching(suite.seed.Actor, suite.seed.Now))

	uow := suite.hookless().Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.BundleRepository().Add(ctx, b))
	suite.Require().NoError(uow.Commit(ctx))
	return b
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDispatchUpdateWaitsForStatusChange() {
	ctx := suite.T().Context()
	factory := suite.hookless()
	s, d := suite.storedDispatch()

	holder := factory.Create()
	suite.Require().NoError(holder.Begin(ctx))
	defer func() { _ = holder.Rollback(ctx) }()
	lockedShipment, err := holder.ShipmentRepository().GetForUpdate(ctx, s.ID())
	suite.Require().NoError(err)
	lockedDispatch, err := holder.DispatchRepository().GetForUpdate(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(services.NewDispatchCoordinator().
		ChangeStatus(lockedShipment, lockedDispatch, dispatch.Loading, suite.seed.Actor, suite.seed.Now))
	suite.Require().NoError(holder.DispatchRepository().Update(ctx, lockedDispatch))
	suite.Require().NoError(holder.ShipmentRepository().Update(ctx, lockedShipment))

	cmd, err := commands.NewUpdateDispatchCommand(d.ID(), commands.DispatchChanges{
		Memo: patch.Set("call before arrival"),
	}, suite.seed.Actor)
	suite.Require().NoError(err)
	handler := commands.NewUpdateDispatchCommandHandler(
		dispatchUoWFactory{factory}, directoryrepo.NewGormPartyDirectory(suite.db), clock.Real{})

	done := make(chan outcome[commands.UpdateDispatchResult], 1)
	go func() {
		result, err := handler.Handle(context.Background(), cmd)
		done <- outcome[commands.UpdateDispatchResult]{result, err}
	}()

	suite.waitForLockWaiter()
	suite.Require().NoError(holder.Commit(ctx))

	got := <-done
	suite.Require().NoError(got.err)
	suite.Equal([]string{commands.DispatchFieldMemo}, got.value.Applied)

	fresh := factory.Create()
	stored, err := fresh.DispatchRepository().Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(dispatch.Loading, stored.Status(), "the memo update must not restore the status it read before waiting")
	suite.Equal("call before arrival", stored.Memo())
	storedShipment, err := fresh.ShipmentRepository().Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.AwaitingLoad, storedShipment.FlowStatus())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAdjustmentWaitingOnCompletionIsRefused() {
	ctx := suite.T().Context()
	factory := suite.hookless()
	b := suite.storedMatchingBundle()

	holder := factory.Create()
	suite.Require().NoError(holder.Begin(ctx))
	defer func() { _ = holder.Rollback(ctx) }()
	locked, err := holder.BundleRepository().GetForUpdate(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.Complete(suite.seed.Actor, suite.seed.Now))
	suite.Require().NoError(holder.BundleRepository().Update(ctx, locked))

	cmd, err := commands.NewAdjustmentCommand(b.ID(), kernel.NewUUID(), commands.AdjustmentForm{
		Amount:   decimal.NewFromInt(-5000),
		Category: string(settlement.CategoryDiscount),
	}, suite.seed.Actor)
	suite.Require().NoError(err)
	handler := commands.NewAdjustmentCommandHandler(
		bundleUoWFactory{factory}, settlement.Receivable, commands.BundleScope, clock.Real{})

	done := make(chan outcome[commands.AdjustmentResult], 1)
	go func() {
		result, err := handler.Add(context.Background(), cmd)
		done <- outcome[commands.AdjustmentResult]{result, err}
	}()

	suite.waitForLockWaiter()
	suite.Require().NoError(holder.Commit(ctx))

	got := <-done
	suite.Equal(errs.KindInvalidState, errs.KindOf(got.err))

	stored, err := factory.Create().BundleRepository().Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Equal(settlement.Completed, stored.Status())
	suite.Empty(stored.Adjustments())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentAdjustmentsAreBothKept() {
	ctx := suite.T().Context()
	factory := suite.hookless()
	b := suite.storedMatchingBundle()
	itemID := b.ItemIDs()[0]

	holder := factory.Create()
	suite.Require().NoError(holder.Begin(ctx))
	defer func() { _ = holder.Rollback(ctx) }()
	locked, err := holder.BundleRepository().GetForUpdate(ctx, b.ID())
	suite.Require().NoError(err)
	_, err = locked.AddAdjustment(kernel.NewUUID(), settlement.AdjustmentInput{
		Amount:   decimal.NewFromInt(-10000),
		Category: settlement.CategoryDiscount,
	}, suite.seed.Actor, suite.seed.Now)
	suite.Require().NoError(err)
	suite.Require().NoError(holder.BundleRepository().Update(ctx, locked))

	cmd, err := commands.NewAdjustmentCommand(itemID, kernel.NewUUID(), commands.AdjustmentForm{
		Amount:   decimal.NewFromInt(5000),
		Category: string(settlement.CategoryWaitingFee),
	}, suite.seed.Actor)
	suite.Require().NoError(err)
	handler := commands.NewAdjustmentCommandHandler(
		bundleUoWFactory{factory}, settlement.Receivable, commands.ItemScope, clock.Real{})

	done := make(chan outcome[commands.AdjustmentResult], 1)
	go func() {
		result, err := handler.Add(context.Background(), cmd)
		done <- outcome[commands.AdjustmentResult]{result, err}
	}()

	suite.waitForLockWaiter()
	suite.Require().NoError(holder.Commit(ctx))

	got := <-done
	suite.Require().NoError(got.err)

	stored, err := factory.Create().BundleRepository().Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Len(stored.Adjustments(), 1, "the bundle adjustment committed first survives")
	item, ok := stored.Item(itemID)
	suite.Require().True(ok)
	suite.Len(item.Adjustments(), 1)
	suite.True(decimal.NewFromInt(-5000).Equal(stored.Totals().BundleAdjustments.Add(stored.Totals().ItemAdjustments)))
}
