package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/outboxrepo"
	"freight/internal/adapters/out/postgres/pgtest"
	"freight/internal/core/domain/model/dispatch"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the unit of work against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
	seed      pgtest.Seeder
	committed [][]kernel.DomainEvent
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db, func(_ context.Context, events []kernel.DomainEvent) {
		suite.committed = append(suite.committed, events)
	})
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
	suite.seed = pgtest.NewSeeder(suite.T(), suite.db)
	suite.committed = nil
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) outboxTypes() []string {
	var types []string
	suite.Require().NoError(suite.db.Model(&outboxrepo.MessageDTO{}).Order("occurred_at, event_type").Pluck("event_type", &types).Error)
	return types
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "a second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))
	suite.Error(uow.Rollback(ctx), "nothing left to roll back after commit")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
	suite.Error(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitStoresChangesWithTheirEvents() {
	ctx := suite.T().Context()
	owner := suite.seed.Company(suite.T(), "Hanjin Shipping")
	carrier := suite.seed.Company(suite.T(), "Daehan Trucking")
	driver := suite.seed.Driver(suite.T(), "Park Jisung")
	s := suite.seed.Shipment(suite.T(), owner, 150000, 3)
	d := suite.seed.Dispatch(suite.T(), s, carrier, driver, 120000)
	suite.Require().NoError(s.AdvanceTo(shipment.Dispatched, suite.seed.Actor, suite.seed.Now))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))
	suite.Require().NoError(uow.DispatchRepository().Add(ctx, d))
	suite.Require().NoError(uow.ShipmentRepository().Update(ctx, s))
	suite.Require().NoError(uow.Commit(ctx))

	fresh := suite.factory.Create()
	stored, err := fresh.ShipmentRepository().Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.Dispatched, stored.FlowStatus())
	_, err = fresh.DispatchRepository().GetByShipment(ctx, s.ID())
	suite.Require().NoError(err)

	suite.ElementsMatch(
		[]string{shipment.EventRegistered, shipment.EventFlowChanged, dispatch.EventCreated},
		suite.outboxTypes(),
	)
	suite.Require().Len(suite.committed, 1)
	suite.Len(suite.committed[0], 3)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsChangesAndEvents() {
	ctx := suite.T().Context()
	owner := suite.seed.Company(suite.T(), "Hanjin Shipping")
	s := suite.seed.Shipment(suite.T(), owner, 150000, 3)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))
	_, err := uow.ShipmentRepository().Get(ctx, s.ID())
	suite.Require().NoError(err, "visible inside the transaction")
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().ShipmentRepository().Get(ctx, s.ID())
	suite.Error(err)
	suite.Empty(suite.outboxTypes())
	suite.Empty(suite.committed)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentUnitsAreIsolated() {
	ctx := suite.T().Context()
	owner := suite.seed.Company(suite.T(), "Hanjin Shipping")
	first := suite.seed.Shipment(suite.T(), owner, 150000, 3)
	second := suite.seed.Shipment(suite.T(), owner, 90000, 4)

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))
	suite.Require().NoError(uow1.ShipmentRepository().Add(ctx, first))
	suite.Require().NoError(uow2.ShipmentRepository().Add(ctx, second))

	_, err := uow1.ShipmentRepository().Get(ctx, second.ID())
	suite.Error(err, "uncommitted rows of another unit are invisible")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err = fresh.ShipmentRepository().Get(ctx, first.ID())
	suite.NoError(err)
	_, err = fresh.ShipmentRepository().Get(ctx, second.ID())
	suite.Error(err)
	suite.Equal([]string{shipment.EventRegistered}, suite.outboxTypes())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
