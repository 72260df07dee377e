package shipmentrepo_test

import (
	"context"
	"testing"

	"freight/internal/adapters/out/postgres/pgtest"
	"freight/internal/adapters/out/postgres/shipmentrepo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type ShipmentRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *shipmentrepo.GormShipmentRepository
	seed      pgtest.Seeder
}

func (suite *ShipmentRepositoryTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.repo = shipmentrepo.NewGormShipmentRepository(db, pgtest.NopTracker{})
}

func (suite *ShipmentRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShipmentRepositoryTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
	suite.seed = pgtest.NewSeeder(suite.T(), suite.db)
}

func (suite *ShipmentRepositoryTestSuite) TestAddAndGet() {
	ctx := suite.T().Context()
	owner := suite.seed.Company(suite.T(), "Hanjin Shipping")
	s := suite.seed.Shipment(suite.T(), owner, 150000, 3)

	suite.Require().NoError(suite.repo.Add(ctx, s))

	got, err := suite.repo.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(s.ID(), got.ID())
	suite.Equal(shipment.Requested, got.FlowStatus())
	suite.Equal("Hanjin Shipping", got.Owner().Name())
	suite.Equal(owner.ID(), got.Owner().ID())
	suite.True(s.Details().Charge.Equal(got.Details().Charge))
	suite.Equal("Busan port gate 3", got.Details().Pickup.Address())
	suite.True(s.PickupDate().Equal(got.PickupDate()))
	suite.Equal(suite.seed.Actor.Name(), got.Audit().CreatedBy().Name())
	suite.False(got.IsCanceled())
}

func (suite *ShipmentRepositoryTestSuite) TestUpdateWritesFlowAndCancellation() {
	ctx := suite.T().Context()
	owner := suite.seed.Company(suite.T(), "Hanjin Shipping")
	s := suite.seed.Shipment(suite.T(), owner, 150000, 3)
	suite.Require().NoError(suite.repo.Add(ctx, s))

	suite.Require().NoError(s.Accept(suite.seed.Actor, suite.seed.Now))
	suite.Require().NoError(s.Cancel(suite.seed.Actor, suite.seed.Now))
	suite.Require().NoError(suite.repo.Update(ctx, s))

	got, err := suite.repo.GetForUpdate(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.AwaitingDispatch, got.FlowStatus())
	suite.True(got.IsCanceled())
}

func (suite *ShipmentRepositoryTestSuite) TestUnknownShipment() {
	ctx := suite.T().Context()
	owner := suite.seed.Company(suite.T(), "Hanjin Shipping")

	_, err := suite.repo.Get(ctx, kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	err = suite.repo.Update(ctx, suite.seed.Shipment(suite.T(), owner, 1000, 3))
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestShipmentRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ShipmentRepositoryTestSuite))
}
