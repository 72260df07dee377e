package directoryrepo_test

import (
	"context"
	"testing"

	"freight/internal/adapters/out/postgres/directoryrepo"
	"freight/internal/adapters/out/postgres/pgtest"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type PartyDirectoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	directory *directoryrepo.GormPartyDirectory
}

func (suite *PartyDirectoryTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.directory = directoryrepo.NewGormPartyDirectory(db)
}

func (suite *PartyDirectoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PartyDirectoryTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
}

func (suite *PartyDirectoryTestSuite) TestResolveEachKind() {
	ctx := suite.T().Context()
	companyID, userID, driverID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&directoryrepo.CompanyDTO{ID: companyID.Bytes(), Name: "Hanjin Shipping", BusinessNumber: "123-45-67890"}).Error)
	suite.Require().NoError(suite.db.Create(&directoryrepo.UserDTO{ID: userID.Bytes(), Name: "Choi Manager", Email: "choi@example.com"}).Error)
	suite.Require().NoError(suite.db.Create(&directoryrepo.DriverDTO{ID: driverID.Bytes(), Name: "Park Jisung", Phone: "010-1111-2222"}).Error)

	company, err := suite.directory.Resolve(ctx, kernel.PartyCompany, companyID)
	suite.Require().NoError(err)
	suite.Equal("Hanjin Shipping", company.Name())
	suite.Equal("123-45-67890", company.BusinessNumber())
	suite.Equal(kernel.PartyCompany, company.Kind())

	user, err := suite.directory.Resolve(ctx, kernel.PartyUser, userID)
	suite.Require().NoError(err)
	suite.Equal("choi@example.com", user.Email())

	driver, err := suite.directory.Resolve(ctx, kernel.PartyDriver, driverID)
	suite.Require().NoError(err)
	suite.Equal("010-1111-2222", driver.Phone())
}

func (suite *PartyDirectoryTestSuite) TestResolveLooksOnlyAtTheRequestedKind() {
	ctx := suite.T().Context()
	companyID := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&directoryrepo.CompanyDTO{ID: companyID.Bytes(), Name: "Hanjin Shipping"}).Error)

	_, err := suite.directory.Resolve(ctx, kernel.PartyDriver, companyID)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestPartyDirectoryTestSuite(t *testing.T) {
	suite.Run(t, new(PartyDirectoryTestSuite))
}
