package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "chipdrop/internal/adapters/out/postgres"
	"chipdrop/internal/adapters/out/postgres/accountrepo"
	"chipdrop/internal/adapters/out/postgres/deliveryrepo"
	"chipdrop/internal/core/domain/model/account"
	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/core/ports"
	"chipdrop/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.RecipientDTO{},
		&deliveryrepo.ProductDTO{},
		&accountrepo.AccountDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE deliveries, delivery_recipients, delivery_products, accounts").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIsolatedInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "factory should create separate instances")
	suite.NotNil(uow1.DeliveryRepository())
	suite.NotNil(uow1.AccountRepository())
	suite.NotNil(uow2.DeliveryRepository())
	suite.NotNil(uow2.AccountRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsCrossAggregateWrites() {
	ctx := context.Background()

	d := suite.newDelivery()
	a := suite.newAccount()
	suite.Require().NoError(suite.db.Create(&accountrepo.AccountDTO{
		ID:           a.ID().Bytes(),
		Name:         a.Name(),
		Availability: int(account.AvailabilityBusy),
	}).Error)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, d))

	stored, err := uow.AccountRepository().Get(ctx, a.ID())
	suite.Require().NoError(err)
	stored.MarkReady()
	suite.Require().NoError(uow.AccountRepository().Update(ctx, stored))

	suite.Require().NoError(uow.Commit(ctx))

	persisted, err := suite.factory.Create().DeliveryRepository().Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(d.ID(), persisted.ID())

	persistedAccount, err := suite.factory.Create().AccountRepository().Get(ctx, a.ID())
	suite.Require().NoError(err)
	suite.Equal(account.AvailabilityReady, persistedAccount.Availability())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsDeliveryAndLinkRows() {
	ctx := context.Background()

	d := suite.newDelivery()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, d))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().DeliveryRepository().Get(ctx, d.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var count int64
	suite.Require().NoError(suite.db.Model(&deliveryrepo.RecipientDTO{}).Count(&count).Error)
	suite.Equal(int64(0), count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin_ReturnsError() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackAfterCommit_IsSafe() {
	ctx := context.Background()

	d := suite.newDelivery()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, d))
	suite.Require().NoError(uow.Commit(ctx))

	// The deferred-rollback idiom hits this path on every successful commit.
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	persisted, err := suite.factory.Create().DeliveryRepository().Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(d.ID(), persisted.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) newDelivery() *delivery.Delivery {
	userID := kernel.NewUUID()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), kernel.NewUUID(), userID,
		delivery.StatusRequested,
		"10 yards of maple chips", "", "",
		[]kernel.UUID{userID},
		nil,
	)
	suite.Require().NoError(err)
	return d
}

func (suite *UnitOfWorkIntegrationTestSuite) newAccount() *account.Account {
	a, err := account.NewAccount(kernel.NewUUID(), "Maple Ridge Arborists")
	suite.Require().NoError(err)
	return a
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
