package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "helpdispatch/internal/adapters/out/postgres"
	"helpdispatch/internal/adapters/out/postgres/pgtest"
	"helpdispatch/internal/core/domain/model/category"
	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/core/domain/model/request"
	"helpdispatch/internal/core/ports"
	"helpdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE " + pgtest.Tables).Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.ServiceRequestRepository())
	suite.NotNil(uow1.CategoryRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsCategoryAndRequest() {
	ctx := context.Background()
	uow := suite.factory.Create()
	cat, sr := suite.newCategoryAndRequest()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CategoryRepository().Add(ctx, cat))
	suite.Require().NoError(uow.ServiceRequestRepository().Add(ctx, sr))

	tracked := uow.(*postgres_adapter.GormUnitOfWork).TrackedIDs()
	suite.Equal([]kernel.UUID{cat.ID(), sr.ID()}, tracked)

	suite.Require().NoError(uow.Commit(ctx))

	fresh := suite.factory.Create()
	gotCat, err := fresh.CategoryRepository().Get(ctx, cat.ID())
	suite.Require().NoError(err)
	suite.Equal("Plumbing", gotCat.Name())

	gotReq, err := fresh.ServiceRequestRepository().Get(ctx, sr.ID())
	suite.Require().NoError(err)
	suite.Equal(cat.ID(), gotReq.CategoryID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsCategoryAndRequest() {
	ctx := context.Background()
	uow := suite.factory.Create()
	cat, sr := suite.newCategoryAndRequest()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CategoryRepository().Add(ctx, cat))
	suite.Require().NoError(uow.ServiceRequestRepository().Add(ctx, sr))
	suite.Require().NoError(uow.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err := fresh.CategoryRepository().Get(ctx, cat.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	_, err = fresh.ServiceRequestRepository().Get(ctx, sr.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	suite.Empty(uow.(*postgres_adapter.GormUnitOfWork).TrackedIDs())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_IsolationBetweenInstances() {
	ctx := context.Background()
	cat, _ := suite.newCategoryAndRequest()

	writer := suite.factory.Create()
	suite.Require().NoError(writer.Begin(ctx))
	suite.Require().NoError(writer.CategoryRepository().Add(ctx, cat))

	reader := suite.factory.Create()
	_, err := reader.CategoryRepository().Get(ctx, cat.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound, "uncommitted rows must not be visible")

	suite.Require().NoError(writer.Commit(ctx))

	got, err := reader.CategoryRepository().Get(ctx, cat.ID())
	suite.Require().NoError(err)
	suite.Equal(cat.ID(), got.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) newCategoryAndRequest() (*category.Category, *request.ServiceRequest) {
	cat, err := category.NewCategory(kernel.NewUUID(), "Plumbing", "plumbing")
	suite.Require().NoError(err)

	sr, err := request.NewServiceRequest(request.NewServiceRequestParams{
		ID:           kernel.NewUUID(),
		RequesterID:  kernel.NewUUID(),
		CategoryID:   cat.ID(),
		CategoryName: cat.Name(),
		Description:  "Kitchen sink leaking",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	})
	suite.Require().NoError(err)

	return cat, sr
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
