package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "helpdispatch/internal/adapters/out/postgres"
	"helpdispatch/internal/adapters/out/postgres/notificationrepo"
	"helpdispatch/internal/adapters/out/postgres/pgtest"
	"helpdispatch/internal/adapters/out/postgres/requestrepo"
	"helpdispatch/internal/core/application/usecases/queries"
	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/core/domain/model/notification"
	"helpdispatch/internal/core/domain/model/request"
	"helpdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type GetBroadcastStatusQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetBroadcastStatusQueryHandler
	requests  *requestrepo.GormServiceRequestRepository
	writer    *notificationrepo.GormNotificationWriter
}

func (suite *GetBroadcastStatusQueryHandlerTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.handler = queries.NewGetBroadcastStatusQueryHandler(db)
	suite.requests = requestrepo.NewGormServiceRequestRepository(db, nil)
	suite.writer = notificationrepo.NewGormNotificationWriter(db)
}

func (suite *GetBroadcastStatusQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetBroadcastStatusQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE service_requests, broadcast_notifications").Error
	suite.Require().NoError(err)
}

func (suite *GetBroadcastStatusQueryHandlerTestSuite) TestHandle_PendingRequest() {
	ctx := context.Background()
	sr := suite.addRequest()

	query, err := queries.NewGetBroadcastStatusQuery(sr.ID(), sr.RequesterID())
	suite.Require().NoError(err)

	got, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(sr.ID(), got.RequestID)
	suite.Equal(string(request.StatusOpen), got.Status)
	suite.Equal(string(request.BroadcastBroadcasting), got.BroadcastStatus)
	suite.Equal(string(request.DispatchPending), got.DispatchState)
	suite.Zero(got.HelpersNotified)
	suite.Zero(got.BroadcastRows)
	suite.Nil(got.DispatchedAt)
	suite.WithinDuration(sr.BroadcastExpiresAt(), got.BroadcastExpiresAt, time.Millisecond)
}

func (suite *GetBroadcastStatusQueryHandlerTestSuite) TestHandle_DispatchedRequest() {
	ctx := context.Background()
	sr := suite.addRequest()

	broadcasts := make([]*notification.Broadcast, 0, 2)
	for range 2 {
		b, err := notification.NewBroadcast(sr.ID(), kernel.NewUUID(), 2.5, time.Now())
		suite.Require().NoError(err)
		broadcasts = append(broadcasts, b)
	}
	suite.Require().NoError(suite.writer.AddBroadcasts(ctx, broadcasts))

	running, err := sr.Dispatch().Claim(time.Now())
	suite.Require().NoError(err)
	done, err := running.Complete(2, time.Now())
	suite.Require().NoError(err)
	_, err = suite.requests.UpdateDispatch(ctx, sr.ID(), request.DispatchPending, done)
	suite.Require().NoError(err)

	query, err := queries.NewGetBroadcastStatusQuery(sr.ID(), sr.RequesterID())
	suite.Require().NoError(err)

	got, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(string(request.DispatchDispatched), got.DispatchState)
	suite.Equal(2, got.HelpersNotified)
	suite.Equal(2, got.BroadcastRows)
	suite.NotNil(got.DispatchedAt)
}

func (suite *GetBroadcastStatusQueryHandlerTestSuite) TestHandle_OtherRequesterGetsNotFound() {
	sr := suite.addRequest()

	query, err := queries.NewGetBroadcastStatusQuery(sr.ID(), kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetBroadcastStatusQueryHandlerTestSuite) TestHandle_UnknownRequest() {
	query, err := queries.NewGetBroadcastStatusQuery(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetBroadcastStatusQueryHandlerTestSuite) TestHandle_NotConstructedQuery() {
	_, err := suite.handler.Handle(context.Background(), queries.GetBroadcastStatusQuery{})

	suite.ErrorIs(err, queries.ErrGetBroadcastStatusQueryIsNotConstructed)
}

func (suite *GetBroadcastStatusQueryHandlerTestSuite) addRequest() *request.ServiceRequest {
	sr, err := request.NewServiceRequest(request.NewServiceRequestParams{
		ID:           kernel.NewUUID(),
		RequesterID:  kernel.NewUUID(),
		CategoryID:   kernel.NewUUID(),
		CategoryName: "Plumbing",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.requests.Add(context.Background(), sr))
	return sr
}

func TestGetBroadcastStatusQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetBroadcastStatusQueryHandlerTestSuite))
}
