package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"helpdispatch/internal/core/application/usecases/commands"
	"helpdispatch/internal/core/domain/model/category"
	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/core/domain/model/request"
	"helpdispatch/internal/core/ports"
	"helpdispatch/internal/jobs"
	"helpdispatch/internal/metrics"
	"helpdispatch/internal/pkg/errs"
	"helpdispatch/internal/pkg/worker"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockServiceRequestRepository struct {
	mock.Mock
}

func (m *MockServiceRequestRepository) Add(ctx context.Context, aggregate *request.ServiceRequest) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *MockServiceRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.ServiceRequest, error) {
	args := m.Called(ctx, id)
	sr, _ := args.Get(0).(*request.ServiceRequest)
	return sr, args.Error(1)
}

func (m *MockServiceRequestRepository) UpdateMedia(ctx context.Context, id kernel.UUID, media []string) error {
	return m.Called(ctx, id, media).Error(0)
}

func (m *MockServiceRequestRepository) UpdateDispatch(
	ctx context.Context,
	id kernel.UUID,
	from request.DispatchState,
	marker request.DispatchMarker,
) (bool, error) {
	args := m.Called(ctx, id, from, marker)
	return args.Bool(0), args.Error(1)
}

func (m *MockServiceRequestRepository) ListStaleDispatches(
	ctx context.Context,
	olderThan time.Time,
	limit int,
) ([]*request.ServiceRequest, error) {
	args := m.Called(ctx, olderThan, limit)
	requests, _ := args.Get(0).([]*request.ServiceRequest)
	return requests, args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) category(args mock.Arguments) (*category.Category, error) {
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

func (m *MockCategoryRepository) Add(ctx context.Context, c *category.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) Get(ctx context.Context, id kernel.UUID) (*category.Category, error) {
	return m.category(m.Called(ctx, id))
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*category.Category, error) {
	return m.category(m.Called(ctx, name))
}

func (m *MockCategoryRepository) FindByNamePattern(ctx context.Context, fragment string) (*category.Category, error) {
	return m.category(m.Called(ctx, fragment))
}

func (m *MockCategoryRepository) FindAny(ctx context.Context) (*category.Category, error) {
	return m.category(m.Called(ctx))
}

type MockProfileReader struct {
	mock.Mock
}

func (m *MockProfileReader) DisplayName(ctx context.Context, userID kernel.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

// MockTaskScheduler runs nothing; it keeps the tasks for the test to run.
type MockTaskScheduler struct {
	mock.Mock
	tasks []ports.Task
}

func (m *MockTaskScheduler) Schedule(task ports.Task) error {
	err := m.Called(task.Name).Error(0)
	if err == nil {
		m.tasks = append(m.tasks, task)
	}
	return err
}

type MockDispatchBroadcaster struct {
	mock.Mock
}

func (m *MockDispatchBroadcaster) Handle(
	ctx context.Context,
	cmd commands.DispatchBroadcastCommand,
) (commands.DispatchBroadcastResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.DispatchBroadcastResult), args.Error(1)
}

type recoveryFixture struct {
	requests   *MockServiceRequestRepository
	categories *MockCategoryRepository
	profiles   *MockProfileReader
	scheduler  *MockTaskScheduler
	dispatcher *MockDispatchBroadcaster
	collectors *metrics.Collectors
	job        *jobs.DispatchRecoveryJob
}

func newRecoveryFixture() recoveryFixture {
	f := recoveryFixture{
		requests:   &MockServiceRequestRepository{},
		categories: &MockCategoryRepository{},
		profiles:   &MockProfileReader{},
		scheduler:  &MockTaskScheduler{},
		dispatcher: &MockDispatchBroadcaster{},
		collectors: metrics.New(prometheus.NewRegistry()),
	}
	f.job = jobs.NewDispatchRecoveryJob(f.requests, f.categories, f.profiles, f.scheduler, f.dispatcher,
		f.collectors, jobs.RecoveryConfig{BatchSize: 10}, discardLogger())
	return f
}

func staleRequest(t *testing.T, cat *category.Category, running bool) *request.ServiceRequest {
	t.Helper()
	loc, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)

	sr, err := request.NewServiceRequest(request.NewServiceRequestParams{
		ID:             kernel.NewUUID(),
		RequesterID:    kernel.NewUUID(),
		CategoryID:     cat.ID(),
		CategoryName:   cat.Name(),
		Location:       loc,
		EstimatedPrice: 300,
		Urgency:        request.UrgencyUrgent,
		CreatedAt:      time.Now().Add(-10 * time.Minute),
	})
	require.NoError(t, err)
	if running {
		require.NoError(t, sr.MarkDispatchRunning(time.Now().Add(-5*time.Minute)))
	}
	return sr
}

func plumbing(t *testing.T) *category.Category {
	t.Helper()
	c, err := category.NewCategory(kernel.NewUUID(), "Plumbing", "plumbing")
	require.NoError(t, err)
	return c
}

func replayMarker(m request.DispatchMarker) bool {
	return m.State == request.DispatchPending && m.Replayed
}

func TestDispatchRecoveryJob_Sweep_ReplaysStaleDispatches(t *testing.T) {
	// Arrange
	f := newRecoveryFixture()
	cat := plumbing(t)
	pending := staleRequest(t, cat, false)
	running := staleRequest(t, cat, true)

	f.requests.On("ListStaleDispatches", mock.Anything, mock.Anything, 10).
		Return([]*request.ServiceRequest{pending, running}, nil).Once()
	f.categories.On("Get", mock.Anything, cat.ID()).Return(cat, nil)
	f.profiles.On("DisplayName", mock.Anything, mock.Anything).Return("Asha", nil)
	f.requests.On("UpdateDispatch", mock.Anything, pending.ID(), request.DispatchPending, mock.MatchedBy(replayMarker)).
		Return(true, nil).Once()
	f.requests.On("UpdateDispatch", mock.Anything, running.ID(), request.DispatchRunning, mock.MatchedBy(replayMarker)).
		Return(true, nil).Once()
	f.scheduler.On("Schedule", "dispatch_broadcast_replay").Return(nil).Twice()

	// Act
	replayed, err := f.job.Sweep(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, replayed)
	require.Len(t, f.scheduler.tasks, 2)
	assert.InDelta(t, 2.0, testutil.ToFloat64(f.collectors.RecoveryReplays), 0.001)
	f.requests.AssertExpectations(t)
	f.scheduler.AssertExpectations(t)
}

func TestDispatchRecoveryJob_Sweep_ScheduledTaskRunsReplayedCommand(t *testing.T) {
	// Arrange
	f := newRecoveryFixture()
	cat := plumbing(t)
	sr := staleRequest(t, cat, false)

	f.requests.On("ListStaleDispatches", mock.Anything, mock.Anything, 10).
		Return([]*request.ServiceRequest{sr}, nil).Once()
	f.categories.On("Get", mock.Anything, cat.ID()).Return(cat, nil)
	f.profiles.On("DisplayName", mock.Anything, sr.RequesterID()).Return("Asha", nil)
	f.requests.On("UpdateDispatch", mock.Anything, sr.ID(), request.DispatchPending, mock.Anything).
		Return(true, nil).Once()
	f.scheduler.On("Schedule", "dispatch_broadcast_replay").Return(nil).Once()
	f.dispatcher.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DispatchBroadcastCommand) bool {
		loc, ok := cmd.Location()
		return cmd.RequestID().IsEqual(sr.ID()) &&
			cmd.Replayed() &&
			cmd.RequesterName() == "Asha" &&
			cmd.Category().Name == "Plumbing" &&
			cmd.Category().Slug == "plumbing" &&
			cmd.Urgency() == request.UrgencyUrgent &&
			ok && loc.Latitude() == 12.9716
	})).Return(commands.DispatchBroadcastResult{HelpersNotified: 2}, nil).Once()

	_, err := f.job.Sweep(context.Background())
	require.NoError(t, err)
	require.Len(t, f.scheduler.tasks, 1)

	// Act
	err = f.scheduler.tasks[0].Run(context.Background())

	// Assert
	require.NoError(t, err)
	f.dispatcher.AssertExpectations(t)
}

func TestDispatchRecoveryJob_Sweep_LostClaimIsSkipped(t *testing.T) {
	f := newRecoveryFixture()
	cat := plumbing(t)
	sr := staleRequest(t, cat, true)

	f.requests.On("ListStaleDispatches", mock.Anything, mock.Anything, 10).
		Return([]*request.ServiceRequest{sr}, nil).Once()
	f.categories.On("Get", mock.Anything, cat.ID()).Return(cat, nil)
	f.profiles.On("DisplayName", mock.Anything, mock.Anything).Return("", nil)
	f.requests.On("UpdateDispatch", mock.Anything, sr.ID(), request.DispatchRunning, mock.Anything).
		Return(false, nil).Once()

	replayed, err := f.job.Sweep(context.Background())

	require.NoError(t, err)
	assert.Zero(t, replayed)
	f.scheduler.AssertNotCalled(t, "Schedule", mock.Anything)
	assert.Zero(t, testutil.ToFloat64(f.collectors.RecoveryReplays))
}

func TestDispatchRecoveryJob_Sweep_AlreadyReplayedIsIgnored(t *testing.T) {
	f := newRecoveryFixture()
	cat := plumbing(t)
	sr := staleRequest(t, cat, false)
	require.NoError(t, sr.MarkDispatchReplayed())

	f.requests.On("ListStaleDispatches", mock.Anything, mock.Anything, 10).
		Return([]*request.ServiceRequest{sr}, nil).Once()

	replayed, err := f.job.Sweep(context.Background())

	require.NoError(t, err)
	assert.Zero(t, replayed)
	f.requests.AssertNotCalled(t, "UpdateDispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatchRecoveryJob_Sweep_RecentlyClaimedPassIsLeftAlone(t *testing.T) {
	// Arrange
	f := newRecoveryFixture()
	cat := plumbing(t)
	sr := staleRequest(t, cat, false)
	require.NoError(t, sr.MarkDispatchRunning(time.Now()))

	f.requests.On("ListStaleDispatches", mock.Anything, mock.Anything, 10).
		Return([]*request.ServiceRequest{sr}, nil).Once()

	// Act
	replayed, err := f.job.Sweep(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Zero(t, replayed)
	f.requests.AssertNotCalled(t, "UpdateDispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.scheduler.AssertNotCalled(t, "Schedule", mock.Anything)
}

func TestDispatchRecoveryJob_Sweep_MissingCategoryMatchesByID(t *testing.T) {
	// Arrange
	f := newRecoveryFixture()
	cat := plumbing(t)
	sr := staleRequest(t, cat, false)

	f.requests.On("ListStaleDispatches", mock.Anything, mock.Anything, 10).
		Return([]*request.ServiceRequest{sr}, nil).Once()
	f.categories.On("Get", mock.Anything, cat.ID()).
		Return(nil, errs.NewObjectNotFoundError("category", cat.ID().String()))
	f.profiles.On("DisplayName", mock.Anything, mock.Anything).Return("", errors.New("profiles down"))
	f.requests.On("UpdateDispatch", mock.Anything, sr.ID(), request.DispatchPending, mock.Anything).
		Return(true, nil).Once()
	f.scheduler.On("Schedule", "dispatch_broadcast_replay").Return(nil).Once()
	f.dispatcher.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DispatchBroadcastCommand) bool {
		return cmd.Category().ID == cat.ID().String() &&
			cmd.Category().Name == "" &&
			cmd.RequesterName() == commands.DefaultRequesterName
	})).Return(commands.DispatchBroadcastResult{}, nil).Once()

	// Act
	replayed, err := f.job.Sweep(context.Background())
	require.NoError(t, err)
	require.Len(t, f.scheduler.tasks, 1)
	require.NoError(t, f.scheduler.tasks[0].Run(context.Background()))

	// Assert
	assert.Equal(t, 1, replayed)
	f.dispatcher.AssertExpectations(t)
}

func TestDispatchRecoveryJob_Sweep_ScheduleFailureMarksFailed(t *testing.T) {
	// Arrange
	f := newRecoveryFixture()
	cat := plumbing(t)
	sr := staleRequest(t, cat, false)

	f.requests.On("ListStaleDispatches", mock.Anything, mock.Anything, 10).
		Return([]*request.ServiceRequest{sr}, nil).Once()
	f.categories.On("Get", mock.Anything, cat.ID()).Return(cat, nil)
	f.profiles.On("DisplayName", mock.Anything, mock.Anything).Return("Asha", nil)
	f.requests.On("UpdateDispatch", mock.Anything, sr.ID(), request.DispatchPending, mock.MatchedBy(replayMarker)).
		Return(true, nil).Once()
	f.scheduler.On("Schedule", "dispatch_broadcast_replay").Return(worker.ErrQueueFull).Once()
	f.requests.On("UpdateDispatch", mock.Anything, sr.ID(), request.DispatchPending,
		mock.MatchedBy(func(m request.DispatchMarker) bool {
			return m.State == request.DispatchFailed && m.Replayed
		})).Return(true, nil).Once()

	// Act
	replayed, err := f.job.Sweep(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Zero(t, replayed)
	f.requests.AssertExpectations(t)
}

func TestDispatchRecoveryJob_Sweep_ListFailure(t *testing.T) {
	f := newRecoveryFixture()
	f.requests.On("ListStaleDispatches", mock.Anything, mock.Anything, 10).
		Return(nil, errors.New("db down")).Once()

	replayed, err := f.job.Sweep(context.Background())

	require.Error(t, err)
	assert.Zero(t, replayed)
}

func TestDispatchRecoveryJob_Sweep_OnlyOlderThanStaleWindow(t *testing.T) {
	f := newRecoveryFixture()
	before := time.Now()
	f.requests.On("ListStaleDispatches", mock.Anything, mock.MatchedBy(func(olderThan time.Time) bool {
		return !olderThan.After(before.Add(-jobs.DefaultStaleAfter).Add(time.Second)) &&
			olderThan.After(before.Add(-jobs.DefaultStaleAfter).Add(-time.Minute))
	}), 10).Return([]*request.ServiceRequest{}, nil).Once()

	replayed, err := f.job.Sweep(context.Background())

	require.NoError(t, err)
	assert.Zero(t, replayed)
	f.requests.AssertExpectations(t)
}

func TestDispatchRecoveryJob_StartStop(t *testing.T) {
	f := newRecoveryFixture()

	require.NoError(t, f.job.Start())
	f.job.Stop()
}

func TestDispatchRecoveryJob_InvalidSchedule(t *testing.T) {
	f := newRecoveryFixture()
	job := jobs.NewDispatchRecoveryJob(f.requests, f.categories, f.profiles, f.scheduler, f.dispatcher,
		f.collectors, jobs.RecoveryConfig{Schedule: "not a schedule"}, discardLogger())

	assert.Error(t, job.Start())
}
