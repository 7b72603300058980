package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"helpdispatch/internal/core/ports"
	"helpdispatch/internal/jobs"
	"helpdispatch/internal/pkg/worker"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTaskDispatcher_RunsScheduledTasks(t *testing.T) {
	// Arrange
	d := jobs.NewTaskDispatcher(2, 10, nil, discardLogger())
	require.NoError(t, d.Start(context.Background()))

	var ran atomic.Int32
	for range 5 {
		err := d.Schedule(ports.Task{Name: "count", Run: func(context.Context) error {
			ran.Add(1)
			return nil
		}})
		require.NoError(t, err)
	}

	// Act
	require.NoError(t, d.Stop(time.Second))

	// Assert
	assert.Equal(t, int32(5), ran.Load())
	assert.Equal(t, int64(5), d.Stats().Processed)
}

func TestTaskDispatcher_TaskContextOutlivesCaller(t *testing.T) {
	// Arrange
	d := jobs.NewTaskDispatcher(1, 1, nil, discardLogger())
	require.NoError(t, d.Start(context.Background()))

	callerCtx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	require.NoError(t, d.Schedule(ports.Task{Name: "detached", Run: func(ctx context.Context) error {
		<-callerCtx.Done()
		done <- ctx.Err()
		return nil
	}}))

	// Act
	cancel()

	// Assert
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("task did not run")
	}
	require.NoError(t, d.Stop(time.Second))
}

func TestTaskDispatcher_FailedTasksAreCounted(t *testing.T) {
	// Arrange
	reg := prometheus.NewRegistry()
	d := jobs.NewTaskDispatcher(1, 10, reg, discardLogger())
	require.NoError(t, d.Start(context.Background()))

	require.NoError(t, d.Schedule(ports.Task{Name: "fails", Run: func(context.Context) error {
		return errors.New("boom")
	}}))
	require.NoError(t, d.Schedule(ports.Task{Name: "panics", Run: func(context.Context) error {
		panic("boom")
	}}))

	// Act
	require.NoError(t, d.Stop(time.Second))

	// Assert
	assert.Equal(t, int64(2), d.Stats().Failed)
	count, err := testutil.GatherAndCount(reg, "helpdispatch_tasks_failed_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestTaskDispatcher_RejectsTaskWithoutRun(t *testing.T) {
	d := jobs.NewTaskDispatcher(1, 1, nil, discardLogger())
	require.NoError(t, d.Start(context.Background()))
	defer func() { _ = d.Stop(time.Second) }()

	assert.Error(t, d.Schedule(ports.Task{Name: "empty"}))
}

func TestTaskDispatcher_QueueFull(t *testing.T) {
	// Arrange
	d := jobs.NewTaskDispatcher(1, 1, nil, discardLogger())
	require.NoError(t, d.Start(context.Background()))

	release := make(chan struct{})
	started := make(chan struct{})
	block := ports.Task{Name: "block", Run: func(context.Context) error {
		close(started)
		<-release
		return nil
	}}
	require.NoError(t, d.Schedule(block))
	<-started
	require.NoError(t, d.Schedule(ports.Task{Name: "queued", Run: func(context.Context) error { return nil }}))

	// Act
	err := d.Schedule(ports.Task{Name: "dropped", Run: func(context.Context) error { return nil }})

	// Assert
	assert.ErrorIs(t, err, worker.ErrQueueFull)
	close(release)
	require.NoError(t, d.Stop(time.Second))
}

func TestTaskDispatcher_ScheduleBeforeStart(t *testing.T) {
	d := jobs.NewTaskDispatcher(1, 1, nil, discardLogger())

	err := d.Schedule(ports.Task{Name: "early", Run: func(context.Context) error { return nil }})

	assert.ErrorIs(t, err, worker.ErrPoolNotStarted)
}
