package worker_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"helpdispatch/internal/pkg/worker"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool_NilProcessor(t *testing.T) {
	assert.PanicsWithValue(t, worker.ErrNilProcessor, func() {
		worker.NewPool[int](1, 1, nil)
	})
}

func TestNewPool_Defaults(t *testing.T) {
	pool := worker.NewPool(0, 0, func(context.Context, int) error { return nil })

	stats := pool.Stats()
	assert.Equal(t, 10, stats.Workers)
	assert.Equal(t, 1000, stats.QueueSize)
}

func TestPool_Lifecycle(t *testing.T) {
	pool := worker.NewPool(1, 1, func(context.Context, int) error { return nil })

	require.ErrorIs(t, pool.Submit(1), worker.ErrPoolNotStarted)

	require.NoError(t, pool.Start(t.Context()))
	require.ErrorIs(t, pool.Start(t.Context()), worker.ErrPoolAlreadyStarted)

	require.NoError(t, pool.Stop(time.Second))
	require.ErrorIs(t, pool.Submit(1), worker.ErrPoolStopped)
	require.NoError(t, pool.Stop(time.Second))
}

func TestPool_ProcessesAllSubmittedWork(t *testing.T) {
	var sum int64
	pool := worker.NewPool(4, 100, func(_ context.Context, n int) error {
		atomic.AddInt64(&sum, int64(n))
		return nil
	})
	require.NoError(t, pool.Start(t.Context()))

	for i := 1; i <= 50; i++ {
		require.NoError(t, pool.Submit(i))
	}
	require.NoError(t, pool.Stop(5*time.Second))

	assert.Equal(t, int64(1275), atomic.LoadInt64(&sum))
	stats := pool.Stats()
	assert.Equal(t, int64(50), stats.Submitted)
	assert.Equal(t, int64(50), stats.Processed)
	assert.Zero(t, stats.Failed)
}

func TestPool_QueueFull(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once

	pool := worker.NewPool(1, 1, func(_ context.Context, _ int) error {
		once.Do(func() { close(started) })
		<-release
		return nil
	})
	require.NoError(t, pool.Start(t.Context()))

	require.NoError(t, pool.Submit(1))
	<-started
	require.NoError(t, pool.Submit(2))
	require.ErrorIs(t, pool.Submit(3), worker.ErrQueueFull)

	close(release)
	require.NoError(t, pool.Stop(5*time.Second))
	assert.Equal(t, int64(1), pool.Stats().Dropped)
}

func TestPool_RecoversPanicsAndErrors(t *testing.T) {
	reg := prometheus.NewRegistry()
	var ok int64

	pool := worker.NewPool(2, 10, func(_ context.Context, n int) error {
		switch n {
		case 0:
			panic("boom")
		case 1:
			return errors.New("failed")
		default:
			atomic.AddInt64(&ok, 1)
			return nil
		}
	}, worker.WithMetrics[int](reg, "test_pool"))
	require.NoError(t, pool.Start(t.Context()))

	for _, n := range []int{0, 1, 2, 3} {
		require.NoError(t, pool.Submit(n))
	}
	require.NoError(t, pool.Stop(5*time.Second))

	assert.Equal(t, int64(2), atomic.LoadInt64(&ok))
	assert.Equal(t, int64(2), pool.Stats().Failed)

	count, err := testutil.GatherAndCount(reg, "test_pool_failed_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPool_StopTimeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	pool := worker.NewPool(1, 1, func(_ context.Context, _ int) error {
		<-block
		return nil
	})
	require.NoError(t, pool.Start(t.Context()))
	require.NoError(t, pool.Submit(1))

	require.ErrorIs(t, pool.Stop(20*time.Millisecond), worker.ErrStopTimeout)
}
