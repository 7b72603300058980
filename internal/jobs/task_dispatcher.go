package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"helpdispatch/internal/core/ports"
	"helpdispatch/internal/pkg/worker"

	"github.com/prometheus/client_golang/prometheus"
)

var errTaskWithoutRun = errors.New("task has no run function")

// TaskDispatcher runs background tasks on a bounded worker pool. Tasks get the
// pool context, never the context of the HTTP request that scheduled them.
type TaskDispatcher struct {
	pool   *worker.Pool[ports.Task]
	logger *slog.Logger
}

var _ ports.TaskScheduler = (*TaskDispatcher)(nil)

// NewTaskDispatcher creates the dispatcher. reg may be nil to skip pool metrics.
func NewTaskDispatcher(workers, queueSize int, reg prometheus.Registerer, logger *slog.Logger) *TaskDispatcher {
	d := &TaskDispatcher{
		logger: logger.With("component", "task_dispatcher"),
	}

	var opts []worker.Option[ports.Task]
	if reg != nil {
		opts = append(opts, worker.WithMetrics[ports.Task](reg, "helpdispatch_tasks"))
	}
	d.pool = worker.NewPool(workers, queueSize, d.run, opts...)

	return d
}

func (d *TaskDispatcher) Start(ctx context.Context) error {
	if err := d.pool.Start(ctx); err != nil {
		return err
	}
	stats := d.pool.Stats()
	d.logger.InfoContext(ctx, "Task dispatcher started", "workers", stats.Workers, "queue_size", stats.QueueSize)
	return nil
}

// Stop waits up to timeout for queued tasks to finish.
func (d *TaskDispatcher) Stop(timeout time.Duration) error {
	err := d.pool.Stop(timeout)
	stats := d.pool.Stats()
	d.logger.Info("Task dispatcher stopped",
		"processed", stats.Processed, "failed", stats.Failed, "dropped", stats.Dropped)
	return err
}

// Schedule enqueues task without blocking. worker.ErrQueueFull means the task
// was dropped.
func (d *TaskDispatcher) Schedule(task ports.Task) error {
	if task.Run == nil {
		return errTaskWithoutRun
	}
	return d.pool.Submit(task)
}

func (d *TaskDispatcher) Stats() worker.PoolStats {
	return d.pool.Stats()
}

func (d *TaskDispatcher) run(ctx context.Context, task ports.Task) error {
	start := time.Now()
	err := task.Run(ctx)
	if err != nil {
		d.logger.ErrorContext(ctx, "Background task failed",
			"task", task.Name, "duration", time.Since(start), "error", err)
		return err
	}

	d.logger.DebugContext(ctx, "Background task finished", "task", task.Name, "duration", time.Since(start))
	return nil
}
