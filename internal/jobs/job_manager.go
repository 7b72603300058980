package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// JobManager starts and stops the background machinery: the task dispatcher
// that runs dispatch and sideload passes, and the recovery sweep.
type JobManager struct {
	dispatcher  *TaskDispatcher
	recoveryJob *DispatchRecoveryJob
	logger      *slog.Logger
}

func NewJobManager(dispatcher *TaskDispatcher, recoveryJob *DispatchRecoveryJob, logger *slog.Logger) *JobManager {
	return &JobManager{
		dispatcher:  dispatcher,
		recoveryJob: recoveryJob,
		logger:      logger.With("component", "job_manager"),
	}
}

// StartAll starts the dispatcher first so the sweep always has somewhere to
// schedule replays.
func (jm *JobManager) StartAll(ctx context.Context) error {
	if err := jm.dispatcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start task dispatcher: %w", err)
	}

	if err := jm.recoveryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		_ = jm.dispatcher.Stop(time.Second)
		return fmt.Errorf("failed to start dispatch recovery job: %w", err)
	}

	return nil
}

// StopAll stops the sweep, then drains the dispatcher for up to drainTimeout.
func (jm *JobManager) StopAll(drainTimeout time.Duration) {
	jm.recoveryJob.Stop()
	if err := jm.dispatcher.Stop(drainTimeout); err != nil {
		jm.logger.Warn("Task dispatcher did not drain in time", "error", err)
	}
}
