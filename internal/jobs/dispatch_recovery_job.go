package jobs

import (
	"context"
	"log/slog"
	"time"

	"helpdispatch/internal/core/application/usecases/commands"
	"helpdispatch/internal/core/domain/model/category"
	"helpdispatch/internal/core/domain/model/request"
	"helpdispatch/internal/core/domain/services"
	"helpdispatch/internal/core/ports"
	"helpdispatch/internal/metrics"
	"helpdispatch/internal/pkg/timeout"

	"github.com/robfig/cron/v3"
)

const (
	DefaultSweepSchedule = "0 * * * * *"
	DefaultStaleAfter    = 2 * time.Minute
	DefaultSweepBatch    = 50
)

// RecoveryConfig tunes DispatchRecoveryJob. Zero values take the defaults.
type RecoveryConfig struct {
	Schedule    string
	StaleAfter  time.Duration
	BatchSize   int
	CallTimeout time.Duration
}

func (c RecoveryConfig) withDefaults() RecoveryConfig {
	if c.Schedule == "" {
		c.Schedule = DefaultSweepSchedule
	}
	if c.StaleAfter <= 0 {
		c.StaleAfter = DefaultStaleAfter
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultSweepBatch
	}
	return c
}

// DispatchRecoveryJob replays dispatch passes lost to a crash or a full task
// queue. A stale pass is reset to pending and scheduled again, at most once
// per request; the compare-and-set on the marker keeps concurrent sweeps from
// replaying the same request twice. A running pass is stale only once its
// claim is older than StaleAfter, so StaleAfter must exceed the longest a
// single pass can take.
type DispatchRecoveryJob struct {
	requests   ports.ServiceRequestRepository
	categories ports.CategoryRepository
	profiles   ports.ProfileReader
	scheduler  ports.TaskScheduler
	dispatcher commands.DispatchBroadcaster
	metrics    *metrics.Collectors
	config     RecoveryConfig
	cron       *cron.Cron
	now        func() time.Time
	logger     *slog.Logger
}

func NewDispatchRecoveryJob(
	requests ports.ServiceRequestRepository,
	categories ports.CategoryRepository,
	profiles ports.ProfileReader,
	scheduler ports.TaskScheduler,
	dispatcher commands.DispatchBroadcaster,
	collectors *metrics.Collectors,
	config RecoveryConfig,
	logger *slog.Logger,
) *DispatchRecoveryJob {
	return &DispatchRecoveryJob{
		requests:   requests,
		categories: categories,
		profiles:   profiles,
		scheduler:  scheduler,
		dispatcher: dispatcher,
		metrics:    collectors,
		config:     config.withDefaults(),
		cron:       cron.New(cron.WithSeconds()),
		now:        time.Now,
		logger:     logger.With("component", "dispatch_recovery_job"),
	}
}

// Start runs Sweep on the configured schedule.
func (j *DispatchRecoveryJob) Start() error {
	_, err := j.cron.AddFunc(j.config.Schedule, func() {
		ctx := context.Background()
		if _, err := j.Sweep(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Dispatch recovery sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch recovery job started", "schedule", j.config.Schedule)
	return nil
}

func (j *DispatchRecoveryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Dispatch recovery job stopped")
}

// Sweep replays one batch of stale dispatches and returns how many were
// scheduled again.
func (j *DispatchRecoveryJob) Sweep(ctx context.Context) (int, error) {
	olderThan := j.now().Add(-j.config.StaleAfter)

	stale, err := timeout.Do(ctx, j.config.CallTimeout, func(ctx context.Context) ([]*request.ServiceRequest, error) {
		return j.requests.ListStaleDispatches(ctx, olderThan, j.config.BatchSize)
	})
	if err != nil {
		return 0, err
	}

	replayed := 0
	for _, sr := range stale {
		if j.replay(ctx, sr, olderThan) {
			replayed++
		}
	}

	if replayed > 0 {
		j.logger.InfoContext(ctx, "Stale dispatches replayed", "found", len(stale), "replayed", replayed)
	}
	return replayed, nil
}

func (j *DispatchRecoveryJob) replay(ctx context.Context, sr *request.ServiceRequest, olderThan time.Time) bool {
	log := j.logger.With("request_id", sr.ID().String())

	current := sr.Dispatch()
	if !current.IsStale(sr.CreatedAt(), olderThan) {
		log.DebugContext(ctx, "Dispatch still live, not replaying", "state", current.State)
		return false
	}

	next, err := current.Replay()
	if err != nil {
		log.DebugContext(ctx, "Dispatch not replayable", "state", current.State, "error", err)
		return false
	}

	cmd, err := commands.NewDispatchBroadcastCommandFromRequest(sr, j.categoryTarget(ctx, sr), j.requesterName(ctx, sr), true)
	if err != nil {
		log.ErrorContext(ctx, "Failed to rebuild dispatch command", "error", err)
		return false
	}

	claimed, err := timeout.Do(ctx, j.config.CallTimeout, func(ctx context.Context) (bool, error) {
		return j.requests.UpdateDispatch(ctx, sr.ID(), current.State, next)
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to reset dispatch marker", "error", err)
		return false
	}
	if !claimed {
		return false
	}

	err = j.scheduler.Schedule(ports.Task{
		Name: "dispatch_broadcast_replay",
		Run: func(ctx context.Context) error {
			_, err := j.dispatcher.Handle(ctx, cmd)
			return err
		},
	})
	if err != nil {
		log.ErrorContext(ctx, "Replayed dispatch not scheduled, marking failed", "error", err)
		j.markFailed(ctx, sr, next)
		return false
	}

	j.metrics.IncRecoveryReplay()
	return true
}

func (j *DispatchRecoveryJob) markFailed(ctx context.Context, sr *request.ServiceRequest, pending request.DispatchMarker) {
	failed, err := pending.Fail()
	if err != nil {
		return
	}
	if _, err = j.requests.UpdateDispatch(ctx, sr.ID(), pending.State, failed); err != nil {
		j.logger.ErrorContext(ctx, "Failed to mark dispatch failed", "request_id", sr.ID().String(), "error", err)
	}
}

// categoryTarget falls back to matching on the identifier alone when the
// catalog record is gone.
func (j *DispatchRecoveryJob) categoryTarget(ctx context.Context, sr *request.ServiceRequest) services.CategoryTarget {
	c, err := timeout.Do(ctx, j.config.CallTimeout, func(ctx context.Context) (*category.Category, error) {
		return j.categories.Get(ctx, sr.CategoryID())
	})
	if err != nil {
		j.logger.WarnContext(ctx, "Category lookup failed, matching by id only",
			"request_id", sr.ID().String(), "error", err)
		return services.CategoryTarget{ID: sr.CategoryID().String()}
	}
	return services.NewCategoryTarget(c)
}

func (j *DispatchRecoveryJob) requesterName(ctx context.Context, sr *request.ServiceRequest) string {
	name, err := timeout.Do(ctx, j.config.CallTimeout, func(ctx context.Context) (string, error) {
		return j.profiles.DisplayName(ctx, sr.RequesterID())
	})
	if err != nil {
		j.logger.WarnContext(ctx, "Requester profile lookup failed",
			"request_id", sr.ID().String(), "error", err)
	}
	return name
}
