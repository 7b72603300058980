package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"helpdispatch/internal/core/domain/model/helper"
	"helpdispatch/internal/core/domain/model/notification"
	"helpdispatch/internal/core/domain/model/request"
	"helpdispatch/internal/core/domain/services"
	"helpdispatch/internal/core/ports"
	"helpdispatch/internal/metrics"
	"helpdispatch/internal/pkg/timeout"

	"golang.org/x/sync/errgroup"
)

// JobAlertExpirySeconds is how long a helper has to accept a pushed job alert.
const JobAlertExpirySeconds = 30

// JobMessages renders notification copy.
type JobMessages interface {
	NewJobAlert(categoryName, requesterName string, price, distanceKm float64) (title, body string, err error)
	RequestBroadcasted(categoryName string, helpersNotified int) (title, body string, err error)
}

// DispatchBroadcastResult summarizes one dispatch pass.
type DispatchBroadcastResult struct {
	// Skipped is true when another worker already owned the pass.
	Skipped         bool
	HelpersNotified int
	Fallback        bool
	PushFailed      bool
}

// DispatchBroadcastCommandHandler runs the background dispatch pass for one
// request: claim the dispatch marker, load nearby available helpers, filter
// them, write broadcast and notification rows, trigger push delivery, and
// finally record the notified count on the marker.
//
// Broadcast rows, helper notifications and the requester confirmation are
// written concurrently; all of them complete before push is triggered. Push
// failures are logged and never retried.
type DispatchBroadcastCommandHandler struct {
	requests      ports.ServiceRequestRepository
	helpers       ports.HelperPoolReader
	notifications ports.NotificationWriter
	push          ports.PushSender
	messages      JobMessages
	filter        services.EligibilityFilter
	metrics       *metrics.Collectors
	callTimeout   time.Duration
	now           func() time.Time
	logger        *slog.Logger
}

func NewDispatchBroadcastCommandHandler(
	requests ports.ServiceRequestRepository,
	helpers ports.HelperPoolReader,
	notifications ports.NotificationWriter,
	push ports.PushSender,
	messages JobMessages,
	filter services.EligibilityFilter,
	collectors *metrics.Collectors,
	callTimeout time.Duration,
	logger *slog.Logger,
) *DispatchBroadcastCommandHandler {
	return &DispatchBroadcastCommandHandler{
		requests:      requests,
		helpers:       helpers,
		notifications: notifications,
		push:          push,
		messages:      messages,
		filter:        filter,
		metrics:       collectors,
		callTimeout:   callTimeout,
		now:           time.Now,
		logger:        logger.With("component", "dispatch_broadcast"),
	}
}

// Handle runs the pass. A pass that finds nobody to notify still completes
// successfully with zero helpers.
func (h *DispatchBroadcastCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchBroadcastCommand,
) (DispatchBroadcastResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchBroadcastResult{}, err
	}

	log := h.logger.With("request_id", cmd.RequestID().String(), "replayed", cmd.Replayed())

	pending := request.DispatchMarker{State: request.DispatchPending, Replayed: cmd.Replayed()}
	running, err := pending.Claim(h.now())
	if err != nil {
		return DispatchBroadcastResult{}, err
	}

	claimed, err := h.updateDispatch(ctx, cmd, request.DispatchPending, running)
	if err != nil {
		h.metrics.ObserveDispatch(metrics.OutcomeFailed, 0, false)
		return DispatchBroadcastResult{}, fmt.Errorf("claim dispatch: %w", err)
	}
	if !claimed {
		log.InfoContext(ctx, "Dispatch already claimed, skipping")
		h.metrics.ObserveDispatch(metrics.OutcomeSkipped, 0, false)
		return DispatchBroadcastResult{Skipped: true}, nil
	}

	result, err := h.broadcast(ctx, cmd, log)
	if err != nil {
		h.metrics.ObserveDispatch(metrics.OutcomeFailed, 0, false)
		if failed, failErr := running.Fail(); failErr == nil {
			if _, markErr := h.updateDispatch(ctx, cmd, request.DispatchRunning, failed); markErr != nil {
				log.ErrorContext(ctx, "Failed to mark dispatch failed", "error", markErr)
			}
		}
		return result, err
	}

	done, err := running.Complete(result.HelpersNotified, h.now())
	if err != nil {
		return result, err
	}
	if _, err = h.updateDispatch(ctx, cmd, request.DispatchRunning, done); err != nil {
		log.ErrorContext(ctx, "Failed to record dispatch outcome", "error", err)
	}

	h.metrics.ObserveDispatch(metrics.OutcomeDispatched, result.HelpersNotified, result.Fallback)
	log.InfoContext(ctx, "Dispatch completed",
		"helpers_notified", result.HelpersNotified,
		"fallback", result.Fallback,
		"push_failed", result.PushFailed,
	)

	return result, nil
}

func (h *DispatchBroadcastCommandHandler) broadcast(
	ctx context.Context,
	cmd DispatchBroadcastCommand,
	log *slog.Logger,
) (DispatchBroadcastResult, error) {
	origin, ok := cmd.Location()
	if !ok {
		log.WarnContext(ctx, "Request has no location, no helpers notified")
		return DispatchBroadcastResult{}, nil
	}

	pool, err := timeout.Do(ctx, h.callTimeout, func(ctx context.Context) ([]*helper.Candidate, error) {
		return h.helpers.ListAvailableNear(ctx, origin, services.FallbackRadiusKm)
	})
	if err != nil {
		return DispatchBroadcastResult{}, fmt.Errorf("load helper pool: %w", err)
	}
	if len(pool) == 0 {
		log.InfoContext(ctx, "No available helpers, no helpers notified")
		return DispatchBroadcastResult{}, nil
	}

	filtered, err := h.filter.Filter(origin, cmd.Category(), pool)
	if err != nil {
		return DispatchBroadcastResult{}, fmt.Errorf("filter helpers: %w", err)
	}
	if len(filtered.Matches) == 0 {
		log.InfoContext(ctx, "No eligible helpers, no helpers notified",
			"pool_size", len(pool), "within_radius", filtered.WithinRadius)
		return DispatchBroadcastResult{}, nil
	}
	if filtered.Fallback {
		log.InfoContext(ctx, "No category match, using nearest helpers", "within_radius", filtered.WithinRadius)
	}

	if err = h.persist(ctx, cmd, filtered.Matches); err != nil {
		return DispatchBroadcastResult{}, err
	}

	result := DispatchBroadcastResult{
		HelpersNotified: len(filtered.Matches),
		Fallback:        filtered.Fallback,
	}

	if err = h.triggerPush(ctx, cmd, filtered.Matches); err != nil {
		h.metrics.IncPushFailure()
		log.WarnContext(ctx, "Push job alert failed", "error", err)
		result.PushFailed = true
	}

	return result, nil
}

func (h *DispatchBroadcastCommandHandler) persist(
	ctx context.Context,
	cmd DispatchBroadcastCommand,
	matches []services.Match,
) error {
	now := h.now()
	categoryName := cmd.Category().Name

	broadcasts := make([]*notification.Broadcast, 0, len(matches))
	alerts := make([]*notification.Notification, 0, len(matches))

	for _, m := range matches {
		b, err := notification.NewBroadcast(cmd.RequestID(), m.Candidate.ID(), m.DistanceKm, now)
		if err != nil {
			return err
		}
		broadcasts = append(broadcasts, b)

		title, body, err := h.messages.NewJobAlert(categoryName, cmd.RequesterName(), cmd.Price(), m.DistanceKm)
		if err != nil {
			return fmt.Errorf("render job alert: %w", err)
		}
		n, err := notification.NewNotification(m.Candidate.UserID(), cmd.RequestID(), title, body, map[string]any{
			"type":            notification.TypeNewJobBroadcast,
			"request_id":      cmd.RequestID().String(),
			"category":        categoryName,
			"estimated_price": cmd.Price(),
			"urgency":         string(cmd.Urgency()),
			"customer_name":   cmd.RequesterName(),
			"address":         cmd.Address(),
			"distance_km":     fmt.Sprintf("%.1f", m.DistanceKm),
		}, now)
		if err != nil {
			return err
		}
		alerts = append(alerts, n)
	}

	title, body, err := h.messages.RequestBroadcasted(categoryName, len(matches))
	if err != nil {
		return fmt.Errorf("render confirmation: %w", err)
	}
	confirmation, err := notification.NewNotification(cmd.RequesterID(), cmd.RequestID(), title, body, map[string]any{
		"type":             notification.TypeRequestBroadcasted,
		"request_id":       cmd.RequestID().String(),
		"helpers_notified": len(matches),
	}, now)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return timeout.Run(gctx, h.callTimeout, func(ctx context.Context) error {
			return h.notifications.AddBroadcasts(ctx, broadcasts)
		})
	})
	g.Go(func() error {
		return timeout.Run(gctx, h.callTimeout, func(ctx context.Context) error {
			return h.notifications.AddNotifications(ctx, alerts)
		})
	})
	g.Go(func() error {
		return timeout.Run(gctx, h.callTimeout, func(ctx context.Context) error {
			return h.notifications.AddNotifications(ctx, []*notification.Notification{confirmation})
		})
	})

	if err = g.Wait(); err != nil {
		return fmt.Errorf("write notifications: %w", err)
	}
	return nil
}

func (h *DispatchBroadcastCommandHandler) triggerPush(
	ctx context.Context,
	cmd DispatchBroadcastCommand,
	matches []services.Match,
) error {
	userIDs := make([]string, 0, len(matches))
	for _, m := range matches {
		userIDs = append(userIDs, m.Candidate.UserID().String())
	}

	return timeout.Run(ctx, h.callTimeout, func(ctx context.Context) error {
		return h.push.SendJobAlert(ctx, ports.JobAlert{
			HelperUserIDs:    userIDs,
			JobID:            cmd.RequestID().String(),
			Title:            fmt.Sprintf("%s Service Required", cmd.Category().Name),
			Description:      cmd.Description(),
			Price:            cmd.Price(),
			Location:         cmd.Address(),
			CustomerName:     cmd.RequesterName(),
			Urgency:          string(cmd.Urgency()),
			ExpiresInSeconds: JobAlertExpirySeconds,
		})
	})
}

func (h *DispatchBroadcastCommandHandler) updateDispatch(
	ctx context.Context,
	cmd DispatchBroadcastCommand,
	from request.DispatchState,
	marker request.DispatchMarker,
) (bool, error) {
	return timeout.Do(ctx, h.callTimeout, func(ctx context.Context) (bool, error) {
		return h.requests.UpdateDispatch(ctx, cmd.RequestID(), from, marker)
	})
}
