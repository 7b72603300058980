package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/core/domain/model/request"
	"helpdispatch/internal/core/domain/services"
	"helpdispatch/internal/core/ports"
	"helpdispatch/internal/pkg/timeout"
)

// DefaultRequesterName is shown to helpers when the requester has no profile name.
const DefaultRequesterName = "A customer"

// ErrRequestPersistenceFailed is returned when the request could not be
// stored. Nothing is scheduled in that case.
var ErrRequestPersistenceFailed = errors.New("failed to create service request")

// DispatchBroadcaster runs one dispatch pass.
type DispatchBroadcaster interface {
	Handle(ctx context.Context, cmd DispatchBroadcastCommand) (DispatchBroadcastResult, error)
}

// MediaSideloader migrates inline media of one request.
type MediaSideloader interface {
	Handle(ctx context.Context, cmd SideloadMediaCommand) (SideloadMediaResult, error)
}

// CreateServiceRequestResult is returned to the caller before any helper is
// contacted, so HelpersNotified is always zero here.
type CreateServiceRequestResult struct {
	RequestID       kernel.UUID
	HelpersNotified int
}

// CreateServiceRequestCommandHandler is the intake path: it resolves the
// category, stores the request with fresh verification codes and schedules
// the dispatch pass and the media sideload as independent background tasks.
// Its latency does not depend on helper discovery or notification delivery.
//
// Example:
//
//	handler := NewCreateServiceRequestCommandHandler(uowFactory, profiles, resolver,
//	    scheduler, dispatcher, sideloader, 5*time.Second, logger)
//	res, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrCategorySetupFailed), errors.Is(err, ErrRequestPersistenceFailed):
//	    // 500
//	}
type CreateServiceRequestCommandHandler struct {
	uowFactory  IntakeUoWFactory
	profiles    ports.ProfileReader
	resolver    CategoryResolver
	scheduler   ports.TaskScheduler
	dispatcher  DispatchBroadcaster
	sideloader  MediaSideloader
	callTimeout time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

func NewCreateServiceRequestCommandHandler(
	uowFactory IntakeUoWFactory,
	profiles ports.ProfileReader,
	resolver CategoryResolver,
	scheduler ports.TaskScheduler,
	dispatcher DispatchBroadcaster,
	sideloader MediaSideloader,
	callTimeout time.Duration,
	logger *slog.Logger,
) *CreateServiceRequestCommandHandler {
	return &CreateServiceRequestCommandHandler{
		uowFactory:  uowFactory,
		profiles:    profiles,
		resolver:    resolver,
		scheduler:   scheduler,
		dispatcher:  dispatcher,
		sideloader:  sideloader,
		callTimeout: callTimeout,
		now:         time.Now,
		logger:      logger.With("component", "create_service_request"),
	}
}

// Handle stores the request and schedules its background work.
func (h *CreateServiceRequestCommandHandler) Handle(
	ctx context.Context,
	cmd CreateServiceRequestCommand,
) (CreateServiceRequestResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateServiceRequestResult{}, err
	}

	requesterName := h.requesterName(ctx, cmd.RequesterID())
	in := cmd.Input()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateServiceRequestResult{}, fmt.Errorf("%w: %w", ErrRequestPersistenceFailed, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cat, err := h.resolver.Resolve(ctx, uow.CategoryRepository(), in.CategoryToken, in.CategoryName)
	if err != nil {
		return CreateServiceRequestResult{}, err
	}

	sr, err := request.NewServiceRequest(request.NewServiceRequestParams{
		ID:             kernel.NewUUID(),
		RequesterID:    cmd.RequesterID(),
		CategoryID:     cat.ID(),
		CategoryName:   cat.Name(),
		Description:    in.Description,
		Address:        request.NewAddress(in.Address, in.FlatNumber, in.Floor, in.Landmark),
		Location:       cmd.Location(),
		Media:          in.Images,
		EstimatedPrice: in.EstimatedPrice,
		Urgency:        request.ParseUrgency(in.Urgency),
		PaymentMethod:  in.PaymentMethod,
		Details:        cmd.Details(),
		CreatedAt:      h.now(),
	})
	if err != nil {
		return CreateServiceRequestResult{}, fmt.Errorf("%w: %w", ErrRequestPersistenceFailed, err)
	}

	if err = uow.ServiceRequestRepository().Add(ctx, sr); err != nil {
		return CreateServiceRequestResult{}, fmt.Errorf("%w: %w", ErrRequestPersistenceFailed, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateServiceRequestResult{}, fmt.Errorf("%w: %w", ErrRequestPersistenceFailed, err)
	}

	h.scheduleDispatch(ctx, sr, services.NewCategoryTarget(cat), requesterName)
	h.scheduleSideload(ctx, sr)

	return CreateServiceRequestResult{RequestID: sr.ID(), HelpersNotified: 0}, nil
}

func (h *CreateServiceRequestCommandHandler) requesterName(ctx context.Context, requesterID kernel.UUID) string {
	name, err := timeout.Do(ctx, h.callTimeout, func(ctx context.Context) (string, error) {
		return h.profiles.DisplayName(ctx, requesterID)
	})
	if err != nil {
		h.logger.WarnContext(ctx, "Requester profile lookup failed",
			"requester_id", requesterID.String(), "error", err)
	}
	if name == "" {
		return DefaultRequesterName
	}
	return name
}

// scheduleDispatch queues the dispatch pass. A scheduling failure leaves the
// dispatch marker pending, so the recovery sweep picks the request up later.
func (h *CreateServiceRequestCommandHandler) scheduleDispatch(
	ctx context.Context,
	sr *request.ServiceRequest,
	cat services.CategoryTarget,
	requesterName string,
) {
	cmd, err := NewDispatchBroadcastCommandFromRequest(sr, cat, requesterName, false)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to build dispatch command", "request_id", sr.ID().String(), "error", err)
		return
	}

	err = h.scheduler.Schedule(ports.Task{
		Name: "dispatch_broadcast",
		Run: func(ctx context.Context) error {
			_, err := h.dispatcher.Handle(ctx, cmd)
			return err
		},
	})
	if err != nil {
		h.logger.WarnContext(ctx, "Dispatch not scheduled, left for recovery sweep",
			"request_id", sr.ID().String(), "error", err)
	}
}

func (h *CreateServiceRequestCommandHandler) scheduleSideload(ctx context.Context, sr *request.ServiceRequest) {
	media := sr.Media()
	if !request.HasInlineMedia(media) {
		return
	}

	cmd, err := NewSideloadMediaCommand(sr.ID(), sr.RequesterID(), media)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to build sideload command", "request_id", sr.ID().String(), "error", err)
		return
	}

	err = h.scheduler.Schedule(ports.Task{
		Name: "sideload_media",
		Run: func(ctx context.Context) error {
			_, err := h.sideloader.Handle(ctx, cmd)
			return err
		},
	})
	if err != nil {
		h.logger.WarnContext(ctx, "Media sideload not scheduled, inline media kept",
			"request_id", sr.ID().String(), "error", err)
	}
}
