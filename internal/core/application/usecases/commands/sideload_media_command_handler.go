package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"helpdispatch/internal/core/domain/model/request"
	"helpdispatch/internal/core/ports"
	"helpdispatch/internal/metrics"
	"helpdispatch/internal/pkg/timeout"

	"golang.org/x/sync/errgroup"
)

// DefaultSideloadConcurrency bounds parallel uploads for one request.
const DefaultSideloadConcurrency = 4

// SideloadMediaResult counts what happened to the inline items.
type SideloadMediaResult struct {
	Migrated int
	Kept     int
}

// SideloadMediaCommandHandler uploads inline media items to object storage and
// replaces them by their public URLs. Items that are already URLs pass
// through. An item that fails to decode or upload stays inline; the request
// is never failed because of media.
type SideloadMediaCommandHandler struct {
	requests    ports.ServiceRequestRepository
	uploader    ports.MediaUploader
	metrics     *metrics.Collectors
	concurrency int
	callTimeout time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

func NewSideloadMediaCommandHandler(
	requests ports.ServiceRequestRepository,
	uploader ports.MediaUploader,
	collectors *metrics.Collectors,
	callTimeout time.Duration,
	logger *slog.Logger,
) *SideloadMediaCommandHandler {
	return &SideloadMediaCommandHandler{
		requests:    requests,
		uploader:    uploader,
		metrics:     collectors,
		concurrency: DefaultSideloadConcurrency,
		callTimeout: callTimeout,
		now:         time.Now,
		logger:      logger.With("component", "sideload_media"),
	}
}

func (h *SideloadMediaCommandHandler) Handle(
	ctx context.Context,
	cmd SideloadMediaCommand,
) (SideloadMediaResult, error) {
	if err := cmd.Validate(); err != nil {
		return SideloadMediaResult{}, err
	}

	log := h.logger.With("request_id", cmd.RequestID().String())
	media := cmd.Media()
	out := make([]string, len(media))
	migrated := make([]bool, len(media))
	at := h.now()

	var g errgroup.Group
	g.SetLimit(h.concurrency)

	for i, item := range media {
		if request.IsRemoteURL(item) {
			out[i] = item
			h.metrics.IncMediaItem(metrics.MediaPassthrough)
			continue
		}

		g.Go(func() error {
			url, err := h.upload(ctx, cmd, at, i, item)
			if err != nil {
				log.WarnContext(ctx, "Media item kept inline", "index", i, "error", err)
				out[i] = item
				h.metrics.IncMediaItem(metrics.MediaKeptInline)
				return nil
			}
			out[i] = url
			migrated[i] = true
			h.metrics.IncMediaItem(metrics.MediaMigrated)
			return nil
		})
	}
	_ = g.Wait()

	var res SideloadMediaResult
	for i, item := range media {
		switch {
		case migrated[i]:
			res.Migrated++
		case !request.IsRemoteURL(item):
			res.Kept++
		}
	}

	if res.Migrated == 0 {
		log.InfoContext(ctx, "No media migrated", "kept_inline", res.Kept)
		return res, nil
	}

	err := timeout.Run(ctx, h.callTimeout, func(ctx context.Context) error {
		return h.requests.UpdateMedia(ctx, cmd.RequestID(), out)
	})
	if err != nil {
		return res, fmt.Errorf("update media: %w", err)
	}

	log.InfoContext(ctx, "Media sideloaded", "migrated", res.Migrated, "kept_inline", res.Kept)
	return res, nil
}

func (h *SideloadMediaCommandHandler) upload(
	ctx context.Context,
	cmd SideloadMediaCommand,
	at time.Time,
	index int,
	item string,
) (string, error) {
	inline, err := request.ParseInlineMedia(item)
	if err != nil {
		return "", err
	}

	path := request.MediaPath(cmd.RequesterID(), cmd.RequestID(), at, index, inline.Extension())
	return timeout.Do(ctx, h.callTimeout, func(ctx context.Context) (string, error) {
		return h.uploader.Upload(ctx, path, inline.ContentType, inline.Data)
	})
}
