package ports

import (
	"context"

	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/core/domain/model/notification"
)

// NotificationWriter persists what a dispatch pass produced.
type NotificationWriter interface {
	AddBroadcasts(ctx context.Context, broadcasts []*notification.Broadcast) error
	AddNotifications(ctx context.Context, notifications []*notification.Notification) error

	// CountBroadcasts returns how many helpers were offered the request.
	CountBroadcasts(ctx context.Context, requestID kernel.UUID) (int, error)
}
