// Package notificationrepo stores broadcast offers and queued push notifications.
package notificationrepo

import (
	"time"

	"helpdispatch/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// BroadcastDTO is a broadcast_notifications row: one offer of a request to a helper.
type BroadcastDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID  uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_broadcast_request_helper"`
	HelperID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_broadcast_request_helper"`
	Status     string    `gorm:"size:16"`
	DistanceKm float64   `gorm:"type:numeric(8,2)"`
	SentAt     time.Time
}

func (BroadcastDTO) TableName() string {
	return "broadcast_notifications"
}

// NotificationDTO is a notifications row picked up by the push delivery worker.
type NotificationDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `gorm:"type:uuid;index"`
	RequestID uuid.UUID      `gorm:"type:uuid;index"`
	Channel   string         `gorm:"size:16"`
	Title     string
	Body      string
	Data      map[string]any `gorm:"type:jsonb;serializer:json"`
	Status    string         `gorm:"size:16;index"`
	CreatedAt time.Time
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func broadcastFromDomain(b *notification.Broadcast) BroadcastDTO {
	return BroadcastDTO{
		ID:         b.ID().Bytes(),
		RequestID:  b.RequestID().Bytes(),
		HelperID:   b.HelperID().Bytes(),
		Status:     b.Status(),
		DistanceKm: b.DistanceKm(),
		SentAt:     b.SentAt(),
	}
}

func notificationFromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID().Bytes(),
		UserID:    n.RecipientID().Bytes(),
		RequestID: n.RequestID().Bytes(),
		Channel:   n.Channel(),
		Title:     n.Title(),
		Body:      n.Body(),
		Data:      n.Payload(),
		Status:    n.Status(),
		CreatedAt: n.CreatedAt(),
	}
}
