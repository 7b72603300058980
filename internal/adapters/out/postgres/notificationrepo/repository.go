package notificationrepo

import (
	"context"

	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/core/domain/model/notification"

	"gorm.io/gorm"
)

// DefaultBatchSize bounds the rows per INSERT statement.
const DefaultBatchSize = 100

// GormNotificationWriter implements ports.NotificationWriter.
type GormNotificationWriter struct {
	db        *gorm.DB
	batchSize int
}

func NewGormNotificationWriter(db *gorm.DB) *GormNotificationWriter {
	return &GormNotificationWriter{db: db, batchSize: DefaultBatchSize}
}

// AddBroadcasts inserts all rows in one transaction.
func (w *GormNotificationWriter) AddBroadcasts(ctx context.Context, broadcasts []*notification.Broadcast) error {
	if len(broadcasts) == 0 {
		return nil
	}

	dtos := make([]BroadcastDTO, 0, len(broadcasts))
	for _, b := range broadcasts {
		if err := b.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, broadcastFromDomain(b))
	}

	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&dtos, w.batchSize).Error
	})
}

// AddNotifications inserts all rows in one transaction.
func (w *GormNotificationWriter) AddNotifications(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	dtos := make([]NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		if err := n.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, notificationFromDomain(n))
	}

	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&dtos, w.batchSize).Error
	})
}

func (w *GormNotificationWriter) CountBroadcasts(ctx context.Context, requestID kernel.UUID) (int, error) {
	if err := requestID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := w.db.WithContext(ctx).
		Model(&BroadcastDTO{}).
		Where("request_id = ?", requestID.Bytes()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}
