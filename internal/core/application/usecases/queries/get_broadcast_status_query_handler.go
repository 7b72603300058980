package queries

import (
	"context"
	"time"

	"helpdispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetBroadcastStatusQueryHandler reads the dispatch marker of a request
// together with the number of stored broadcast offers.
type GetBroadcastStatusQueryHandler struct {
	db *gorm.DB
}

func NewGetBroadcastStatusQueryHandler(db *gorm.DB) GetBroadcastStatusQueryHandler {
	return GetBroadcastStatusQueryHandler{db: db}
}

type broadcastStatusRow struct {
	Status             string
	BroadcastStatus    string
	DispatchState      string
	DispatchReplayed   bool
	HelpersNotified    int
	BroadcastRows      int
	DispatchedAt       *time.Time
	BroadcastExpiresAt time.Time
}

// Handle returns errs.ErrObjectNotFound when the request does not exist or
// belongs to someone else.
func (h GetBroadcastStatusQueryHandler) Handle(
	ctx context.Context,
	query GetBroadcastStatusQuery,
) (GetBroadcastStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBroadcastStatusQueryResponse{}, err
	}

	var row broadcastStatusRow
	result := h.db.WithContext(ctx).Raw(`
		SELECT
			sr.status,
			sr.broadcast_status,
			sr.dispatch_state,
			sr.dispatch_replayed,
			sr.helpers_notified,
			sr.dispatched_at,
			sr.broadcast_expires_at,
			(SELECT COUNT(*) FROM broadcast_notifications bn WHERE bn.request_id = sr.id) AS broadcast_rows
		FROM service_requests sr
		WHERE sr.id = ? AND sr.customer_id = ?
	`, query.RequestID().Bytes(), query.RequesterID().Bytes()).Scan(&row)
	if result.Error != nil {
		return GetBroadcastStatusQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetBroadcastStatusQueryResponse{}, errs.NewObjectNotFoundError("service request", query.RequestID().String())
	}

	return GetBroadcastStatusQueryResponse{
		RequestID:          query.RequestID(),
		Status:             row.Status,
		BroadcastStatus:    row.BroadcastStatus,
		DispatchState:      row.DispatchState,
		DispatchReplayed:   row.DispatchReplayed,
		HelpersNotified:    row.HelpersNotified,
		BroadcastRows:      row.BroadcastRows,
		DispatchedAt:       row.DispatchedAt,
		BroadcastExpiresAt: row.BroadcastExpiresAt,
	}, nil
}
