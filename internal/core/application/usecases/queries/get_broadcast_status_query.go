package queries

import (
	"errors"
	"time"

	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/pkg/guard"
)

var ErrGetBroadcastStatusQueryIsNotConstructed = errors.New(
	"GetBroadcastStatusQuery must be created via NewGetBroadcastStatusQuery constructor",
)

// GetBroadcastStatusQuery asks how far the background dispatch of a request
// got. Only the requester may see it.
//
// Example:
//
//	query, err := NewGetBroadcastStatusQuery(requestID, callerID)
//	if err != nil {
//	    return err
//	}
//	status, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404, also returned to callers who are not the requester
//	}
type GetBroadcastStatusQuery struct {
	requestID   kernel.UUID
	requesterID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetBroadcastStatusQuery(requestID, requesterID kernel.UUID) (GetBroadcastStatusQuery, error) {
	if err := errors.Join(requestID.Validate(), requesterID.Validate()); err != nil {
		return GetBroadcastStatusQuery{}, err
	}

	return GetBroadcastStatusQuery{
		requestID:   requestID,
		requesterID: requesterID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q GetBroadcastStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetBroadcastStatusQueryIsNotConstructed)
}

func (q GetBroadcastStatusQuery) RequestID() kernel.UUID {
	return q.requestID
}

func (q GetBroadcastStatusQuery) RequesterID() kernel.UUID {
	return q.requesterID
}

// GetBroadcastStatusQueryResponse reports the dispatch outcome.
// HelpersNotified comes from the dispatch marker; BroadcastRows counts the
// offers actually stored and is the authoritative number.
type GetBroadcastStatusQueryResponse struct {
	RequestID          kernel.UUID
	Status             string
	BroadcastStatus    string
	DispatchState      string
	DispatchReplayed   bool
	HelpersNotified    int
	BroadcastRows      int
	DispatchedAt       *time.Time
	BroadcastExpiresAt time.Time
}
