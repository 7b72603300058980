package http

import (
	"time"

	"helpdispatch/internal/core/application/usecases/commands"
	"helpdispatch/internal/core/application/usecases/queries"
	"helpdispatch/internal/generated/servers"
)

func newServiceRequestInput(b servers.BroadcastRequest) commands.ServiceRequestInput {
	in := commands.ServiceRequestInput{
		CategoryToken:     deref(b.CategoryId),
		CategoryName:      deref(b.CategoryName),
		Description:       deref(b.Description),
		Address:           deref(b.Address),
		FlatNumber:        deref(b.FlatNumber),
		Floor:             deref(b.Floor),
		Landmark:          deref(b.Landmark),
		Latitude:          b.LocationLat,
		Longitude:         b.LocationLng,
		Images:            deref(b.Images),
		Videos:            deref(b.Videos),
		SelectedTier:      deref(b.SelectedTier),
		EstimatedPrice:    deref(b.EstimatedPrice),
		EstimatedDuration: deref(b.EstimatedDuration),
		Confidence:        deref(b.Confidence),
		Urgency:           deref(b.Urgency),
		ProblemDuration:   deref(b.ProblemDuration),
		ErrorCode:         deref(b.ErrorCode),
		PreferredTime:     deref(b.PreferredTime),
		PaymentMethod:     deref(b.PaymentMethod),
		HelperBrings:      deref(b.HelperBrings),
		CustomerProvides:  deref(b.CustomerProvides),
		WorkOverview:      deref(b.WorkOverview),
		MaterialsNeeded:   deref(b.MaterialsNeeded),
	}
	if b.AiAnalysis != nil {
		in.AIAnalysis = *b.AiAnalysis
	}
	return in
}

func newBroadcastStatus(s queries.GetBroadcastStatusQueryResponse) servers.BroadcastStatus {
	replayed := s.DispatchReplayed
	resp := servers.BroadcastStatus{
		RequestId:          s.RequestID.Bytes(),
		Status:             s.Status,
		BroadcastStatus:    s.BroadcastStatus,
		DispatchState:      servers.BroadcastStatusDispatchState(s.DispatchState),
		DispatchReplayed:   &replayed,
		HelpersNotified:    s.HelpersNotified,
		BroadcastRows:      s.BroadcastRows,
		BroadcastExpiresAt: wireTime(s.BroadcastExpiresAt),
	}
	if s.DispatchedAt != nil {
		at := wireTime(*s.DispatchedAt)
		resp.DispatchedAt = &at
	}
	return resp
}

// wireTime drops sub-second precision so timestamps render as RFC 3339 UTC.
func wireTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
