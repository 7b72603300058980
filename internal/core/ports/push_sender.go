package ports

import "context"

// JobAlert is the payload handed to the push-delivery endpoint.
type JobAlert struct {
	HelperUserIDs    []string
	JobID            string
	Title            string
	Description      string
	Price            float64
	Location         string
	CustomerName     string
	Urgency          string
	ExpiresInSeconds int
}

// PushSender triggers push delivery. It is fire-and-forget: callers log errors
// and never retry.
type PushSender interface {
	SendJobAlert(ctx context.Context, alert JobAlert) error
}
