package request

import (
	"fmt"

	"helpdispatch/internal/pkg/errs"
)

// Status is the lifecycle state of a service request. Only StatusOpen is set by
// this service; the remaining states are written by the assignment subsystem.
type Status string

const (
	StatusOpen       Status = "open"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Validate() error {
	switch s {
	case StatusOpen, StatusAssigned, StatusInProgress, StatusCompleted, StatusCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
}

// BroadcastStatus tracks whether helpers are still being offered the request.
type BroadcastStatus string

const (
	BroadcastBroadcasting BroadcastStatus = "broadcasting"
	BroadcastAccepted     BroadcastStatus = "accepted"
	BroadcastExpired      BroadcastStatus = "expired"
	BroadcastCompleted    BroadcastStatus = "completed"
	BroadcastCancelled    BroadcastStatus = "cancelled"
)

func (s BroadcastStatus) Validate() error {
	switch s {
	case BroadcastBroadcasting, BroadcastAccepted, BroadcastExpired, BroadcastCompleted, BroadcastCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("broadcast status",
			fmt.Errorf("%q is not a valid broadcast status", string(s)))
	}
}

// DispatchState is the persisted marker of the background dispatch pass.
//
//	pending ──> running ──┬──> dispatched
//	   ^           │      └──> failed
//	   └───────────┘
//	 (one recovery replay)
type DispatchState string

const (
	DispatchPending    DispatchState = "pending"
	DispatchRunning    DispatchState = "running"
	DispatchDispatched DispatchState = "dispatched"
	DispatchFailed     DispatchState = "failed"
)

func (s DispatchState) Validate() error {
	switch s {
	case DispatchPending, DispatchRunning, DispatchDispatched, DispatchFailed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("dispatch state",
			fmt.Errorf("%q is not a valid dispatch state", string(s)))
	}
}

// IsFinal reports whether no further dispatch work is expected.
func (s DispatchState) IsFinal() bool {
	return s == DispatchDispatched || s == DispatchFailed
}

// Urgency is the normalized urgency level stored on the request.
type Urgency string

const (
	UrgencyNormal Urgency = "normal"
	UrgencyUrgent Urgency = "urgent"
)

// ParseUrgency maps the inbound urgency flag. "emergency" and "urgent" become
// UrgencyUrgent, anything else UrgencyNormal.
func ParseUrgency(raw string) Urgency {
	switch raw {
	case "emergency", "urgent":
		return UrgencyUrgent
	default:
		return UrgencyNormal
	}
}
