package request

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrDispatchTransitionNotAllowed is returned for a dispatch marker move the
	// state machine does not permit.
	ErrDispatchTransitionNotAllowed = errors.New("dispatch transition not allowed")

	// ErrDispatchAlreadyReplayed is returned when a recovery sweep tries to replay
	// a dispatch pass a second time.
	ErrDispatchAlreadyReplayed = errors.New("dispatch already replayed")
)

// DispatchMarker records how far the background dispatch pass of a request got.
// Repositories persist it with compare-and-set updates keyed on State.
//
// ClaimedAt is set when a pass moves to running; a running pass counts as
// stale only once its claim is old, never because the request itself is old.
// Replayed is sticky: once set it is never cleared.
type DispatchMarker struct {
	State           DispatchState
	Replayed        bool
	HelpersNotified int
	ClaimedAt       *time.Time
	DispatchedAt    *time.Time
}

// PendingDispatch is the marker every new request starts with.
func PendingDispatch() DispatchMarker {
	return DispatchMarker{State: DispatchPending}
}

// Claim moves pending to running and stamps the claim time.
func (m DispatchMarker) Claim(at time.Time) (DispatchMarker, error) {
	if m.State != DispatchPending {
		return m, transitionError(m.State, DispatchRunning)
	}
	m.State = DispatchRunning
	m.ClaimedAt = &at
	return m, nil
}

// Complete moves running to dispatched and records the notified count.
func (m DispatchMarker) Complete(helpersNotified int, at time.Time) (DispatchMarker, error) {
	if m.State != DispatchRunning {
		return m, transitionError(m.State, DispatchDispatched)
	}
	if helpersNotified < 0 {
		return m, fmt.Errorf("helpers notified must not be negative: %d", helpersNotified)
	}
	m.State = DispatchDispatched
	m.HelpersNotified = helpersNotified
	m.DispatchedAt = &at
	return m, nil
}

// Fail terminates a pending or running pass.
func (m DispatchMarker) Fail() (DispatchMarker, error) {
	if m.State.IsFinal() {
		return m, transitionError(m.State, DispatchFailed)
	}
	m.State = DispatchFailed
	return m, nil
}

// Replay resets an unfinished pass to pending so it can run once more. A
// marker can be replayed only once.
func (m DispatchMarker) Replay() (DispatchMarker, error) {
	if m.State.IsFinal() {
		return m, transitionError(m.State, DispatchPending)
	}
	if m.Replayed {
		return m, ErrDispatchAlreadyReplayed
	}
	m.State = DispatchPending
	m.Replayed = true
	m.ClaimedAt = nil
	return m, nil
}

// IsStale reports whether an unreplayed pass made no progress since olderThan.
// A pending pass is measured from createdAt, a running pass from its claim.
func (m DispatchMarker) IsStale(createdAt, olderThan time.Time) bool {
	if m.Replayed {
		return false
	}
	switch m.State {
	case DispatchPending:
		return createdAt.Before(olderThan)
	case DispatchRunning:
		since := createdAt
		if m.ClaimedAt != nil {
			since = *m.ClaimedAt
		}
		return since.Before(olderThan)
	default:
		return false
	}
}

func transitionError(from, to DispatchState) error {
	return fmt.Errorf("%w: %s -> %s", ErrDispatchTransitionNotAllowed, from, to)
}
