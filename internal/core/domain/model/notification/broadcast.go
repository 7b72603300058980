package notification

import (
	"errors"
	"math"
	"time"

	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/pkg/errs"
)

// BroadcastSent is the only status written by the dispatcher.
const BroadcastSent = "sent"

var ErrBroadcastIsNotConstructed = errors.New("Broadcast must be created via NewBroadcast constructor")

// Broadcast is the audit record that a helper was offered a request.
type Broadcast struct {
	id            kernel.UUID
	requestID     kernel.UUID
	helperID      kernel.UUID
	status        string
	distanceKm    float64
	sentAt        time.Time
	isConstructed bool
}

// NewBroadcast records a sent offer. The distance is rounded to two decimals.
func NewBroadcast(requestID, helperID kernel.UUID, distanceKm float64, sentAt time.Time) (*Broadcast, error) {
	if err := errors.Join(requestID.Validate(), helperID.Validate()); err != nil {
		return nil, err
	}
	if distanceKm < 0 || math.IsNaN(distanceKm) {
		return nil, errs.NewValueIsOutOfRangeError("distance km", distanceKm, 0, "unbounded")
	}

	return &Broadcast{
		id:            kernel.NewUUID(),
		requestID:     requestID,
		helperID:      helperID,
		status:        BroadcastSent,
		distanceKm:    RoundKm(distanceKm),
		sentAt:        sentAt,
		isConstructed: true,
	}, nil
}

func (b *Broadcast) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBroadcastIsNotConstructed
	}
	return nil
}

func (b *Broadcast) ID() kernel.UUID        { return b.id }
func (b *Broadcast) RequestID() kernel.UUID { return b.requestID }
func (b *Broadcast) HelperID() kernel.UUID  { return b.helperID }
func (b *Broadcast) Status() string         { return b.status }
func (b *Broadcast) DistanceKm() float64    { return b.distanceKm }
func (b *Broadcast) SentAt() time.Time      { return b.sentAt }

// RoundKm rounds a distance to two decimal places.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}
