package notification

import (
	"errors"
	"maps"
	"strings"
	"time"

	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/pkg/errs"
)

const (
	ChannelPush  = "push"
	StatusQueued = "queued"

	// Payload types understood by the mobile clients.
	TypeNewJobBroadcast    = "new_job_broadcast"
	TypeRequestBroadcasted = "request_broadcasted"
)

var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

// Notification is a cross-channel message queued for a user.
type Notification struct {
	id            kernel.UUID
	recipientID   kernel.UUID
	requestID     kernel.UUID
	channel       string
	title         string
	body          string
	payload       map[string]any
	status        string
	createdAt     time.Time
	isConstructed bool
}

// NewNotification queues a push message about a request for recipientID.
func NewNotification(recipientID, requestID kernel.UUID, title, body string,
	payload map[string]any, createdAt time.Time,
) (*Notification, error) {
	n := &Notification{
		id:            kernel.NewUUID(),
		channel:       ChannelPush,
		payload:       maps.Clone(payload),
		status:        StatusQueued,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		n.setRecipientID(recipientID),
		n.setRequestID(requestID),
		n.setTitle(title),
	); err != nil {
		return nil, err
	}
	n.body = body
	if n.payload == nil {
		n.payload = map[string]any{}
	}

	return n, nil
}

func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID          { return n.id }
func (n *Notification) RecipientID() kernel.UUID { return n.recipientID }
func (n *Notification) RequestID() kernel.UUID   { return n.requestID }
func (n *Notification) Channel() string          { return n.channel }
func (n *Notification) Title() string            { return n.title }
func (n *Notification) Body() string             { return n.body }
func (n *Notification) Status() string           { return n.status }
func (n *Notification) CreatedAt() time.Time     { return n.createdAt }

// Payload returns a copy of the structured payload.
func (n *Notification) Payload() map[string]any {
	return maps.Clone(n.payload)
}

func (n *Notification) setRecipientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("recipient id", err)
	}
	n.recipientID = id
	return nil
}

func (n *Notification) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("request id", err)
	}
	n.requestID = id
	return nil
}

func (n *Notification) setTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errs.NewValueIsRequiredError("title")
	}
	n.title = title
	return nil
}
