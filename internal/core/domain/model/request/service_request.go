package request

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/pkg/errs"
)

const (
	// BroadcastWindow is how long helpers are offered a new request.
	BroadcastWindow = 30 * time.Minute

	// DefaultPaymentMethod is used when the caller does not choose one.
	DefaultPaymentMethod = "cash"
)

// ErrServiceRequestIsNotConstructed is returned for a ServiceRequest not built
// by NewServiceRequest or RestoreServiceRequest.
var ErrServiceRequestIsNotConstructed = errors.New(
	"ServiceRequest must be created via NewServiceRequest or RestoreServiceRequest constructor")

// ServiceRequest is the aggregate root for a customer's request for help.
//
// It is created once at intake with status open and broadcast status
// broadcasting. Later lifecycle transitions belong to the assignment subsystem;
// this service only moves the dispatch marker and replaces media.
type ServiceRequest struct {
	id                 kernel.UUID
	requesterID        kernel.UUID
	categoryID         kernel.UUID
	title              string
	description        string
	address            Address
	location           kernel.GeoPoint
	media              []string
	estimatedPrice     float64
	urgency            Urgency
	paymentMethod      string
	status             Status
	broadcastStatus    BroadcastStatus
	codes              VerificationCodes
	details            Details
	createdAt          time.Time
	broadcastExpiresAt time.Time
	dispatch           DispatchMarker
	isConstructed      bool
}

// NewServiceRequestParams are the intake values of a new request.
type NewServiceRequestParams struct {
	ID             kernel.UUID
	RequesterID    kernel.UUID
	CategoryID     kernel.UUID
	CategoryName   string
	Description    string
	Address        Address
	Location       kernel.GeoPoint
	Media          []string
	EstimatedPrice float64
	Urgency        Urgency
	PaymentMethod  string
	Details        Details
	CreatedAt      time.Time
}

// NewServiceRequest builds an open request, draws its verification codes and
// sets the broadcast expiry to CreatedAt plus BroadcastWindow.
//
// Example:
//
//	sr, err := request.NewServiceRequest(request.NewServiceRequestParams{
//	    ID:           kernel.NewUUID(),
//	    RequesterID:  requesterID,
//	    CategoryID:   cat.ID(),
//	    CategoryName: cat.Name(),
//	    CreatedAt:    time.Now(),
//	})
func NewServiceRequest(p NewServiceRequestParams) (*ServiceRequest, error) {
	if p.CreatedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("created at")
	}

	codes, err := NewVerificationCodes()
	if err != nil {
		return nil, err
	}

	categoryName := strings.TrimSpace(p.CategoryName)
	if categoryName == "" {
		categoryName = "Other"
	}

	urgency := p.Urgency
	if urgency == "" {
		urgency = UrgencyNormal
	}

	paymentMethod := strings.TrimSpace(p.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	sr := &ServiceRequest{
		title:              fmt.Sprintf("%s Service Required", categoryName),
		description:        p.Description,
		address:            p.Address,
		location:           p.Location,
		media:              cloneStrings(p.Media),
		urgency:            urgency,
		paymentMethod:      paymentMethod,
		status:             StatusOpen,
		broadcastStatus:    BroadcastBroadcasting,
		codes:              codes,
		details:            p.Details,
		createdAt:          p.CreatedAt,
		broadcastExpiresAt: p.CreatedAt.Add(BroadcastWindow),
		dispatch:           PendingDispatch(),
		isConstructed:      true,
	}

	if err := errors.Join(
		sr.setID(p.ID),
		sr.setRequesterID(p.RequesterID),
		sr.setCategoryID(p.CategoryID),
		sr.setEstimatedPrice(p.EstimatedPrice),
	); err != nil {
		return nil, err
	}

	return sr, nil
}

// RestoreServiceRequestParams are the persisted values of a request.
type RestoreServiceRequestParams struct {
	ID                 kernel.UUID
	RequesterID        kernel.UUID
	CategoryID         kernel.UUID
	Title              string
	Description        string
	Address            Address
	Location           kernel.GeoPoint
	Media              []string
	EstimatedPrice     float64
	Urgency            Urgency
	PaymentMethod      string
	Status             Status
	BroadcastStatus    BroadcastStatus
	Codes              VerificationCodes
	Details            Details
	CreatedAt          time.Time
	BroadcastExpiresAt time.Time
	Dispatch           DispatchMarker
}

// RestoreServiceRequest rebuilds a request from storage without generating
// new codes or moving any timestamps.
func RestoreServiceRequest(p RestoreServiceRequestParams) (*ServiceRequest, error) {
	sr := &ServiceRequest{
		title:              p.Title,
		description:        p.Description,
		address:            p.Address,
		location:           p.Location,
		media:              cloneStrings(p.Media),
		urgency:            p.Urgency,
		paymentMethod:      p.PaymentMethod,
		codes:              p.Codes,
		details:            p.Details,
		createdAt:          p.CreatedAt,
		broadcastExpiresAt: p.BroadcastExpiresAt,
		dispatch:           p.Dispatch,
		isConstructed:      true,
	}

	if err := errors.Join(
		sr.setID(p.ID),
		sr.setRequesterID(p.RequesterID),
		sr.setCategoryID(p.CategoryID),
		sr.setEstimatedPrice(p.EstimatedPrice),
		sr.setStatus(p.Status),
		sr.setBroadcastStatus(p.BroadcastStatus),
		p.Dispatch.State.Validate(),
	); err != nil {
		return nil, err
	}

	return sr, nil
}

func (r *ServiceRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrServiceRequestIsNotConstructed
	}
	return nil
}

func (r *ServiceRequest) ID() kernel.UUID {
	return r.id
}

func (r *ServiceRequest) RequesterID() kernel.UUID {
	return r.requesterID
}

func (r *ServiceRequest) CategoryID() kernel.UUID {
	return r.categoryID
}

func (r *ServiceRequest) Title() string {
	return r.title
}

func (r *ServiceRequest) Description() string {
	return r.description
}

func (r *ServiceRequest) Address() Address {
	return r.address
}

// Location returns the request position and whether one was supplied.
func (r *ServiceRequest) Location() (kernel.GeoPoint, bool) {
	return r.location, r.location.IsSet()
}

func (r *ServiceRequest) Media() []string {
	return cloneStrings(r.media)
}

func (r *ServiceRequest) EstimatedPrice() float64 {
	return r.estimatedPrice
}

func (r *ServiceRequest) Urgency() Urgency {
	return r.urgency
}

func (r *ServiceRequest) PaymentMethod() string {
	return r.paymentMethod
}

func (r *ServiceRequest) Status() Status {
	return r.status
}

func (r *ServiceRequest) BroadcastStatus() BroadcastStatus {
	return r.broadcastStatus
}

func (r *ServiceRequest) Codes() VerificationCodes {
	return r.codes
}

func (r *ServiceRequest) Details() Details {
	return r.details
}

func (r *ServiceRequest) CreatedAt() time.Time {
	return r.createdAt
}

func (r *ServiceRequest) BroadcastExpiresAt() time.Time {
	return r.broadcastExpiresAt
}

func (r *ServiceRequest) Dispatch() DispatchMarker {
	return r.dispatch
}

// MarkDispatchRunning claims the dispatch pass at the given time.
func (r *ServiceRequest) MarkDispatchRunning(at time.Time) error {
	next, err := r.dispatch.Claim(at)
	if err != nil {
		return err
	}
	r.dispatch = next
	return nil
}

// MarkDispatched completes the dispatch pass with the number of helpers notified.
func (r *ServiceRequest) MarkDispatched(helpersNotified int, at time.Time) error {
	next, err := r.dispatch.Complete(helpersNotified, at)
	if err != nil {
		return err
	}
	r.dispatch = next
	return nil
}

// MarkDispatchReplayed schedules the single allowed replay of an unfinished pass.
func (r *ServiceRequest) MarkDispatchReplayed() error {
	next, err := r.dispatch.Replay()
	if err != nil {
		return err
	}
	r.dispatch = next
	return nil
}

// ReplaceMedia swaps the media list, used once inline items were migrated to
// durable storage. The item count must not change.
func (r *ServiceRequest) ReplaceMedia(media []string) error {
	if len(media) != len(r.media) {
		return errs.NewValueIsInvalidErrorWithCause("media",
			fmt.Errorf("expected %d items, got %d", len(r.media), len(media)))
	}
	r.media = cloneStrings(media)
	return nil
}

func (r *ServiceRequest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *ServiceRequest) setRequesterID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("requester id", err)
	}
	r.requesterID = id
	return nil
}

func (r *ServiceRequest) setCategoryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("category id", err)
	}
	r.categoryID = id
	return nil
}

func (r *ServiceRequest) setEstimatedPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimated price", fmt.Errorf("%v is negative", price))
	}
	r.estimatedPrice = price
	return nil
}

func (r *ServiceRequest) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.status = s
	return nil
}

func (r *ServiceRequest) setBroadcastStatus(s BroadcastStatus) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.broadcastStatus = s
	return nil
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
