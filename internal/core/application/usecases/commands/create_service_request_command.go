package commands

import (
	"errors"
	"math"
	"slices"

	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/core/domain/model/request"
	"helpdispatch/internal/pkg/errs"
	"helpdispatch/internal/pkg/guard"
)

var (
	ErrCreateServiceRequestCommandIsNotConstructed = errors.New(
		"CreateServiceRequestCommand must be created via NewCreateServiceRequestCommand constructor",
	)

	// ErrUnauthenticated is returned when the caller identity is missing.
	ErrUnauthenticated = errors.New("unauthorized")
)

// ServiceRequestInput is the inbound broadcast payload. Only the requester
// identity is mandatory; everything else is accepted as sent.
type ServiceRequestInput struct {
	CategoryToken     string
	CategoryName      string
	Description       string
	Address           string
	FlatNumber        string
	Floor             string
	Landmark          string
	Latitude          *float64
	Longitude         *float64
	Images            []string
	Videos            []string
	AIAnalysis        map[string]any
	SelectedTier      string
	EstimatedPrice    float64
	EstimatedDuration float64
	Confidence        float64
	Urgency           string
	ProblemDuration   string
	ErrorCode         string
	PreferredTime     string
	PaymentMethod     string
	HelperBrings      []string
	CustomerProvides  []string
	WorkOverview      string
	MaterialsNeeded   []string
}

// CreateServiceRequestCommand asks to persist a request and broadcast it in
// the background.
//
// Example:
//
//	cmd, err := NewCreateServiceRequestCommand(requesterID, commands.ServiceRequestInput{
//	    CategoryToken: "plumbing",
//	    Description:   "Kitchen sink leaking",
//	    Latitude:      &lat,
//	    Longitude:     &lng,
//	})
//	if err != nil {
//	    return err
//	}
//	res, err := handler.Handle(ctx, cmd)
type CreateServiceRequestCommand struct { //nolint:recvcheck //using for validation
	requesterID kernel.UUID
	input       ServiceRequestInput
	location    kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCreateServiceRequestCommand validates the requester and the coordinates.
// Coordinates are optional but must come as a pair of valid degrees.
func NewCreateServiceRequestCommand(requesterID kernel.UUID, input ServiceRequestInput) (CreateServiceRequestCommand, error) {
	cmd := CreateServiceRequestCommand{
		input: input,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequesterID(requesterID),
		cmd.setLocation(input.Latitude, input.Longitude),
		cmd.setEstimatedPrice(input.EstimatedPrice),
	); err != nil {
		return CreateServiceRequestCommand{}, err
	}

	cmd.input.Images = slices.Clone(input.Images)
	cmd.input.Videos = slices.Clone(input.Videos)
	return cmd, nil
}

func (c CreateServiceRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateServiceRequestCommandIsNotConstructed)
}

func (c CreateServiceRequestCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

func (c CreateServiceRequestCommand) Input() ServiceRequestInput {
	return c.input
}

// Location returns the request position, if the caller sent one.
func (c CreateServiceRequestCommand) Location() kernel.GeoPoint {
	return c.location
}

// Details builds the auxiliary blob stored with the request.
func (c CreateServiceRequestCommand) Details() request.Details {
	in := c.input
	videos := in.Videos
	if videos == nil {
		videos = []string{}
	}
	return request.Details{
		AIAnalysis:        in.AIAnalysis,
		PricingTier:       in.SelectedTier,
		EstimatedDuration: in.EstimatedDuration,
		Confidence:        in.Confidence,
		ProblemDuration:   in.ProblemDuration,
		ErrorCode:         in.ErrorCode,
		PreferredTime:     in.PreferredTime,
		Videos:            videos,
		HelperBrings:      in.HelperBrings,
		CustomerProvides:  in.CustomerProvides,
		WorkOverview:      in.WorkOverview,
		MaterialsNeeded:   in.MaterialsNeeded,
	}
}

func (c *CreateServiceRequestCommand) setRequesterID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return ErrUnauthenticated
	}
	c.requesterID = id
	return nil
}

func (c *CreateServiceRequestCommand) setLocation(lat, lng *float64) error {
	if lat == nil && lng == nil {
		return nil
	}
	if lat == nil || lng == nil {
		return errs.NewValueIsInvalidErrorWithCause("location",
			errors.New("latitude and longitude must be sent together"))
	}

	p, err := kernel.NewGeoPoint(*lat, *lng)
	if err != nil {
		return err
	}
	c.location = p
	return nil
}

func (c *CreateServiceRequestCommand) setEstimatedPrice(price float64) error {
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return errs.NewValueIsOutOfRangeError("estimated price", price, 0, "unbounded")
	}
	return nil
}
