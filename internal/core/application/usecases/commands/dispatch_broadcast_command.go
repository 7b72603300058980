package commands

import (
	"errors"

	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/core/domain/model/request"
	"helpdispatch/internal/core/domain/services"
	"helpdispatch/internal/pkg/guard"
)

var ErrDispatchBroadcastCommandIsNotConstructed = errors.New(
	"DispatchBroadcastCommand must be created via NewDispatchBroadcastCommand constructor",
)

// DispatchBroadcastCommand carries everything the background dispatch pass
// needs, so it never has to reload the request.
type DispatchBroadcastCommand struct { //nolint:recvcheck //using for validation
	requestID     kernel.UUID
	requesterID   kernel.UUID
	requesterName string
	category      services.CategoryTarget
	location      kernel.GeoPoint
	price         float64
	urgency       request.Urgency
	address       string
	description   string
	replayed      bool

	guard guard.ConstructorGuard
}

// DispatchBroadcastParams are the inputs of NewDispatchBroadcastCommand.
type DispatchBroadcastParams struct {
	RequestID     kernel.UUID
	RequesterID   kernel.UUID
	RequesterName string
	Category      services.CategoryTarget
	Location      kernel.GeoPoint
	Price         float64
	Urgency       request.Urgency
	Address       string
	Description   string

	// Replayed marks a pass started by the recovery sweep.
	Replayed bool
}

func NewDispatchBroadcastCommand(p DispatchBroadcastParams) (DispatchBroadcastCommand, error) {
	if err := errors.Join(p.RequestID.Validate(), p.RequesterID.Validate()); err != nil {
		return DispatchBroadcastCommand{}, err
	}

	name := p.RequesterName
	if name == "" {
		name = DefaultRequesterName
	}

	return DispatchBroadcastCommand{
		requestID:     p.RequestID,
		requesterID:   p.RequesterID,
		requesterName: name,
		category:      p.Category,
		location:      p.Location,
		price:         p.Price,
		urgency:       p.Urgency,
		address:       p.Address,
		description:   p.Description,
		replayed:      p.Replayed,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// NewDispatchBroadcastCommandFromRequest rebuilds the command for a stored
// request, used when replaying a pass.
func NewDispatchBroadcastCommandFromRequest(
	sr *request.ServiceRequest,
	cat services.CategoryTarget,
	requesterName string,
	replayed bool,
) (DispatchBroadcastCommand, error) {
	if err := sr.Validate(); err != nil {
		return DispatchBroadcastCommand{}, err
	}
	loc, _ := sr.Location()
	return NewDispatchBroadcastCommand(DispatchBroadcastParams{
		RequestID:     sr.ID(),
		RequesterID:   sr.RequesterID(),
		RequesterName: requesterName,
		Category:      cat,
		Location:      loc,
		Price:         sr.EstimatedPrice(),
		Urgency:       sr.Urgency(),
		Address:       sr.Address().ServiceAddress,
		Description:   sr.Description(),
		Replayed:      replayed,
	})
}

func (c DispatchBroadcastCommand) Validate() error {
	return c.guard.Validate(ErrDispatchBroadcastCommandIsNotConstructed)
}

func (c DispatchBroadcastCommand) RequestID() kernel.UUID            { return c.requestID }
func (c DispatchBroadcastCommand) RequesterID() kernel.UUID          { return c.requesterID }
func (c DispatchBroadcastCommand) RequesterName() string             { return c.requesterName }
func (c DispatchBroadcastCommand) Category() services.CategoryTarget { return c.category }
func (c DispatchBroadcastCommand) Price() float64                    { return c.price }
func (c DispatchBroadcastCommand) Urgency() request.Urgency          { return c.urgency }
func (c DispatchBroadcastCommand) Address() string                   { return c.address }
func (c DispatchBroadcastCommand) Description() string               { return c.description }
func (c DispatchBroadcastCommand) Replayed() bool                    { return c.replayed }

// Location returns the request position and whether one is known.
func (c DispatchBroadcastCommand) Location() (kernel.GeoPoint, bool) {
	return c.location, c.location.IsSet()
}
