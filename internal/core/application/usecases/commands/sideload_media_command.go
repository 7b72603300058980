package commands

import (
	"errors"
	"slices"

	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/pkg/guard"
)

var ErrSideloadMediaCommandIsNotConstructed = errors.New(
	"SideloadMediaCommand must be created via NewSideloadMediaCommand constructor",
)

// SideloadMediaCommand asks to move inline media of a request to durable storage.
type SideloadMediaCommand struct { //nolint:recvcheck //using for validation
	requestID   kernel.UUID
	requesterID kernel.UUID
	media       []string

	guard guard.ConstructorGuard
}

func NewSideloadMediaCommand(requestID, requesterID kernel.UUID, media []string) (SideloadMediaCommand, error) {
	if err := errors.Join(requestID.Validate(), requesterID.Validate()); err != nil {
		return SideloadMediaCommand{}, err
	}

	return SideloadMediaCommand{
		requestID:   requestID,
		requesterID: requesterID,
		media:       slices.Clone(media),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c SideloadMediaCommand) Validate() error {
	return c.guard.Validate(ErrSideloadMediaCommandIsNotConstructed)
}

func (c SideloadMediaCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c SideloadMediaCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

// Media returns a copy of the media list as stored at intake.
func (c SideloadMediaCommand) Media() []string {
	return slices.Clone(c.media)
}
