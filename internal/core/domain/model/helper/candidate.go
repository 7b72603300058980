// Package helper holds the read-only projection of helper profiles that the
// dispatcher matches against. The broadcast service never writes helpers.
package helper

import (
	"errors"

	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/pkg/errs"
)

// ErrCandidateIsNotConstructed is returned for a Candidate not built by RestoreCandidate.
var ErrCandidateIsNotConstructed = errors.New("Candidate must be created via RestoreCandidate constructor")

// Candidate is a helper as seen by the eligibility filter.
//
// Location is optional: a zero GeoPoint means the helper has not reported a
// position yet, and such helpers are never matched by distance.
type Candidate struct {
	id            kernel.UUID
	userID        kernel.UUID
	displayName   string
	categoryTags  []string
	serviceRadius float64
	location      kernel.GeoPoint
	isOnline      bool
	isOnJob       bool
	isConstructed bool
}

// CandidateParams carries the persisted helper attributes.
type CandidateParams struct {
	ID              kernel.UUID
	UserID          kernel.UUID
	DisplayName     string
	CategoryTags    []string
	ServiceRadiusKm float64
	Location        kernel.GeoPoint
	IsOnline        bool
	IsOnJob         bool
}

// RestoreCandidate rebuilds a candidate from storage.
func RestoreCandidate(p CandidateParams) (*Candidate, error) {
	if err := errors.Join(p.ID.Validate(), p.UserID.Validate()); err != nil {
		return nil, err
	}
	if p.ServiceRadiusKm < 0 {
		return nil, errs.NewValueIsOutOfRangeError("service radius", p.ServiceRadiusKm, 0, "unbounded")
	}

	tags := make([]string, len(p.CategoryTags))
	copy(tags, p.CategoryTags)

	return &Candidate{
		id:            p.ID,
		userID:        p.UserID,
		displayName:   p.DisplayName,
		categoryTags:  tags,
		serviceRadius: p.ServiceRadiusKm,
		location:      p.Location,
		isOnline:      p.IsOnline,
		isOnJob:       p.IsOnJob,
		isConstructed: true,
	}, nil
}

func (c *Candidate) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCandidateIsNotConstructed
	}
	return nil
}

func (c *Candidate) ID() kernel.UUID {
	return c.id
}

// UserID is the account the push notification is addressed to.
func (c *Candidate) UserID() kernel.UUID {
	return c.userID
}

func (c *Candidate) DisplayName() string {
	return c.displayName
}

// CategoryTags returns a copy of the declared service category tags.
func (c *Candidate) CategoryTags() []string {
	tags := make([]string, len(c.categoryTags))
	copy(tags, c.categoryTags)
	return tags
}

// ServiceRadiusKm is the helper's own working radius; zero means not configured.
func (c *Candidate) ServiceRadiusKm() float64 {
	return c.serviceRadius
}

// Location returns the last known position and whether one is known.
func (c *Candidate) Location() (kernel.GeoPoint, bool) {
	return c.location, c.location.IsSet()
}

func (c *Candidate) IsOnline() bool {
	return c.isOnline
}

func (c *Candidate) IsOnJob() bool {
	return c.isOnJob
}

// IsAvailable reports whether the helper may be offered a new job right now.
func (c *Candidate) IsAvailable() bool {
	return c.isOnline && !c.isOnJob
}
