package services

import (
	"cmp"
	"errors"
	"math"
	"slices"

	"helpdispatch/internal/core/domain/model/helper"
	"helpdispatch/internal/core/domain/model/kernel"
)

const (
	// DefaultRadiusKm caps every helper's own service radius.
	DefaultRadiusKm = 15.0

	// FallbackRadiusKm bounds the proximity-only pass used when no helper
	// matches the category.
	FallbackRadiusKm = 25.0

	// FallbackLimit is how many of the nearest helpers the fallback returns.
	FallbackLimit = 5
)

// ErrOriginIsRequired is returned when the request has no coordinates to
// measure distances from.
var ErrOriginIsRequired = errors.New("request location is required for eligibility filtering")

// Match is a helper selected for notification with its distance to the request.
// The distance lives only here for the duration of a dispatch pass.
type Match struct {
	Candidate  *helper.Candidate
	DistanceKm float64
}

// FilterResult is the outcome of one eligibility pass.
type FilterResult struct {
	Matches []Match

	// Fallback is true when Matches came from the proximity-only pass.
	Fallback bool

	// WithinRadius counts candidates that passed the distance rule before
	// category matching.
	WithinRadius int
}

// EligibilityFilter selects which helpers to notify about a request.
//
// Rules, applied in order:
//   - unavailable helpers (offline or on a job) and helpers without a
//     location are skipped
//   - a helper is in range when its distance is at most min(DefaultRadiusKm,
//     its own service radius); a radius of zero or less means DefaultRadiusKm
//   - in-range helpers are kept when one of their tags matches the category
//     under CategoryMatchPolicy
//
// When no in-range helper matches the category but at least one was in range,
// the filter falls back to the FallbackLimit nearest available helpers within
// FallbackRadiusKm, ignoring categories. Results are sorted by ascending
// distance, ties broken by helper id.
//
// Example:
//
//	filter := services.NewEligibilityFilter(services.NewCategoryMatchPolicy())
//	res, err := filter.Filter(origin, services.NewCategoryTarget(cat), pool)
//	if err != nil {
//	    return err
//	}
//	for _, m := range res.Matches {
//	    notify(m.Candidate.UserID(), m.DistanceKm)
//	}
type EligibilityFilter struct {
	policy CategoryMatchPolicy
}

func NewEligibilityFilter(policy CategoryMatchPolicy) EligibilityFilter {
	return EligibilityFilter{policy: policy}
}

// Filter runs the eligibility pass over pool for a request at origin.
func (f EligibilityFilter) Filter(origin kernel.GeoPoint, target CategoryTarget, pool []*helper.Candidate) (FilterResult, error) {
	if err := origin.Validate(); err != nil {
		return FilterResult{}, errors.Join(ErrOriginIsRequired, err)
	}

	located := make([]Match, 0, len(pool))
	for _, c := range pool {
		if err := c.Validate(); err != nil {
			return FilterResult{}, err
		}
		if !c.IsAvailable() {
			continue
		}
		loc, ok := c.Location()
		if !ok {
			continue
		}
		located = append(located, Match{Candidate: c, DistanceKm: origin.DistanceTo(loc)})
	}

	var (
		inRange int
		matched = make([]Match, 0, len(located))
	)
	for _, m := range located {
		if m.DistanceKm > effectiveRadius(m.Candidate.ServiceRadiusKm()) {
			continue
		}
		inRange++
		if f.policy.MatchesAny(m.Candidate.CategoryTags(), target) {
			matched = append(matched, m)
		}
	}

	if len(matched) > 0 || inRange == 0 {
		sortByDistance(matched)
		return FilterResult{Matches: matched, WithinRadius: inRange}, nil
	}

	nearby := make([]Match, 0, len(located))
	for _, m := range located {
		if m.DistanceKm <= FallbackRadiusKm {
			nearby = append(nearby, m)
		}
	}
	sortByDistance(nearby)
	if len(nearby) > FallbackLimit {
		nearby = nearby[:FallbackLimit]
	}

	return FilterResult{Matches: nearby, Fallback: true, WithinRadius: inRange}, nil
}

func effectiveRadius(serviceRadiusKm float64) float64 {
	if serviceRadiusKm <= 0 {
		return DefaultRadiusKm
	}
	return math.Min(DefaultRadiusKm, serviceRadiusKm)
}

func sortByDistance(matches []Match) {
	slices.SortFunc(matches, func(a, b Match) int {
		if c := cmp.Compare(a.DistanceKm, b.DistanceKm); c != 0 {
			return c
		}
		return cmp.Compare(a.Candidate.ID().String(), b.Candidate.ID().String())
	})
}
