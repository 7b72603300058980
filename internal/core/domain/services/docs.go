// Package services holds the domain services of the broadcast flow.
//
// EligibilityFilter picks the helpers a request is offered to, using distance
// and the tolerant CategoryMatchPolicy, with a proximity-only fallback so a
// request is never broadcast to nobody while nearby helpers exist.
package services
