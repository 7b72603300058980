// Package ports defines the narrow capabilities the broadcast use cases depend on.
// Each component asks only for what it needs, so adapters can be swapped in tests.
package ports

import (
	"context"
	"time"

	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/core/domain/model/request"
)

// ServiceRequestRepository persists service request aggregates.
//
// Apart from Add, every write is a targeted column update: the assignment
// subsystem mutates the same rows concurrently and must never be clobbered.
type ServiceRequestRepository interface {
	// Add inserts a new request.
	Add(ctx context.Context, aggregate *request.ServiceRequest) error

	// Get loads a request. Returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.UUID) (*request.ServiceRequest, error)

	// UpdateMedia rewrites only the media list of a request.
	UpdateMedia(ctx context.Context, id kernel.UUID, media []string) error

	// UpdateDispatch writes marker only if the stored dispatch state still
	// equals from. It reports whether the row was updated.
	//
	// Example:
	//   claimed, err := repo.UpdateDispatch(ctx, id, request.DispatchPending, running)
	//   if err == nil && !claimed {
	//       // another worker owns this dispatch pass
	//   }
	UpdateDispatch(ctx context.Context, id kernel.UUID, from request.DispatchState, marker request.DispatchMarker) (bool, error)

	// ListStaleDispatches returns never-replayed requests whose dispatch made no
	// progress since olderThan: pending and created before it, or running and
	// claimed before it. Oldest first.
	ListStaleDispatches(ctx context.Context, olderThan time.Time, limit int) ([]*request.ServiceRequest, error)
}
