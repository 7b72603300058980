package ports

import (
	"context"

	"helpdispatch/internal/core/domain/model/helper"
	"helpdispatch/internal/core/domain/model/kernel"
)

// HelperPoolReader lists helpers that can be offered a job right now: approved,
// verified, online and not on a job.
type HelperPoolReader interface {
	// ListAvailableNear returns available helpers whose last known location
	// lies inside the bounding box of radiusKm around center. The box may
	// include helpers slightly farther than radiusKm; callers compute exact
	// distances.
	ListAvailableNear(ctx context.Context, center kernel.GeoPoint, radiusKm float64) ([]*helper.Candidate, error)
}
