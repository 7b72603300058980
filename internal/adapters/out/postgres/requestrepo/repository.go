package requestrepo

import (
	"context"
	"errors"
	"time"

	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/core/domain/model/request"
	"helpdispatch/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormServiceRequestRepository implements ports.ServiceRequestRepository using GORM.
type GormServiceRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormServiceRequestRepository creates a repository over db. tracker may be
// nil when the repository is used outside a unit of work.
func NewGormServiceRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormServiceRequestRepository {
	return &GormServiceRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new request.
func (r *GormServiceRequestRepository) Add(ctx context.Context, aggregate *request.ServiceRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.track(aggregate)
	return nil
}

// Get retrieves a request by ID.
func (r *GormServiceRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.ServiceRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ServiceRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("service request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateMedia rewrites the images column only.
func (r *GormServiceRequestRepository) UpdateMedia(ctx context.Context, id kernel.UUID, media []string) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ServiceRequestDTO{}).
		Where("id = ?", id.Bytes()).
		Update("images", pq.StringArray(media))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("service request", id.String())
	}

	return nil
}

// UpdateDispatch writes the dispatch columns if dispatch_state still equals from.
// dispatch_replayed is only ever raised, so a pass that does not know about an
// earlier replay cannot re-arm it.
func (r *GormServiceRequestRepository) UpdateDispatch(
	ctx context.Context,
	id kernel.UUID,
	from request.DispatchState,
	marker request.DispatchMarker,
) (bool, error) {
	if err := errors.Join(id.Validate(), from.Validate(), marker.State.Validate()); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&ServiceRequestDTO{}).
		Where("id = ? AND dispatch_state = ?", id.Bytes(), string(from)).
		Updates(map[string]any{
			"dispatch_state":      string(marker.State),
			"dispatch_replayed":   gorm.Expr("dispatch_replayed OR ?", marker.Replayed),
			"helpers_notified":    marker.HelpersNotified,
			"dispatch_claimed_at": marker.ClaimedAt,
			"dispatched_at":       marker.DispatchedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// ListStaleDispatches returns unreplayed dispatches that stopped making
// progress before olderThan, oldest first. A pending pass is judged by when
// the request was created, a running one by when its pass was claimed.
func (r *GormServiceRequestRepository) ListStaleDispatches(
	ctx context.Context,
	olderThan time.Time,
	limit int,
) ([]*request.ServiceRequest, error) {
	var dtos []ServiceRequestDTO
	err := r.db.WithContext(ctx).
		Where("dispatch_replayed = ?", false).
		Where(r.db.
			Where("dispatch_state = ? AND created_at < ?", string(request.DispatchPending), olderThan).
			Or("dispatch_state = ? AND COALESCE(dispatch_claimed_at, created_at) < ?",
				string(request.DispatchRunning), olderThan)).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*request.ServiceRequest, 0, len(dtos))
	for _, dto := range dtos {
		sr, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, sr)
	}

	return requests, nil
}

func (r *GormServiceRequestRepository) track(aggregate *request.ServiceRequest) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}
