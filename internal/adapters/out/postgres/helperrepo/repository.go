package helperrepo

import (
	"context"

	"helpdispatch/internal/core/domain/model/helper"
	"helpdispatch/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormHelperPoolReader implements ports.HelperPoolReader.
type GormHelperPoolReader struct {
	db *gorm.DB
}

func NewGormHelperPoolReader(db *gorm.DB) *GormHelperPoolReader {
	return &GormHelperPoolReader{db: db}
}

// ListAvailableNear returns approved, verified, online helpers that are not on
// a job and whose last position lies in the bounding box of radiusKm around
// center. Results are ordered by id so that callers see a stable pool.
func (r *GormHelperPoolReader) ListAvailableNear(
	ctx context.Context,
	center kernel.GeoPoint,
	radiusKm float64,
) ([]*helper.Candidate, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}

	box := center.BoundingBox(radiusKm)

	lng := r.db.Where("h.current_location_lng BETWEEN ? AND ?", box.MinLng, box.MaxLng)
	if box.CrossesAntimeridian() {
		lng = r.db.Where("h.current_location_lng >= ? OR h.current_location_lng <= ?", box.MinLng, box.MaxLng)
	}

	var rows []candidateRow
	err := r.db.WithContext(ctx).
		Table("helper_profiles AS h").
		Select("h.*, p.full_name").
		Joins("LEFT JOIN profiles p ON p.id = h.user_id").
		Where("h.is_approved = ? AND h.verification_status = ?", true, VerificationApproved).
		Where("h.is_online = ? AND h.is_on_job = ?", true, false).
		Where("h.current_location_lat BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where(lng).
		Order("h.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	candidates := make([]*helper.Candidate, 0, len(rows))
	for _, row := range rows {
		c, err := toCandidate(row)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}
