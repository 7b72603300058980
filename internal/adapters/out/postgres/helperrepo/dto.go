// Package helperrepo reads the helper pool. Helpers are managed elsewhere;
// this package never writes them outside of tests.
package helperrepo

import (
	"time"

	"helpdispatch/internal/core/domain/model/helper"
	"helpdispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Verification status of an approved helper.
const VerificationApproved = "approved"

type HelperDTO struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	ServiceCategories  pq.StringArray `gorm:"type:text[]"`
	Skills             pq.StringArray `gorm:"type:text[]"`
	ServiceRadiusKm    float64
	CurrentLocationLat *float64 `gorm:"index:idx_helper_profiles_location"`
	CurrentLocationLng *float64 `gorm:"index:idx_helper_profiles_location"`
	IsOnline           bool
	IsOnJob            bool
	IsApproved         bool
	VerificationStatus string `gorm:"size:16"`
	CreatedAt          time.Time
}

func (HelperDTO) TableName() string {
	return "helper_profiles"
}

// candidateRow is a helper row joined with its profile name.
type candidateRow struct {
	HelperDTO
	FullName *string
}

func toCandidate(row candidateRow) (*helper.Candidate, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(row.UserID[:])
	if err != nil {
		return nil, err
	}

	var loc kernel.GeoPoint
	if row.CurrentLocationLat != nil && row.CurrentLocationLng != nil {
		if loc, err = kernel.NewGeoPoint(*row.CurrentLocationLat, *row.CurrentLocationLng); err != nil {
			return nil, err
		}
	}

	var name string
	if row.FullName != nil {
		name = *row.FullName
	}

	tags := make([]string, 0, len(row.ServiceCategories)+len(row.Skills))
	tags = append(tags, row.ServiceCategories...)
	tags = append(tags, row.Skills...)

	return helper.RestoreCandidate(helper.CandidateParams{
		ID:              id,
		UserID:          userID,
		DisplayName:     name,
		CategoryTags:    tags,
		ServiceRadiusKm: row.ServiceRadiusKm,
		Location:        loc,
		IsOnline:        row.IsOnline,
		IsOnJob:         row.IsOnJob,
	})
}
