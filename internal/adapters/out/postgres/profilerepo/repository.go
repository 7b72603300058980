// Package profilerepo reads user profiles.
package profilerepo

import (
	"context"
	"errors"
	"time"

	"helpdispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileDTO is the profiles row shared by customers and helpers. Only the
// columns this service reads are mapped.
type ProfileDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName  string
	Phone     string
	Email     string
	Role      string `gorm:"size:16"`
	CreatedAt time.Time
}

func (ProfileDTO) TableName() string {
	return "profiles"
}

// GormProfileReader implements ports.ProfileReader.
type GormProfileReader struct {
	db *gorm.DB
}

func NewGormProfileReader(db *gorm.DB) *GormProfileReader {
	return &GormProfileReader{db: db}
}

// DisplayName returns the full name of userID, or "" when there is no profile.
func (r *GormProfileReader) DisplayName(ctx context.Context, userID kernel.UUID) (string, error) {
	if err := userID.Validate(); err != nil {
		return "", err
	}

	var dto ProfileDTO
	err := r.db.WithContext(ctx).Select("id", "full_name").Take(&dto, "id = ?", userID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	return dto.FullName, nil
}
