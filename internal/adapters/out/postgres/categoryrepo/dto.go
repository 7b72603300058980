// Package categoryrepo persists the service catalog.
package categoryrepo

import (
	"time"

	"helpdispatch/internal/core/domain/model/category"
	"helpdispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CategoryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Slug      string    `gorm:"not null;index"`
	IsActive  bool      `gorm:"default:true"`
	CreatedAt time.Time
}

func (CategoryDTO) TableName() string {
	return "service_categories"
}

func fromDomain(c *category.Category) CategoryDTO {
	return CategoryDTO{
		ID:       c.ID().Bytes(),
		Name:     c.Name(),
		Slug:     c.Slug(),
		IsActive: true,
	}
}

func toDomain(dto CategoryDTO) (*category.Category, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return category.NewCategory(id, dto.Name, dto.Slug)
}
