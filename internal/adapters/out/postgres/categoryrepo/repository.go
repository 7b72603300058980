package categoryrepo

import (
	"context"
	"errors"
	"strings"

	"helpdispatch/internal/core/domain/model/category"
	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCategoryRepository implements ports.CategoryRepository using GORM.
// Name lookups are case-insensitive (ILIKE).
type GormCategoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormCategoryRepository(db *gorm.DB, tracker aggregateTracker) *GormCategoryRepository {
	return &GormCategoryRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormCategoryRepository) Add(ctx context.Context, c *category.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if r.tracker != nil {
		r.tracker.TrackAggregate(c.ID(), c)
	}
	return nil
}

func (r *GormCategoryRepository) Get(ctx context.Context, id kernel.UUID) (*category.Category, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, id.String(), "id = ?", id.Bytes())
}

func (r *GormCategoryRepository) FindByName(ctx context.Context, name string) (*category.Category, error) {
	return r.first(ctx, name, "name ILIKE ?", escapeLike(name))
}

func (r *GormCategoryRepository) FindByNamePattern(ctx context.Context, fragment string) (*category.Category, error) {
	return r.first(ctx, fragment, "name ILIKE ?", "%"+escapeLike(fragment)+"%")
}

func (r *GormCategoryRepository) FindAny(ctx context.Context) (*category.Category, error) {
	return r.first(ctx, "any", "1 = 1")
}

func (r *GormCategoryRepository) first(ctx context.Context, key string, query string, args ...any) (*category.Category, error) {
	var dto CategoryDTO
	err := r.db.WithContext(ctx).
		Where(query, args...).
		Order("created_at, id").
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("service category", key)
		}
		return nil, err
	}

	return toDomain(dto)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
