package ports

import (
	"context"

	"helpdispatch/internal/core/domain/model/category"
	"helpdispatch/internal/core/domain/model/kernel"
)

// CategoryRepository reads and appends catalog records. Every Find method
// returns errs.ErrObjectNotFound when nothing matches.
type CategoryRepository interface {
	Add(ctx context.Context, c *category.Category) error
	Get(ctx context.Context, id kernel.UUID) (*category.Category, error)

	// FindByName matches the canonical name case-insensitively.
	FindByName(ctx context.Context, name string) (*category.Category, error)

	// FindByNamePattern returns the first category whose name contains
	// fragment, case-insensitively.
	FindByNamePattern(ctx context.Context, fragment string) (*category.Category, error)

	// FindAny returns an arbitrary existing category.
	FindAny(ctx context.Context) (*category.Category, error)
}
