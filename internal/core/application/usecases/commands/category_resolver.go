package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"helpdispatch/internal/core/domain/model/category"
	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/core/ports"
)

// ErrCategorySetupFailed is returned when no category could be found and
// creating one failed. Intake aborts on it.
var ErrCategorySetupFailed = errors.New("failed to setup service category")

// CategoryResolver maps an inbound category token to a catalog record.
//
// The mapped name is the legacy slug table entry for the token, else the
// display name, else "Other". Lookups run in order and the first hit wins:
//  1. exact name, case-insensitive
//  2. name containing the first word of the mapped name
//  3. any existing category
//  4. a new category {name: mapped name, slug: token}
//
// Lookup failures count as misses. Only a failed insert is an error.
type CategoryResolver struct{}

func NewCategoryResolver() CategoryResolver {
	return CategoryResolver{}
}

// Resolve returns the category for token using repo.
func (CategoryResolver) Resolve(
	ctx context.Context,
	repo ports.CategoryRepository,
	token, displayName string,
) (*category.Category, error) {
	mapped := category.MappedName(token, displayName)

	if c, err := repo.FindByName(ctx, mapped); err == nil {
		return c, nil
	}

	if word := category.FirstWord(mapped); word != "" {
		if c, err := repo.FindByNamePattern(ctx, word); err == nil {
			return c, nil
		}
	}

	if c, err := repo.FindAny(ctx); err == nil {
		return c, nil
	}

	slug := strings.TrimSpace(token)
	if slug == "" {
		slug = category.Slugify(mapped)
	}

	c, err := category.NewCategory(kernel.NewUUID(), mapped, slug)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCategorySetupFailed, err)
	}

	if err = repo.Add(ctx, c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCategorySetupFailed, err)
	}

	return c, nil
}
