// Package category models the service catalog entries a request is filed under.
package category

import (
	"errors"
	"strings"

	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/pkg/errs"
)

// ErrCategoryIsNotConstructed is returned for a Category not built by NewCategory.
var ErrCategoryIsNotConstructed = errors.New("Category must be created via NewCategory constructor")

// DefaultName is used when neither the slug table nor the caller supplies a name.
const DefaultName = "Other"

// Category is an append-only catalog record. Categories are resolved or lazily
// created at intake and never modified afterwards.
type Category struct {
	id            kernel.UUID
	name          string
	slug          string
	isConstructed bool
}

// NewCategory validates the id and requires a non-blank name and slug.
func NewCategory(id kernel.UUID, name, slug string) (*Category, error) {
	c := &Category{isConstructed: true}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setSlug(slug),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Category) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCategoryIsNotConstructed
	}
	return nil
}

func (c *Category) ID() kernel.UUID {
	return c.id
}

func (c *Category) Name() string {
	return c.name
}

func (c *Category) Slug() string {
	return c.slug
}

func (c *Category) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Category) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Category) setSlug(slug string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return errs.NewValueIsRequiredError("slug")
	}
	c.slug = slug
	return nil
}
