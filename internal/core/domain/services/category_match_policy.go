package services

import (
	"strings"

	"helpdispatch/internal/core/domain/model/category"
)

// CategoryTarget is the category a request was filed under, in the forms a
// helper tag may refer to it.
type CategoryTarget struct {
	ID   string
	Slug string
	Name string
}

// NewCategoryTarget builds a target from a catalog record.
func NewCategoryTarget(c *category.Category) CategoryTarget {
	return CategoryTarget{
		ID:   c.ID().String(),
		Slug: c.Slug(),
		Name: c.Name(),
	}
}

// CategoryMatchPolicy decides whether a helper's declared tag covers a target
// category. A tag matches on identifier equality, case-insensitive slug
// equality, substring containment either way against the slug or the name, or
// when its first word equals the first word of the name. Empty tags never
// match.
//
// Short tags produce false positives under substring containment (a tag "pain"
// matches "Painting"); callers that need precision should replace this
// policy with a taxonomy lookup.
type CategoryMatchPolicy struct{}

func NewCategoryMatchPolicy() CategoryMatchPolicy {
	return CategoryMatchPolicy{}
}

// Matches reports whether tag refers to target.
func (CategoryMatchPolicy) Matches(tag string, target CategoryTarget) bool {
	t := normalize(tag)
	if t == "" {
		return false
	}

	if id := normalize(target.ID); id != "" && t == id {
		return true
	}

	if slug := normalize(target.Slug); slug != "" {
		if t == slug || strings.Contains(t, slug) || strings.Contains(slug, t) {
			return true
		}
	}

	name := normalize(target.Name)
	if name == "" {
		return false
	}
	if strings.Contains(t, name) || strings.Contains(name, t) {
		return true
	}

	return category.FirstWord(t) == category.FirstWord(name)
}

// MatchesAny reports whether at least one of tags refers to target.
func (p CategoryMatchPolicy) MatchesAny(tags []string, target CategoryTarget) bool {
	for _, tag := range tags {
		if p.Matches(tag, target) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
