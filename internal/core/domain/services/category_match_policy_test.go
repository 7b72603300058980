package services_test

import (
	"testing"

	"helpdispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestCategoryMatchPolicy_Matches(t *testing.T) {
	policy := services.NewCategoryMatchPolicy()
	plumbing := services.CategoryTarget{
		ID:   "5b0e5a3c-8a1e-4d7e-9d0b-1f2a3b4c5d6e",
		Slug: "plumbing",
		Name: "Plumbing",
	}
	ac := services.CategoryTarget{
		ID:   "0d4c6a1e-2f3b-4c5d-8e9f-a0b1c2d3e4f5",
		Slug: "ac_repair",
		Name: "AC & Appliance Repair",
	}

	tests := []struct {
		name   string
		tag    string
		target services.CategoryTarget
		want   bool
	}{
		{"identifier", "5B0E5A3C-8A1E-4D7E-9D0B-1F2A3B4C5D6E", plumbing, true},
		{"slug case insensitive", "PLUMBING", plumbing, true},
		{"tag contains slug", "plumbing-and-drains", plumbing, true},
		{"slug contains tag", "repair", ac, true},
		{"tag contains name", "ac & appliance repair services", ac, true},
		{"name contains tag", "appliance", ac, true},
		{"first word of name", "ac technician", ac, true},
		{"unrelated", "gardening", plumbing, false},
		{"empty tag", "  ", plumbing, false},
		{"empty target", "plumbing", services.CategoryTarget{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Matches(tt.tag, tt.target))
		})
	}
}

func TestCategoryMatchPolicy_MatchesAny(t *testing.T) {
	policy := services.NewCategoryMatchPolicy()
	target := services.CategoryTarget{Slug: "electrical", Name: "Electrical"}

	assert.True(t, policy.MatchesAny([]string{"painting", "electrical"}, target))
	assert.False(t, policy.MatchesAny([]string{"painting", "cleaning"}, target))
	assert.False(t, policy.MatchesAny(nil, target))
}
