package guard_test

import (
	"errors"
	"testing"

	"helpdispatch/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("not constructed")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("guard_embedded_in_value_object", func(t *testing.T) {
		type radius struct {
			km    float64
			guard guard.ConstructorGuard
		}
		errRadiusNotConstructed := errors.New("radius must be created via newRadius")
		newRadius := func(km float64) radius {
			return radius{km: km, guard: guard.NewConstructorGuard()}
		}

		require.NoError(t, newRadius(15).guard.Validate(errRadiusNotConstructed))
		require.ErrorIs(t, radius{}.guard.Validate(errRadiusNotConstructed), errRadiusNotConstructed)
	})
}
