package ports

import (
	"context"

	"helpdispatch/internal/core/domain/model/kernel"
)

// ProfileReader resolves user display names.
type ProfileReader interface {
	// DisplayName returns the user's full name, or an empty string when the
	// profile has none.
	DisplayName(ctx context.Context, userID kernel.UUID) (string, error)
}
