package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a transaction boundary over the request and category stores.
// Repositories returned after Begin run inside the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error

	// Rollback is a no-op error after Commit; callers defer it unconditionally.
	Rollback(ctx context.Context) error

	ServiceRequestRepository() ServiceRequestRepository
	CategoryRepository() CategoryRepository
}
