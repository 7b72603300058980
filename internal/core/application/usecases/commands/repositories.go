// Package commands contains the write-side use cases of the broadcast flow:
// intake, the background dispatch pass and the media sideloader.
package commands

import (
	"context"

	"helpdispatch/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	RequestRepoFactory interface {
		ServiceRequestRepository() ports.ServiceRequestRepository
	}

	CategoryRepoFactory interface {
		CategoryRepository() ports.CategoryRepository
	}

	// IntakeUoW spans category resolution and request insertion, so a
	// category created for a request that fails to persist is rolled back too.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer uow.Rollback(ctx)
	//
	//   cat, err := resolver.Resolve(ctx, uow.CategoryRepository(), token, name)
	//   // ...
	//   err = uow.ServiceRequestRepository().Add(ctx, sr)
	//   // ...
	//   err = uow.Commit(ctx)
	IntakeUoW interface {
		TxManager
		RequestRepoFactory
		CategoryRepoFactory
	}

	IntakeUoWFactory interface {
		Create() IntakeUoW
	}
)
