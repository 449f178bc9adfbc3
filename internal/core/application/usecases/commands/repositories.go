// Package commands contains the operations that change dispatch state.
// Every handler validates its command, runs inside a fresh unit of work and,
// after a successful commit, invalidates the cached views derived from what
// it wrote.
package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// Unit of Work interfaces narrow ports.UnitOfWork to what each handler
// touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// AggregateTracker lists the aggregates written in the transaction.
	AggregateTracker interface {
		TrackedAggregates() []any
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	RestaurantRepoFactory interface {
		RestaurantRepository() ports.RestaurantRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// UserUoW covers registration and profile edits.
	UserUoW interface {
		TxManager
		AggregateTracker
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	RestaurantUoW interface {
		TxManager
		AggregateTracker
		RestaurantRepoFactory
	}

	RestaurantUoWFactory interface {
		Create() RestaurantUoW
	}

	// OrderUoW covers transitions that never touch agent load.
	OrderUoW interface {
		TxManager
		AggregateTracker
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW spans orders, users and restaurants. Handlers that lock both an
	// order and an agent take the order row first.
	UoW interface {
		TxManager
		AggregateTracker
		UserRepoFactory
		RestaurantRepoFactory
		OrderRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	// Invalidator drops cached views after a commit. It never fails.
	Invalidator interface {
		Invalidate(ctx context.Context, aggregates ...any)
	}
)
