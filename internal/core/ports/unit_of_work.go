package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a transaction boundary over all repositories. It records
// the aggregates written through its repositories so that the caller can
// invalidate derived views after Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if no transaction is active.
	Commit(ctx context.Context) error

	// Rollback returns an error if no transaction is active, so a deferred
	// Rollback after Commit only reports that error.
	Rollback(ctx context.Context) error

	UserRepository() UserRepository
	RestaurantRepository() RestaurantRepository
	OrderRepository() OrderRepository

	// TrackedAggregates lists the aggregates added or updated so far, each
	// once, in order of their first write.
	TrackedAggregates() []any
}
