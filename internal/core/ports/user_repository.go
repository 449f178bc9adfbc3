// Package ports defines the contracts between the dispatch core and its
// infrastructure: repositories bound to a unit of work and the shared cache.
package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
)

// ErrLoadUnderflow is returned by DecrementLoad for an agent whose load is
// already zero. It signals a broken counter, not a user mistake; the
// release is refused and the transaction rolls back.
var ErrLoadUnderflow = errs.NewConflictError("agent", "load is already zero")

// UserRepository persists customers and delivery agents. It also acts as
// the resource pool store: the load counters of agents are changed only
// through IncrementLoad and DecrementLoad, which are relative updates.
type UserRepository interface {
	// Add persists a newly registered user. A duplicate mobile or email is
	// reported as errs.ConflictError.
	Add(ctx context.Context, aggregate *user.User) error

	// UpdateProfile writes name, mobile and email. Load counters are not
	// written.
	UpdateProfile(ctx context.Context, aggregate *user.User) error

	// Get reads a user without locking it.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetForUpdate reads a user and holds its row lock until the
	// transaction ends, waiting for any concurrent holder.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error)

	// ReserveCandidate locks one delivery agent with current_load < max_load,
	// ordered by current_load then id, skipping rows locked by concurrent
	// transactions. When none qualifies it returns errs.ObjectNotFoundError.
	// Must run inside a transaction.
	ReserveCandidate(ctx context.Context) (*user.User, error)

	// IncrementLoad adds one to an agent's load if it is below max_load,
	// and returns errs.ConflictError otherwise.
	IncrementLoad(ctx context.Context, id kernel.UUID) error

	// DecrementLoad subtracts one from an agent's load if it is above zero.
	// An underflow is returned as an error so the transaction rolls back.
	DecrementLoad(ctx context.Context, id kernel.UUID) error
}
