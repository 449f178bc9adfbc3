package services

import (
	"context"
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
)

var (
	// ErrNoAgentAvailable means every agent is at capacity or locked by a
	// concurrent allocation. It is an expected outcome: callers keep the
	// order unassigned.
	ErrNoAgentAvailable = errors.New("no delivery agent available")

	// ErrStaleAgentLoad means the load read back after the increment does
	// not match the reserved row. The surrounding transaction must roll back;
	// the request may be retried.
	ErrStaleAgentLoad = errs.NewStoreUnavailableError("allocate agent", errors.New("agent load changed during allocation"))
)

// AgentPool is the slice of the user store the allocator needs. Every call
// must run inside the caller's transaction.
type AgentPool interface {
	// ReserveCandidate locks and returns one agent with spare capacity,
	// least loaded first, skipping rows locked by other transactions.
	// It returns errs.ObjectNotFoundError when no row qualifies.
	ReserveCandidate(ctx context.Context) (*user.User, error)

	// IncrementLoad adds one to the stored load, relative to its current value.
	IncrementLoad(ctx context.Context, id kernel.UUID) error

	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}

// AgentAllocator binds new orders to agents.
//
//	agent, err := allocator.Allocate(ctx, o, uow.UserRepository())
//	if errors.Is(err, services.ErrNoAgentAvailable) {
//	    // leave o unassigned
//	}
type AgentAllocator struct{}

func NewAgentAllocator() AgentAllocator {
	return AgentAllocator{}
}

// Allocate reserves an agent for o, charges it one unit of load and
// pre-assigns o to it. Reservation never waits on a row another transaction
// holds, so under contention it degrades to ErrNoAgentAvailable.
func (a AgentAllocator) Allocate(ctx context.Context, o *order.Order, pool AgentPool) (*user.User, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	candidate, err := pool.ReserveCandidate(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrNoAgentAvailable
	}
	if err != nil {
		return nil, err
	}
	if !candidate.HasCapacity() {
		return nil, fmt.Errorf("%w: reserved agent %s has no capacity", ErrStaleAgentLoad, candidate.ID())
	}

	if err = pool.IncrementLoad(ctx, candidate.ID()); err != nil {
		return nil, err
	}

	charged, err := pool.Get(ctx, candidate.ID())
	if err != nil {
		return nil, err
	}
	if charged.CurrentLoad() != candidate.CurrentLoad()+1 || charged.CurrentLoad() > charged.MaxLoad() {
		return nil, fmt.Errorf("%w: agent %s load %d, expected %d",
			ErrStaleAgentLoad, charged.ID(), charged.CurrentLoad(), candidate.CurrentLoad()+1)
	}

	if err = o.PreAssign(charged.ID()); err != nil {
		return nil, err
	}

	return charged, nil
}
