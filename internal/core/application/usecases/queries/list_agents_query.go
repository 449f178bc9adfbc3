package queries

import (
	"errors"

	"fooddelivery/internal/pkg/guard"
)

var ErrListAgentsQueryIsNotConstructed = errors.New(
	"ListAgentsQuery must be created via NewListAgentsQuery constructor",
)

// ListAgentsQuery lists delivery agents by name. With onlyAvailable set it
// keeps the agents with spare capacity.
type ListAgentsQuery struct {
	onlyAvailable bool

	guard guard.ConstructorGuard
}

func NewListAgentsQuery(onlyAvailable bool) ListAgentsQuery {
	return ListAgentsQuery{onlyAvailable: onlyAvailable, guard: guard.NewConstructorGuard()}
}

func (q ListAgentsQuery) Validate() error {
	return q.guard.Validate(ErrListAgentsQueryIsNotConstructed)
}

func (q ListAgentsQuery) OnlyAvailable() bool {
	return q.onlyAvailable
}
