package queries

import (
	"errors"

	"fooddelivery/internal/pkg/guard"
)

var ErrAuditAgentLoadQueryIsNotConstructed = errors.New(
	"AuditAgentLoadQuery must be created via NewAuditAgentLoadQuery constructor",
)

// AuditAgentLoadQuery compares every agent's load counter with the number
// of undelivered orders it holds.
type AuditAgentLoadQuery struct {
	guard guard.ConstructorGuard
}

func NewAuditAgentLoadQuery() AuditAgentLoadQuery {
	return AuditAgentLoadQuery{guard: guard.NewConstructorGuard()}
}

func (q AuditAgentLoadQuery) Validate() error {
	return q.guard.Validate(ErrAuditAgentLoadQueryIsNotConstructed)
}

// LoadMismatch is an agent whose counter disagrees with its orders.
type LoadMismatch struct {
	AgentID     string `json:"agent_id"`
	Name        string `json:"name"`
	CurrentLoad int    `json:"current_load"`
	HeldOrders  int    `json:"held_orders"`
}
