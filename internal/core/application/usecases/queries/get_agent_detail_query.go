package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetAgentDetailQueryIsNotConstructed = errors.New(
	"GetAgentDetailQuery must be created via NewGetAgentDetailQuery constructor",
)

type GetAgentDetailQuery struct {
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetAgentDetailQuery(agentID kernel.UUID) (GetAgentDetailQuery, error) {
	if err := agentID.Validate(); err != nil {
		return GetAgentDetailQuery{}, err
	}
	return GetAgentDetailQuery{agentID: agentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAgentDetailQuery) Validate() error {
	return q.guard.Validate(ErrGetAgentDetailQueryIsNotConstructed)
}

func (q GetAgentDetailQuery) AgentID() kernel.UUID {
	return q.agentID
}
