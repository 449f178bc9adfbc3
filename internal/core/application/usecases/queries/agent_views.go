package queries

import (
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AgentView is the public profile of a delivery agent with its load.
type AgentView struct {
	ID          kernel.UUID `json:"id"`
	Name        string      `json:"name"`
	Mobile      string      `json:"mobile"`
	Email       string      `json:"email"`
	CurrentLoad int         `json:"current_load"`
	MaxLoad     int         `json:"max_load"`
}

type agentRow struct {
	ID          uuid.UUID
	Name        string
	Mobile      string
	Email       string
	CurrentLoad int
	MaxLoad     int
}

const agentColumns = "id, name, mobile, email, current_load, max_load"

func (r agentRow) view() (AgentView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return AgentView{}, err
	}
	return AgentView{
		ID:          id,
		Name:        r.Name,
		Mobile:      r.Mobile,
		Email:       r.Email,
		CurrentLoad: r.CurrentLoad,
		MaxLoad:     r.MaxLoad,
	}, nil
}
