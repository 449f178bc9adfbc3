package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateAgentProfileCommandIsNotConstructed = errors.New(
	"UpdateAgentProfileCommand must be created via NewUpdateAgentProfileCommand constructor",
)

// UpdateAgentProfileCommand replaces an agent's name, mobile and email.
type UpdateAgentProfileCommand struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID
	name    string
	mobile  string
	email   string

	guard guard.ConstructorGuard
}

func NewUpdateAgentProfileCommand(agentID kernel.UUID, name, mobile, email string) (UpdateAgentProfileCommand, error) {
	cmd := UpdateAgentProfileCommand{
		name:   name,
		mobile: mobile,
		email:  email,
		guard:  guard.NewConstructorGuard(),
	}
	if err := setID(&cmd.agentID, agentID); err != nil {
		return UpdateAgentProfileCommand{}, err
	}
	return cmd, nil
}

func (c UpdateAgentProfileCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAgentProfileCommandIsNotConstructed)
}

func (c UpdateAgentProfileCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c UpdateAgentProfileCommand) Name() string {
	return c.name
}

func (c UpdateAgentProfileCommand) Mobile() string {
	return c.mobile
}

func (c UpdateAgentProfileCommand) Email() string {
	return c.email
}
