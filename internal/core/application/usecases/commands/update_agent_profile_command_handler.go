package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
)

// UpdateAgentProfileCommandHandler edits descriptive fields only and then
// drops the agent's cached detail view.
type UpdateAgentProfileCommandHandler struct {
	uowFactory  UserUoWFactory
	invalidator Invalidator
}

func NewUpdateAgentProfileCommandHandler(uowFactory UserUoWFactory, invalidator Invalidator) UpdateAgentProfileCommandHandler {
	return UpdateAgentProfileCommandHandler{
		uowFactory:  uowFactory,
		invalidator: invalidator,
	}
}

func (h *UpdateAgentProfileCommandHandler) Handle(ctx context.Context, cmd UpdateAgentProfileCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()

	agent, err := users.GetForUpdate(ctx, cmd.AgentID())
	if err != nil {
		return nil, err
	}
	if !agent.IsDeliveryAgent() {
		return nil, errs.NewObjectNotFoundError("agentId", cmd.AgentID().String())
	}

	if err = agent.UpdateProfile(cmd.Name(), cmd.Mobile(), cmd.Email()); err != nil {
		return nil, err
	}

	if err = users.UpdateProfile(ctx, agent); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.invalidator.Invalidate(ctx, uow.TrackedAggregates()...)
	return agent, nil
}
