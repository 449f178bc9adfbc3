package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/user"
)

// RegisterUserCommandHandler stores a new customer or agent. A mobile or
// email already in use is reported by the repository as a conflict.
type RegisterUserCommandHandler struct {
	uowFactory  UserUoWFactory
	invalidator Invalidator
}

func NewRegisterUserCommandHandler(uowFactory UserUoWFactory, invalidator Invalidator) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory:  uowFactory,
		invalidator: invalidator,
	}
}

func (h *RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var (
		u   *user.User
		err error
	)
	if cmd.UserType() == user.DeliveryAgent {
		u, err = user.NewDeliveryAgent(cmd.UserID(), cmd.Name(), cmd.Mobile(), cmd.Email(), cmd.MaxLoad())
	} else {
		u, err = user.NewCustomer(cmd.UserID(), cmd.Name(), cmd.Mobile(), cmd.Email())
	}
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserRepository().Add(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.invalidator.Invalidate(ctx, uow.TrackedAggregates()...)
	return u, nil
}
