package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/restaurant"
)

type CreateRestaurantCommandHandler struct {
	uowFactory  RestaurantUoWFactory
	invalidator Invalidator
}

func NewCreateRestaurantCommandHandler(uowFactory RestaurantUoWFactory, invalidator Invalidator) CreateRestaurantCommandHandler {
	return CreateRestaurantCommandHandler{
		uowFactory:  uowFactory,
		invalidator: invalidator,
	}
}

func (h *CreateRestaurantCommandHandler) Handle(
	ctx context.Context,
	cmd CreateRestaurantCommand,
) (*restaurant.Restaurant, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	r, err := restaurant.NewRestaurant(cmd.RestaurantID(), cmd.Name(), cmd.Location(), cmd.Rating())
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

	if err = uow.RestaurantRepository().Add(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.invalidator.Invalidate(ctx, uow.TrackedAggregates()...)
	return r, nil
}
