package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrCreateRestaurantCommandIsNotConstructed = errors.New(
	"CreateRestaurantCommand must be created via NewCreateRestaurantCommand constructor",
)

type CreateRestaurantCommand struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID
	name         string
	location     string
	rating       float64

	guard guard.ConstructorGuard
}

func NewCreateRestaurantCommand(restaurantID kernel.UUID, name, location string, rating float64) (CreateRestaurantCommand, error) {
	cmd := CreateRestaurantCommand{
		name:     name,
		location: location,
		rating:   rating,
		guard:    guard.NewConstructorGuard(),
	}
	if err := setID(&cmd.restaurantID, restaurantID); err != nil {
		return CreateRestaurantCommand{}, err
	}
	return cmd, nil
}

func (c CreateRestaurantCommand) Validate() error {
	return c.guard.Validate(ErrCreateRestaurantCommandIsNotConstructed)
}

func (c CreateRestaurantCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

func (c CreateRestaurantCommand) Name() string {
	return c.name
}

func (c CreateRestaurantCommand) Location() string {
	return c.location
}

func (c CreateRestaurantCommand) Rating() float64 {
	return c.rating
}
