package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetRestaurantDetailQueryIsNotConstructed = errors.New(
	"GetRestaurantDetailQuery must be created via NewGetRestaurantDetailQuery constructor",
)

type GetRestaurantDetailQuery struct {
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetRestaurantDetailQuery(restaurantID kernel.UUID) (GetRestaurantDetailQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetRestaurantDetailQuery{}, err
	}
	return GetRestaurantDetailQuery{restaurantID: restaurantID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRestaurantDetailQuery) Validate() error {
	return q.guard.Validate(ErrGetRestaurantDetailQueryIsNotConstructed)
}

func (q GetRestaurantDetailQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

type RestaurantView struct {
	ID       kernel.UUID `json:"id"`
	Name     string      `json:"name"`
	Location string      `json:"location"`
	Rating   float64     `json:"rating"`
}
