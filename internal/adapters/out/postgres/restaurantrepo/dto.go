// Package restaurantrepo persists restaurant records.
package restaurantrepo

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
)

type RestaurantDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(100);not null;index"`
	Location string    `gorm:"type:varchar(255);not null"`
	Rating   float64   `gorm:"not null;default:0;index"`
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

func fromDomain(r *restaurant.Restaurant) RestaurantDTO {
	return RestaurantDTO{
		ID:       r.ID().Bytes(),
		Name:     r.Name(),
		Location: r.Location(),
		Rating:   r.Rating(),
	}
}

func toDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return restaurant.RestoreRestaurant(id, dto.Name, dto.Location, dto.Rating)
}
