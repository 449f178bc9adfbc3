// Package restaurant holds the Restaurant aggregate. Restaurants are plain
// records referenced by orders; they take no part in dispatch.
package restaurant

import (
	"errors"
	"math"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	MinRating = 0.0
	MaxRating = 5.0

	maxNameLength     = 100
	maxLocationLength = 255
)

var (
	ErrNameIsRequired     = errs.NewValueIsRequiredError("name")
	ErrLocationIsRequired = errs.NewValueIsRequiredError("location")

	ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant or RestoreRestaurant")
)

type Restaurant struct {
	id       kernel.UUID
	name     string
	location string
	rating   float64

	guard guard.ConstructorGuard
}

// NewRestaurant validates a restaurant record. location is free text.
func NewRestaurant(id kernel.UUID, name, location string, rating float64) (*Restaurant, error) {
	r := &Restaurant{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setLocation(location),
		r.setRating(rating),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRestaurant rebuilds a restaurant read from storage.
func RestoreRestaurant(id kernel.UUID, name, location string, rating float64) (*Restaurant, error) {
	return NewRestaurant(id, name, location, rating)
}

func (r *Restaurant) Validate() error {
	if r == nil {
		return ErrRestaurantIsNotConstructed
	}
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

func (r *Restaurant) ID() kernel.UUID {
	return r.id
}

func (r *Restaurant) Name() string {
	return r.name
}

func (r *Restaurant) Location() string {
	return r.location
}

func (r *Restaurant) Rating() float64 {
	return r.rating
}

func (r *Restaurant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Restaurant) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	if len(name) > maxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", len(name), 1, maxNameLength)
	}
	r.name = name
	return nil
}

func (r *Restaurant) setLocation(location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return ErrLocationIsRequired
	}
	if len(location) > maxLocationLength {
		return errs.NewValueIsOutOfRangeError("location length", len(location), 1, maxLocationLength)
	}
	r.location = location
	return nil
}

func (r *Restaurant) setRating(rating float64) error {
	if rating < MinRating || rating > MaxRating || math.IsNaN(rating) {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	r.rating = rating
	return nil
}
