package restaurant_test

import (
	"math"
	"testing"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRestaurant(t *testing.T) {
	id := kernel.NewUUID()

	r, err := restaurant.NewRestaurant(id, "Dosa Corner", "MG Road, Bengaluru", 4.5)
	require.NoError(t, err)

	assert.Equal(t, id, r.ID())
	assert.Equal(t, "Dosa Corner", r.Name())
	assert.Equal(t, "MG Road, Bengaluru", r.Location())
	assert.InDelta(t, 4.5, r.Rating(), 0.0001)
	require.NoError(t, r.Validate())
}

func TestNewRestaurant_Validation(t *testing.T) {
	testCases := []struct {
		name     string
		rName    string
		location string
		rating   float64
		wantErr  error
	}{
		{"missing name", "", "somewhere", 1, errs.ErrValueIsRequired},
		{"missing location", "Cafe", " ", 1, errs.ErrValueIsRequired},
		{"negative rating", "Cafe", "somewhere", -0.1, errs.ErrValueIsOutOfRange},
		{"rating above five", "Cafe", "somewhere", 5.1, errs.ErrValueIsOutOfRange},
		{"nan rating", "Cafe", "somewhere", math.NaN(), errs.ErrValueIsOutOfRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := restaurant.NewRestaurant(kernel.NewUUID(), tc.rName, tc.location, tc.rating)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRestaurant_ValidateZeroValue(t *testing.T) {
	require.ErrorIs(t, (&restaurant.Restaurant{}).Validate(), restaurant.ErrRestaurantIsNotConstructed)
}
