package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type createRestaurantRequest struct {
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Rating   float64 `json:"rating"`
}

// CreateRestaurant handles POST /restaurants.
func (s *Server) CreateRestaurant(c echo.Context) error {
	var req createRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewCreateRestaurantCommand(kernel.NewUUID(), req.Name, req.Location, req.Rating)
	if err != nil {
		return s.respondError(c, err)
	}

	r, err := s.h.CreateRestaurant.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, queries.RestaurantView{
		ID:       r.ID(),
		Name:     r.Name(),
		Location: r.Location(),
		Rating:   r.Rating(),
	})
}

// GetRestaurant handles GET /restaurants/:id.
func (s *Server) GetRestaurant(c echo.Context) error {
	restaurantID, err := pathUUID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}

	query, err := queries.NewGetRestaurantDetailQuery(restaurantID)
	if err != nil {
		return s.respondError(c, err)
	}

	view, err := s.h.GetRestaurantDetail.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}
