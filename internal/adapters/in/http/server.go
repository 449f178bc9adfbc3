// Package http exposes the dispatch service over echo. Handlers translate
// JSON requests into commands and queries and map the errs taxonomy onto
// status codes.
package http

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/model/user"
)

type (
	RegisterUserHandler interface {
		Handle(ctx context.Context, cmd commands.RegisterUserCommand) (*user.User, error)
	}
	CreateRestaurantHandler interface {
		Handle(ctx context.Context, cmd commands.CreateRestaurantCommand) (*restaurant.Restaurant, error)
	}
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	AcceptOrderHandler interface {
		Handle(ctx context.Context, cmd commands.AcceptOrderCommand) error
	}
	PickUpOrderHandler interface {
		Handle(ctx context.Context, cmd commands.PickUpOrderCommand) error
	}
	MarkDeliveredHandler interface {
		Handle(ctx context.Context, cmd commands.MarkDeliveredCommand) error
	}
	UpdateAgentProfileHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateAgentProfileCommand) (*user.User, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderSummary, error)
	}
	GetOrderHistoryHandler interface {
		Handle(ctx context.Context, query queries.GetOrderHistoryQuery) ([]queries.OrderView, error)
	}
	GetRestaurantDetailHandler interface {
		Handle(ctx context.Context, query queries.GetRestaurantDetailQuery) (queries.RestaurantView, error)
	}
	GetAgentDetailHandler interface {
		Handle(ctx context.Context, query queries.GetAgentDetailQuery) (queries.AgentView, error)
	}
	ListAgentsHandler interface {
		Handle(ctx context.Context, query queries.ListAgentsQuery) ([]queries.AgentView, error)
	}
)

// Handlers are the use cases served over HTTP.
type Handlers struct {
	RegisterUser       RegisterUserHandler
	CreateRestaurant   CreateRestaurantHandler
	CreateOrder        CreateOrderHandler
	AcceptOrder        AcceptOrderHandler
	PickUpOrder        PickUpOrderHandler
	MarkDelivered      MarkDeliveredHandler
	UpdateAgentProfile UpdateAgentProfileHandler

	GetOrder            GetOrderHandler
	ListOrders          ListOrdersHandler
	GetOrderHistory     GetOrderHistoryHandler
	GetRestaurantDetail GetRestaurantDetailHandler
	GetAgentDetail      GetAgentDetailHandler
	ListAgents          ListAgentsHandler
}

// Server implements the route handlers on top of the use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:      h,
		logger: logger.With("component", "http"),
	}
}
