package http

import (
	"context"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/ratelimit"

	"github.com/stretchr/testify/mock"
)

type MockRegisterUserHandler struct{ mock.Mock }

func (m *MockRegisterUserHandler) Handle(ctx context.Context, cmd commands.RegisterUserCommand) (*user.User, error) {
	args := m.Called(ctx, cmd)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockCreateRestaurantHandler struct{ mock.Mock }

func (m *MockCreateRestaurantHandler) Handle(
	ctx context.Context,
	cmd commands.CreateRestaurantCommand,
) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, cmd)
	r, _ := args.Get(0).(*restaurant.Restaurant)
	return r, args.Error(1)
}

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockAcceptOrderHandler struct{ mock.Mock }

func (m *MockAcceptOrderHandler) Handle(ctx context.Context, cmd commands.AcceptOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockPickUpOrderHandler struct{ mock.Mock }

func (m *MockPickUpOrderHandler) Handle(ctx context.Context, cmd commands.PickUpOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockMarkDeliveredHandler struct{ mock.Mock }

func (m *MockMarkDeliveredHandler) Handle(ctx context.Context, cmd commands.MarkDeliveredCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockUpdateAgentProfileHandler struct{ mock.Mock }

func (m *MockUpdateAgentProfileHandler) Handle(
	ctx context.Context,
	cmd commands.UpdateAgentProfileCommand,
) (*user.User, error) {
	args := m.Called(ctx, cmd)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error) {
	args := m.Called(ctx, query)
	v, _ := args.Get(0).(queries.OrderView)
	return v, args.Error(1)
}

type MockListOrdersHandler struct{ mock.Mock }

func (m *MockListOrdersHandler) Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderSummary, error) {
	args := m.Called(ctx, query)
	v, _ := args.Get(0).([]queries.OrderSummary)
	return v, args.Error(1)
}

type MockGetOrderHistoryHandler struct{ mock.Mock }

func (m *MockGetOrderHistoryHandler) Handle(
	ctx context.Context,
	query queries.GetOrderHistoryQuery,
) ([]queries.OrderView, error) {
	args := m.Called(ctx, query)
	v, _ := args.Get(0).([]queries.OrderView)
	return v, args.Error(1)
}

type MockGetRestaurantDetailHandler struct{ mock.Mock }

func (m *MockGetRestaurantDetailHandler) Handle(
	ctx context.Context,
	query queries.GetRestaurantDetailQuery,
) (queries.RestaurantView, error) {
	args := m.Called(ctx, query)
	v, _ := args.Get(0).(queries.RestaurantView)
	return v, args.Error(1)
}

type MockGetAgentDetailHandler struct{ mock.Mock }

func (m *MockGetAgentDetailHandler) Handle(ctx context.Context, query queries.GetAgentDetailQuery) (queries.AgentView, error) {
	args := m.Called(ctx, query)
	v, _ := args.Get(0).(queries.AgentView)
	return v, args.Error(1)
}

type MockListAgentsHandler struct{ mock.Mock }

func (m *MockListAgentsHandler) Handle(ctx context.Context, query queries.ListAgentsQuery) ([]queries.AgentView, error) {
	args := m.Called(ctx, query)
	v, _ := args.Get(0).([]queries.AgentView)
	return v, args.Error(1)
}

type MockRateLimiter struct{ mock.Mock }

func (m *MockRateLimiter) CheckAndConsume(ctx context.Context, clientID string) (ratelimit.Decision, error) {
	args := m.Called(ctx, clientID)
	d, _ := args.Get(0).(ratelimit.Decision)
	return d, args.Error(1)
}
