package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/metrics"
	"fooddelivery/internal/pkg/errs"
)

// CreateOrderCommandHandler inserts a new order and, in the same
// transaction, tries to bind it to the least loaded free agent. When every
// agent is full or held by a concurrent allocation the order is stored
// pending with no agent.
type CreateOrderCommandHandler struct {
	uowFactory  UoWFactory
	allocator   services.AgentAllocator
	invalidator Invalidator
}

func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	allocator services.AgentAllocator,
	invalidator Invalidator,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		allocator:   allocator,
		invalidator: invalidator,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	restaurants := uow.RestaurantRepository()
	orders := uow.OrderRepository()

	customer, err := users.Get(ctx, cmd.CustomerID())
	if err != nil {
		return nil, asInvalidReference("customerId", err)
	}
	if customer.Type() != user.Customer {
		return nil, errs.NewValueIsInvalidErrorWithCause("customerId", errors.New("user is not a customer"))
	}

	if _, err = restaurants.Get(ctx, cmd.RestaurantID()); err != nil {
		return nil, asInvalidReference("restaurantId", err)
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.RestaurantID(),
		cmd.TotalPrice(),
		cmd.Items(),
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	outcome := metrics.AllocationAssigned
	if _, err = h.allocator.Allocate(ctx, o, users); errors.Is(err, services.ErrNoAgentAvailable) {
		outcome = metrics.AllocationUnassigned
	} else if err != nil {
		metrics.AgentAllocationsTotal.WithLabelValues(metrics.AllocationFailed).Inc()
		return nil, err
	}

	if err = orders.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.AgentAllocationsTotal.WithLabelValues(outcome).Inc()
	metrics.OrderTransitionsTotal.WithLabelValues(o.Status().String()).Inc()
	h.invalidator.Invalidate(ctx, uow.TrackedAggregates()...)
	return o, nil
}

// asInvalidReference turns a missing referenced record into a validation
// failure of the request field that named it.
func asInvalidReference(param string, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return err
}
