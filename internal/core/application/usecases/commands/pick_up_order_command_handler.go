package commands

import (
	"context"

	"fooddelivery/internal/metrics"
)

// PickUpOrderCommandHandler moves an accepted order to in_transit. Agent
// load is unchanged.
type PickUpOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	invalidator Invalidator
}

func NewPickUpOrderCommandHandler(uowFactory OrderUoWFactory, invalidator Invalidator) PickUpOrderCommandHandler {
	return PickUpOrderCommandHandler{
		uowFactory:  uowFactory,
		invalidator: invalidator,
	}
}

func (h *PickUpOrderCommandHandler) Handle(ctx context.Context, cmd PickUpOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()

	o, err := orders.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.StartTransit(); err != nil {
		return err
	}

	if err = orders.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(o.Status().String()).Inc()
	h.invalidator.Invalidate(ctx, uow.TrackedAggregates()...)
	return nil
}
