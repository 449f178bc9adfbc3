package commands

import (
	"context"

	"fooddelivery/internal/metrics"
)

// MarkDeliveredCommandHandler completes an order and releases the agent's
// slot in the same transaction. Delivered is terminal, so a repeated call
// fails with a conflict and the agent is released exactly once.
type MarkDeliveredCommandHandler struct {
	uowFactory  UoWFactory
	invalidator Invalidator
}

func NewMarkDeliveredCommandHandler(uowFactory UoWFactory, invalidator Invalidator) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory:  uowFactory,
		invalidator: invalidator,
	}
}

func (h *MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
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
	users := uow.UserRepository()

	o, err := orders.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	releasesAgent := o.OccupiesAgent()
	if err = o.Deliver(); err != nil {
		return err
	}

	if releasesAgent {
		if err = users.DecrementLoad(ctx, *o.AgentID()); err != nil {
			return err
		}
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
