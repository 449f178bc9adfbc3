package commands

import (
	"context"

	"fooddelivery/internal/metrics"
	"fooddelivery/internal/pkg/errs"
)

// AcceptOrderCommandHandler moves a pending order to accepted.
//
// The order row is locked before the agent row. An order already
// pre-assigned to the accepting agent keeps its slot; an unassigned order
// costs the agent one unit of load, provided it has room.
type AcceptOrderCommandHandler struct {
	uowFactory  UoWFactory
	invalidator Invalidator
}

func NewAcceptOrderCommandHandler(uowFactory UoWFactory, invalidator Invalidator) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory:  uowFactory,
		invalidator: invalidator,
	}
}

func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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

	agent, err := users.GetForUpdate(ctx, cmd.AgentID())
	if err != nil {
		return err
	}
	if !agent.IsDeliveryAgent() {
		return errs.NewObjectNotFoundError("agentId", cmd.AgentID().String())
	}

	needsSlot, err := o.Accept(agent.ID())
	if err != nil {
		return err
	}
	if needsSlot {
		if !agent.HasCapacity() {
			return errs.NewConflictError("agent", "at full capacity")
		}
		if err = users.IncrementLoad(ctx, agent.ID()); err != nil {
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
