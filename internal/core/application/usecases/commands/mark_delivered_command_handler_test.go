package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkDeliveredCommandHandler_Handle_ReleasesAgent(t *testing.T) {
	for _, from := range []order.Status{order.Accepted, order.InTransit} {
		t.Run(from.String(), func(t *testing.T) {
			ctx := t.Context()
			f := newLifecycleFixture()
			agentID := kernel.NewUUID()
			o := restoreOrder(t, from, &agentID)

			f.expectTx(t)
			mock.InOrder(
				f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
				f.users.On("DecrementLoad", ctx, agentID).Return(nil).Once(),
				f.orders.On("Update", ctx, o).Return(nil).Once(),
			)
			f.expectCommit(t)

			cmd, err := commands.NewMarkDeliveredCommand(o.ID())
			require.NoError(t, err)
			handler := commands.NewMarkDeliveredCommandHandler(f.factory, f.invalidator)

			require.NoError(t, handler.Handle(ctx, cmd))
			assert.Equal(t, order.Delivered, o.Status())
			f.users.AssertNumberOfCalls(t, "DecrementLoad", 1)
			f.orders.AssertExpectations(t)
		})
	}
}

func TestMarkDeliveredCommandHandler_Handle_TwiceDecrementsOnce(t *testing.T) {
	ctx := t.Context()
	f := newLifecycleFixture()
	agentID := kernel.NewUUID()
	o := restoreOrder(t, order.Accepted, &agentID)

	f.expectTx(t)
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Twice()
	f.users.On("DecrementLoad", ctx, agentID).Return(nil).Once()
	f.orders.On("Update", ctx, o).Return(nil).Once()
	f.expectCommit(t)

	cmd, err := commands.NewMarkDeliveredCommand(o.ID())
	require.NoError(t, err)
	handler := commands.NewMarkDeliveredCommandHandler(f.factory, f.invalidator)

	require.NoError(t, handler.Handle(ctx, cmd))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	f.users.AssertNumberOfCalls(t, "DecrementLoad", 1)
	f.uow.AssertNumberOfCalls(t, "Commit", 1)
}

func TestMarkDeliveredCommandHandler_Handle_PendingOrder_Conflict(t *testing.T) {
	ctx := t.Context()
	f := newLifecycleFixture()
	agentID := kernel.NewUUID()
	o := restoreOrder(t, order.Pending, &agentID)

	f.expectTx(t)
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

	cmd, err := commands.NewMarkDeliveredCommand(o.ID())
	require.NoError(t, err)
	handler := commands.NewMarkDeliveredCommandHandler(f.factory, f.invalidator)

	require.ErrorIs(t, handler.Handle(ctx, cmd), errs.ErrConflict)
	f.users.AssertNotCalled(t, "DecrementLoad", mock.Anything, mock.Anything)
}

func TestMarkDeliveredCommandHandler_Handle_UnderflowRollsBack(t *testing.T) {
	ctx := t.Context()
	f := newLifecycleFixture()
	agentID := kernel.NewUUID()
	o := restoreOrder(t, order.InTransit, &agentID)

	f.expectTx(t)
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.users.On("DecrementLoad", ctx, agentID).Return(ports.ErrLoadUnderflow).Once()

	cmd, err := commands.NewMarkDeliveredCommand(o.ID())
	require.NoError(t, err)
	handler := commands.NewMarkDeliveredCommandHandler(f.factory, f.invalidator)

	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, ports.ErrLoadUnderflow)
	require.ErrorIs(t, err, errs.ErrConflict)
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.uow.AssertCalled(t, "Rollback", ctx)
}
