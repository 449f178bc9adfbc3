package order_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []order.Status{order.Pending, order.Accepted, order.InTransit, order.Delivered} {
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	for _, bad := range []string{"", "unknown", "Pending", "cancelled"} {
		_, err := order.ParseStatus(bad)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, bad)
	}
}

func TestStatus_Validate(t *testing.T) {
	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.Status(42).Validate(), errs.ErrValueIsInvalid)
	require.NoError(t, order.InTransit.Validate())
	assert.Equal(t, "unknown", order.Status(42).String())
}

func TestStatus_Transitions(t *testing.T) {
	type transition func(order.Status) (order.Status, error)

	accept := func(s order.Status) (order.Status, error) { return s.Accept() }
	startTransit := func(s order.Status) (order.Status, error) { return s.StartTransit() }
	deliver := func(s order.Status) (order.Status, error) { return s.Deliver() }

	testCases := []struct {
		name string
		from order.Status
		move transition
		want order.Status
		ok   bool
	}{
		{"pending accept", order.Pending, accept, order.Accepted, true},
		{"accepted accept", order.Accepted, accept, order.Unknown, false},
		{"delivered accept", order.Delivered, accept, order.Unknown, false},
		{"accepted pick up", order.Accepted, startTransit, order.InTransit, true},
		{"pending pick up", order.Pending, startTransit, order.Unknown, false},
		{"in transit pick up", order.InTransit, startTransit, order.Unknown, false},
		{"accepted deliver", order.Accepted, deliver, order.Delivered, true},
		{"in transit deliver", order.InTransit, deliver, order.Delivered, true},
		{"pending deliver", order.Pending, deliver, order.Unknown, false},
		{"delivered deliver", order.Delivered, deliver, order.Unknown, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.move(tc.from)
			if !tc.ok {
				require.ErrorIs(t, err, errs.ErrConflict)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Greater(t, got, tc.from, "transitions only move forward")
		})
	}
}

func TestStatus_ValidateCanHaveAgent(t *testing.T) {
	require.NoError(t, order.Pending.ValidateCanHaveAgent(false))
	require.NoError(t, order.Pending.ValidateCanHaveAgent(true))
	require.NoError(t, order.Delivered.ValidateCanHaveAgent(true))
	require.ErrorIs(t, order.Accepted.ValidateCanHaveAgent(false), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.InTransit.ValidateCanHaveAgent(false), errs.ErrValueIsInvalid)
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.InTransit.IsTerminal())
	assert.True(t, order.Delivered.IsTerminal())
}
