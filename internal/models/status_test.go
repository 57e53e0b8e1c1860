package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusPaid, OrderStatusPreparing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
	} {
		require.True(t, s.Valid(), string(s))
	}
	require.False(t, OrderStatus("REFUNDED").Valid())
	require.False(t, OrderStatus("paid").Valid())
}

func TestOrderStatusTransitions(t *testing.T) {
	require.True(t, OrderStatusPending.CanTransitionTo(OrderStatusPaid))
	require.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCancelled))
	require.True(t, OrderStatusPaid.CanTransitionTo(OrderStatusPreparing))
	require.True(t, OrderStatusPaid.CanTransitionTo(OrderStatusCancelled))
	require.True(t, OrderStatusPreparing.CanTransitionTo(OrderStatusShipped))
	require.True(t, OrderStatusShipped.CanTransitionTo(OrderStatusDelivered))

	// No skipping ahead or moving backwards.
	require.False(t, OrderStatusPending.CanTransitionTo(OrderStatusShipped))
	require.False(t, OrderStatusPaid.CanTransitionTo(OrderStatusPending))
	require.False(t, OrderStatusPreparing.CanTransitionTo(OrderStatusCancelled))

	// Terminal states allow nothing.
	for _, next := range []OrderStatus{
		OrderStatusPending, OrderStatusPaid, OrderStatusPreparing,
		OrderStatusShipped, OrderStatusCancelled,
	} {
		require.False(t, OrderStatusDelivered.CanTransitionTo(next))
		require.False(t, OrderStatusCancelled.CanTransitionTo(next))
	}
}
