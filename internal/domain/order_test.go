package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/NeerajGithb/furniture-client-sub000/internal/domain"
)

func TestOrder_CancelEligibilityByStatus(t *testing.T) {
	cases := []struct {
		status    domain.OrderStatus
		canCancel bool
		canReturn bool
	}{
		{domain.OrderStatusNew, true, false},
		{domain.OrderStatusPending, true, false},
		{domain.OrderStatusProcessing, true, false},
		{domain.OrderStatusShipped, false, false},
		{domain.OrderStatusDelivered, false, true},
		{domain.OrderStatusCancelled, false, false},
		{domain.OrderStatusReturned, false, false},
	}

	for _, tc := range cases {
		o := domain.Order{Status: tc.status}
		require.Equal(t, tc.canCancel, o.CanCancel(), "status %s", tc.status)
		require.Equal(t, tc.canReturn, o.CanReturn(), "status %s", tc.status)
	}
}

func TestOrder_Summary(t *testing.T) {
	o := domain.Order{
		ID:          10,
		OrderNumber: "ORD-10",
		Status:      domain.OrderStatusPending,
		Items: []domain.OrderItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
		TotalAmount: 2580,
	}

	sum := o.Summary()
	require.Equal(t, int64(3), sum.ItemCount)
	require.True(t, sum.CanCancel)
	require.False(t, sum.CanReturn)
	require.Equal(t, int64(2580), sum.TotalAmount)
}

func TestOrder_TimelineOnlyHasReachedStates(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	paid := created.Add(time.Hour)
	shipped := created.Add(24 * time.Hour)

	o := domain.Order{
		Status:    domain.OrderStatusShipped,
		CreatedAt: created,
		PaidAt:    &paid,
		ShippedAt: &shipped,
	}

	timeline := o.Timeline()
	require.Len(t, timeline, 3)
	require.Equal(t, domain.OrderStatusNew, timeline[0].Status)
	require.Equal(t, domain.OrderStatusProcessing, timeline[1].Status)
	require.Equal(t, domain.OrderStatusShipped, timeline[2].Status)
}

func TestOrder_PriceBreakdown(t *testing.T) {
	o := domain.Order{
		Subtotal:      2500,
		ShippingCost:  40,
		InsuranceCost: 40,
		TotalDiscount: 0,
		TotalAmount:   2580,
	}

	b := o.PriceBreakdown()
	require.Equal(t, int64(2580), b.TotalAmount)
	require.Equal(t, int64(2500), b.Subtotal)
}
