package domain

import (
	"testing"

	txdomain "storefront-gateway/internal/features/transactions/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildView_TransactionOnly(t *testing.T) {
	tx := &txdomain.TransactionStatus{
		Status:   "processing",
		Progress: 60,
		StatusHistory: []txdomain.StatusHistoryEntry{
			{Status: "paid", Timestamp: paidAt},
			{Status: "shipped", Timestamp: shippedAt, Description: "Shipped via ups - Tracking: 1Z42"},
		},
		NextPossibleStatuses: []string{"delivered"},
	}

	view := BuildView("ORD-7", nil, tx)

	assert.Equal(t, "ORD-7", view.OrderID)
	assert.Equal(t, StatusShipped, view.CurrentStatus)
	assert.Equal(t, "Shipped", view.StatusPresentation.Label)
	assert.Equal(t, StatusPaid, view.PaymentStatus)
	assert.Equal(t, "1Z42", view.Tracking.TrackingNumber)
	assert.Equal(t, "UPS", view.ProviderName)
	assert.True(t, view.Shipping.ShowTracking)
	assert.Equal(t, "shipped", view.Timeline[0].Status)
	assert.Equal(t, 60, view.Progress)
	assert.Equal(t, []string{"delivered"}, view.NextPossibleStatuses)
	assert.Equal(t, Sources{Transaction: true}, view.Sources)
	assert.False(t, view.Rating.Eligible)
}

func TestBuildView_OrderOnly(t *testing.T) {
	order := &Order{ID: "ORD-7", Status: "delivered", Shipping: &Shipping{TrackingNumber: "ABC", Provider: "fedex"}}

	view := BuildView("ORD-7", order, nil)

	assert.Equal(t, StatusDelivered, view.CurrentStatus)
	assert.Equal(t, StatusUnknown, view.PaymentStatus)
	assert.Equal(t, ShippingDetails{Visible: true, Message: DeliveredMessage}, view.Shipping)
	assert.Empty(t, view.Timeline)
	assert.Empty(t, view.NextPossibleStatuses)
	assert.Equal(t, Sources{Order: true}, view.Sources)
	assert.Same(t, order, view.Order)
}
