package domain

import (
	txdomain "storefront-gateway/internal/features/transactions/domain"
)

// Sources reports which upstream records contributed to a view.
type Sources struct {
	Transaction bool `json:"transaction"`
	Order       bool `json:"order"`
}

// OrderView is the reconciled order-status page for a buyer.
type OrderView struct {
	OrderID              string                        `json:"orderId"`
	CurrentStatus        Status                        `json:"currentStatus"`
	StatusPresentation   Presentation                  `json:"statusPresentation"`
	PaymentStatus        Status                        `json:"paymentStatus"`
	Tracking             TrackingInfo                  `json:"tracking"`
	ProviderName         string                        `json:"providerName,omitempty"`
	Shipping             ShippingDetails               `json:"shippingDetails"`
	Timeline             []txdomain.StatusHistoryEntry `json:"timeline"`
	Progress             int                           `json:"progress"`
	NextPossibleStatuses []string                      `json:"nextPossibleStatuses"`
	Rating               RatingEligibility             `json:"rating"`
	Order                *Order                        `json:"order,omitempty"`
	Sources              Sources                       `json:"sources"`
}

// BuildView assembles the view from whichever records are available. Either may be nil.
func BuildView(orderID string, order *Order, tx *txdomain.TransactionStatus) OrderView {
	status := CurrentStatus(order, tx)
	tracking := DeriveTracking(order, tx)

	view := OrderView{
		OrderID:              orderID,
		CurrentStatus:        status,
		StatusPresentation:   status.Present(),
		PaymentStatus:        PaymentStatus(order, tx),
		Tracking:             tracking,
		Shipping:             ShippingDetailsFor(tracking, status),
		Timeline:             Timeline(tx),
		NextPossibleStatuses: []string{},
		Rating:               CheckRatingEligibility(status),
		Order:                order,
		Sources:              Sources{Transaction: tx != nil, Order: order != nil},
	}
	if tracking.Provider != "" {
		view.ProviderName = DisplayName(tracking.Provider)
	}
	if tx != nil {
		view.Progress = tx.Progress
		if tx.NextPossibleStatuses != nil {
			view.NextPossibleStatuses = tx.NextPossibleStatuses
		}
	}
	return view
}
