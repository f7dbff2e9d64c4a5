package ports

import (
	"context"

	"storefront-gateway/internal/features/orders/domain"
	txdomain "storefront-gateway/internal/features/transactions/domain"
)

// OrderProvider defines the interface for the backend order APIs.
// This is a Secondary Port (Driven Port).
type OrderProvider interface {
	// ListOrders returns one page of the caller's orders.
	ListOrders(ctx context.Context, query domain.ListOrdersQuery) (*domain.OrderList, error)
	// CreateOrder places a new order.
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	// GetOrder retrieves an order by its identifier.
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	// UpdateStatus changes the fulfillment status of an order.
	UpdateStatus(ctx context.Context, orderID string, req domain.StatusUpdateRequest) (*domain.Order, error)
	// ConfirmDelivery records the buyer's confirmation that the order arrived.
	ConfirmDelivery(ctx context.Context, orderID string) (*domain.Order, error)
}

// TransactionStatusReader reads the escrow transaction status paired with an order.
type TransactionStatusReader interface {
	GetStatus(ctx context.Context, transactionID string) (*txdomain.TransactionStatus, error)
}
