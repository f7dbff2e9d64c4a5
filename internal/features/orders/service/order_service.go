package service

import (
	"context"
	"errors"
	"fmt"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/core/validation"
	"storefront-gateway/internal/features/orders/domain"
	"storefront-gateway/internal/features/orders/ports"
	txdomain "storefront-gateway/internal/features/transactions/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrOrderNotFound is returned when the order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrBothSourcesFailed is returned when neither the order nor its transaction could be loaded.
	ErrBothSourcesFailed = errors.New("failed to load order status")
)

// OrderService handles order reads, writes and the reconciled order-status view.
type OrderService struct {
	// orders is the backend order API.
	orders ports.OrderProvider
	// transactions reads the escrow status paired with each order.
	transactions ports.TransactionStatusReader
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(orders ports.OrderProvider, transactions ports.TransactionStatusReader) *OrderService {
	return &OrderService{
		orders:       orders,
		transactions: transactions,
	}
}

// GetOrderView loads the transaction status and the order record in parallel and reconciles them.
// The two fetches are independent: one failing does not cancel the other, and the view is built
// from whatever arrived. Only when neither source yields a record is ErrBothSourcesFailed returned.
func (s *OrderService) GetOrderView(ctx context.Context, orderID string) (*domain.OrderView, error) {
	var (
		order    *domain.Order
		tx       *txdomain.TransactionStatus
		orderErr error
		txErr    error
		g        errgroup.Group
	)

	// A zero Group never cancels ctx, so a failed fetch leaves its sibling running.
	g.Go(func() error {
		tx, txErr = s.transactions.GetStatus(ctx, orderID)
		return txErr
	})
	g.Go(func() error {
		order, orderErr = s.orders.GetOrder(ctx, orderID)
		return orderErr
	})
	if err := g.Wait(); err != nil {
		log := logger.FromContext(ctx).Named("orders")
		if txErr != nil {
			log.Warn("Transaction status unavailable", zap.String("order_id", orderID), zap.Error(txErr))
			tx = nil
		}
		if orderErr != nil {
			log.Warn("Order details unavailable", zap.String("order_id", orderID), zap.Error(orderErr))
			order = nil
		}
	}

	if tx == nil && order == nil {
		if cause := errors.Join(txErr, orderErr); cause != nil {
			return nil, fmt.Errorf("%w: %w", ErrBothSourcesFailed, cause)
		}
		return nil, ErrBothSourcesFailed
	}

	view := domain.BuildView(orderID, order, tx)
	return &view, nil
}

// GetOrder returns the raw order record.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, translate(err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders returns one page of the caller's orders.
func (s *OrderService) ListOrders(ctx context.Context, query domain.ListOrdersQuery) (*domain.OrderList, error) {
	return s.orders.ListOrders(ctx, query)
}

// CreateOrder validates and places an order.
func (s *OrderService) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.orders.CreateOrder(ctx, req)
}

// UpdateStatus validates a status change. Marking an order shipped requires carrier details.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, req domain.StatusUpdateRequest) (*domain.Order, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if domain.ParseStatus(req.Status) == domain.StatusShipped && req.Shipping == nil {
		return nil, &validation.Error{Fields: map[string]string{"shipping": "is required"}}
	}

	order, err := s.orders.UpdateStatus(ctx, orderID, req)
	if err != nil {
		return nil, translate(err)
	}
	return order, nil
}

// ConfirmDelivery records that the buyer received the order.
func (s *OrderService) ConfirmDelivery(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.ConfirmDelivery(ctx, orderID)
	if err != nil {
		return nil, translate(err)
	}
	return order, nil
}

func translate(err error) error {
	if apiclient.IsNotFound(err) {
		return fmt.Errorf("%w: %v", ErrOrderNotFound, err)
	}
	return err
}
