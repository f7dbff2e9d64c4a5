package adapters

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/features/orders/domain"
)

const resource = "orders"

// MarketplaceAdapter implements ports.OrderProvider on top of the marketplace REST API.
type MarketplaceAdapter struct {
	client *apiclient.Client
}

// NewMarketplaceAdapter creates a new MarketplaceAdapter.
func NewMarketplaceAdapter(client *apiclient.Client) *MarketplaceAdapter {
	return &MarketplaceAdapter{client: client}
}

// ListOrders calls GET /api/user/orders.
func (a *MarketplaceAdapter) ListOrders(ctx context.Context, query domain.ListOrdersQuery) (*domain.OrderList, error) {
	params := url.Values{}
	if query.Role != "" {
		params.Set("role", query.Role)
	}
	if query.Status != "" {
		params.Set("status", query.Status)
	}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}

	var list domain.OrderList
	if err := a.client.Get(ctx, resource, "/api/user/orders", params, &list); err != nil {
		return nil, err
	}
	if list.Orders == nil {
		list.Orders = []domain.Order{}
	}
	return &list, nil
}

// CreateOrder calls POST /api/user/orders.
func (a *MarketplaceAdapter) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	var order domain.Order
	if err := a.client.Post(ctx, resource, "/api/user/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder calls GET /api/user/orders/{id}.
func (a *MarketplaceAdapter) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	path := fmt.Sprintf("/api/user/orders/%s", apiclient.PathID(orderID))
	if err := a.client.Get(ctx, resource, path, nil, &order); err != nil {
		return nil, err
	}
	if order.ID == "" && order.Status == "" {
		return nil, nil
	}
	return &order, nil
}

// UpdateStatus calls PUT /api/user/orders/{id}/status.
func (a *MarketplaceAdapter) UpdateStatus(ctx context.Context, orderID string, req domain.StatusUpdateRequest) (*domain.Order, error) {
	var order domain.Order
	path := fmt.Sprintf("/api/user/orders/%s/status", apiclient.PathID(orderID))
	if err := a.client.Put(ctx, resource, path, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ConfirmDelivery calls POST /api/user/orders/{id}/confirm-delivery.
func (a *MarketplaceAdapter) ConfirmDelivery(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	path := fmt.Sprintf("/api/user/orders/%s/confirm-delivery", apiclient.PathID(orderID))
	if err := a.client.Post(ctx, resource, path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
