package adapters

import (
	"context"
	"fmt"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/features/shipping/domain"
)

const (
	resource                = "shipping"
	deliveryOptionsResource = "delivery-options"
	deliveryOptionsPath     = "/api/user/shipping/delivery-options"
)

// MarketplaceAdapter implements ports.ShippingProvider on top of the marketplace REST API.
type MarketplaceAdapter struct {
	client *apiclient.Client
}

// NewMarketplaceAdapter creates a new MarketplaceAdapter.
func NewMarketplaceAdapter(client *apiclient.Client) *MarketplaceAdapter {
	return &MarketplaceAdapter{client: client}
}

// ListProviders calls GET /api/user/shipping/providers.
func (a *MarketplaceAdapter) ListProviders(ctx context.Context) ([]domain.Provider, error) {
	providers := []domain.Provider{}
	if err := a.client.Get(ctx, resource, "/api/user/shipping/providers", nil, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

// QuoteRates calls POST /api/user/shipping/rates.
func (a *MarketplaceAdapter) QuoteRates(ctx context.Context, req domain.RateRequest) ([]domain.Rate, error) {
	rates := []domain.Rate{}
	if err := a.client.Post(ctx, resource, "/api/user/shipping/rates", req, &rates); err != nil {
		return nil, err
	}
	return rates, nil
}

// CreateShipment calls POST /api/user/shipping/shipments.
func (a *MarketplaceAdapter) CreateShipment(ctx context.Context, req domain.CreateShipmentRequest) (*domain.Shipment, error) {
	var shipment domain.Shipment
	if err := a.client.Post(ctx, resource, "/api/user/shipping/shipments", req, &shipment); err != nil {
		return nil, err
	}
	return &shipment, nil
}

// ListDeliveryOptions calls GET /api/user/shipping/delivery-options.
func (a *MarketplaceAdapter) ListDeliveryOptions(ctx context.Context) ([]domain.DeliveryOption, error) {
	options := []domain.DeliveryOption{}
	if err := a.client.Get(ctx, deliveryOptionsResource, deliveryOptionsPath, nil, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// CreateDeliveryOption calls POST /api/user/shipping/delivery-options.
func (a *MarketplaceAdapter) CreateDeliveryOption(ctx context.Context, input domain.DeliveryOptionInput) (*domain.DeliveryOption, error) {
	var option domain.DeliveryOption
	if err := a.client.Post(ctx, deliveryOptionsResource, deliveryOptionsPath, input, &option); err != nil {
		return nil, err
	}
	return &option, nil
}

// UpdateDeliveryOption calls PUT /api/user/shipping/delivery-options/{id}.
func (a *MarketplaceAdapter) UpdateDeliveryOption(ctx context.Context, id string, input domain.DeliveryOptionInput) (*domain.DeliveryOption, error) {
	var option domain.DeliveryOption
	path := fmt.Sprintf("%s/%s", deliveryOptionsPath, apiclient.PathID(id))
	if err := a.client.Put(ctx, deliveryOptionsResource, path, input, &option); err != nil {
		return nil, err
	}
	return &option, nil
}

// DeleteDeliveryOption calls DELETE /api/user/shipping/delivery-options/{id}.
func (a *MarketplaceAdapter) DeleteDeliveryOption(ctx context.Context, id string) error {
	path := fmt.Sprintf("%s/%s", deliveryOptionsPath, apiclient.PathID(id))
	return a.client.Delete(ctx, deliveryOptionsResource, path, nil)
}
