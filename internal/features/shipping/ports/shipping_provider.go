package ports

import (
	"context"

	"storefront-gateway/internal/features/shipping/domain"
)

// ShippingProvider is the secondary port for the backend shipping APIs.
type ShippingProvider interface {
	ListProviders(ctx context.Context) ([]domain.Provider, error)
	QuoteRates(ctx context.Context, req domain.RateRequest) ([]domain.Rate, error)
	CreateShipment(ctx context.Context, req domain.CreateShipmentRequest) (*domain.Shipment, error)
	ListDeliveryOptions(ctx context.Context) ([]domain.DeliveryOption, error)
	CreateDeliveryOption(ctx context.Context, input domain.DeliveryOptionInput) (*domain.DeliveryOption, error)
	UpdateDeliveryOption(ctx context.Context, id string, input domain.DeliveryOptionInput) (*domain.DeliveryOption, error)
	DeleteDeliveryOption(ctx context.Context, id string) error
}
