package service

import (
	"context"
	"errors"
	"fmt"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/core/validation"
	"storefront-gateway/internal/features/shipping/domain"
	"storefront-gateway/internal/features/shipping/ports"
)

// ErrDeliveryOptionNotFound is returned when the delivery option does not exist.
var ErrDeliveryOptionNotFound = errors.New("delivery option not found")

// ShippingService exposes carrier quotes, label purchase and seller delivery options.
type ShippingService struct {
	provider ports.ShippingProvider
}

// NewShippingService creates a new ShippingService.
func NewShippingService(provider ports.ShippingProvider) *ShippingService {
	return &ShippingService{provider: provider}
}

// ListProviders returns the enabled carriers.
func (s *ShippingService) ListProviders(ctx context.Context) ([]domain.Provider, error) {
	providers, err := s.provider.ListProviders(ctx)
	if err != nil {
		return nil, err
	}
	enabled := make([]domain.Provider, 0, len(providers))
	for _, p := range providers {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	return enabled, nil
}

// QuoteRates validates the request and returns the carrier quotes, cheapest first.
func (s *ShippingService) QuoteRates(ctx context.Context, req domain.RateRequest) (*domain.RateQuote, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	rates, err := s.provider.QuoteRates(ctx, req)
	if err != nil {
		return nil, err
	}
	quote := domain.NewRateQuote(rates)
	return &quote, nil
}

// CreateShipment validates the request and buys a label.
func (s *ShippingService) CreateShipment(ctx context.Context, req domain.CreateShipmentRequest) (*domain.Shipment, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.provider.CreateShipment(ctx, req)
}

// ListDeliveryOptions returns the seller's delivery options.
func (s *ShippingService) ListDeliveryOptions(ctx context.Context) ([]domain.DeliveryOption, error) {
	return s.provider.ListDeliveryOptions(ctx)
}

// CreateDeliveryOption validates and stores a new delivery option.
func (s *ShippingService) CreateDeliveryOption(ctx context.Context, input domain.DeliveryOptionInput) (*domain.DeliveryOption, error) {
	if err := validateOption(input); err != nil {
		return nil, err
	}
	return s.provider.CreateDeliveryOption(ctx, input)
}

// UpdateDeliveryOption validates and replaces a delivery option.
func (s *ShippingService) UpdateDeliveryOption(ctx context.Context, id string, input domain.DeliveryOptionInput) (*domain.DeliveryOption, error) {
	if err := validateOption(input); err != nil {
		return nil, err
	}
	option, err := s.provider.UpdateDeliveryOption(ctx, id, input)
	if err != nil {
		return nil, translate(err)
	}
	return option, nil
}

// DeleteDeliveryOption removes a delivery option.
func (s *ShippingService) DeleteDeliveryOption(ctx context.Context, id string) error {
	return translate(s.provider.DeleteDeliveryOption(ctx, id))
}

func validateOption(input domain.DeliveryOptionInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}
	if input.Price.IsNegative() {
		return &validation.Error{Fields: map[string]string{"price": "must be at least 0"}}
	}
	return nil
}

func translate(err error) error {
	if apiclient.IsNotFound(err) {
		return fmt.Errorf("%w: %v", ErrDeliveryOptionNotFound, err)
	}
	return err
}
