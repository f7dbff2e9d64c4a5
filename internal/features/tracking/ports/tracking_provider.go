package ports

import (
	"context"

	"storefront-gateway/internal/features/tracking/domain"
)

// TrackingProvider defines the interface for shipment tracking lookups.
type TrackingProvider interface {
	// GetTrackingHistory retrieves the complete tracking history for a given tracking number.
	GetTrackingHistory(ctx context.Context, trackingNumber string) (*domain.TrackingHistory, error)
}
