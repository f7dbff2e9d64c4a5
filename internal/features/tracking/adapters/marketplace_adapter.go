package adapters

import (
	"context"
	"fmt"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/features/tracking/domain"
)

// MarketplaceAdapter reads carrier tracking through the marketplace shipping API.
type MarketplaceAdapter struct {
	client *apiclient.Client
}

// NewMarketplaceAdapter creates a new MarketplaceAdapter.
func NewMarketplaceAdapter(client *apiclient.Client) *MarketplaceAdapter {
	return &MarketplaceAdapter{client: client}
}

// GetTrackingHistory calls GET /api/user/shipping/track/{trackingNumber}.
func (a *MarketplaceAdapter) GetTrackingHistory(ctx context.Context, trackingNumber string) (*domain.TrackingHistory, error) {
	var history domain.TrackingHistory
	path := fmt.Sprintf("/api/user/shipping/track/%s", apiclient.PathID(trackingNumber))
	if err := a.client.Get(ctx, "tracking", path, nil, &history); err != nil {
		return nil, err
	}

	history.Status = domain.ParseTrackingStatus(string(history.Status))
	if history.TrackingNumber == "" {
		history.TrackingNumber = trackingNumber
	}
	if history.Events == nil {
		history.Events = []domain.TrackingEvent{}
	}
	return &history, nil
}
