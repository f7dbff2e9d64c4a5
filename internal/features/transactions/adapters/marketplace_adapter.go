package adapters

import (
	"context"
	"fmt"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/features/transactions/domain"
)

const resource = "transactions"

// MarketplaceAdapter implements ports.TransactionProvider on top of the marketplace REST API.
type MarketplaceAdapter struct {
	client *apiclient.Client
}

// NewMarketplaceAdapter creates a new MarketplaceAdapter.
func NewMarketplaceAdapter(client *apiclient.Client) *MarketplaceAdapter {
	return &MarketplaceAdapter{client: client}
}

// GetStatus calls GET /api/user/transactions/{id}/status.
func (a *MarketplaceAdapter) GetStatus(ctx context.Context, transactionID string) (*domain.TransactionStatus, error) {
	var status domain.TransactionStatus
	path := fmt.Sprintf("/api/user/transactions/%s/status", apiclient.PathID(transactionID))
	if err := a.client.Get(ctx, resource, path, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// UpdateStatus calls PUT /api/user/transactions/{id}/status.
func (a *MarketplaceAdapter) UpdateStatus(ctx context.Context, transactionID string, update domain.StatusUpdate) (*domain.TransactionStatus, error) {
	var status domain.TransactionStatus
	path := fmt.Sprintf("/api/user/transactions/%s/status", apiclient.PathID(transactionID))
	if err := a.client.Put(ctx, resource, path, update, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetTransitions calls GET /api/user/transactions/{id}/transitions.
func (a *MarketplaceAdapter) GetTransitions(ctx context.Context, transactionID string) (*domain.Transitions, error) {
	var transitions domain.Transitions
	path := fmt.Sprintf("/api/user/transactions/%s/transitions", apiclient.PathID(transactionID))
	if err := a.client.Get(ctx, resource, path, nil, &transitions); err != nil {
		return nil, err
	}
	return &transitions, nil
}

// BulkUpdateStatus calls PUT /api/user/transactions/bulk/status.
func (a *MarketplaceAdapter) BulkUpdateStatus(ctx context.Context, update domain.BulkStatusUpdate) (*domain.BulkStatusResult, error) {
	var result domain.BulkStatusResult
	if err := a.client.Put(ctx, resource, "/api/user/transactions/bulk/status", update, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetEscrowTransaction calls GET /api/user/escrow/transaction/{id}.
func (a *MarketplaceAdapter) GetEscrowTransaction(ctx context.Context, transactionID string) (*domain.EscrowTransaction, error) {
	var tx domain.EscrowTransaction
	path := fmt.Sprintf("/api/user/escrow/transaction/%s", apiclient.PathID(transactionID))
	if err := a.client.Get(ctx, "escrow", path, nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}
