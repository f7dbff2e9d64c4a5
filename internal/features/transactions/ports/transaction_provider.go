package ports

import (
	"context"

	"storefront-gateway/internal/features/transactions/domain"
)

// TransactionProvider is the secondary port for the backend transaction APIs.
type TransactionProvider interface {
	// GetStatus reads the current status record of a transaction.
	GetStatus(ctx context.Context, transactionID string) (*domain.TransactionStatus, error)
	// UpdateStatus moves a transaction to a new status.
	UpdateStatus(ctx context.Context, transactionID string, update domain.StatusUpdate) (*domain.TransactionStatus, error)
	// GetTransitions lists the statuses the transaction may move to next.
	GetTransitions(ctx context.Context, transactionID string) (*domain.Transitions, error)
	// BulkUpdateStatus applies one status change to several transactions.
	BulkUpdateStatus(ctx context.Context, update domain.BulkStatusUpdate) (*domain.BulkStatusResult, error)
	// GetEscrowTransaction reads the legacy escrow transaction detail.
	GetEscrowTransaction(ctx context.Context, transactionID string) (*domain.EscrowTransaction, error)
}
