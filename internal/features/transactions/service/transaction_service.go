package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/core/validation"
	"storefront-gateway/internal/features/transactions/domain"
	"storefront-gateway/internal/features/transactions/ports"
)

var (
	// ErrTransactionNotFound is returned when the backend does not know the transaction.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrTransitionNotAllowed is returned when the requested status is not a valid next status.
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
)

// TransactionService exposes escrow transaction reads and status changes.
type TransactionService struct {
	provider ports.TransactionProvider
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(provider ports.TransactionProvider) *TransactionService {
	return &TransactionService{provider: provider}
}

// GetStatus returns the status record of a transaction.
func (s *TransactionService) GetStatus(ctx context.Context, transactionID string) (*domain.TransactionStatus, error) {
	status, err := s.provider.GetStatus(ctx, transactionID)
	if err != nil {
		return nil, translate(err)
	}
	return status, nil
}

// GetTransitions returns the statuses a transaction may move to next.
func (s *TransactionService) GetTransitions(ctx context.Context, transactionID string) (*domain.Transitions, error) {
	transitions, err := s.provider.GetTransitions(ctx, transactionID)
	if err != nil {
		return nil, translate(err)
	}
	return transitions, nil
}

// GetEscrowTransaction returns the legacy escrow detail of a transaction.
func (s *TransactionService) GetEscrowTransaction(ctx context.Context, transactionID string) (*domain.EscrowTransaction, error) {
	tx, err := s.provider.GetEscrowTransaction(ctx, transactionID)
	if err != nil {
		return nil, translate(err)
	}
	return tx, nil
}

// UpdateStatus validates the update, checks it against the allowed transitions and applies it.
func (s *TransactionService) UpdateStatus(ctx context.Context, transactionID string, update domain.StatusUpdate) (*domain.TransactionStatus, error) {
	if err := validation.Struct(update); err != nil {
		return nil, err
	}

	transitions, err := s.provider.GetTransitions(ctx, transactionID)
	if err != nil {
		return nil, translate(err)
	}
	allowed := slices.ContainsFunc(transitions.NextPossibleStatuses, func(next string) bool {
		return strings.EqualFold(next, update.Status)
	})
	if !allowed {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, transitions.CurrentStatus, update.Status)
	}

	status, err := s.provider.UpdateStatus(ctx, transactionID, update)
	if err != nil {
		return nil, translate(err)
	}
	return status, nil
}

// BulkUpdateStatus validates and forwards a bulk status change.
func (s *TransactionService) BulkUpdateStatus(ctx context.Context, update domain.BulkStatusUpdate) (*domain.BulkStatusResult, error) {
	if err := validation.Struct(update); err != nil {
		return nil, err
	}

	result, err := s.provider.BulkUpdateStatus(ctx, update)
	if err != nil {
		return nil, fmt.Errorf("bulk status update failed: %w", err)
	}
	return result, nil
}

func translate(err error) error {
	if apiclient.IsNotFound(err) {
		return fmt.Errorf("%w: %v", ErrTransactionNotFound, err)
	}
	return err
}
