package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/core/server"
	"storefront-gateway/internal/features/transactions/domain"
	"storefront-gateway/internal/features/transactions/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider is a hand-written ports.TransactionProvider for handler tests.
type stubProvider struct {
	status      *domain.TransactionStatus
	transitions *domain.Transitions
	escrow      *domain.EscrowTransaction
	err         error
}

func (s *stubProvider) GetStatus(ctx context.Context, id string) (*domain.TransactionStatus, error) {
	return s.status, s.err
}

func (s *stubProvider) UpdateStatus(ctx context.Context, id string, update domain.StatusUpdate) (*domain.TransactionStatus, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.TransactionStatus{Status: update.Status}, nil
}

func (s *stubProvider) GetTransitions(ctx context.Context, id string) (*domain.Transitions, error) {
	return s.transitions, s.err
}

func (s *stubProvider) BulkUpdateStatus(ctx context.Context, update domain.BulkStatusUpdate) (*domain.BulkStatusResult, error) {
	return &domain.BulkStatusResult{Updated: update.TransactionIDs}, s.err
}

func (s *stubProvider) GetEscrowTransaction(ctx context.Context, id string) (*domain.EscrowTransaction, error) {
	return s.escrow, s.err
}

func setupApp(p *stubProvider) *fiber.App {
	app := fiber.New()
	NewTransactionHandler(service.NewTransactionService(p)).Register(app)
	return app
}

func TestTransactionHandler_GetStatus(t *testing.T) {
	app := setupApp(&stubProvider{status: &domain.TransactionStatus{Status: "paid", Progress: 25}})

	resp, err := app.Test(httptest.NewRequest("GET", "/transactions/ORD-1/status", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body domain.TransactionStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "paid", body.Status)
	assert.Equal(t, 25, body.Progress)
}

func TestTransactionHandler_GetStatus_NotFound(t *testing.T) {
	app := setupApp(&stubProvider{err: &apiclient.APIError{StatusCode: 404}})

	resp, err := app.Test(httptest.NewRequest("GET", "/transactions/missing/status", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTransactionHandler_GetStatus_BackendDown(t *testing.T) {
	app := setupApp(&stubProvider{err: errors.New("connection refused")})

	resp, err := app.Test(httptest.NewRequest("GET", "/transactions/ORD-1/status", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	var body server.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "failed to load transaction status", body.Message)
}

func TestTransactionHandler_UpdateStatus(t *testing.T) {
	t.Run("Allowed", func(t *testing.T) {
		app := setupApp(&stubProvider{transitions: &domain.Transitions{NextPossibleStatuses: []string{"shipped"}}})

		req := httptest.NewRequest("PUT", "/transactions/ORD-1/status", strings.NewReader(`{"status":"shipped"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("NotAllowed", func(t *testing.T) {
		app := setupApp(&stubProvider{transitions: &domain.Transitions{CurrentStatus: "pending", NextPossibleStatuses: []string{"paid"}}})

		req := httptest.NewRequest("PUT", "/transactions/ORD-1/status", strings.NewReader(`{"status":"delivered"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("MissingStatus", func(t *testing.T) {
		app := setupApp(&stubProvider{})

		req := httptest.NewRequest("PUT", "/transactions/ORD-1/status", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var body server.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "is required", body.Fields["status"])
	})
}

func TestTransactionHandler_BulkUpdateStatus(t *testing.T) {
	app := setupApp(&stubProvider{})

	req := httptest.NewRequest("PUT", "/transactions/bulk/status", strings.NewReader(`{"transactionIds":["a","b"],"status":"shipped"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body domain.BulkStatusResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"a", "b"}, body.Updated)
}

func TestTransactionHandler_GetEscrowTransaction(t *testing.T) {
	app := setupApp(&stubProvider{escrow: &domain.EscrowTransaction{ID: "TX-1", Status: "held"}})

	resp, err := app.Test(httptest.NewRequest("GET", "/escrow/transactions/TX-1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
