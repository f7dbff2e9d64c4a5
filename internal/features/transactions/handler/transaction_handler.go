package handler

import (
	"errors"
	"net/http"

	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/core/server"
	"storefront-gateway/internal/features/transactions/domain"
	"storefront-gateway/internal/features/transactions/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TransactionHandler handles HTTP requests for escrow transactions.
type TransactionHandler struct {
	service *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(s *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// Register mounts the transaction routes.
func (h *TransactionHandler) Register(r fiber.Router) {
	r.Get("/transactions/:id/status", h.GetStatus)
	r.Put("/transactions/bulk/status", h.BulkUpdateStatus)
	r.Put("/transactions/:id/status", h.UpdateStatus)
	r.Get("/transactions/:id/transitions", h.GetTransitions)
	r.Get("/escrow/transactions/:id", h.GetEscrowTransaction)
}

// GetStatus godoc
// @Summary Get transaction status
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} domain.TransactionStatus
// @Failure 404 {object} server.ErrorResponse
// @Failure 502 {object} server.ErrorResponse
// @Router /transactions/{id}/status [get]
func (h *TransactionHandler) GetStatus(c *fiber.Ctx) error {
	status, err := h.service.GetStatus(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "failed to load transaction status")
	}
	return c.JSON(status)
}

// UpdateStatus godoc
// @Summary Update transaction status
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param body body domain.StatusUpdate true "New status"
// @Success 200 {object} domain.TransactionStatus
// @Failure 400 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Router /transactions/{id}/status [put]
func (h *TransactionHandler) UpdateStatus(c *fiber.Ctx) error {
	var update domain.StatusUpdate
	if err := c.BodyParser(&update); err != nil {
		return server.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	status, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), update)
	if err != nil {
		return h.fail(c, err, "failed to update transaction status")
	}
	return c.JSON(status)
}

// GetTransitions godoc
// @Summary List allowed next statuses
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} domain.Transitions
// @Failure 404 {object} server.ErrorResponse
// @Router /transactions/{id}/transitions [get]
func (h *TransactionHandler) GetTransitions(c *fiber.Ctx) error {
	transitions, err := h.service.GetTransitions(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "failed to load transitions")
	}
	return c.JSON(transitions)
}

// BulkUpdateStatus godoc
// @Summary Update the status of several transactions
// @Tags transactions
// @Accept json
// @Produce json
// @Param body body domain.BulkStatusUpdate true "Bulk update"
// @Success 200 {object} domain.BulkStatusResult
// @Failure 400 {object} server.ErrorResponse
// @Router /transactions/bulk/status [put]
func (h *TransactionHandler) BulkUpdateStatus(c *fiber.Ctx) error {
	var update domain.BulkStatusUpdate
	if err := c.BodyParser(&update); err != nil {
		return server.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.BulkUpdateStatus(c.UserContext(), update)
	if err != nil {
		return h.fail(c, err, "failed to update transactions")
	}
	return c.JSON(result)
}

// GetEscrowTransaction godoc
// @Summary Get legacy escrow transaction detail
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} domain.EscrowTransaction
// @Failure 404 {object} server.ErrorResponse
// @Router /escrow/transactions/{id} [get]
func (h *TransactionHandler) GetEscrowTransaction(c *fiber.Ctx) error {
	tx, err := h.service.GetEscrowTransaction(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "failed to load transaction")
	}
	return c.JSON(tx)
}

func (h *TransactionHandler) fail(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrTransactionNotFound):
		return server.Fail(c, http.StatusNotFound, "transaction not found")
	case errors.Is(err, service.ErrTransitionNotAllowed):
		return server.Fail(c, http.StatusConflict, err.Error())
	}

	logger.Get().Error(fallback,
		zap.String("transaction_id", c.Params("id")),
		zap.String("ray_id", server.RayID(c)),
		zap.Error(err),
	)
	return server.FailFrom(c, err, fallback)
}
