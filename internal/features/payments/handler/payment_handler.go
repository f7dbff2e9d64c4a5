package handler

import (
	"errors"
	"net/http"

	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/core/server"
	"storefront-gateway/internal/features/payments/domain"
	"storefront-gateway/internal/features/payments/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ConfirmRequest is the body of both payment endpoints.
type ConfirmRequest struct {
	Card         domain.CardData `json:"card"`
	ClientSecret string          `json:"clientSecret"`
}

// PaymentHandler handles card payment confirmation.
type PaymentHandler struct {
	flow *service.Flow
	auto *service.AutoProcessor
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(flow *service.Flow, auto *service.AutoProcessor) *PaymentHandler {
	return &PaymentHandler{flow: flow, auto: auto}
}

// Register mounts the payment routes.
func (h *PaymentHandler) Register(r fiber.Router) {
	r.Post("/payments/confirm", h.Confirm)
	r.Post("/payments/auto/:checkoutID", h.AutoProcess)
	r.Delete("/payments/auto/:checkoutID", h.ResetAutoProcess)
}

// Confirm godoc
// @Summary Confirm a card payment
// @Description Validates the card, creates a payment method and confirms the payment intent.
// @Tags payments
// @Accept json
// @Produce json
// @Param body body ConfirmRequest true "Card and client secret"
// @Success 200 {object} domain.PaymentResult
// @Failure 400 {object} server.ErrorResponse
// @Failure 402 {object} server.ErrorResponse
// @Failure 502 {object} server.ErrorResponse
// @Router /payments/confirm [post]
func (h *PaymentHandler) Confirm(c *fiber.Ctx) error {
	var req ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	result, err := h.flow.Confirm(c.UserContext(), req.Card, req.ClientSecret)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(result)
}

// AutoProcess godoc
// @Summary Confirm a carried-over card payment once per checkout
// @Tags payments
// @Accept json
// @Produce json
// @Param checkoutID path string true "Checkout ID"
// @Param body body ConfirmRequest true "Card and client secret"
// @Success 200 {object} domain.PaymentResult
// @Failure 400 {object} server.ErrorResponse
// @Failure 401 {object} server.ErrorResponse
// @Failure 402 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Router /payments/auto/{checkoutID} [post]
func (h *PaymentHandler) AutoProcess(c *fiber.Ctx) error {
	var req ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	result, err := h.auto.Process(c.UserContext(), c.Params("checkoutID"), req.Card, req.ClientSecret)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(result)
}

// ResetAutoProcess godoc
// @Summary Allow a checkout to be submitted again
// @Tags payments
// @Param checkoutID path string true "Checkout ID"
// @Success 204
// @Failure 401 {object} server.ErrorResponse
// @Router /payments/auto/{checkoutID} [delete]
func (h *PaymentHandler) ResetAutoProcess(c *fiber.Ctx) error {
	if err := h.auto.Reset(c.UserContext(), c.Params("checkoutID")); err != nil {
		return server.Fail(c, http.StatusUnauthorized, err.Error())
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *PaymentHandler) fail(c *fiber.Ctx, err error) error {
	var (
		vErr        *domain.ValidationError
		creationErr *domain.PaymentMethodCreationError
		confirmErr  *domain.PaymentConfirmationError
	)

	switch {
	case errors.As(err, &vErr):
		return c.Status(http.StatusBadRequest).JSON(server.ErrorResponse{
			Message: "validation failed",
			Fields:  map[string]string{vErr.Field: vErr.Reason},
			RayID:   server.RayID(c),
		})
	case errors.Is(err, service.ErrCallerRequired):
		return server.Fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrAlreadyProcessed):
		return server.Fail(c, http.StatusConflict, err.Error())
	case errors.As(err, &creationErr):
		return h.failProvider(c, err, creationErr.UserMessage)
	case errors.As(err, &confirmErr):
		return h.failProvider(c, err, confirmErr.UserMessage)
	}

	logger.Get().Error("Payment failed", zap.String("ray_id", server.RayID(c)), zap.Error(err))
	return server.Fail(c, http.StatusInternalServerError, domain.FallbackMessage)
}

// failProvider answers 402 when the provider rejected the payment and 502 when it could not be reached.
func (h *PaymentHandler) failProvider(c *fiber.Ctx, err error, userMessage string) error {
	var pErr *domain.ProviderError
	if errors.As(err, &pErr) || errors.Is(err, domain.ErrInvalidClientSecret) {
		return server.Fail(c, http.StatusPaymentRequired, userMessage)
	}

	logger.Get().Error("Payment provider unavailable", zap.String("ray_id", server.RayID(c)), zap.Error(err))
	return server.Fail(c, http.StatusBadGateway, userMessage)
}
