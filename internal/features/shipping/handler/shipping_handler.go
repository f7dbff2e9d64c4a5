package handler

import (
	"errors"
	"net/http"

	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/core/server"
	"storefront-gateway/internal/features/shipping/domain"
	"storefront-gateway/internal/features/shipping/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ShippingHandler handles HTTP requests for carriers, rates, shipments and delivery options.
type ShippingHandler struct {
	service *service.ShippingService
}

// NewShippingHandler creates a new ShippingHandler.
func NewShippingHandler(s *service.ShippingService) *ShippingHandler {
	return &ShippingHandler{service: s}
}

// Register mounts the shipping routes.
func (h *ShippingHandler) Register(r fiber.Router) {
	r.Get("/shipping/providers", h.ListProviders)
	r.Post("/shipping/rates", h.QuoteRates)
	r.Post("/shipping/shipments", h.CreateShipment)
	r.Get("/shipping/delivery-options", h.ListDeliveryOptions)
	r.Post("/shipping/delivery-options", h.CreateDeliveryOption)
	r.Put("/shipping/delivery-options/:id", h.UpdateDeliveryOption)
	r.Delete("/shipping/delivery-options/:id", h.DeleteDeliveryOption)
}

// ListProviders godoc
// @Summary List enabled carriers
// @Tags shipping
// @Produce json
// @Success 200 {array} domain.Provider
// @Failure 502 {object} server.ErrorResponse
// @Router /shipping/providers [get]
func (h *ShippingHandler) ListProviders(c *fiber.Ctx) error {
	providers, err := h.service.ListProviders(c.UserContext())
	if err != nil {
		return h.fail(c, err, "failed to load shipping providers")
	}
	return c.JSON(providers)
}

// QuoteRates godoc
// @Summary Quote shipping rates
// @Tags shipping
// @Accept json
// @Produce json
// @Param body body domain.RateRequest true "Shipment to quote"
// @Success 200 {object} domain.RateQuote
// @Failure 400 {object} server.ErrorResponse
// @Failure 502 {object} server.ErrorResponse
// @Router /shipping/rates [post]
func (h *ShippingHandler) QuoteRates(c *fiber.Ctx) error {
	var req domain.RateRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	quote, err := h.service.QuoteRates(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err, "failed to load shipping rates")
	}
	return c.JSON(quote)
}

// CreateShipment godoc
// @Summary Buy a shipping label
// @Tags shipping
// @Accept json
// @Produce json
// @Param body body domain.CreateShipmentRequest true "Shipment"
// @Success 201 {object} domain.Shipment
// @Failure 400 {object} server.ErrorResponse
// @Router /shipping/shipments [post]
func (h *ShippingHandler) CreateShipment(c *fiber.Ctx) error {
	var req domain.CreateShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	shipment, err := h.service.CreateShipment(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err, "failed to create shipment")
	}
	return c.Status(http.StatusCreated).JSON(shipment)
}

// ListDeliveryOptions godoc
// @Summary List delivery options
// @Tags shipping
// @Produce json
// @Success 200 {array} domain.DeliveryOption
// @Router /shipping/delivery-options [get]
func (h *ShippingHandler) ListDeliveryOptions(c *fiber.Ctx) error {
	options, err := h.service.ListDeliveryOptions(c.UserContext())
	if err != nil {
		return h.fail(c, err, "failed to load delivery options")
	}
	return c.JSON(options)
}

// CreateDeliveryOption godoc
// @Summary Create a delivery option
// @Tags shipping
// @Accept json
// @Produce json
// @Param body body domain.DeliveryOptionInput true "Delivery option"
// @Success 201 {object} domain.DeliveryOption
// @Failure 400 {object} server.ErrorResponse
// @Router /shipping/delivery-options [post]
func (h *ShippingHandler) CreateDeliveryOption(c *fiber.Ctx) error {
	var input domain.DeliveryOptionInput
	if err := c.BodyParser(&input); err != nil {
		return server.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	option, err := h.service.CreateDeliveryOption(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err, "failed to create delivery option")
	}
	return c.Status(http.StatusCreated).JSON(option)
}

// UpdateDeliveryOption godoc
// @Summary Replace a delivery option
// @Tags shipping
// @Accept json
// @Produce json
// @Param id path string true "Delivery option ID"
// @Param body body domain.DeliveryOptionInput true "Delivery option"
// @Success 200 {object} domain.DeliveryOption
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Router /shipping/delivery-options/{id} [put]
func (h *ShippingHandler) UpdateDeliveryOption(c *fiber.Ctx) error {
	var input domain.DeliveryOptionInput
	if err := c.BodyParser(&input); err != nil {
		return server.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	option, err := h.service.UpdateDeliveryOption(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return h.fail(c, err, "failed to update delivery option")
	}
	return c.JSON(option)
}

// DeleteDeliveryOption godoc
// @Summary Delete a delivery option
// @Tags shipping
// @Param id path string true "Delivery option ID"
// @Success 204
// @Failure 404 {object} server.ErrorResponse
// @Router /shipping/delivery-options/{id} [delete]
func (h *ShippingHandler) DeleteDeliveryOption(c *fiber.Ctx) error {
	if err := h.service.DeleteDeliveryOption(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err, "failed to delete delivery option")
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *ShippingHandler) fail(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, service.ErrDeliveryOptionNotFound) {
		return server.Fail(c, http.StatusNotFound, "delivery option not found")
	}

	logger.Get().Error(fallback,
		zap.String("path", c.Path()),
		zap.String("ray_id", server.RayID(c)),
		zap.Error(err),
	)
	return server.FailFrom(c, err, fallback)
}
