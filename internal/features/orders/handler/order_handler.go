package handler

import (
	"errors"
	"net/http"

	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/core/server"
	"storefront-gateway/internal/features/orders/domain"
	"storefront-gateway/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests related to orders.
type OrderHandler struct {
	// service is the OrderService instance.
	service *service.OrderService
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(s *service.OrderService) *OrderHandler {
	return &OrderHandler{
		service: s,
	}
}

// Register mounts the order routes.
func (h *OrderHandler) Register(r fiber.Router) {
	r.Get("/orders", h.ListOrders)
	r.Post("/orders", h.CreateOrder)
	r.Get("/orders/:id", h.GetOrder)
	r.Get("/orders/:id/view", h.GetOrderView)
	r.Put("/orders/:id/status", h.UpdateStatus)
	r.Post("/orders/:id/confirm-delivery", h.ConfirmDelivery)
}

// GetOrderView handles the reconciled order-status page.
// @Summary Get order status view
// @Description Combines the escrow transaction status and the order record into the buyer-facing view.
// @Description A single failing source still yields 200; the sources field reports which records were used.
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.OrderView
// @Failure 502 {object} server.ErrorResponse
// @Router /orders/{id}/view [get]
func (h *OrderHandler) GetOrderView(c *fiber.Ctx) error {
	view, err := h.service.GetOrderView(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "failed to load order status")
	}
	return c.JSON(view)
}

// GetOrder handles the request to retrieve a raw order record.
// @Summary Get Order by ID
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} server.ErrorResponse
// @Failure 502 {object} server.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "failed to load order")
	}
	return c.JSON(order)
}

// ListOrders godoc
// @Summary List orders
// @Tags orders
// @Produce json
// @Param role query string false "buyer or seller"
// @Param status query string false "Status filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} domain.OrderList
// @Failure 502 {object} server.ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	var query domain.ListOrdersQuery
	if err := c.QueryParser(&query); err != nil {
		return server.Fail(c, http.StatusBadRequest, "invalid query parameters")
	}

	list, err := h.service.ListOrders(c.UserContext(), query)
	if err != nil {
		return h.fail(c, err, "failed to load orders")
	}
	return c.JSON(list)
}

// CreateOrder godoc
// @Summary Place an order
// @Tags orders
// @Accept json
// @Produce json
// @Param body body domain.CreateOrderRequest true "Order"
// @Success 201 {object} domain.Order
// @Failure 400 {object} server.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req domain.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	order, err := h.service.CreateOrder(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err, "failed to create order")
	}
	return c.Status(http.StatusCreated).JSON(order)
}

// UpdateStatus godoc
// @Summary Update order status
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param body body domain.StatusUpdateRequest true "New status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Router /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req domain.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	order, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return h.fail(c, err, "failed to update order status")
	}
	return c.JSON(order)
}

// ConfirmDelivery godoc
// @Summary Confirm delivery of an order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} server.ErrorResponse
// @Router /orders/{id}/confirm-delivery [post]
func (h *OrderHandler) ConfirmDelivery(c *fiber.Ctx) error {
	order, err := h.service.ConfirmDelivery(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "failed to confirm delivery")
	}
	return c.JSON(order)
}

func (h *OrderHandler) fail(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		return server.Fail(c, http.StatusNotFound, "Order not found")
	case errors.Is(err, service.ErrBothSourcesFailed):
		logger.Get().Error("Failed to load order status",
			zap.String("order_id", c.Params("id")),
			zap.String("ray_id", server.RayID(c)),
			zap.Error(err),
		)
		return server.Fail(c, http.StatusBadGateway, fallback)
	}

	logger.Get().Error(fallback,
		zap.String("order_id", c.Params("id")),
		zap.String("ray_id", server.RayID(c)),
		zap.Error(err),
	)
	return server.FailFrom(c, err, fallback)
}
