package handler

import (
	"errors"
	"net/http"

	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/core/server"
	"storefront-gateway/internal/features/tracking/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TrackingHandler handles HTTP requests for tracking operations.
type TrackingHandler struct {
	trackingService *service.TrackingService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(trackingService *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
	}
}

// Register mounts the tracking routes.
func (h *TrackingHandler) Register(r fiber.Router) {
	r.Get("/shipping/track/:number", h.GetTrackingHistory)
	r.Delete("/shipping/track/:number", h.StopTracking)
}

// GetTrackingHistory godoc
// @Summary Get tracking history for a shipment
// @Description Returns the latest known tracking for a number. The gateway keeps refreshing
// @Description numbers that were requested recently until they are delivered.
// @Tags tracking
// @Produce json
// @Param number path string true "Tracking Number"
// @Success 200 {object} domain.Snapshot
// @Failure 404 {object} server.ErrorResponse
// @Failure 502 {object} server.ErrorResponse
// @Router /shipping/track/{number} [get]
func (h *TrackingHandler) GetTrackingHistory(c *fiber.Ctx) error {
	trackingNumber := c.Params("number")

	snapshot, err := h.trackingService.GetTrackingHistory(c.UserContext(), trackingNumber)
	if err != nil {
		if errors.Is(err, service.ErrTrackingNotFound) {
			return server.Fail(c, http.StatusNotFound, "tracking number not found")
		}

		logger.Get().Error("Failed to load tracking",
			zap.String("tracking_number", trackingNumber),
			zap.String("ray_id", server.RayID(c)),
			zap.Error(err),
		)
		return server.FailFrom(c, err, "failed to load tracking")
	}

	return c.JSON(snapshot)
}

// StopTracking godoc
// @Summary Stop refreshing a tracking number
// @Tags tracking
// @Param number path string true "Tracking Number"
// @Success 204
// @Failure 404 {object} server.ErrorResponse
// @Router /shipping/track/{number} [delete]
func (h *TrackingHandler) StopTracking(c *fiber.Ctx) error {
	if !h.trackingService.Unwatch(c.UserContext(), c.Params("number")) {
		return server.Fail(c, http.StatusNotFound, "tracking number is not being refreshed")
	}
	return c.SendStatus(http.StatusNoContent)
}
