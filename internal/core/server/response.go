package server

import (
	"errors"
	"net/http"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/core/validation"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// Fields lists invalid request fields, if any.
	Fields map[string]string `json:"fields,omitempty"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

// Fail writes an ErrorResponse with the given status.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		Message: message,
		RayID:   RayID(c),
	})
}

// FailFrom maps well-known error kinds to a response. Validation errors become 400,
// backend 404s become 404 and any other backend failure becomes 502 with fallback as message.
func FailFrom(c *fiber.Ctx, err error, fallback string) error {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "validation failed",
			Fields:  vErr.Fields,
			RayID:   RayID(c),
		})
	}

	if apiclient.IsNotFound(err) {
		return Fail(c, http.StatusNotFound, "not found")
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 && apiErr.Message != "" {
		return Fail(c, apiErr.StatusCode, apiErr.Message)
	}

	return Fail(c, http.StatusBadGateway, fallback)
}
