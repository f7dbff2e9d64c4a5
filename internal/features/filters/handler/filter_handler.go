package handler

import (
	"errors"
	"net/http"

	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/core/server"
	"storefront-gateway/internal/features/filters/domain"
	"storefront-gateway/internal/features/filters/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionResponse is returned when a filter session is created.
type SessionResponse struct {
	SessionID string       `json:"sessionId"`
	State     domain.State `json:"state"`
}

// QueryResponse carries the product search parameters for a selection.
type QueryResponse struct {
	Query  string              `json:"query"`
	Params map[string][]string `json:"params"`
}

// FilterHandler exposes the filter and category selection store.
type FilterHandler struct {
	filterService *service.FilterService
}

// NewFilterHandler creates a new FilterHandler.
func NewFilterHandler(filterService *service.FilterService) *FilterHandler {
	return &FilterHandler{filterService: filterService}
}

// Register mounts the filter routes.
func (h *FilterHandler) Register(r fiber.Router) {
	r.Post("/filters/sessions", h.CreateSession)
	r.Get("/filters/:session", h.GetState)
	r.Get("/filters/:session/query", h.GetQuery)
	r.Post("/filters/:session/actions", h.Dispatch)
	r.Delete("/filters/:session", h.Reset)
}

// CreateSession godoc
// @Summary Start a filter session
// @Tags filters
// @Produce json
// @Success 201 {object} SessionResponse
// @Failure 502 {object} server.ErrorResponse
// @Router /filters/sessions [post]
func (h *FilterHandler) CreateSession(c *fiber.Ctx) error {
	id, state, err := h.filterService.NewSession(c.UserContext())
	if err != nil {
		return h.storeFailure(c, err)
	}
	return c.Status(http.StatusCreated).JSON(SessionResponse{SessionID: id, State: state})
}

// GetState godoc
// @Summary Get the current filter selection
// @Description Unknown or expired sessions return the empty selection.
// @Tags filters
// @Produce json
// @Param session path string true "Session ID"
// @Success 200 {object} domain.State
// @Failure 400 {object} server.ErrorResponse
// @Router /filters/{session} [get]
func (h *FilterHandler) GetState(c *fiber.Ctx) error {
	sessionID, ok := h.session(c)
	if !ok {
		return server.Fail(c, http.StatusBadRequest, "invalid session id")
	}

	state, err := h.filterService.Get(c.UserContext(), sessionID)
	if err != nil {
		return h.storeFailure(c, err)
	}
	return c.JSON(state)
}

// GetQuery godoc
// @Summary Render the selection as product search parameters
// @Tags filters
// @Produce json
// @Param session path string true "Session ID"
// @Success 200 {object} QueryResponse
// @Failure 400 {object} server.ErrorResponse
// @Router /filters/{session}/query [get]
func (h *FilterHandler) GetQuery(c *fiber.Ctx) error {
	sessionID, ok := h.session(c)
	if !ok {
		return server.Fail(c, http.StatusBadRequest, "invalid session id")
	}

	params, err := h.filterService.Query(c.UserContext(), sessionID)
	if err != nil {
		return h.storeFailure(c, err)
	}
	return c.JSON(QueryResponse{Query: params.Encode(), Params: params})
}

// Dispatch godoc
// @Summary Apply a filter action
// @Tags filters
// @Accept json
// @Produce json
// @Param session path string true "Session ID"
// @Param body body domain.Action true "Action"
// @Success 200 {object} domain.State
// @Failure 400 {object} server.ErrorResponse
// @Failure 422 {object} server.ErrorResponse
// @Router /filters/{session}/actions [post]
func (h *FilterHandler) Dispatch(c *fiber.Ctx) error {
	sessionID, ok := h.session(c)
	if !ok {
		return server.Fail(c, http.StatusBadRequest, "invalid session id")
	}

	var action domain.Action
	if err := c.BodyParser(&action); err != nil {
		return server.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	state, err := h.filterService.Dispatch(c.UserContext(), sessionID, action)
	switch {
	case errors.Is(err, domain.ErrUnknownAction):
		return server.Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrMissingParent), errors.Is(err, domain.ErrMissingNode):
		return server.Fail(c, http.StatusUnprocessableEntity, err.Error())
	case err != nil:
		return h.storeFailure(c, err)
	}
	return c.JSON(state)
}

// Reset godoc
// @Summary Clear the filter selection
// @Tags filters
// @Param session path string true "Session ID"
// @Success 204
// @Failure 400 {object} server.ErrorResponse
// @Router /filters/{session} [delete]
func (h *FilterHandler) Reset(c *fiber.Ctx) error {
	sessionID, ok := h.session(c)
	if !ok {
		return server.Fail(c, http.StatusBadRequest, "invalid session id")
	}

	if err := h.filterService.Reset(c.UserContext(), sessionID); err != nil {
		return h.storeFailure(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *FilterHandler) session(c *fiber.Ctx) (string, bool) {
	id, err := uuid.Parse(c.Params("session"))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func (h *FilterHandler) storeFailure(c *fiber.Ctx, err error) error {
	logger.Get().Error("Filter state store failed",
		zap.String("ray_id", server.RayID(c)),
		zap.Error(err),
	)
	return server.Fail(c, http.StatusBadGateway, "failed to access filter state")
}
