package http

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/delivery/http/dto"
	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/domain"
)

// StatusHandler handles the hello and status check endpoints
type StatusHandler struct {
	statusRepo domain.StatusRepository
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(statusRepo domain.StatusRepository) *StatusHandler {
	return &StatusHandler{statusRepo: statusRepo}
}

// Root returns a hello message
// GET /api/
func (h *StatusHandler) Root(c echo.Context) error {
	return c.JSON(nethttp.StatusOK, map[string]string{"message": "Hello World"})
}

// CreateStatusCheck records a client status check
// POST /api/status
func (h *StatusHandler) CreateStatusCheck(c echo.Context) error {
	var req dto.StatusCheckCreate
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request body")
	}
	if req.ClientName == "" {
		return BadRequestResponse(c, "client_name is required")
	}

	check := &domain.StatusCheck{
		ID:         uuid.New(),
		ClientName: req.ClientName,
		Timestamp:  time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.statusRepo.Save(ctx, check); err != nil {
		return InternalServerErrorResponse(c, "Failed to save status check", err)
	}

	return c.JSON(nethttp.StatusOK, check)
}

// ListStatusChecks returns recorded status checks
// GET /api/status
func (h *StatusHandler) ListStatusChecks(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	checks, err := h.statusRepo.List(ctx, 1000)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to list status checks", err)
	}
	if checks == nil {
		checks = []*domain.StatusCheck{}
	}

	return c.JSON(nethttp.StatusOK, checks)
}
