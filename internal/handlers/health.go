package handlers

import (
	"net/http"

	"github.com/astroverse/fortune-backend/internal/fortune"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports service liveness and generation provider reachability.
type HealthHandler struct {
	fortuneService *fortune.Service
}

func NewHealthHandler(fortuneService *fortune.Service) *HealthHandler {
	return &HealthHandler{fortuneService: fortuneService}
}

func (h *HealthHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":             "healthy",
		"service":            "fortune-backend",
		"provider_reachable": h.fortuneService.CheckProviderReachable(c.Request().Context()),
	})
}
