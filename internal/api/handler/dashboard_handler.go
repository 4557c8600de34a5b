package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/nexusflow/nexusflow-api/internal/api/response"
	"github.com/nexusflow/nexusflow-api/internal/core/ports"
)

// DashboardHandler serves the aggregate dashboard counters.
type DashboardHandler struct {
	dashboardService ports.DashboardService
}

func NewDashboardHandler(dashboardService ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles GET /api/dashboard/stats.
func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.dashboardService.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return response.OK(c, "Dashboard statistics fetched successfully", stats)
}
