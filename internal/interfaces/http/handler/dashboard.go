package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	dashboardapp "github.com/neardukaan/backend/internal/application/dashboard"
)

const msgAnalyticsInternal = "Internal server error during analytics."

// DashboardHandler serves the shop rollups
type DashboardHandler struct {
	BaseHandler
	dashboardService *dashboardapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *dashboardapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Metrics handles GET /api/dashboard/metrics
func (h *DashboardHandler) Metrics(c *gin.Context) {
	metrics, err := h.dashboardService.ComputeMetrics(c.Request.Context(), getShopID(c))
	if err != nil {
		h.handleError(c, err, msgAnalyticsInternal)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// Notifications handles GET /api/notifications
func (h *DashboardHandler) Notifications(c *gin.Context) {
	reminders, err := h.dashboardService.ListReminders(c.Request.Context(), getShopID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, reminders)
}
