package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hind-bass/student-work-tracker/internal/services"
	"github.com/hind-bass/student-work-tracker/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== DASHBOARD ENDPOINTS =====

// GetDashboardStats returns the user's dashboard statistics
// @Summary Get dashboard statistics
// @Description Status breakdown, overall progress, overdue count, upcoming and recently updated assignments
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.DashboardStatsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetDashboardStats(c *gin.Context) {
	h.LogRequest(c, "Getting dashboard stats")

	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	stats, err := h.service.GetDashboardStats(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetChartData returns per-course assignment counts for charts
// @Summary Get chart data
// @Description Index-aligned labels, counts and colors for the per-course chart
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.ChartDataResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /dashboard/chart-data [get]
func (h *DashboardHandler) GetChartData(c *gin.Context) {
	h.LogRequest(c, "Getting chart data")

	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	data, err := h.service.GetChartData(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}
