package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jdcrm/backend/internal/application/report"
)

// DashboardHandler serves aggregated pipeline and revenue statistics
type DashboardHandler struct {
	BaseHandler
	dashboardService *report.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *report.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats godoc
//
//	@Summary		Dashboard statistics
//	@Description	Get lead funnel counts, booking totals and confirmed revenue for the tenant
//	@Tags			dashboard
//	@Produce		json
//	@Success		200	{object}	dto.Response{data=report.DashboardStatsResponse}
//	@Security		BearerAuth
//	@Router			/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}
