package handler

import (
	"net/http"
	"strconv"

	"procurement/internal/service"
	"procurement/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/api/dashboard")
	{
		dashboard.GET("/kpis", h.GetKPIs)
		dashboard.GET("/attention", h.GetAttention)
		dashboard.GET("/status-breakdown", h.GetStatusBreakdown)
		dashboard.GET("/lead-time-by-country", h.GetLeadTimeByCountry)
	}
}

// GetKPIs returns today's cockpit indicators
// @Summary      Dashboard KPIs
// @Description  on_time, late, payment_pending and average_sla computed from the current tables
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/dashboard/kpis [get]
func (h *DashboardHandler) GetKPIs(c *gin.Context) {
	kpis, err := h.dashboardService.KPIs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, kpis))
}

// GetAttention lists undelivered orders due soon
// @Summary      Orders needing attention
// @Tags         dashboard
// @Produce      json
// @Param        horizon_days  query     int  false  "Days ahead of today (default: 2)"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/dashboard/attention [get]
func (h *DashboardHandler) GetAttention(c *gin.Context) {
	var horizon *int
	if raw := c.Query("horizon_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "horizon_days must be a non-negative integer"))
			return
		}
		horizon = &parsed
	}

	orders, err := h.dashboardService.Attention(c.Request.Context(), horizon)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, orders))
}

// GetStatusBreakdown counts orders per status
// @Summary      Order status breakdown
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/dashboard/status-breakdown [get]
func (h *DashboardHandler) GetStatusBreakdown(c *gin.Context) {
	rows, err := h.dashboardService.StatusBreakdown(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// GetLeadTimeByCountry averages the promised lead time per origin
// @Summary      Lead time by country
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/dashboard/lead-time-by-country [get]
func (h *DashboardHandler) GetLeadTimeByCountry(c *gin.Context) {
	rows, err := h.dashboardService.LeadTimeByCountry(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}
