package handler

import (
	"net/http"

	"procurement/internal/service"
	"procurement/pkg/pagination"
	"procurement/pkg/response"

	"github.com/gin-gonic/gin"
)

type FollowUpHandler struct {
	followUpService service.FollowUpService
}

func NewFollowUpHandler(followUpService service.FollowUpService) *FollowUpHandler {
	return &FollowUpHandler{followUpService: followUpService}
}

func (h *FollowUpHandler) RegisterRoutes(router *gin.RouterGroup) {
	followUps := router.Group("/api/follow-ups")
	{
		followUps.GET("", h.ListFollowUps)
		followUps.POST("", h.CreateFollowUp)
		followUps.DELETE("", h.ClearFollowUps)
		followUps.GET("/sla-by-supplier", h.GetSLABySupplier)
	}
}

// ListFollowUps returns the filtered follow-up log
// @Summary      List follow-ups
// @Tags         follow-ups
// @Produce      json
// @Param        supplier      query     string  false  "Exact supplier, or All"
// @Param        order_number  query     string  false  "Exact order number, or All"
// @Param        channel       query     string  false  "Exact channel, or All"
// @Param        page          query     int     false  "Page number (default: 1)"
// @Param        limit         query     int     false  "Items per page (default: 20)"
// @Success      200  {object}  response.Response
// @Router       /api/follow-ups [get]
func (h *FollowUpHandler) ListFollowUps(c *gin.Context) {
	var filter service.FollowUpFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid filter: "+err.Error()))
		return
	}
	p := pagination.Parse(c)

	followUps, total, err := h.followUpService.ListFollowUps(c.Request.Context(), filter, p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, followUps, p.Page, p.Limit, total))
}

// CreateFollowUp records a supplier contact
// @Summary      Create follow-up
// @Tags         follow-ups
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateFollowUpRequest  true  "Follow-up payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/follow-ups [post]
func (h *FollowUpHandler) CreateFollowUp(c *gin.Context) {
	var req service.CreateFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	followUp, err := h.followUpService.CreateFollowUp(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, followUp))
}

// ClearFollowUps drops every follow-up
// @Summary      Clear follow-ups
// @Tags         follow-ups
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/follow-ups [delete]
func (h *FollowUpHandler) ClearFollowUps(c *gin.Context) {
	if err := h.followUpService.ClearFollowUps(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Follow-ups cleared successfully"}))
}

// GetSLABySupplier averages the response SLA per supplier
// @Summary      SLA by supplier
// @Tags         follow-ups
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/follow-ups/sla-by-supplier [get]
func (h *FollowUpHandler) GetSLABySupplier(c *gin.Context) {
	rows, err := h.followUpService.SLABySupplier(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}
