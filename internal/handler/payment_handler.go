package handler

import (
	"net/http"

	"procurement/internal/service"
	"procurement/pkg/pagination"
	"procurement/pkg/response"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) RegisterRoutes(router *gin.RouterGroup) {
	payments := router.Group("/api/payments")
	{
		payments.GET("", h.ListPayments)
		payments.POST("", h.CreatePayment)
		payments.DELETE("", h.ClearPayments)
		payments.GET("/exposure", h.GetExposure)
	}
}

// ListPayments returns the filtered payment log
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Param        order_number  query     string  false  "Exact order number, or All"
// @Param        supplier      query     string  false  "Exact supplier, or All"
// @Param        status        query     string  false  "Exact status, or All"
// @Param        page          query     int     false  "Page number (default: 1)"
// @Param        limit         query     int     false  "Items per page (default: 20)"
// @Success      200  {object}  response.Response
// @Router       /api/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	var filter service.PaymentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid filter: "+err.Error()))
		return
	}
	p := pagination.Parse(c)

	payments, total, err := h.paymentService.ListPayments(c.Request.Context(), filter, p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, payments, p.Page, p.Limit, total))
}

// CreatePayment records a payment against an order
// @Summary      Create payment
// @Description  percent_paid is computed from total_value and paid_value and stored with the row.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreatePaymentRequest  true  "Payment payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req service.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, payment))
}

// ClearPayments drops every payment
// @Summary      Clear payments
// @Tags         payments
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/payments [delete]
func (h *PaymentHandler) ClearPayments(c *gin.Context) {
	if err := h.paymentService.ClearPayments(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Payments cleared successfully"}))
}

// GetExposure sums advanced and pending amounts
// @Summary      Financial exposure
// @Tags         payments
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/payments/exposure [get]
func (h *PaymentHandler) GetExposure(c *gin.Context) {
	exposure, err := h.paymentService.Exposure(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, exposure))
}
