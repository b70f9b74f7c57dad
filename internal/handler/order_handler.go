package handler

import (
	"net/http"

	"procurement/internal/service"
	"procurement/pkg/pagination"
	"procurement/pkg/response"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/api/orders")
	{
		orders.GET("", h.ListOrders)
		orders.POST("", h.CreateOrder)
		orders.DELETE("", h.ClearOrders)
		orders.GET("/filters", h.GetFilterOptions)
		orders.GET("/export.csv", h.ExportCSV)
	}
}

// ListOrders returns the filtered order view
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        supplier  query     string  false  "Exact supplier, or All"
// @Param        status    query     string  false  "Exact status, or All"
// @Param        country   query     string  false  "Exact country, or All"
// @Param        page      query     int     false  "Page number (default: 1)"
// @Param        limit     query     int     false  "Items per page (default: 20)"
// @Success      200       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Router       /api/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var filter service.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid filter: "+err.Error()))
		return
	}
	p := pagination.Parse(c)

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), filter, p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, orders, p.Page, p.Limit, total))
}

// CreateOrder appends a purchase order
// @Summary      Create order
// @Description  Requires order_number and supplier. Empty enum fields take their first option, empty dates default to today.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateOrderRequest  true  "Order payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, order))
}

// ClearOrders drops every order
// @Summary      Clear orders
// @Tags         orders
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/orders [delete]
func (h *OrderHandler) ClearOrders(c *gin.Context) {
	if err := h.orderService.ClearOrders(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Orders cleared successfully"}))
}

// GetFilterOptions lists the values the order filters can take
// @Summary      Order filter options
// @Tags         orders
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/orders/filters [get]
func (h *OrderHandler) GetFilterOptions(c *gin.Context) {
	opts, err := h.orderService.FilterOptions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, opts))
}

// ExportCSV downloads the filtered order view as CSV
// @Summary      Export orders as CSV
// @Tags         orders
// @Produce      text/csv
// @Param        supplier  query  string  false  "Exact supplier, or All"
// @Param        status    query  string  false  "Exact status, or All"
// @Param        country   query  string  false  "Exact country, or All"
// @Success      200  {file}    file
// @Failure      400  {object}  response.Response
// @Router       /api/orders/export.csv [get]
func (h *OrderHandler) ExportCSV(c *gin.Context) {
	var filter service.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid filter: "+err.Error()))
		return
	}

	content, filename, err := h.orderService.ExportOrdersCSV(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", content)
}
