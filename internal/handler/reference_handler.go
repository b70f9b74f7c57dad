package handler

import (
	"net/http"

	"procurement/internal/reference"
	"procurement/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ReferenceHandler serves the static lookup data. It has no service: the
// data never changes and nothing is stored.
type ReferenceHandler struct{}

func NewReferenceHandler() *ReferenceHandler {
	return &ReferenceHandler{}
}

func (h *ReferenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	ref := router.Group("/api/reference")
	{
		ref.GET("/transit-times", h.GetTransitTimes)
		ref.GET("/convert", h.Convert)
	}
}

// GetTransitTimes returns typical transit times by origin and mode
// @Summary      Transit times
// @Tags         reference
// @Produce      json
// @Param        country  query     string  false  "Origin country"
// @Param        mode     query     string  false  "Sea or Air"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/reference/transit-times [get]
func (h *ReferenceHandler) GetTransitTimes(c *gin.Context) {
	country, mode := c.Query("country"), c.Query("mode")
	if country == "" || mode == "" {
		c.JSON(http.StatusOK, response.Success(http.StatusOK, reference.TransitTimes()))
		return
	}

	t, ok := reference.LookupTransitTime(country, mode)
	if !ok {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "no transit time for "+country+" by "+mode))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, t))
}

// Convert converts a length between m, ft and in
// @Summary      Convert length
// @Tags         reference
// @Produce      json
// @Param        value  query     string  true  "Value to convert"
// @Param        from   query     string  true  "m, ft or in"
// @Param        to     query     string  true  "m, ft or in"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/reference/convert [get]
func (h *ReferenceHandler) Convert(c *gin.Context) {
	value, err := decimal.NewFromString(c.Query("value"))
	if err != nil || value.IsNegative() {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "value must be a non-negative decimal number"))
		return
	}

	converted, err := reference.Convert(value, c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"value": converted.StringFixed(2),
		"from":  c.Query("from"),
		"to":    c.Query("to"),
	}))
}
