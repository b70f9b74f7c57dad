package handler

import (
	"errors"
	"net/http"

	"procurement/internal/model"
	"procurement/internal/reference"
	"procurement/internal/workbook"
	"procurement/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the response envelope. Rejected
// input is a 400; anything else is a 500 and is recorded on the context for
// the request logger.
func respondError(c *gin.Context, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, verr.Error()))
	case errors.Is(err, workbook.ErrDocumentUnreadable), errors.Is(err, reference.ErrUnknownUnit):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
	}
}
