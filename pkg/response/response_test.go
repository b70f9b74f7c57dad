package response

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccessWithPagination(t *testing.T) {
	r := SuccessWithPagination(http.StatusOK, []int{1, 2}, 2, 20, 41)
	assert.Equal(t, "success", r.Status)
	assert.Equal(t, &Meta{Page: 2, Limit: 20, Total: 41, TotalPages: 3}, r.Meta)

	r = SuccessWithPagination(http.StatusOK, []int{}, 1, 20, 0)
	assert.Equal(t, 0, r.Meta.TotalPages)
}

func TestError(t *testing.T) {
	r := Error(http.StatusBadRequest, "bad")
	assert.Equal(t, Response{Status: "error", StatusCode: http.StatusBadRequest, Error: "bad"}, r)
}
