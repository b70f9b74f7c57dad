package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/orders", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	req, _ := http.NewRequest(http.MethodGet, "/api/orders", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	m.RowAppended("orders")
	m.AppendRejected("payments")
	m.ImportFinished(ImportRestored)
	m.SetTableRows("orders", 3)

	req, _ = http.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, `http_requests_total{method="GET",path="/api/orders",status="200"} 1`)
	assert.Contains(t, body, `procurement_rows_appended_total{table="orders"} 1`)
	assert.Contains(t, body, `procurement_append_rejected_total{table="payments"} 1`)
	assert.Contains(t, body, `procurement_imports_total{outcome="restored"} 1`)
	assert.Contains(t, body, `procurement_table_rows{table="orders"} 3`)
}

func TestNilMetricsRecordNothing(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RowAppended("orders")
		m.AppendRejected("orders")
		m.ImportFinished(ImportFailed)
		m.SetTableRows("orders", 1)
	})
}
