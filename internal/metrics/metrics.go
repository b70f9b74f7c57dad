package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Import outcomes
const (
	ImportRestored   = "restored"
	ImportUnreadable = "unreadable"
	ImportFailed     = "failed"
)

// Metrics owns a private registry so that several instances (one per test)
// never collide. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	appended  *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	imports   *prometheus.CounterVec
	tableRows *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		appended: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "procurement_rows_appended_total",
			Help: "Rows appended to a session table",
		}, []string{"table"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "procurement_append_rejected_total",
			Help: "Appends rejected by validation",
		}, []string{"table"}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "procurement_imports_total",
			Help: "Backup imports by outcome",
		}, []string{"outcome"}),
		tableRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "procurement_table_rows",
			Help: "Current number of rows per session table",
		}, []string{"table"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.duration, m.appended, m.rejected, m.imports, m.tableRows,
	)
	return m
}

// Middleware records request count and latency per route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.requests.WithLabelValues(c.Request.Method, path, status).Inc()
		m.duration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RowAppended(table string) {
	if m == nil {
		return
	}
	m.appended.WithLabelValues(table).Inc()
}

func (m *Metrics) AppendRejected(table string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(table).Inc()
}

func (m *Metrics) ImportFinished(outcome string) {
	if m == nil {
		return
	}
	m.imports.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SetTableRows(table string, rows int64) {
	if m == nil {
		return
	}
	m.tableRows.WithLabelValues(table).Set(float64(rows))
}
