package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"procurement/internal/database"
	"procurement/internal/repository"
	"procurement/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC) }

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
	Meta       *struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
	Error string `json:"error"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewConnection(nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	store := repository.NewStore(db)
	require.NoError(t, store.Initialize(context.Background()))

	clock := fixedClock{}
	log := zap.NewNop()
	n := service.NopNotifier{}

	router := gin.New()
	api := router.Group("")
	NewOrderHandler(service.NewOrderService(store, clock, n, nil, log)).RegisterRoutes(api)
	NewFollowUpHandler(service.NewFollowUpService(store, clock, n, nil, log)).RegisterRoutes(api)
	NewPaymentHandler(service.NewPaymentService(store, clock, n, nil, log)).RegisterRoutes(api)
	NewDashboardHandler(service.NewDashboardService(store, clock, 2)).RegisterRoutes(api)
	NewBackupHandler(service.NewBackupService(store, clock, n, nil, log)).RegisterRoutes(api)
	NewReferenceHandler().RegisterRoutes(api)
	return router
}

func do(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestCreateOrderEndpoint(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedError  string
	}{
		{name: "Valid Order", body: `{"order_number":"PO-1","supplier":"Acme","value":"10"}`, expectedStatus: http.StatusCreated},
		{name: "Missing Required Fields", body: `{}`, expectedStatus: http.StatusBadRequest, expectedError: "order_number, supplier"},
		{name: "Unknown Status", body: `{"order_number":"PO-1","supplier":"Acme","status":"Lost"}`, expectedStatus: http.StatusBadRequest, expectedError: "status"},
		{name: "Malformed JSON", body: `{"order_number":`, expectedStatus: http.StatusBadRequest, expectedError: "Invalid request payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, router, http.MethodPost, "/api/orders", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, "error", env.Status)
				assert.Contains(t, env.Error, tt.expectedError)
			}
		})
	}

	_, env := do(t, router, http.MethodGet, "/api/status", "")
	assert.JSONEq(t, `{"state":"populated","counts":{"orders":1,"follow_ups":0,"payments":0}}`, string(env.Data))
}

func TestListOrdersEndpoint(t *testing.T) {
	router := setupRouter(t)
	for _, body := range []string{
		`{"order_number":"PO-1","supplier":"Acme","country":"India"}`,
		`{"order_number":"PO-2","supplier":"Globex"}`,
		`{"order_number":"PO-3","supplier":"Acme","status":"Delivered"}`,
	} {
		w, _ := do(t, router, http.MethodPost, "/api/orders", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, env := do(t, router, http.MethodGet, "/api/orders?supplier=Acme&status=All&limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(2), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.TotalPages)

	var orders []service.OrderResponse
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "PO-1", orders[0].OrderNumber)

	w, _ = do(t, router, http.MethodGet, "/api/orders/export.csv?supplier=Acme", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "orders_20240610.csv")
	assert.Equal(t, 3, strings.Count(w.Body.String(), "\n"))

	w, _ = do(t, router, http.MethodDelete, "/api/orders", "")
	require.Equal(t, http.StatusOK, w.Code)
	_, env = do(t, router, http.MethodGet, "/api/orders", "")
	assert.Equal(t, int64(0), env.Meta.Total)
}

func TestDashboardEndpoints(t *testing.T) {
	router := setupRouter(t)
	do(t, router, http.MethodPost, "/api/orders", `{"order_number":"PO-1","supplier":"Acme","promised_date":"2024-06-09"}`)
	do(t, router, http.MethodPost, "/api/orders", `{"order_number":"PO-2","supplier":"Acme","status":"Delivered","payment_status":"Yes"}`)
	do(t, router, http.MethodPost, "/api/follow-ups", `{"supplier":"Acme","response_sla_days":4}`)

	w, env := do(t, router, http.MethodGet, "/api/dashboard/kpis", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"on_time":1,"late":1,"payment_pending":1,"average_sla":4}`, string(env.Data))

	_, env = do(t, router, http.MethodGet, "/api/dashboard/attention", "")
	var due []service.OrderResponse
	require.NoError(t, json.Unmarshal(env.Data, &due))
	require.Len(t, due, 1)
	assert.Equal(t, "PO-1", due[0].OrderNumber)

	w, _ = do(t, router, http.MethodGet, "/api/dashboard/attention?horizon_days=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, env = do(t, router, http.MethodGet, "/api/dashboard/status-breakdown", "")
	assert.JSONEq(t, `[{"status":"Pending","count":1},{"status":"Delivered","count":1}]`, string(env.Data))
}

func TestPaymentEndpoints(t *testing.T) {
	router := setupRouter(t)

	w, env := do(t, router, http.MethodPost, "/api/payments", `{"order_number":"PO-1","supplier":"Acme","total_value":"0","paid_value":"0"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var p service.PaymentResponse
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "0.00", p.PercentPaid)

	w, _ = do(t, router, http.MethodPost, "/api/payments", `{"supplier":"Acme"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, env = do(t, router, http.MethodGet, "/api/payments/exposure", "")
	assert.JSONEq(t, `{"total_advanced":"0.00","total_pending":"0.00"}`, string(env.Data))
}

func TestBackupEndpoints(t *testing.T) {
	router := setupRouter(t)
	do(t, router, http.MethodPost, "/api/orders", `{"order_number":"PO-1","supplier":"Acme"}`)
	do(t, router, http.MethodPost, "/api/follow-ups", `{"supplier":"Acme","response_sla_days":2}`)

	w, _ := do(t, router, http.MethodGet, "/api/backup", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "orders_backup_20240610_1200.xlsx")
	backup := w.Body.Bytes()

	w, _ = do(t, router, http.MethodDelete, "/api/data", "")
	require.Equal(t, http.StatusOK, w.Code)

	upload := func(content []byte) (*httptest.ResponseRecorder, envelope) {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("file", "backup.xlsx")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req, _ := http.NewRequest(http.MethodPost, "/api/backup", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		var env envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		return rec, env
	}

	w, env := upload([]byte("not a workbook"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "cannot be opened")

	w, env = upload(backup)
	require.Equal(t, http.StatusOK, w.Code)
	var result service.ImportResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "2024-06-10 12:00:00", result.LastUpdate)
	assert.Equal(t, repository.Counts{Orders: 1, FollowUps: 1}, result.Counts)

	w, _ = do(t, router, http.MethodPost, "/api/backup", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReferenceEndpoints(t *testing.T) {
	router := setupRouter(t)

	_, env := do(t, router, http.MethodGet, "/api/reference/transit-times?country=China&mode=Sea", "")
	assert.JSONEq(t, `{"country":"China","mode":"Sea","duration":"35-45 days"}`, string(env.Data))

	w, _ := do(t, router, http.MethodGet, "/api/reference/transit-times?country=Brazil&mode=Sea", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, env = do(t, router, http.MethodGet, "/api/reference/convert?value=2&from=m&to=ft", "")
	assert.JSONEq(t, `{"value":"6.56","from":"m","to":"ft"}`, string(env.Data))

	w, _ = do(t, router, http.MethodGet, "/api/reference/convert?value=2&from=m&to=yd", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
