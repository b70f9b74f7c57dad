package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"procurement/internal/kpi"
	"procurement/internal/metrics"
	"procurement/internal/model"
	"procurement/internal/repository"
	"procurement/internal/workbook"
	"procurement/pkg/pagination"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// --- Order DTOs ---

type CreateOrderRequest struct {
	OrderNumber   string `json:"order_number"`
	Supplier      string `json:"supplier"`
	Country       string `json:"country"`
	Product       string `json:"product"`
	Value         string `json:"value"` // decimal string, e.g. "1250.00"
	PaymentTerms  string `json:"payment_terms"`
	OrderDate     string `json:"order_date"`
	LeadTimeDays  int    `json:"lead_time_days"`
	PromisedDate  string `json:"promised_date"`
	ActualDate    string `json:"actual_date"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	Notes         string `json:"notes"`
}

type OrderResponse struct {
	ID            uuid.UUID `json:"id"`
	OrderNumber   string    `json:"order_number"`
	Supplier      string    `json:"supplier"`
	Country       string    `json:"country"`
	Product       string    `json:"product"`
	Value         string    `json:"value"`
	PaymentTerms  string    `json:"payment_terms"`
	OrderDate     string    `json:"order_date"`
	LeadTimeDays  int       `json:"lead_time_days"`
	PromisedDate  string    `json:"promised_date"`
	ActualDate    string    `json:"actual_date"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

// OrderFilter narrows the order view. Empty fields and "All" match everything.
type OrderFilter struct {
	Supplier string `form:"supplier"`
	Status   string `form:"status"`
	Country  string `form:"country"`
}

func (f OrderFilter) predicates() []repository.Predicate {
	var preds []repository.Predicate
	if f.Supplier != "" {
		preds = append(preds, repository.Eq("supplier", f.Supplier))
	}
	if f.Status != "" {
		preds = append(preds, repository.Eq("status", f.Status))
	}
	if f.Country != "" {
		preds = append(preds, repository.Eq("country", f.Country))
	}
	return preds
}

// OrderFilterOptions lists the values currently present in each filterable
// column, in order of first appearance.
type OrderFilterOptions struct {
	Suppliers []string `json:"suppliers"`
	Statuses  []string `json:"statuses"`
	Countries []string `json:"countries"`
}

// --- Interface ---

type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (OrderResponse, error)
	ListOrders(ctx context.Context, filter OrderFilter, p pagination.Params) ([]OrderResponse, int64, error)
	FilterOptions(ctx context.Context) (OrderFilterOptions, error)
	ExportOrdersCSV(ctx context.Context, filter OrderFilter) ([]byte, string, error)
	ClearOrders(ctx context.Context) error
}

// --- Implementation ---

type orderService struct {
	store    *repository.Store
	clock    kpi.Clock
	notifier ChangeNotifier
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewOrderService(store *repository.Store, clock kpi.Clock, notifier ChangeNotifier, m *metrics.Metrics, log *zap.Logger) OrderService {
	return &orderService{store: store, clock: clock, notifier: notifier, metrics: m, log: log}
}

func (s *orderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (OrderResponse, error) {
	order, err := s.buildOrder(req)
	if err == nil {
		err = s.store.Orders.Append(ctx, order)
	}
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			s.metrics.AppendRejected(model.TableOrders)
			s.log.Debug("order rejected", zap.Error(err))
			return OrderResponse{}, err
		}
		return OrderResponse{}, fmt.Errorf("failed to create order: %w", err)
	}

	s.metrics.RowAppended(model.TableOrders)
	s.log.Info("order appended",
		zap.String("order_number", order.OrderNumber),
		zap.String("supplier", order.Supplier),
	)
	s.notifier.StoreChanged(ctx, model.TableOrders)
	return toOrderResponse(*order), nil
}

func (s *orderService) buildOrder(req CreateOrderRequest) (*model.Order, error) {
	today := kpi.Today(s.clock)
	t := model.TableOrders

	country, err := enumValue(t, "country", req.Country, countryOptions)
	if err != nil {
		return nil, err
	}
	terms, err := enumValue(t, "payment_terms", req.PaymentTerms, paymentTermsOptions)
	if err != nil {
		return nil, err
	}
	status, err := enumValue(t, "status", req.Status, orderStatusOptions)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := enumValue(t, "payment_status", req.PaymentStatus, paymentFlagOptions)
	if err != nil {
		return nil, err
	}
	value, err := amount(t, "value", req.Value)
	if err != nil {
		return nil, err
	}
	if req.LeadTimeDays < 0 {
		return nil, model.InvalidField(t, "lead_time_days", "must be at least 1")
	}
	leadTime := req.LeadTimeDays
	if leadTime == 0 {
		leadTime = 1
	}
	orderDate, err := requestDate(t, "order_date", req.OrderDate, today)
	if err != nil {
		return nil, err
	}
	promisedDate, err := requestDate(t, "promised_date", req.PromisedDate, today)
	if err != nil {
		return nil, err
	}
	actualDate, err := optionalDate(t, "actual_date", req.ActualDate)
	if err != nil {
		return nil, err
	}

	return &model.Order{
		OrderNumber:   req.OrderNumber,
		Supplier:      req.Supplier,
		Country:       country,
		Product:       req.Product,
		Value:         value,
		PaymentTerms:  terms,
		OrderDate:     orderDate,
		LeadTimeDays:  leadTime,
		PromisedDate:  promisedDate,
		ActualDate:    actualDate,
		Status:        status,
		PaymentStatus: paymentStatus,
		Notes:         req.Notes,
	}, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter OrderFilter, p pagination.Params) ([]OrderResponse, int64, error) {
	orders, err := s.store.Orders.Filter(ctx, filter.predicates()...)
	if err != nil {
		return nil, 0, err
	}

	pageRows := pagination.Slice(orders, p)
	res := make([]OrderResponse, 0, len(pageRows))
	for _, o := range pageRows {
		res = append(res, toOrderResponse(o))
	}
	return res, int64(len(orders)), nil
}

func (s *orderService) FilterOptions(ctx context.Context) (OrderFilterOptions, error) {
	orders, err := s.store.Orders.Filter(ctx)
	if err != nil {
		return OrderFilterOptions{}, err
	}

	opts := OrderFilterOptions{Suppliers: []string{}, Statuses: []string{}, Countries: []string{}}
	seen := map[string]map[string]bool{"supplier": {}, "status": {}, "country": {}}
	add := func(column, value string, list *[]string) {
		if !seen[column][value] {
			seen[column][value] = true
			*list = append(*list, value)
		}
	}
	for _, o := range orders {
		add("supplier", o.Supplier, &opts.Suppliers)
		add("status", o.Status, &opts.Statuses)
		add("country", o.Country, &opts.Countries)
	}
	return opts, nil
}

func (s *orderService) ExportOrdersCSV(ctx context.Context, filter OrderFilter) ([]byte, string, error) {
	orders, err := s.store.Orders.Filter(ctx, filter.predicates()...)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := workbook.WriteOrdersCSV(&buf, orders); err != nil {
		return nil, "", fmt.Errorf("failed to export orders: %w", err)
	}
	return buf.Bytes(), workbook.OrdersCSVFilename(s.clock.Now()), nil
}

func (s *orderService) ClearOrders(ctx context.Context) error {
	if err := s.store.Orders.Clear(ctx); err != nil {
		return err
	}
	s.log.Info("orders cleared")
	s.notifier.StoreChanged(ctx, model.TableOrders)
	return nil
}

// --- Mapper ---

func toOrderResponse(o model.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Supplier:      o.Supplier,
		Country:       o.Country,
		Product:       o.Product,
		Value:         o.Value.StringFixed(2),
		PaymentTerms:  o.PaymentTerms,
		OrderDate:     string(o.OrderDate),
		LeadTimeDays:  o.LeadTimeDays,
		PromisedDate:  string(o.PromisedDate),
		ActualDate:    string(o.ActualDate),
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
	}
}
