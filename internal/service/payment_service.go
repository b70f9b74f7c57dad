package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"procurement/internal/kpi"
	"procurement/internal/metrics"
	"procurement/internal/model"
	"procurement/internal/repository"
	"procurement/pkg/pagination"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreatePaymentRequest struct {
	OrderNumber  string `json:"order_number"`
	Supplier     string `json:"supplier"`
	TotalValue   string `json:"total_value"` // decimal string
	PaidValue    string `json:"paid_value"`  // decimal string
	ExpectedDate string `json:"expected_date"`
	Status       string `json:"status"`
}

type PaymentResponse struct {
	ID           uuid.UUID `json:"id"`
	OrderNumber  string    `json:"order_number"`
	Supplier     string    `json:"supplier"`
	TotalValue   string    `json:"total_value"`
	PaidValue    string    `json:"paid_value"`
	PercentPaid  string    `json:"percent_paid"`
	ExpectedDate string    `json:"expected_date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type PaymentFilter struct {
	OrderNumber string `form:"order_number"`
	Supplier    string `form:"supplier"`
	Status      string `form:"status"`
}

func (f PaymentFilter) predicates() []repository.Predicate {
	var preds []repository.Predicate
	if f.OrderNumber != "" {
		preds = append(preds, repository.Eq("order_number", f.OrderNumber))
	}
	if f.Supplier != "" {
		preds = append(preds, repository.Eq("supplier", f.Supplier))
	}
	if f.Status != "" {
		preds = append(preds, repository.Eq("status", f.Status))
	}
	return preds
}

type ExposureResponse struct {
	TotalAdvanced string `json:"total_advanced"`
	TotalPending  string `json:"total_pending"`
}

type PaymentService interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (PaymentResponse, error)
	ListPayments(ctx context.Context, filter PaymentFilter, p pagination.Params) ([]PaymentResponse, int64, error)
	Exposure(ctx context.Context) (ExposureResponse, error)
	ClearPayments(ctx context.Context) error
}

type paymentService struct {
	store    *repository.Store
	clock    kpi.Clock
	notifier ChangeNotifier
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewPaymentService(store *repository.Store, clock kpi.Clock, notifier ChangeNotifier, m *metrics.Metrics, log *zap.Logger) PaymentService {
	return &paymentService{store: store, clock: clock, notifier: notifier, metrics: m, log: log}
}

func (s *paymentService) CreatePayment(ctx context.Context, req CreatePaymentRequest) (PaymentResponse, error) {
	payment, err := s.buildPayment(req)
	if err == nil {
		err = s.store.Payments.Append(ctx, payment)
	}
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			s.metrics.AppendRejected(model.TablePayments)
			s.log.Debug("payment rejected", zap.Error(err))
			return PaymentResponse{}, err
		}
		return PaymentResponse{}, fmt.Errorf("failed to create payment: %w", err)
	}

	s.metrics.RowAppended(model.TablePayments)
	s.log.Info("payment appended",
		zap.String("order_number", payment.OrderNumber),
		zap.String("percent_paid", payment.PercentPaid.StringFixed(2)),
	)
	s.notifier.StoreChanged(ctx, model.TablePayments)
	return toPaymentResponse(*payment), nil
}

func (s *paymentService) buildPayment(req CreatePaymentRequest) (*model.Payment, error) {
	t := model.TablePayments

	status, err := enumValue(t, "status", req.Status, paymentStatusOptions)
	if err != nil {
		return nil, err
	}
	total, err := amount(t, "total_value", req.TotalValue)
	if err != nil {
		return nil, err
	}
	paid, err := amount(t, "paid_value", req.PaidValue)
	if err != nil {
		return nil, err
	}
	expected, err := requestDate(t, "expected_date", req.ExpectedDate, kpi.Today(s.clock))
	if err != nil {
		return nil, err
	}

	// percent paid is fixed at creation and stored with the row
	return &model.Payment{
		OrderNumber:  req.OrderNumber,
		Supplier:     req.Supplier,
		TotalValue:   total,
		PaidValue:    paid,
		PercentPaid:  model.PercentPaid(total, paid),
		ExpectedDate: expected,
		Status:       status,
	}, nil
}

func (s *paymentService) ListPayments(ctx context.Context, filter PaymentFilter, p pagination.Params) ([]PaymentResponse, int64, error) {
	payments, err := s.store.Payments.Filter(ctx, filter.predicates()...)
	if err != nil {
		return nil, 0, err
	}

	pageRows := pagination.Slice(payments, p)
	res := make([]PaymentResponse, 0, len(pageRows))
	for _, row := range pageRows {
		res = append(res, toPaymentResponse(row))
	}
	return res, int64(len(payments)), nil
}

func (s *paymentService) Exposure(ctx context.Context) (ExposureResponse, error) {
	payments, err := s.store.Payments.Filter(ctx)
	if err != nil {
		return ExposureResponse{}, err
	}
	exposure := kpi.FinancialExposure(payments)
	return ExposureResponse{
		TotalAdvanced: exposure.TotalAdvanced.StringFixed(2),
		TotalPending:  exposure.TotalPending.StringFixed(2),
	}, nil
}

func (s *paymentService) ClearPayments(ctx context.Context) error {
	if err := s.store.Payments.Clear(ctx); err != nil {
		return err
	}
	s.log.Info("payments cleared")
	s.notifier.StoreChanged(ctx, model.TablePayments)
	return nil
}

func toPaymentResponse(p model.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		OrderNumber:  p.OrderNumber,
		Supplier:     p.Supplier,
		TotalValue:   p.TotalValue.StringFixed(2),
		PaidValue:    p.PaidValue.StringFixed(2),
		PercentPaid:  p.PercentPaid.StringFixed(2),
		ExpectedDate: string(p.ExpectedDate),
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
	}
}
