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

type CreateFollowUpRequest struct {
	Date            string `json:"date"`
	Supplier        string `json:"supplier"`
	OrderNumber     string `json:"order_number"`
	Channel         string `json:"channel"`
	ResponseSLADays int    `json:"response_sla_days"`
}

type FollowUpResponse struct {
	ID              uuid.UUID `json:"id"`
	Date            string    `json:"date"`
	Supplier        string    `json:"supplier"`
	OrderNumber     string    `json:"order_number"`
	Channel         string    `json:"channel"`
	ResponseSLADays int       `json:"response_sla_days"`
	CreatedAt       time.Time `json:"created_at"`
}

type FollowUpFilter struct {
	Supplier    string `form:"supplier"`
	OrderNumber string `form:"order_number"`
	Channel     string `form:"channel"`
}

func (f FollowUpFilter) predicates() []repository.Predicate {
	var preds []repository.Predicate
	if f.Supplier != "" {
		preds = append(preds, repository.Eq("supplier", f.Supplier))
	}
	if f.OrderNumber != "" {
		preds = append(preds, repository.Eq("order_number", f.OrderNumber))
	}
	if f.Channel != "" {
		preds = append(preds, repository.Eq("channel", f.Channel))
	}
	return preds
}

type FollowUpService interface {
	CreateFollowUp(ctx context.Context, req CreateFollowUpRequest) (FollowUpResponse, error)
	ListFollowUps(ctx context.Context, filter FollowUpFilter, p pagination.Params) ([]FollowUpResponse, int64, error)
	SLABySupplier(ctx context.Context) ([]model.SupplierSLA, error)
	ClearFollowUps(ctx context.Context) error
}

type followUpService struct {
	store    *repository.Store
	clock    kpi.Clock
	notifier ChangeNotifier
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewFollowUpService(store *repository.Store, clock kpi.Clock, notifier ChangeNotifier, m *metrics.Metrics, log *zap.Logger) FollowUpService {
	return &followUpService{store: store, clock: clock, notifier: notifier, metrics: m, log: log}
}

func (s *followUpService) CreateFollowUp(ctx context.Context, req CreateFollowUpRequest) (FollowUpResponse, error) {
	followUp, err := s.buildFollowUp(req)
	if err == nil {
		err = s.store.FollowUps.Append(ctx, followUp)
	}
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			s.metrics.AppendRejected(model.TableFollowUps)
			s.log.Debug("follow-up rejected", zap.Error(err))
			return FollowUpResponse{}, err
		}
		return FollowUpResponse{}, fmt.Errorf("failed to create follow-up: %w", err)
	}

	s.metrics.RowAppended(model.TableFollowUps)
	s.log.Info("follow-up appended", zap.String("supplier", followUp.Supplier))
	s.notifier.StoreChanged(ctx, model.TableFollowUps)
	return toFollowUpResponse(*followUp), nil
}

func (s *followUpService) buildFollowUp(req CreateFollowUpRequest) (*model.FollowUp, error) {
	t := model.TableFollowUps

	channel, err := enumValue(t, "channel", req.Channel, channelOptions)
	if err != nil {
		return nil, err
	}
	if req.ResponseSLADays < model.MinResponseSLADays || req.ResponseSLADays > model.MaxResponseSLADays {
		return nil, model.InvalidField(t, "response_sla_days",
			fmt.Sprintf("must be between %d and %d", model.MinResponseSLADays, model.MaxResponseSLADays))
	}
	date, err := requestDate(t, "date", req.Date, kpi.Today(s.clock))
	if err != nil {
		return nil, err
	}

	return &model.FollowUp{
		Date:            date,
		Supplier:        req.Supplier,
		OrderNumber:     req.OrderNumber,
		Channel:         channel,
		ResponseSLADays: req.ResponseSLADays,
	}, nil
}

func (s *followUpService) ListFollowUps(ctx context.Context, filter FollowUpFilter, p pagination.Params) ([]FollowUpResponse, int64, error) {
	followUps, err := s.store.FollowUps.Filter(ctx, filter.predicates()...)
	if err != nil {
		return nil, 0, err
	}

	pageRows := pagination.Slice(followUps, p)
	res := make([]FollowUpResponse, 0, len(pageRows))
	for _, f := range pageRows {
		res = append(res, toFollowUpResponse(f))
	}
	return res, int64(len(followUps)), nil
}

func (s *followUpService) SLABySupplier(ctx context.Context) ([]model.SupplierSLA, error) {
	followUps, err := s.store.FollowUps.Filter(ctx)
	if err != nil {
		return nil, err
	}
	return kpi.SLABySupplier(followUps), nil
}

func (s *followUpService) ClearFollowUps(ctx context.Context) error {
	if err := s.store.FollowUps.Clear(ctx); err != nil {
		return err
	}
	s.log.Info("follow-ups cleared")
	s.notifier.StoreChanged(ctx, model.TableFollowUps)
	return nil
}

func toFollowUpResponse(f model.FollowUp) FollowUpResponse {
	return FollowUpResponse{
		ID:              f.ID,
		Date:            string(f.Date),
		Supplier:        f.Supplier,
		OrderNumber:     f.OrderNumber,
		Channel:         f.Channel,
		ResponseSLADays: f.ResponseSLADays,
		CreatedAt:       f.CreatedAt,
	}
}
