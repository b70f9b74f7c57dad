package service

import (
	"context"

	"procurement/internal/kpi"
	"procurement/internal/model"
	"procurement/internal/repository"
)

// DashboardService recomputes every indicator from the current store content
// on each call.
type DashboardService interface {
	KPIs(ctx context.Context) (model.KPIs, error)
	// Attention lists undelivered orders due within horizonDays, or within the
	// configured horizon when horizonDays is nil.
	Attention(ctx context.Context, horizonDays *int) ([]OrderResponse, error)
	StatusBreakdown(ctx context.Context) ([]model.StatusCount, error)
	LeadTimeByCountry(ctx context.Context) ([]model.CountryLeadTime, error)
}

type dashboardService struct {
	store   *repository.Store
	clock   kpi.Clock
	horizon int
}

func NewDashboardService(store *repository.Store, clock kpi.Clock, horizonDays int) DashboardService {
	return &dashboardService{store: store, clock: clock, horizon: horizonDays}
}

func (s *dashboardService) KPIs(ctx context.Context) (model.KPIs, error) {
	tables, err := s.store.ReadAll(ctx)
	if err != nil {
		return model.KPIs{}, err
	}
	return kpi.ComputeKPIs(tables.Orders, tables.FollowUps, kpi.Today(s.clock)), nil
}

func (s *dashboardService) Attention(ctx context.Context, horizonDays *int) ([]OrderResponse, error) {
	horizon := s.horizon
	if horizonDays != nil {
		horizon = *horizonDays
	}

	orders, err := s.store.Orders.Filter(ctx)
	if err != nil {
		return nil, err
	}

	due := kpi.AttentionList(orders, kpi.Today(s.clock), horizon)
	res := make([]OrderResponse, 0, len(due))
	for _, o := range due {
		res = append(res, toOrderResponse(o))
	}
	return res, nil
}

func (s *dashboardService) StatusBreakdown(ctx context.Context) ([]model.StatusCount, error) {
	orders, err := s.store.Orders.Filter(ctx)
	if err != nil {
		return nil, err
	}
	return kpi.StatusBreakdown(orders), nil
}

func (s *dashboardService) LeadTimeByCountry(ctx context.Context) ([]model.CountryLeadTime, error) {
	orders, err := s.store.Orders.Filter(ctx)
	if err != nil {
		return nil, err
	}
	return kpi.LeadTimeByCountry(orders), nil
}
