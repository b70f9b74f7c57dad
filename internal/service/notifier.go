package service

import (
	"context"
	"encoding/json"

	"procurement/internal/kpi"
	"procurement/internal/metrics"
	"procurement/internal/model"
	"procurement/internal/repository"

	"go.uber.org/zap"
)

// TableAll marks a change that touched every table (clear-all, import).
const TableAll = "all"

// StoreEvent is pushed to websocket clients after every mutation.
type StoreEvent struct {
	Event  string            `json:"event"`
	Table  string            `json:"table"`
	Counts repository.Counts `json:"counts"`
	KPIs   model.KPIs        `json:"kpis"`
}

// ChangeNotifier is told about every successful store mutation.
type ChangeNotifier interface {
	StoreChanged(ctx context.Context, table string)
}

// NopNotifier ignores changes.
type NopNotifier struct{}

func (NopNotifier) StoreChanged(context.Context, string) {}

// Publisher is the part of the websocket hub the notifier needs.
type Publisher interface {
	Publish(message []byte)
}

type storeNotifier struct {
	store   *repository.Store
	clock   kpi.Clock
	hub     Publisher
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewStoreNotifier refreshes the row gauges and broadcasts fresh KPIs after
// each change. hub may be nil.
func NewStoreNotifier(store *repository.Store, clock kpi.Clock, hub Publisher, m *metrics.Metrics, log *zap.Logger) ChangeNotifier {
	return &storeNotifier{store: store, clock: clock, hub: hub, metrics: m, log: log}
}

func (n *storeNotifier) StoreChanged(ctx context.Context, table string) {
	tables, err := n.store.ReadAll(ctx)
	if err != nil {
		n.log.Warn("failed to read store after change", zap.String("table", table), zap.Error(err))
		return
	}
	counts := repository.Counts{
		Orders:    int64(len(tables.Orders)),
		FollowUps: int64(len(tables.FollowUps)),
		Payments:  int64(len(tables.Payments)),
	}
	n.metrics.SetTableRows(model.TableOrders, counts.Orders)
	n.metrics.SetTableRows(model.TableFollowUps, counts.FollowUps)
	n.metrics.SetTableRows(model.TablePayments, counts.Payments)

	if n.hub == nil {
		return
	}
	payload, err := json.Marshal(StoreEvent{
		Event:  "store_changed",
		Table:  table,
		Counts: counts,
		KPIs:   kpi.ComputeKPIs(tables.Orders, tables.FollowUps, kpi.Today(n.clock)),
	})
	if err != nil {
		n.log.Error("failed to encode store event", zap.Error(err))
		return
	}
	n.hub.Publish(payload)
}
