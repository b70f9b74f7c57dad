package repository

import (
	"context"
	"testing"

	"procurement/internal/database"
	"procurement/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.NewConnection(nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store := NewStore(db)
	require.NoError(t, store.Initialize(context.Background()))
	return store
}

func order(number, supplier, country, status string) *model.Order {
	return &model.Order{
		OrderNumber:   number,
		Supplier:      supplier,
		Country:       country,
		Value:         decimal.RequireFromString("100.50"),
		PaymentTerms:  model.TermsCash,
		OrderDate:     "2024-01-01",
		LeadTimeDays:  10,
		PromisedDate:  "2024-01-11",
		Status:        status,
		PaymentStatus: model.PaymentFlagNo,
	}
}

func TestInitializeKeepsExistingRows(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Orders.Append(ctx, order("PO-1", "Acme", model.CountryChina, model.OrderStatusPending)))
	require.NoError(t, store.Initialize(ctx))

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Orders)
}

func TestAppendRejectsMissingFields(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	err := store.Orders.Append(ctx, &model.Order{})
	assert.ErrorIs(t, err, model.ErrValidation)
	err = store.FollowUps.Append(ctx, &model.FollowUp{OrderNumber: "PO-1"})
	assert.ErrorIs(t, err, model.ErrValidation)
	err = store.Payments.Append(ctx, &model.Payment{Supplier: "Acme"})
	assert.ErrorIs(t, err, model.ErrValidation)

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{}, counts)
	assert.Equal(t, StateEmpty, counts.State())
}

func TestAppendKeepsInsertionOrderAndContent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, n := range []string{"PO-3", "PO-1", "PO-2"} {
		require.NoError(t, store.Orders.Append(ctx, order(n, "Acme", model.CountryChina, model.OrderStatusPending)))
	}

	orders, err := store.Orders.Filter(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "PO-3", orders[0].OrderNumber)
	assert.Equal(t, "PO-1", orders[1].OrderNumber)
	assert.Equal(t, "PO-2", orders[2].OrderNumber)

	got := orders[0]
	assert.NotEmpty(t, got.ID)
	assert.True(t, decimal.RequireFromString("100.5").Equal(got.Value))
	assert.Equal(t, model.Date("2024-01-11"), got.PromisedDate)
	assert.Equal(t, 10, got.LeadTimeDays)
}

func TestFilter(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Orders.Append(ctx, order("PO-1", "Acme", model.CountryChina, model.OrderStatusPending)))
	require.NoError(t, store.Orders.Append(ctx, order("PO-2", "Acme", model.CountryIndia, model.OrderStatusDelivered)))
	require.NoError(t, store.Orders.Append(ctx, order("PO-3", "Globex", model.CountryChina, model.OrderStatusPending)))

	tests := []struct {
		name       string
		predicates []Predicate
		want       []string
	}{
		{name: "no predicates", want: []string{"PO-1", "PO-2", "PO-3"}},
		{name: "match all", predicates: []Predicate{Eq("supplier", MatchAll), Eq("status", MatchAll)}, want: []string{"PO-1", "PO-2", "PO-3"}},
		{name: "single", predicates: []Predicate{Eq("supplier", "Acme")}, want: []string{"PO-1", "PO-2"}},
		{name: "and", predicates: []Predicate{Eq("supplier", "Acme"), Eq("country", model.CountryChina)}, want: []string{"PO-1"}},
		{name: "mixed with match all", predicates: []Predicate{Eq("supplier", MatchAll), Eq("status", model.OrderStatusPending)}, want: []string{"PO-1", "PO-3"}},
		{name: "case sensitive", predicates: []Predicate{Eq("supplier", "acme")}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders, err := store.Orders.Filter(ctx, tt.predicates...)
			require.NoError(t, err)
			got := make([]string, 0, len(orders))
			for _, o := range orders {
				got = append(got, o.OrderNumber)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.Orders)
}

func TestFilterRejectsUnknownColumn(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Orders.Filter(context.Background(), Eq("notes; drop table orders", "x"))
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestFilterEmptyValueMatchesOnlyEmptyCells(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	orders := []model.Order{
		*order("PO-1", "Acme", model.CountryChina, model.OrderStatusPending),
		*order("PO-2", "", model.CountryUSA, model.OrderStatusPending),
	}
	require.NoError(t, store.ReplaceAll(ctx, orders, nil, nil))

	rows, err := store.Orders.Filter(ctx, Eq("supplier", ""))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "PO-2", rows[0].OrderNumber)

	rows, err = store.Orders.Filter(ctx, Eq("supplier", MatchAll))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestClearAndState(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	state, err := store.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateEmpty, state)

	require.NoError(t, store.Orders.Append(ctx, order("PO-1", "Acme", model.CountryChina, model.OrderStatusPending)))
	require.NoError(t, store.FollowUps.Append(ctx, &model.FollowUp{Supplier: "Acme", Channel: model.ChannelEmail, ResponseSLADays: 2}))

	state, err = store.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatePopulated, state)

	require.NoError(t, store.Orders.Clear(ctx))
	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{FollowUps: 1}, counts)

	// a cleared table still accepts rows
	require.NoError(t, store.Orders.Append(ctx, order("PO-2", "Acme", model.CountryChina, model.OrderStatusPending)))

	require.NoError(t, store.ClearAll(ctx))
	state, err = store.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateEmpty, state)
}

func TestReplaceAll(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Orders.Append(ctx, order("OLD-1", "Acme", model.CountryChina, model.OrderStatusPending)))
	require.NoError(t, store.Payments.Append(ctx, &model.Payment{OrderNumber: "OLD-1", Supplier: "Acme", Status: model.PaymentStatusPending}))

	// restored rows skip validation: a blank supplier is kept as saved
	orders := []model.Order{*order("NEW-1", "", model.CountryUSA, model.OrderStatusShipped), *order("NEW-2", "Globex", model.CountryUSA, model.OrderStatusShipped)}
	followUps := []model.FollowUp{{Supplier: "Globex", Channel: model.ChannelPhone, ResponseSLADays: 4}}
	require.NoError(t, store.ReplaceAll(ctx, orders, followUps, nil))

	tables, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, tables.Orders, 2)
	assert.Equal(t, "NEW-1", tables.Orders[0].OrderNumber)
	assert.Equal(t, "NEW-2", tables.Orders[1].OrderNumber)
	assert.Len(t, tables.FollowUps, 1)
	assert.Empty(t, tables.Payments)
}
