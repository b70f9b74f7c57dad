package repository

import (
	"context"

	"procurement/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Append(ctx context.Context, order *model.Order) error
	Filter(ctx context.Context, predicates ...Predicate) ([]model.Order, error)
	Count(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
	ReplaceAll(ctx context.Context, orders []model.Order) error
}

type orderRepository struct {
	table table[model.Order]
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{table: table[model.Order]{
		db:   db,
		name: model.TableOrders,
		columns: map[string]bool{
			"order_number":   true,
			"supplier":       true,
			"country":        true,
			"product":        true,
			"payment_terms":  true,
			"status":         true,
			"payment_status": true,
		},
		validate: (*model.Order).Validate,
	}}
}

func (r *orderRepository) Append(ctx context.Context, order *model.Order) error {
	return r.table.append(ctx, order)
}

func (r *orderRepository) Filter(ctx context.Context, predicates ...Predicate) ([]model.Order, error) {
	return r.table.filter(ctx, predicates)
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	return r.table.count(ctx)
}

func (r *orderRepository) Clear(ctx context.Context) error {
	return r.table.clear(ctx)
}

func (r *orderRepository) ReplaceAll(ctx context.Context, orders []model.Order) error {
	return r.table.replaceAll(ctx, orders)
}
