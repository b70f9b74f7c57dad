package repository

import (
	"context"

	"procurement/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Append(ctx context.Context, payment *model.Payment) error
	Filter(ctx context.Context, predicates ...Predicate) ([]model.Payment, error)
	Count(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
	ReplaceAll(ctx context.Context, payments []model.Payment) error
}

type paymentRepository struct {
	table table[model.Payment]
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{table: table[model.Payment]{
		db:   db,
		name: model.TablePayments,
		columns: map[string]bool{
			"order_number": true,
			"supplier":     true,
			"status":       true,
		},
		validate: (*model.Payment).Validate,
	}}
}

func (r *paymentRepository) Append(ctx context.Context, payment *model.Payment) error {
	return r.table.append(ctx, payment)
}

func (r *paymentRepository) Filter(ctx context.Context, predicates ...Predicate) ([]model.Payment, error) {
	return r.table.filter(ctx, predicates)
}

func (r *paymentRepository) Count(ctx context.Context) (int64, error) {
	return r.table.count(ctx)
}

func (r *paymentRepository) Clear(ctx context.Context) error {
	return r.table.clear(ctx)
}

func (r *paymentRepository) ReplaceAll(ctx context.Context, payments []model.Payment) error {
	return r.table.replaceAll(ctx, payments)
}
