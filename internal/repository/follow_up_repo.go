package repository

import (
	"context"

	"procurement/internal/model"

	"gorm.io/gorm"
)

type FollowUpRepository interface {
	Append(ctx context.Context, followUp *model.FollowUp) error
	Filter(ctx context.Context, predicates ...Predicate) ([]model.FollowUp, error)
	Count(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
	ReplaceAll(ctx context.Context, followUps []model.FollowUp) error
}

type followUpRepository struct {
	table table[model.FollowUp]
}

func NewFollowUpRepository(db *gorm.DB) FollowUpRepository {
	return &followUpRepository{table: table[model.FollowUp]{
		db:   db,
		name: model.TableFollowUps,
		columns: map[string]bool{
			"supplier":     true,
			"order_number": true,
			"channel":      true,
		},
		validate: (*model.FollowUp).Validate,
	}}
}

func (r *followUpRepository) Append(ctx context.Context, followUp *model.FollowUp) error {
	return r.table.append(ctx, followUp)
}

func (r *followUpRepository) Filter(ctx context.Context, predicates ...Predicate) ([]model.FollowUp, error) {
	return r.table.filter(ctx, predicates)
}

func (r *followUpRepository) Count(ctx context.Context) (int64, error) {
	return r.table.count(ctx)
}

func (r *followUpRepository) Clear(ctx context.Context) error {
	return r.table.clear(ctx)
}

func (r *followUpRepository) ReplaceAll(ctx context.Context, followUps []model.FollowUp) error {
	return r.table.replaceAll(ctx, followUps)
}
