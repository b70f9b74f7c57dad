package repository

import (
	"context"
	"fmt"

	"procurement/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchAll disables a predicate so that every value of its column matches.
const MatchAll = "All"

const insertBatchSize = 200

// Predicate restricts a filtered read to rows whose column equals Value.
// Value is compared exactly: "" matches only empty cells. Only MatchAll
// turns a predicate off.
type Predicate struct {
	Column string
	Value  string
}

// Eq builds an exact-match predicate. Callers that treat an empty selection
// as "any" must leave the predicate out or pass MatchAll.
func Eq(column, value string) Predicate {
	return Predicate{Column: column, Value: value}
}

// table implements the operations shared by the three session tables: rows
// are only ever appended, read back in insertion order, or dropped together.
type table[T any] struct {
	db       *gorm.DB
	name     string
	columns  map[string]bool // columns a filter may reference
	validate func(*T) error
}

func (t table[T]) append(ctx context.Context, row *T) error {
	if err := t.validate(row); err != nil {
		return err
	}
	if err := GetDB(ctx, t.db).Create(row).Error; err != nil {
		return fmt.Errorf("failed to append to %s: %w", t.name, err)
	}
	return nil
}

func (t table[T]) filter(ctx context.Context, predicates []Predicate) ([]T, error) {
	query := GetDB(ctx, t.db).Model(new(T))
	for _, p := range predicates {
		if p.Value == MatchAll {
			continue
		}
		if !t.columns[p.Column] {
			return nil, model.InvalidField(t.name, p.Column, "column cannot be filtered")
		}
		query = query.Where(clause.Eq{Column: clause.Column{Name: p.Column}, Value: p.Value})
	}

	rows := make([]T, 0)
	if err := query.Order("seq asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", t.name, err)
	}
	return rows, nil
}

func (t table[T]) count(ctx context.Context) (int64, error) {
	var total int64
	if err := GetDB(ctx, t.db).Model(new(T)).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", t.name, err)
	}
	return total, nil
}

func (t table[T]) clear(ctx context.Context) error {
	err := GetDB(ctx, t.db).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(new(T)).Error
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", t.name, err)
	}
	return nil
}

// replaceAll swaps the table content for rows, skipping validation: restored
// rows are taken as they were saved. rows must not carry a Seq or ID.
func (t table[T]) replaceAll(ctx context.Context, rows []T) error {
	if err := t.clear(ctx); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	if err := GetDB(ctx, t.db).CreateInBatches(&rows, insertBatchSize).Error; err != nil {
		return fmt.Errorf("failed to restore %s: %w", t.name, err)
	}
	return nil
}
