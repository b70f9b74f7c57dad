package repository

import (
	"context"
	"fmt"

	"procurement/internal/model"

	"gorm.io/gorm"
)

// State is the observable state of the session store.
type State string

const (
	StateEmpty     State = "empty"
	StatePopulated State = "populated"
)

// Counts holds the number of rows in each table.
type Counts struct {
	Orders    int64 `json:"orders"`
	FollowUps int64 `json:"follow_ups"`
	Payments  int64 `json:"payments"`
}

// Total is the number of rows across all tables.
func (c Counts) Total() int64 {
	return c.Orders + c.FollowUps + c.Payments
}

// State derives Empty/Populated from the counts.
func (c Counts) State() State {
	if c.Total() == 0 {
		return StateEmpty
	}
	return StatePopulated
}

// Store is the session's record store: three tables that live for one
// working session and are checkpointed by exporting a backup. It is passed
// explicitly to whatever reads or mutates it.
type Store struct {
	db        *gorm.DB
	tx        TransactionManager
	Orders    OrderRepository
	FollowUps FollowUpRepository
	Payments  PaymentRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		tx:        NewTransactionManager(db),
		Orders:    NewOrderRepository(db),
		FollowUps: NewFollowUpRepository(db),
		Payments:  NewPaymentRepository(db),
	}
}

// Initialize creates any missing table with its fixed schema. Existing
// tables and their rows are left untouched, so calling it again is harmless.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&model.Order{}, &model.FollowUp{}, &model.Payment{}); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	return nil
}

func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var counts Counts
	var err error
	if counts.Orders, err = s.Orders.Count(ctx); err != nil {
		return Counts{}, err
	}
	if counts.FollowUps, err = s.FollowUps.Count(ctx); err != nil {
		return Counts{}, err
	}
	if counts.Payments, err = s.Payments.Count(ctx); err != nil {
		return Counts{}, err
	}
	return counts, nil
}

// ClearAll empties the three tables in one transaction.
func (s *Store) ClearAll(ctx context.Context) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.Orders.Clear(txCtx); err != nil {
			return err
		}
		if err := s.FollowUps.Clear(txCtx); err != nil {
			return err
		}
		return s.Payments.Clear(txCtx)
	})
}

// ReplaceAll swaps the content of all three tables at once. If any table
// fails, nothing changes.
func (s *Store) ReplaceAll(ctx context.Context, orders []model.Order, followUps []model.FollowUp, payments []model.Payment) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.Orders.ReplaceAll(txCtx, orders); err != nil {
			return err
		}
		if err := s.FollowUps.ReplaceAll(txCtx, followUps); err != nil {
			return err
		}
		return s.Payments.ReplaceAll(txCtx, payments)
	})
}

// Tables is the full content of the store.
type Tables struct {
	Orders    []model.Order
	FollowUps []model.FollowUp
	Payments  []model.Payment
}

// ReadAll reads every table in insertion order within one transaction.
func (s *Store) ReadAll(ctx context.Context) (Tables, error) {
	var tables Tables
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		if tables.Orders, err = s.Orders.Filter(txCtx); err != nil {
			return err
		}
		if tables.FollowUps, err = s.FollowUps.Filter(txCtx); err != nil {
			return err
		}
		tables.Payments, err = s.Payments.Filter(txCtx)
		return err
	})
	if err != nil {
		return Tables{}, err
	}
	return tables, nil
}

// State reports whether any table holds rows.
func (s *Store) State(ctx context.Context) (State, error) {
	counts, err := s.Counts(ctx)
	if err != nil {
		return "", err
	}
	return counts.State(), nil
}
