package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"procurement/internal/kpi"
	"procurement/internal/metrics"
	"procurement/internal/repository"
	"procurement/internal/workbook"

	"go.uber.org/zap"
)

// BackupFile is an exported workbook ready to be downloaded.
type BackupFile struct {
	Filename string
	Content  []byte
}

// ImportResult reports what a restored backup contained.
type ImportResult struct {
	LastUpdate string                   `json:"last_update"` // workbook.DateUnknown when not recorded
	Sections   []workbook.SectionStatus `json:"sections"`
	Counts     repository.Counts        `json:"counts"`
}

// DataStatus describes the session store as a whole.
type DataStatus struct {
	State  repository.State  `json:"state"`
	Counts repository.Counts `json:"counts"`
}

type BackupService interface {
	Export(ctx context.Context) (BackupFile, error)
	Import(ctx context.Context, r io.Reader) (ImportResult, error)
	ClearAll(ctx context.Context) error
	Status(ctx context.Context) (DataStatus, error)
}

type backupService struct {
	store    *repository.Store
	clock    kpi.Clock
	notifier ChangeNotifier
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewBackupService(store *repository.Store, clock kpi.Clock, notifier ChangeNotifier, m *metrics.Metrics, log *zap.Logger) BackupService {
	return &backupService{store: store, clock: clock, notifier: notifier, metrics: m, log: log}
}

// Export only reads the store.
func (s *backupService) Export(ctx context.Context) (BackupFile, error) {
	tables, err := s.store.ReadAll(ctx)
	if err != nil {
		return BackupFile{}, err
	}

	now := s.clock.Now()
	content, err := workbook.Encode(workbook.Snapshot{
		Orders:     tables.Orders,
		FollowUps:  tables.FollowUps,
		Payments:   tables.Payments,
		ExportedAt: now,
	})
	if err != nil {
		return BackupFile{}, fmt.Errorf("failed to export backup: %w", err)
	}

	s.log.Info("backup exported",
		zap.Int("orders", len(tables.Orders)),
		zap.Int("follow_ups", len(tables.FollowUps)),
		zap.Int("payments", len(tables.Payments)),
	)
	return BackupFile{Filename: workbook.BackupFilename(now), Content: content}, nil
}

// Import decodes the whole document before touching the store, then replaces
// the three tables in one transaction. Missing or malformed sheets restore an
// empty table. A document that cannot be opened leaves the store unchanged.
func (s *backupService) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	doc, err := workbook.Decode(r)
	if err != nil {
		if errors.Is(err, workbook.ErrDocumentUnreadable) {
			s.metrics.ImportFinished(metrics.ImportUnreadable)
			s.log.Warn("backup rejected", zap.Error(err))
			return ImportResult{}, err
		}
		s.metrics.ImportFinished(metrics.ImportFailed)
		return ImportResult{}, fmt.Errorf("failed to read backup: %w", err)
	}

	for _, section := range doc.Sections() {
		if section.State == workbook.SectionLoaded {
			s.log.Debug("backup section loaded", zap.String("sheet", section.Sheet), zap.Int("rows", section.Rows))
			continue
		}
		s.log.Warn("backup section restored empty",
			zap.String("sheet", section.Sheet),
			zap.String("state", string(section.State)),
			zap.String("reason", section.Reason),
		)
	}

	if err := s.store.ReplaceAll(ctx, doc.Orders.Rows, doc.FollowUps.Rows, doc.Payments.Rows); err != nil {
		s.metrics.ImportFinished(metrics.ImportFailed)
		return ImportResult{}, fmt.Errorf("failed to restore backup: %w", err)
	}
	s.metrics.ImportFinished(metrics.ImportRestored)

	counts, err := s.store.Counts(ctx)
	if err != nil {
		return ImportResult{}, err
	}
	s.log.Info("backup restored",
		zap.String("last_update", doc.LastUpdate),
		zap.Int64("orders", counts.Orders),
		zap.Int64("follow_ups", counts.FollowUps),
		zap.Int64("payments", counts.Payments),
	)
	s.notifier.StoreChanged(ctx, TableAll)

	return ImportResult{
		LastUpdate: doc.LastUpdate,
		Sections:   doc.Sections(),
		Counts:     counts,
	}, nil
}

func (s *backupService) ClearAll(ctx context.Context) error {
	if err := s.store.ClearAll(ctx); err != nil {
		return err
	}
	s.log.Info("all tables cleared")
	s.notifier.StoreChanged(ctx, TableAll)
	return nil
}

func (s *backupService) Status(ctx context.Context) (DataStatus, error) {
	counts, err := s.store.Counts(ctx)
	if err != nil {
		return DataStatus{}, err
	}
	return DataStatus{State: counts.State(), Counts: counts}, nil
}
