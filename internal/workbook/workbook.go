// Package workbook converts the session tables to and from a multi-sheet
// xlsx backup, and writes the flat CSV export of an order view.
package workbook

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"procurement/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ErrDocumentUnreadable is returned when an uploaded file is not a workbook at all.
var ErrDocumentUnreadable = errors.New("document cannot be opened as a workbook")

// Snapshot is everything written to a backup.
type Snapshot struct {
	Orders     []model.Order
	FollowUps  []model.FollowUp
	Payments   []model.Payment
	ExportedAt time.Time
}

// SectionState says how a section of an imported document was read.
type SectionState string

const (
	SectionLoaded    SectionState = "loaded"
	SectionAbsent    SectionState = "absent"
	SectionMalformed SectionState = "malformed"
)

// SectionResult is the outcome of reading one sheet. Absent and malformed
// sections carry no rows: the table they feed is restored empty.
type SectionResult[T any] struct {
	Sheet string
	State SectionState
	Rows  []T
	Err   error
}

// SectionStatus summarises a SectionResult for reporting.
type SectionStatus struct {
	Sheet  string       `json:"sheet"`
	State  SectionState `json:"state"`
	Rows   int          `json:"rows"`
	Reason string       `json:"reason,omitempty"`
}

func (r SectionResult[T]) Status() SectionStatus {
	s := SectionStatus{Sheet: r.Sheet, State: r.State, Rows: len(r.Rows)}
	if r.Err != nil {
		s.Reason = r.Err.Error()
	}
	return s
}

func (r SectionResult[T]) malformed(err error) SectionResult[T] {
	r.State = SectionMalformed
	r.Rows = []T{}
	r.Err = err
	return r
}

// Document is a decoded backup.
type Document struct {
	Orders     SectionResult[model.Order]
	FollowUps  SectionResult[model.FollowUp]
	Payments   SectionResult[model.Payment]
	LastUpdate string // DateUnknown when the Info sheet does not say
}

func (d *Document) Sections() []SectionStatus {
	return []SectionStatus{d.Orders.Status(), d.FollowUps.Status(), d.Payments.Status()}
}

// Encode writes the snapshot as an xlsx workbook with the Orders, FollowUps,
// Payments and Info sheets.
func Encode(s Snapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetOrders); err != nil {
		return nil, fmt.Errorf("failed to create %s sheet: %w", SheetOrders, err)
	}
	for _, name := range []string{SheetFollowUps, SheetPayments, SheetInfo} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create %s sheet: %w", name, err)
		}
	}

	orders := make([][]interface{}, 0, len(s.Orders))
	for _, o := range s.Orders {
		orders = append(orders, orderCells(o))
	}
	followUps := make([][]interface{}, 0, len(s.FollowUps))
	for _, fu := range s.FollowUps {
		followUps = append(followUps, followUpCells(fu))
	}
	payments := make([][]interface{}, 0, len(s.Payments))
	for _, p := range s.Payments {
		payments = append(payments, paymentCells(p))
	}
	info := [][]interface{}{
		{InfoLastUpdate, s.ExportedAt.Format(TimestampLayout)},
		{InfoTotalOrders, len(s.Orders)},
		{InfoTotalFollowUps, len(s.FollowUps)},
		{InfoTotalPayments, len(s.Payments)},
	}

	if err := writeSheet(f, SheetOrders, OrderColumns, orders); err != nil {
		return nil, err
	}
	if err := writeSheet(f, SheetFollowUps, FollowUpColumns, followUps); err != nil {
		return nil, err
	}
	if err := writeSheet(f, SheetPayments, PaymentColumns, payments); err != nil {
		return nil, err
	}
	if err := writeSheet(f, SheetInfo, InfoColumns, info); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reads a backup. A missing or malformed data sheet never fails the
// whole document; only a file that cannot be opened returns an error, which
// wraps ErrDocumentUnreadable.
func Decode(r io.Reader) (*Document, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
	}
	defer f.Close()

	return &Document{
		Orders:     readSection(f, SheetOrders, OrderColumns, decodeOrder),
		FollowUps:  readSection(f, SheetFollowUps, FollowUpColumns, decodeFollowUp),
		Payments:   readSection(f, SheetPayments, paymentRequired, decodePayment),
		LastUpdate: readLastUpdate(f),
	}, nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = xlsxValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address %s row %d: %w", sheet, i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// xlsxValue stores amounts as numeric cells and dates as the text they hold.
func xlsxValue(v interface{}) interface{} {
	switch x := v.(type) {
	case decimal.Decimal:
		return x.InexactFloat64()
	case model.Date:
		return string(x)
	}
	return v
}

func readSection[T any](f *excelize.File, sheet string, required []string, decode func(record) (T, error)) SectionResult[T] {
	res := SectionResult[T]{Sheet: sheet, Rows: []T{}}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		res.State = SectionAbsent
		return res
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return res.malformed(err)
	}
	if len(rows) == 0 {
		return res.malformed(errors.New("missing header row"))
	}
	index, err := headerIndex(rows[0], required)
	if err != nil {
		return res.malformed(err)
	}

	for i, cells := range rows[1:] {
		// A row with nothing in any cell is spacing, not data. Exported rows
		// always carry their numeric cells, so none of them reads as blank.
		if blankRow(cells) {
			continue
		}
		rowNum := i + 2
		row, err := decode(record{cells: cells, index: index, cellType: func(col int) excelize.CellType {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return excelize.CellTypeSharedString
			}
			t, err := f.GetCellType(sheet, cell)
			if err != nil {
				return excelize.CellTypeSharedString
			}
			return t
		}})
		if err != nil {
			return res.malformed(fmt.Errorf("row %d: %w", rowNum, err))
		}
		res.Rows = append(res.Rows, row)
	}
	res.State = SectionLoaded
	return res
}

func readLastUpdate(f *excelize.File) string {
	rows, err := f.GetRows(SheetInfo, excelize.Options{RawCellValue: true})
	if err != nil {
		return DateUnknown
	}
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(row[0]), InfoLastUpdate) && strings.TrimSpace(row[1]) != "" {
			return strings.TrimSpace(row[1])
		}
	}
	return DateUnknown
}
