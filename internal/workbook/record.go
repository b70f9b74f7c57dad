package workbook

import (
	"fmt"
	"strconv"
	"strings"

	"procurement/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// record is one data row of a sheet, addressed by header name. Columns the
// sheet does not have, and cells trimmed off the end of the row, read as "".
type record struct {
	cells []string
	index map[string]int
	// cellType reports the stored type of the cell at a zero-based column.
	// nil means every cell is treated as text.
	cellType func(col int) excelize.CellType
}

func (r record) has(column string) bool {
	_, ok := r.index[column]
	return ok
}

func (r record) text(column string) string {
	i, ok := r.index[column]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

// decimal reads a numeric cell; an empty cell is zero.
func (r record) decimal(column string) (decimal.Decimal, error) {
	s := strings.TrimSpace(r.text(column))
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("column %q: %q is not a number", column, s)
	}
	return d, nil
}

func (r record) int(column string) (int, error) {
	d, err := r.decimal(column)
	if err != nil {
		return 0, err
	}
	return int(d.IntPart()), nil
}

// date keeps text as written, except that numeric cells holding an Excel
// serial (cells the user formatted as dates) become canonical dates. Text
// cells such as "12" or "20240610" stay text.
func (r record) date(column string) model.Date {
	s := r.text(column)
	if !r.numeric(column) {
		return model.Date(s)
	}
	serial, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || serial <= 0 {
		return model.Date(s)
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return model.Date(s)
	}
	return model.NewDate(t)
}

// numeric is false for string and formula-result cells. Plain numbers are
// written without a type attribute and read as CellTypeUnset.
func (r record) numeric(column string) bool {
	i, ok := r.index[column]
	if !ok || r.cellType == nil {
		return false
	}
	switch r.cellType(i) {
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeDate:
		return true
	}
	return false
}

func headerIndex(header []string, required []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := index[name]; !seen && name != "" {
			index[name] = i
		}
	}

	var missing []string
	for _, column := range required {
		if _, ok := index[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
