package workbook

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"procurement/internal/model"
)

// BackupFilename names a backup after the moment it was taken.
func BackupFilename(t time.Time) string {
	return "orders_backup_" + t.Format("20060102_1504") + ".xlsx"
}

// OrdersCSVFilename names a CSV export after the day it was taken.
func OrdersCSVFilename(t time.Time) string {
	return "orders_" + t.Format("20060102") + ".csv"
}

// WriteOrdersCSV writes orders as comma-separated values with the same
// columns as the Orders sheet.
func WriteOrdersCSV(w io.Writer, orders []model.Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(OrderColumns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, o := range orders {
		cells := orderCells(o)
		record := make([]string, len(cells))
		for i, v := range cells {
			record[i] = fmt.Sprint(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
