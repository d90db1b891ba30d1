package reports

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteMovementCSV streams the movement report as CSV for download.
func WriteMovementCSV(w io.Writer, report *MovementReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "product", "category", "quantity_in", "quantity_out", "running_stock", "notes"}); err != nil {
		return err
	}
	for _, row := range report.Rows {
		record := []string{
			row.Date.String(),
			row.ProductName,
			row.CategoryName,
			strconv.Itoa(row.QuantityIn),
			strconv.Itoa(row.QuantityOut),
			strconv.Itoa(row.RunningStock),
			row.Notes,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
