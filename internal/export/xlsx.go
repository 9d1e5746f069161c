// Package export writes generic query results to spreadsheet files.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/roach88/dbhelper/internal/store"
)

// DefaultSheet is used when no sheet name is given.
const DefaultSheet = "Sheet1"

// WriteXLSX writes rows to a new workbook at path. The first row of the sheet
// holds the column names of rows[0]; each following row holds one result row
// in column order. NULL values become empty cells.
//
// Example:
//
//	rows, _ := h.ExecuteQuery(ctx, "SELECT * FROM customer")
//	err := export.WriteXLSX(rows, "customers.xlsx", "Customers")
func WriteXLSX(rows []store.Row, path, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = DefaultSheet
	}

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if sheet != DefaultSheet {
		if err := f.DeleteSheet(DefaultSheet); err != nil {
			return fmt.Errorf("failed to remove default sheet: %w", err)
		}
	}

	if len(rows) > 0 {
		headerStyle, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
		})
		if err != nil {
			return fmt.Errorf("failed to create header style: %w", err)
		}

		for col, name := range rows[0].Names() {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, name); err != nil {
				return fmt.Errorf("failed to write header %q: %w", name, err)
			}
			if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
				return fmt.Errorf("failed to style header %q: %w", name, err)
			}
		}
	}

	for r, row := range rows {
		for col, c := range row {
			if c.Value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, cellValue(c.Value)); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func cellValue(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	default:
		return x
	}
}
