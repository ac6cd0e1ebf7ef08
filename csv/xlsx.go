package csv

import (
	"strings"

	"github.com/DefiantLabs/pnl-export-cli/accounting"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "all_events"

// Only these columns carry formulas, the other ones are data and never evaluated
var xlsxFormulaFields = map[string]bool{
	accounting.FieldTaxableAmount: true,
	accounting.FieldPnl:           true,
	accounting.FieldCostBasis:     true,
}

var xlsxNumericFields = map[string]bool{
	accounting.FieldFreeAmount:    true,
	accounting.FieldTaxableAmount: true,
	accounting.FieldPrice:         true,
	accounting.FieldPnl:           true,
	accounting.FieldCostBasis:     true,
}

// WriteRecordsToXLSX writes the same table as WriteRecordsToFile into a workbook.
// Values starting with "=" in the formula columns become formulas. Amounts that survive a
// float64 round trip are stored as numbers so the formulas can use them, anything else
// keeps its exact text.
func WriteRecordsToXLSX(path string, records []*Record) error {
	if len(records) == 0 {
		return nil
	}

	header, rows, err := recordsToRows(records)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	for c, key := range header {
		name, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return &WriteError{Path: path, Err: err}
		}
		if err := f.SetCellStr(xlsxSheet, name, key); err != nil {
			return &WriteError{Path: path, Err: err}
		}
	}

	for r, row := range rows {
		for c, value := range row {
			name, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return &WriteError{Path: path, Err: err}
			}
			if err := setXLSXCell(f, name, header[c], value); err != nil {
				return &WriteError{Path: path, Err: err}
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func setXLSXCell(f *excelize.File, name, field, value string) error {
	if value == "" {
		return nil
	}
	if xlsxFormulaFields[field] && strings.HasPrefix(value, "=") {
		// spreadsheet apps accept ";" as separator in typed formulas, the file format wants ","
		return f.SetCellFormula(xlsxSheet, name, strings.ReplaceAll(strings.TrimPrefix(value, "="), ";", ","))
	}

	if xlsxNumericFields[field] {
		if d, err := decimal.NewFromString(value); err == nil {
			number := d.InexactFloat64()
			if decimal.NewFromFloat(number).Equal(d) {
				return f.SetCellFloat(xlsxSheet, name, number, -1, 64)
			}
		}
	}
	return f.SetCellStr(xlsxSheet, name, value)
}
