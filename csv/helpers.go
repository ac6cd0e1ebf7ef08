package csv

import (
	"fmt"
)

// Spreadsheet columns of the exported fields. They are part of the report format,
// formulas reference them directly.
const (
	columnType          = "A"
	columnFreeAmount    = "F"
	columnTaxableAmount = "G"
	columnPrice         = "H"
	columnPnl           = "I"
	columnCostBasis     = "J"
)

// IndexOffset converts a 0-based event position to its spreadsheet row (rows start
// at 1 and the first one is the header)
const IndexOffset = 2

func cell(column string, row int) string {
	return fmt.Sprintf("%s%d", column, row)
}

func cellRange(column string, from, to int) string {
	return fmt.Sprintf("%s:%s", cell(column, from), cell(column, to))
}
