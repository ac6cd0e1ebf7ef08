package csv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DefiantLabs/pnl-export-cli/accounting"
	"github.com/DefiantLabs/pnl-export-cli/config"
	"github.com/shopspring/decimal"
)

const (
	FilenameAllCSV  = "all_events.csv"
	FilenameAllXLSX = "all_events.xlsx"
	FilenameZip     = "csv.zip"
	// TempDirPrefix names the directories created for archives, the cleanup task relies on it
	TempDirPrefix = "pnl-export-"
)

// Event is what the exporter needs from a processed accounting event
type Event interface {
	ToExportedDict(tsConverter accounting.TimestampConverter, explorer string) *accounting.ExportedDict
	EventType() accounting.EventType
	TaxablePnl() decimal.Decimal
	MatchedAcquisitions() []accounting.MatchedAcquisition
}

// ProcessedEvents adapts a processed event list for the exporter
func ProcessedEvents(events []accounting.ProcessedEvent) []Event {
	ret := make([]Event, len(events))
	for i := range events {
		ret[i] = &events[i]
	}
	return ret
}

// Exporter turns processed events into the pnl report. It holds no per export
// state, settings come with every call.
type Exporter struct {
	// Explorer is prepended to transaction hashes found in event notes
	Explorer string
	// Version returns the application version written in the summary
	Version func() string
	// TempRoot is where CreateZip makes its directories, the system temp dir if empty
	TempRoot string
}

func NewExporter(explorer string, version func() string) *Exporter {
	if explorer == "" {
		explorer = config.DefaultEthExplorer
	}
	return &Exporter{Explorer: explorer, Version: version}
}

// ToCsvEntry builds the record for the event found at the given spreadsheet row
func (e *Exporter) ToCsvEntry(settings accounting.Settings, row int, event Event) *Record {
	record := event.ToExportedDict(settings.TimestampConverter(), e.Explorer)
	if !settings.IncludeFormulas {
		return record
	}

	if event.TaxablePnl().IsZero() {
		return record
	}

	value := fmt.Sprintf("%s*%s", cell(columnTaxableAmount, row), cell(columnPrice, row))
	var equation string
	if event.EventType() == accounting.Fee {
		equation = fmt.Sprintf("=-%s+%s-%s", value, value, cell(columnCostBasis, row))
	} else {
		equation = fmt.Sprintf("=%s-%s", value, cell(columnCostBasis, row))
	}
	record.Set(accounting.FieldPnl, equation)

	var costBasis strings.Builder
	for _, acquisition := range event.MatchedAcquisitions() {
		if costBasis.Len() == 0 {
			costBasis.WriteString("=")
		} else {
			costBasis.WriteString("+")
		}
		fmt.Fprintf(&costBasis, "%s*%s", acquisition.Amount.String(), cell(columnPrice, acquisition.EventIndex+IndexOffset))
	}
	record.Set(accounting.FieldCostBasis, costBasis.String())

	return record
}

func sumifFormula(settings accounting.Settings, checkRange, condition, sumRange string, actual decimal.Decimal) string {
	if !settings.IncludeFormulas {
		return actual.String()
	}
	return fmt.Sprintf("=SUMIF(%s;%s;%s)", checkRange, condition, sumRange)
}

// maybeAddSummary appends the summary block when the settings ask for it
func (e *Exporter) maybeAddSummary(settings accounting.Settings, records []*Record, pnls *accounting.PnlTotals) []*Record {
	if !settings.IncludeSummary {
		return records
	}

	length := len(records) + 1
	template := accounting.NewExportedDictWithFields(accounting.ExportedFields)
	// separate with 2 new lines
	records = append(records, template.Copy(), template.Copy())

	startSumsIndex := length + 3
	sums := 0
	pnls.Each(func(category accounting.EventType, pnl accounting.PNL) {
		if pnl.Taxable.IsZero() {
			return
		}
		sums++
		entry := template.Copy()
		entry.Set(accounting.FieldFreeAmount, fmt.Sprintf("%s total", category))
		entry.Set(accounting.FieldTaxableAmount, sumifFormula(
			settings,
			cellRange(columnType, 2, length),
			fmt.Sprintf("%q", category.String()),
			cellRange(columnPnl, 2, length),
			pnl.Taxable,
		))
		records = append(records, entry)
	})

	entry := template.Copy()
	entry.Set(accounting.FieldFreeAmount, "TOTAL")
	if sums == 0 {
		// nothing to add up, point at the blank separator so the formula stays valid
		entry.Set(accounting.FieldTaxableAmount, fmt.Sprintf("=SUM(%s)", cellRange(columnTaxableAmount, startSumsIndex-1, startSumsIndex-1)))
	} else {
		entry.Set(accounting.FieldTaxableAmount, fmt.Sprintf("=SUM(%s)", cellRange(columnTaxableAmount, startSumsIndex, startSumsIndex+sums-1)))
	}
	records = append(records, entry)

	records = append(records, template.Copy(), template.Copy())

	version := "unknown"
	if e.Version != nil {
		version = e.Version()
	}
	entry = template.Copy()
	entry.Set(accounting.FieldFreeAmount, "app version")
	entry.Set(accounting.FieldTaxableAmount, version)
	records = append(records, entry)

	for _, flag := range settings.AccountingFlags() {
		entry = template.Copy()
		entry.Set(accounting.FieldFreeAmount, flag.Name)
		entry.Set(accounting.FieldTaxableAmount, flag.Value)
		records = append(records, entry)
	}

	return records
}

// BuildRecords creates the full list of rows (events then the optional summary)
func (e *Exporter) BuildRecords(settings accounting.Settings, events []Event, pnls *accounting.PnlTotals) []*Record {
	records := make([]*Record, 0, len(events))
	for idx, event := range events {
		records = append(records, e.ToCsvEntry(settings, idx+IndexOffset, event))
	}
	return e.maybeAddSummary(settings, records, pnls)
}

// Export writes the report into directory. It never panics, every failure comes back
// as (false, reason).
func (e *Exporter) Export(settings accounting.Settings, events []Event, pnls *accounting.PnlTotals, directory string) (success bool, msg string) {
	defer func() {
		if r := recover(); r != nil {
			config.Log.Errorf("Recovered from panic while exporting to %s: %v", directory, r)
			success, msg = false, fmt.Sprintf("unexpected error during export: %v", r)
		}
	}()

	records := e.BuildRecords(settings, events, pnls)

	if err := os.MkdirAll(directory, 0o755); err != nil {
		return false, err.Error()
	}

	if err := WriteRecordsToFile(filepath.Join(directory, FilenameAllCSV), records); err != nil {
		config.Log.Error("Error writing pnl CSV", err)
		return false, err.Error()
	}

	if settings.IncludeXLSX {
		if err := WriteRecordsToXLSX(filepath.Join(directory, FilenameAllXLSX), records); err != nil {
			config.Log.Error("Error writing pnl XLSX", err)
			return false, err.Error()
		}
	}

	config.Log.Infof("Exported %d events (%d rows) to %s", len(events), len(records), directory)
	return true, ""
}
