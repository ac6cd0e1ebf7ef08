package csv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/DefiantLabs/pnl-export-cli/accounting"
	"github.com/DefiantLabs/pnl-export-cli/config"
)

// Record is one CSV row, keyed by column name
type Record = accounting.ExportedDict

// WriteError is returned when a report could not be written, either because the
// records do not share the same fields or because of the filesystem.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("Failed to write %s CSV due to %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// recordsToRows builds the header from the first record and renders every record in
// header order. Keys missing from a record render empty, keys not in the header are an error.
func recordsToRows(records []*Record) ([]string, [][]string, error) {
	if len(records) == 0 {
		return nil, nil, nil
	}

	header := records[0].Keys()
	inHeader := make(map[string]struct{}, len(header))
	for _, key := range header {
		inHeader[key] = struct{}{}
	}

	rows := make([][]string, 0, len(records))
	for i, record := range records {
		var extra []string
		for _, key := range record.Keys() {
			if _, ok := inHeader[key]; !ok {
				extra = append(extra, key)
			}
		}
		if len(extra) != 0 {
			sort.Strings(extra)
			return nil, nil, fmt.Errorf("record %d contains fields not in fieldnames: %s", i, strings.Join(extra, ", "))
		}

		row := make([]string, len(header))
		for c, key := range header {
			row[c] = record.Value(key)
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}

// ToCsv renders the records (header included) into a buffer
func ToCsv(records []*Record) (bytes.Buffer, error) {
	var b bytes.Buffer
	header, rows, err := recordsToRows(records)
	if err != nil {
		return b, err
	}
	if header == nil {
		return b, nil
	}

	w := csv.NewWriter(&b)
	if err := w.Write(header); err != nil {
		return b, fmt.Errorf("error writing header to csv: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return b, fmt.Errorf("error writing record to csv: %w", err)
	}

	return b, nil
}

// WriteRecordsToFile writes the records as a CSV file at path. Nothing is created when
// there are no records. Heterogeneous records are detected before the file is opened,
// and a file that failed half way is removed.
func WriteRecordsToFile(path string, records []*Record) (err error) {
	if len(records) == 0 {
		config.Log.Debugf("Skipping writing empty CSV for %s", path)
		return nil
	}

	header, rows, err := recordsToRows(records)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = &WriteError{Path: path, Err: closeErr}
		}
		if err != nil {
			if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				config.Log.Warnf("Could not remove partially written CSV %s: %v", path, rmErr)
			}
		}
	}()

	w := csv.NewWriter(f)
	if err = w.Write(header); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err = w.WriteAll(rows); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	return nil
}
