package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/badno/shopbuild/pkg/models"
)

// Table is a row-oriented view of an uploaded product file.
type Table struct {
	Headers []string // canonical form: trimmed, lower-cased
	Rows    []models.SourceRow
}

// HasColumn reports whether the table carries the given canonical column.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// LoadFile reads a CSV or XLSX product file. Any decode failure aborts the
// run; no partial table is returned.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadXLSX(f)
	}
	return LoadCSV(f)
}

// LoadCSV parses CSV data into a table.
func LoadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true // Handle sometimes malformed export CSVs
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	return fromRecords(records)
}

// LoadXLSX parses the first sheet of an Excel workbook into a table.
func LoadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return fromRecords(records)
}

// fromRecords builds a table from raw rows, first row being the header.
func fromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("file has no header row")
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	table := &Table{Headers: headers}
	for _, rec := range records[1:] {
		if isEmptyRecord(rec) {
			continue
		}
		row := make(models.SourceRow, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func isEmptyRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
