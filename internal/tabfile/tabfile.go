// Package tabfile reads and writes the delimited tables the extractor
// consumes and produces: a CSV with a header row, one transaction digest
// column, and appended result columns on the way out.
package tabfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Table is an in-memory CSV with a header row.
type Table struct {
	Header []string
	Rows   [][]string
}

// Read loads a CSV file. Ragged rows are padded to the header width so a
// sloppy export never breaks column lookup.
func Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}

	t := &Table{Header: records[0]}
	width := len(t.Header)
	for _, rec := range records[1:] {
		for len(rec) < width {
			rec = append(rec, "")
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// Column returns the index of the named column (case-insensitive, trimmed).
func (t *Table) Column(name string) (int, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, h := range t.Header {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no column named %q (have: %s)", name, strings.Join(t.Header, ", "))
}

// Values returns every row's value for one column.
func (t *Table) Values(idx int) []string {
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out
}

// Append adds result columns. values must hold one slice per new column,
// each aligned to the existing rows.
func (t *Table) Append(cols []string, values [][]string) error {
	for i, col := range values {
		if len(col) != len(t.Rows) {
			return fmt.Errorf("column %q has %d values for %d rows", cols[i], len(col), len(t.Rows))
		}
	}
	t.Header = append(t.Header, cols...)
	for i := range t.Rows {
		for _, col := range values {
			t.Rows[i] = append(t.Rows[i], col[i])
		}
	}
	return nil
}

// Write saves the table as CSV.
func Write(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(t.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
