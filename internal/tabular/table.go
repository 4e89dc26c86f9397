// Package tabular loads, filters, and saves the CSV datasets the study
// pipeline exchanges between stages.
package tabular

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// Table is an in-memory CSV dataset: one header row plus data rows. Rows are
// positional; column lookup goes through ColumnIndex.
type Table struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the position of the named column, or -1 if the table
// does not carry it.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value of the named column in the given row, or "" when
// the column is absent or the row is short.
func (t *Table) Cell(row int, column string) string {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) || idx >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][idx]
}

// Load reads a whole CSV file into memory. A missing file yields a
// MissingInputError before any read is attempted. A leading unnamed index
// column (empty first header cell, as written by dataframe exports) is
// dropped.
func Load(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingInputError{Path: path}
		}
		return nil, eris.Wrapf(err, "tabular: stat %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "tabular: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "tabular: read %s", path)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	header := records[0]
	rows := records[1:]

	if len(header) > 0 && header[0] == "" {
		header = header[1:]
		trimmed := make([][]string, len(rows))
		for i, row := range rows {
			if len(row) > 0 {
				trimmed[i] = row[1:]
			}
		}
		rows = trimmed
	}

	return &Table{Header: header, Rows: rows}, nil
}

// Save writes the table as CSV, creating parent directories as needed.
func Save(t *Table, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "tabular: create dir for %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "tabular: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return eris.Wrapf(err, "tabular: write header to %s", path)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return eris.Wrapf(err, "tabular: write row to %s", path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "tabular: flush %s", path)
	}

	return nil
}
