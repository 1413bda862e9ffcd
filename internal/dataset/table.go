// Package dataset provides a small in-memory tabular dataset keyed by named
// columns, loaded from delimited files and owned by the caller.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMissingColumn indicates a column required by a lookup is absent.
var ErrMissingColumn = errors.New("missing column")

// Table is an immutable set of rows sharing one header.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// Row is a single record of a Table.
type Row struct {
	table *Table
	cells []string
}

// New builds a Table from a header and rows. Every row must have as many cells
// as there are columns. A blank header cell, such as the index column written
// by DataFrame.to_csv, is named "Unnamed: <position>".
func New(columns []string, rows [][]string) (*Table, error) {
	names := make([]string, len(columns))
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		col = strings.TrimSpace(col)
		if col == "" {
			col = UnnamedColumn(i)
		}
		if _, dup := index[col]; dup {
			return nil, fmt.Errorf("duplicate column %q", col)
		}
		names[i] = col
		index[col] = i
	}

	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(columns))
		}
	}

	return &Table{
		columns: names,
		index:   index,
		rows:    rows,
	}, nil
}

// UnnamedColumn is the name given to a blank header cell at position i.
func UnnamedColumn(i int) string {
	return "Unnamed: " + strconv.Itoa(i)
}

// ReadCSV parses comma separated data whose first record is the header.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv has no header")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv rows: %w", err)
	}
	return New(header, rows)
}

// LoadCSV opens path and parses it with ReadCSV.
func LoadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	table, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return table, nil
}

// Columns returns a copy of the header.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the i-th row. It panics when i is out of range, like a slice.
func (t *Table) Row(i int) Row {
	return Row{table: t, cells: t.rows[i]}
}

// First returns the first row, or false when the table is empty.
func (t *Table) First() (Row, bool) {
	if len(t.rows) == 0 {
		return Row{}, false
	}
	return t.Row(0), true
}

// FilterID returns the rows whose column holds the integer id. Cells that do
// not parse as integers never match.
func (t *Table) FilterID(column string, id int64) (*Table, error) {
	idx, ok := t.index[column]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, column)
	}

	var matched [][]string
	for _, row := range t.rows {
		if cellID, ok := ParseID(row[idx]); ok && cellID == id {
			matched = append(matched, row)
		}
	}
	return &Table{columns: t.columns, index: t.index, rows: matched}, nil
}

// Get returns the cell for column.
func (r Row) Get(column string) (string, error) {
	idx, ok := r.table.index[column]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingColumn, column)
	}
	return r.cells[idx], nil
}

// ParseID parses an integer identifier cell. Integral floats such as "7.0"
// are accepted since exported spreadsheets often write ids that way.
func ParseID(cell string) (int64, bool) {
	cell = strings.TrimSpace(cell)
	if id, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return id, true
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}
