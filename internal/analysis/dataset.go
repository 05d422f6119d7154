// internal/analysis/dataset.go
// Package: analysis
package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column names written by the experiment harness.
const (
	ColWalkLength = "length random walk"
	ColThreshold  = "threshold random walk"
	ColIterations = "iterations"
	ColPuzzleID   = "sudoku id"
	ColRuntime    = "runtime"
)

// Delimiter separates fields in experiment CSV files.
const Delimiter = ';'

var (
	// ErrMissingColumn is returned when a requested column is not in the header.
	ErrMissingColumn = errors.New("missing column")
	// ErrNoInput is returned when a file holds no header row.
	ErrNoInput = errors.New("no input")
)

// Table is a numeric CSV table held in memory.
type Table struct {
	// Source is the file the table was loaded from, if any.
	Source  string
	Columns []string
	Rows    [][]float64
	index   map[string]int
}

// LoadCSV opens path and reads it with ReadCSV.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open dataset: %w", err)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t.Source = path
	return t, nil
}

// ReadCSV parses a semicolon-delimited table whose first row is a header.
// Every cell must parse as a number; blank lines are skipped.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = Delimiter
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoInput
	}
	if err != nil {
		return nil, fmt.Errorf("could not read header: %w", err)
	}

	t := &Table{index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		t.Columns = append(t.Columns, h)
		t.index[h] = i
	}
	reader.FieldsPerRecord = len(header)

	for row := 1; ; row++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read row: %w", err)
		}
		vals := make([]float64, len(rec))
		for i, cell := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %q is not a number", row, t.Columns[i], cell)
			}
			vals[i] = v
		}
		t.Rows = append(t.Rows, vals)
	}
	return t, nil
}

// Has reports whether the table has column name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Require returns an error wrapping ErrMissingColumn for the first name not
// present in the header.
func (t *Table) Require(names ...string) error {
	for _, n := range names {
		if !t.Has(n) {
			return fmt.Errorf("%w %q (have %s)", ErrMissingColumn, n, strings.Join(t.Columns, ", "))
		}
	}
	return nil
}

// Column returns a copy of every value in column name.
func (t *Table) Column(name string) ([]float64, error) {
	if err := t.Require(name); err != nil {
		return nil, err
	}
	i := t.index[name]
	out := make([]float64, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }
