package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
)

// DateLayout is the canonical process-date format used in CLI flags, file
// names and the transactions partition column.
const DateLayout = "2006-01-02"

// Table is a parsed semicolon-delimited file with a header row.
type Table struct {
	columns map[string]int
	Rows    [][]string
}

// ParseTable reads semicolon-delimited tabular text. The first record is the
// header; every following record is a data row.
func ParseTable(data []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = ';'
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("file has no header row")
	}
	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.TrimSpace(name)] = i
	}
	return &Table{columns: columns, Rows: records[1:]}, nil
}

// Field returns the trimmed value of the named column in row.
func (t *Table) Field(row []string, column string) (string, error) {
	idx, ok := t.columns[column]
	if !ok {
		return "", fmt.Errorf("missing column %q", column)
	}
	if idx >= len(row) {
		return "", fmt.Errorf("row too short for column %q", column)
	}
	return strings.TrimSpace(row[idx]), nil
}
