package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Row is one record of a result set, passed through as the database shaped
// it. Columns keep the order the database returned them in, which is also
// the key order of the JSON object.
type Row struct {
	columns []string
	values  []any
}

// NewRow pairs column names with values. Both slices must be the same length.
func NewRow(columns []string, values []any) Row {
	return Row{columns: columns, values: values}
}

// Columns returns the column names in result-set order.
func (r Row) Columns() []string {
	return r.columns
}

// Get returns the value for a column and whether the column exists.
func (r Row) Get(column string) (any, bool) {
	for i, c := range r.columns {
		if c == column {
			return r.values[i], true
		}
	}
	return nil, false
}

// MarshalJSON encodes the row as a JSON object in column order.
func (r Row) MarshalJSON() ([]byte, error) {
	if len(r.columns) != len(r.values) {
		return nil, fmt.Errorf("row has %d columns but %d values", len(r.columns), len(r.values))
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// TableCounts is the payload of the stats endpoint.
type TableCounts struct {
	Nodes    int64 `json:"nodes"`
	Edges    int64 `json:"edges"`
	Metadata int64 `json:"metadata"`
}
