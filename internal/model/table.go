package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Record is one JSON object of a collection, kept untyped so that a listing
// shows whatever attributes the API returns.
type Record map[string]any

// ID returns the record identifier, or "" when absent.
func (r Record) ID() string { return r.String(IDField) }

// String renders the value under key for display.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	return cell(v)
}

func cell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool, json.Number:
		return fmt.Sprint(x)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// Table is a rendered collection: one row per record, every row as wide as
// Columns.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether there is nothing to show.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// NewTable lays out records with _id first, then the lead columns in order,
// then every other key found, sorted.
func NewTable(records []Record, lead ...string) Table {
	if len(records) == 0 {
		return Table{}
	}
	seen := map[string]bool{IDField: true}
	cols := []string{IDField}
	for _, c := range lead {
		if !seen[c] {
			seen[c] = true
			cols = append(cols, c)
		}
	}
	var rest []string
	for _, r := range records {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				rest = append(rest, k)
			}
		}
	}
	sort.Strings(rest)
	cols = append(cols, rest...)

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = r.String(c)
		}
		rows = append(rows, row)
	}
	return Table{Columns: cols, Rows: rows}
}

// Column returns the values of one column, or nil if the table lacks it.
func (t Table) Column(name string) []string {
	idx := -1
	for i, c := range t.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}
