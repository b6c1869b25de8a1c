package nba

import (
	"fmt"
	"strconv"
)

// The stats API returns every payload as named tables: a header list plus
// untyped rows. Cell types are whatever encoding/json produces (float64 for
// every number, nil for missing values), so access goes through tolerant
// typed getters.

type table struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

type resultSets []*table

// find returns the result set with the given name.
func (s resultSets) find(name string) (*table, error) {
	for _, t := range s {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("result set %q missing from response", name)
}

// columns resolves header names to column indexes, erroring on any missing
// header so schema drift fails loudly instead of producing zeroed records.
func (t *table) columns(names ...string) ([]int, error) {
	byName := make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		byName[h] = i
	}
	cols := make([]int, len(names))
	for i, name := range names {
		idx, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("result set %q has no column %q", t.Name, name)
		}
		cols[i] = idx
	}
	return cols, nil
}

func (t *table) row(i int) rowView {
	return rowView(t.RowSet[i])
}

type rowView []interface{}

func (r rowView) str(col int) string {
	switch v := r[col].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func (r rowView) f64(col int) float64 {
	switch v := r[col].(type) {
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

func (r rowView) i64(col int) int64 {
	return int64(r.f64(col))
}
