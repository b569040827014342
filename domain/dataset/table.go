package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"hypokit/domain/core"
)

// Row maps a header to the raw cell text
type Row map[string]string

// Table is a loaded spreadsheet: headers in file order and one Row per data line
type Table struct {
	Source  string   `json:"source"`
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Group is the numeric values of one level of a grouping column
type Group struct {
	Key    string    `json:"key"`
	Values []float64 `json:"values"`
}

// missingTokens are cell values treated as absent
var missingTokens = map[string]bool{"": true, "na": true, "nan": true, "null": true, "n/a": true}

// IsMissing reports whether a cell holds no value
func IsMissing(cell string) bool {
	return missingTokens[strings.ToLower(strings.TrimSpace(cell))]
}

// HasColumn reports whether name is a header
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Column parses a numeric column. Missing cells become NaN; any other
// non-numeric cell is an error naming the offending row.
func (t *Table) Column(name string) ([]float64, error) {
	if !t.HasColumn(name) {
		return nil, fmt.Errorf("%w: %q", core.ErrVariableNotFound, name)
	}

	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		cell := row[name]
		if IsMissing(cell) {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, core.NewInvalidArgumentError(name, fmt.Sprintf("row %d: %q is not numeric", i+1, cell))
		}
		out[i] = v
	}
	return out, nil
}

// NumericColumns lists, in header order, the columns whose non-missing
// cells all parse as numbers and that hold at least one value.
func (t *Table) NumericColumns() []string {
	var names []string
	for _, h := range t.Headers {
		seen := false
		numeric := true
		for _, row := range t.Rows {
			cell := row[h]
			if IsMissing(cell) {
				continue
			}
			if _, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err != nil {
				numeric = false
				break
			}
			seen = true
		}
		if numeric && seen {
			names = append(names, h)
		}
	}
	return names
}

// Pairs returns the rows where both x and y are present, as two aligned slices.
func (t *Table) Pairs(x, y string) ([]float64, []float64, error) {
	xs, err := t.Column(x)
	if err != nil {
		return nil, nil, err
	}
	ys, err := t.Column(y)
	if err != nil {
		return nil, nil, err
	}
	a, b := CompletePairs(xs, ys)
	return a, b, nil
}

// CompletePairs drops every position where either slice holds NaN.
func CompletePairs(x, y []float64) ([]float64, []float64) {
	a := make([]float64, 0, len(x))
	b := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		a = append(a, x[i])
		b = append(b, y[i])
	}
	return a, b
}

// GroupBy splits the numeric column value by the levels of column by, in
// order of first appearance. Rows missing either cell are skipped.
func (t *Table) GroupBy(value, by string) ([]Group, error) {
	values, err := t.Column(value)
	if err != nil {
		return nil, err
	}
	if !t.HasColumn(by) {
		return nil, fmt.Errorf("%w: %q", core.ErrVariableNotFound, by)
	}

	index := make(map[string]int)
	var groups []Group
	for i, row := range t.Rows {
		key := strings.TrimSpace(row[by])
		if IsMissing(key) || math.IsNaN(values[i]) {
			continue
		}
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, Group{Key: key})
		}
		groups[pos].Values = append(groups[pos].Values, values[i])
	}
	return groups, nil
}
