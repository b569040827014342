package dataset

import (
	"fmt"
	"math"
	"strings"

	"hypokit/domain/core"
)

// MatrixBundle is the canonical data object for all pairwise computation.
// Missing cells stay NaN; pairs are completed per test, not per row.
type MatrixBundle struct {
	// Core data
	Matrix     Matrix
	ColumnMeta []ColumnMeta

	// Context references
	Source    string
	CreatedAt core.Timestamp

	// Fingerprint for replayability
	Fingerprint core.Hash
}

// Matrix represents dense numerical data ready for statistical analysis
type Matrix struct {
	Data         [][]float64        // rows=observations, cols=variables
	VariableKeys []core.VariableKey // column variable keys
}

// ColumnMeta contains metadata for each matrix column
type ColumnMeta struct {
	VariableKey  core.VariableKey `json:"variable_key"`
	MissingCount int              `json:"missing_count"`
	Distinct     int              `json:"distinct"`
}

// NewMatrixBundle builds a bundle from the named numeric columns of a table.
// An empty columns list selects every numeric column.
func NewMatrixBundle(table *Table, columns []string) (*MatrixBundle, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil table", core.ErrInvalidArgument)
	}
	if len(columns) == 0 {
		columns = table.NumericColumns()
	}
	if len(columns) < 2 {
		return nil, core.NewInsufficientDataError("pairwise analysis", len(columns), 2)
	}

	cols := make([][]float64, len(columns))
	keys := make([]core.VariableKey, len(columns))
	meta := make([]ColumnMeta, len(columns))
	for j, name := range columns {
		col, err := table.Column(name)
		if err != nil {
			return nil, err
		}
		cols[j] = col
		keys[j] = core.VariableKey(name)
		meta[j] = describeColumn(keys[j], col)
	}

	data := make([][]float64, len(table.Rows))
	for i := range data {
		row := make([]float64, len(columns))
		for j := range columns {
			row[j] = cols[j][i]
		}
		data[i] = row
	}

	bundle := &MatrixBundle{
		Matrix:     Matrix{Data: data, VariableKeys: keys},
		ColumnMeta: meta,
		Source:     table.Source,
		CreatedAt:  core.Now(),
	}
	bundle.Fingerprint = bundle.computeFingerprint()
	return bundle, nil
}

// NewMatrixBundleFromColumns builds a bundle directly from named columns of equal length
func NewMatrixBundleFromColumns(source string, keys []core.VariableKey, columns [][]float64) (*MatrixBundle, error) {
	if len(keys) != len(columns) {
		return nil, core.NewDimensionMismatchError(len(columns), len(keys))
	}
	rows := 0
	if len(columns) > 0 {
		rows = len(columns[0])
	}
	meta := make([]ColumnMeta, len(columns))
	for j, col := range columns {
		if len(col) != rows {
			return nil, core.NewDimensionMismatchError(len(col), rows)
		}
		meta[j] = describeColumn(keys[j], col)
	}

	data := make([][]float64, rows)
	for i := range data {
		data[i] = make([]float64, len(columns))
		for j := range columns {
			data[i][j] = columns[j][i]
		}
	}

	bundle := &MatrixBundle{
		Matrix:     Matrix{Data: data, VariableKeys: keys},
		ColumnMeta: meta,
		Source:     source,
		CreatedAt:  core.Now(),
	}
	bundle.Fingerprint = bundle.computeFingerprint()
	return bundle, nil
}

// Column extracts a column from the data matrix, padding short rows with NaN
func (m Matrix) Column(colIndex int) []float64 {
	column := make([]float64, len(m.Data))
	for i, row := range m.Data {
		if colIndex < len(row) {
			column[i] = row[colIndex]
		} else {
			column[i] = math.NaN()
		}
	}
	return column
}

// NumVariables returns the number of columns
func (m Matrix) NumVariables() int {
	return len(m.VariableKeys)
}

// NumPairs returns the number of unordered variable pairs
func (m Matrix) NumPairs() int {
	n := len(m.VariableKeys)
	return n * (n - 1) / 2
}

// Validate checks that every row has one value per variable
func (b *MatrixBundle) Validate() error {
	for i, row := range b.Matrix.Data {
		if len(row) != len(b.Matrix.VariableKeys) {
			return fmt.Errorf("row %d: %w", i, core.NewDimensionMismatchError(len(row), len(b.Matrix.VariableKeys)))
		}
	}
	if len(b.ColumnMeta) != len(b.Matrix.VariableKeys) {
		return fmt.Errorf("column metadata: %w", core.NewDimensionMismatchError(len(b.ColumnMeta), len(b.Matrix.VariableKeys)))
	}
	return nil
}

func (b *MatrixBundle) computeFingerprint() core.Hash {
	var sb strings.Builder
	sb.WriteString(b.Source)
	for _, k := range b.Matrix.VariableKeys {
		sb.WriteString("|")
		sb.WriteString(string(k))
	}
	for _, row := range b.Matrix.Data {
		sb.WriteString("\n")
		for _, v := range row {
			fmt.Fprintf(&sb, "%g,", v)
		}
	}
	return core.NewHash([]byte(sb.String()))
}

func describeColumn(key core.VariableKey, col []float64) ColumnMeta {
	seen := make(map[float64]struct{})
	missing := 0
	for _, v := range col {
		if math.IsNaN(v) {
			missing++
			continue
		}
		seen[v] = struct{}{}
	}
	return ColumnMeta{VariableKey: key, MissingCount: missing, Distinct: len(seen)}
}
