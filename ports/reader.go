package ports

import (
	"context"

	"hypokit/domain/dataset"
)

// DatasetReader loads a tabular data source for analysis.
// Implementations are read-only and must honour context cancellation.
type DatasetReader interface {
	ReadTable(ctx context.Context) (*dataset.Table, error)
}

// DatasetReaderFactory opens a reader for a path, choosing the format by extension
type DatasetReaderFactory func(path string) DatasetReader
