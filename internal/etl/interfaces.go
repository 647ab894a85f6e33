package etl

import (
	"context"

	"github.com/dvloznov/billing-etl/internal/table"
)

// Source produces a Record Table for the pipeline to transform.
type Source interface {
	Extract(ctx context.Context) (*table.Table, error)
}

// Sink consumes the transformed Record Table.
type Sink interface {
	Load(ctx context.Context, t *table.Table) error
}

// FileSource extracts from a local CSV file.
type FileSource struct {
	Path string
}

func (s FileSource) Extract(ctx context.Context) (*table.Table, error) {
	return Extract(s.Path)
}

// FileSink loads into a local CSV file, overwriting it.
type FileSink struct {
	Path string
}

func (s FileSink) Load(ctx context.Context, t *table.Table) error {
	return Load(t, s.Path)
}
