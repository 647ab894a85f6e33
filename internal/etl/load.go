package etl

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/dvloznov/billing-etl/internal/table"
)

// Load serializes a Record Table to a comma-delimited file, overwriting any
// existing file at path. An empty table produces a file with only the header
// row, or an empty file when there are no columns.
func Load(t *table.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("load %q: %w: %w", path, ErrPathUnwritable, err)
	}

	if err := WriteTo(t, f); err != nil {
		f.Close()
		return fmt.Errorf("load %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("load %q: %w: %w", path, ErrPathUnwritable, err)
	}
	return nil
}

// WriteTo serializes a Record Table to w: header first, then one line per
// row in column order.
func WriteTo(t *table.Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	cols := t.Columns()
	if len(cols) > 0 {
		if err := cw.Write(cols); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for i, rec := range t.Records() {
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}
