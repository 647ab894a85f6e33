package etl

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/dvloznov/billing-etl/internal/table"
)

// Extract reads a comma-delimited file into a Record Table. The first record
// is the header; columns and row order match the file exactly, with no
// filtering. An empty file yields an empty table with no columns.
func Extract(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("extract %q: %w: %w", path, ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("extract %q: %w", path, err)
	}
	defer f.Close()

	t, err := ExtractReader(f)
	if err != nil {
		return nil, fmt.Errorf("extract %q: %w", path, err)
	}
	return t, nil
}

// ExtractReader reads a comma-delimited stream into a Record Table.
func ExtractReader(r io.Reader) (*table.Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}
	if len(records) == 0 {
		return table.New(), nil
	}

	t := table.New(records[0]...)
	for i, rec := range records[1:] {
		if err := t.AppendRow(rec); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return t, nil
}
