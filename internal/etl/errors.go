package etl

import "errors"

// Error kinds raised by the pipeline stages. Callers match them with
// errors.Is; every error carries additional context via wrapping.
var (
	// ErrFileNotFound: the extraction path does not resolve to a readable file.
	ErrFileNotFound = errors.New("file not found")

	// ErrMissingColumn: a non-empty table lacks a column the transformer needs.
	ErrMissingColumn = errors.New("missing column")

	// ErrValueConversion: a cell could not be parsed as a numeric value.
	ErrValueConversion = errors.New("value conversion")

	// ErrPathUnwritable: the load destination cannot be created or written.
	ErrPathUnwritable = errors.New("path unwritable")
)
