package report

import "errors"

var (
	// ErrScannerRequired is returned when a table scanner is not provided.
	ErrScannerRequired = errors.New("table scanner required")
)
