package pipeline

import "errors"

var (
	// ErrClassifierRequired is returned when a classifier is not provided.
	ErrClassifierRequired = errors.New("classifier required")

	// ErrEntityStoreRequired is returned when an entity store is not provided.
	ErrEntityStoreRequired = errors.New("entity store required")

	// ErrLengthMismatch is returned when paired slices of records and results
	// do not have the same length.
	ErrLengthMismatch = errors.New("records and results length mismatch")
)
