package input

import "errors"

var (
	// ErrDataSetNotFound is returned when the named data set does not exist
	// in the container.
	ErrDataSetNotFound = errors.New("data set not found")

	// ErrInvalidDataSet is returned when a data set cannot be decoded as a
	// JSON array of records.
	ErrInvalidDataSet = errors.New("invalid data set")
)
