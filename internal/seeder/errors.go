package seeder

import "errors"

// Seeder errors.
var (
	// ErrInvalidDataset indicates the dataset failed validation; nothing was written.
	ErrInvalidDataset = errors.New("invalid dataset")

	// ErrInvalidMode indicates an unknown write mode.
	ErrInvalidMode = errors.New("invalid seed mode")

	// ErrSkipped indicates a stage did not run because the context ended first.
	ErrSkipped = errors.New("stage skipped")
)
