package dataset

import (
	"errors"
	"fmt"
)

// Dataset errors.
var (
	// ErrNotFound indicates no embedded dataset has the requested name.
	ErrNotFound = errors.New("dataset not found")

	// ErrFormat indicates the file extension is not a supported dataset format,
	// or the content holds more than one document.
	ErrFormat = errors.New("unsupported dataset format")

	// ErrTooLarge indicates the dataset file exceeds the configured size limit.
	ErrTooLarge = errors.New("dataset file too large")

	// ErrDuplicateID indicates two documents in one collection share an id.
	ErrDuplicateID = errors.New("duplicate id")
)

// ValidationError reports a malformed document together with its position in
// the dataset, so it can be fixed before anything is written.
type ValidationError struct {
	Collection string
	Position   int
	ID         string
	Err        error
}

func (e *ValidationError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s[%d] (id %q): %v", e.Collection, e.Position, e.ID, e.Err)
	}
	return fmt.Sprintf("%s[%d]: %v", e.Collection, e.Position, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
