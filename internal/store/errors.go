package store

import (
	"errors"
	"fmt"

	"github.com/JaimeStill/agno-seed/internal/schema"
)

// Store errors.
var (
	// ErrDuplicateKey indicates a write collided with a unique index.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrIndexConflict indicates an index exists with different options.
	ErrIndexConflict = errors.New("index conflict")

	// ErrInvalidDocument indicates a document could not be encoded.
	ErrInvalidDocument = errors.New("invalid document")
)

// DuplicateKeyError reports one document rejected by a unique index.
type DuplicateKeyError struct {
	Collection string
	Field      string
	Key        string
	Position   int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key in %s: %s %q (document %d)", e.Collection, e.Field, e.Key, e.Position)
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}

// IndexConflictError reports an index declaration that clashes with an
// existing index. Existing is the index as the database holds it.
type IndexConflictError struct {
	Collection   string
	Requested    schema.Index
	ExistingName string
	Existing     schema.Index
}

func (e *IndexConflictError) Error() string {
	return fmt.Sprintf(
		"index conflict on %s: requested %s as %q, existing %q is %s",
		e.Collection, e.Requested, e.Requested.Name(), e.ExistingName, e.Existing,
	)
}

func (e *IndexConflictError) Unwrap() error {
	return ErrIndexConflict
}

// Duplicates extracts every *DuplicateKeyError joined into err.
func Duplicates(err error) []*DuplicateKeyError {
	var out []*DuplicateKeyError
	walk(err, func(e error) {
		if dk, ok := e.(*DuplicateKeyError); ok {
			out = append(out, dk)
		}
	})
	return out
}

func walk(err error, fn func(error)) {
	if err == nil {
		return
	}
	fn(err)
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			walk(e, fn)
		}
	case interface{ Unwrap() error }:
		walk(u.Unwrap(), fn)
	}
}
