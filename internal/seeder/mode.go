package seeder

import "fmt"

// Mode selects how seed documents are written.
type Mode string

const (
	// ModeStrict inserts every document. Documents whose id already exists
	// are rejected with a duplicate key error and the stage fails.
	ModeStrict Mode = "strict"

	// ModeUpsert replaces documents by id, inserting those that are missing.
	// Re-running leaves document counts unchanged and refreshes field values.
	ModeUpsert Mode = "upsert"
)

// Validate checks that m is a known mode.
func (m Mode) Validate() error {
	switch m {
	case ModeStrict, ModeUpsert:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be strict or upsert)", ErrInvalidMode, m)
	}
}
