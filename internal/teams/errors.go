package teams

import "errors"

// ErrInvalid is wrapped by every team validation failure.
var ErrInvalid = errors.New("invalid team config")

// FieldError names the field that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// Unwrap lets errors.Is match ErrInvalid.
func (e *FieldError) Unwrap() error {
	return ErrInvalid
}
