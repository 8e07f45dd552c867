package providers

import "errors"

// Provider resolution errors.
var (
	// ErrEmpty indicates no provider name was given.
	ErrEmpty = errors.New("provider name is empty")

	// ErrUnsupported indicates the provider name is not recognized.
	ErrUnsupported = errors.New("unsupported model provider")
)
