package hydration

import "errors"

// Sentinel errors
var (
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrUnknownVariant  = errors.New("unknown body variant")
)
