package generate

import "errors"

var (
	// ErrNoStringFound is the Err of a Result whose attempts all failed. It is
	// an expected outcome; retrying with a larger length bound may succeed.
	ErrNoStringFound = errors.New("generate: no string found")

	// ErrBudgetExceeded is returned when enumeration would hold more strings
	// than the configured bound.
	ErrBudgetExceeded = errors.New("generate: result budget exceeded")
)
