package config

import "errors"

// ErrNegativeOption is returned when a numeric option that must be
// non-negative is negative.
var ErrNegativeOption = errors.New("option must be non-negative")

// PatternError reports a malformed ignore pattern.
type PatternError struct {
	// Pattern is the source pattern that failed to compile.
	Pattern string

	// Err is the underlying compile error.
	Err error
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return "invalid ignore pattern " + e.Pattern + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *PatternError) Unwrap() error {
	return e.Err
}
