package script

import "errors"

// Sentinel errors for script compilation and execution.
var (
	// ErrNoFormatFunction is returned when the script does not define a
	// global format function.
	ErrNoFormatFunction = errors.New("script does not define format(offset)")

	// ErrBadReturn is returned when format returns something other than
	// text or (text, style).
	ErrBadReturn = errors.New("format must return text or text, style")

	// ErrFormatterClosed is returned when a closed formatter is invoked.
	ErrFormatterClosed = errors.New("formatter is closed")
)
