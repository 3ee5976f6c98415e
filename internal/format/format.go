// Package format defines the annotation formatter contract. A formatter
// maps a signed line offset from the cursor to the text and style tag
// displayed at the end of the line. Formatters are supplied by the caller;
// the engine only guarantees each visible, non-suppressed line gets exactly
// one call per render, in no particular order.
package format

import "strconv"

// DefaultStyle is the style tag applied when a formatter returns bare text.
const DefaultStyle = "relnum"

// Result is the outcome of formatting one offset: either bare text, which
// picks up DefaultStyle, or text with an explicit style tag.
type Result struct {
	text   string
	style  string
	styled bool
}

// Text returns a bare-text result. The default style tag is applied when
// the result is normalized.
func Text(s string) Result {
	return Result{text: s}
}

// Styled returns a result carrying an explicit style tag.
func Styled(s, style string) Result {
	return Result{text: s, style: style, styled: true}
}

// Normalize resolves the result into the text and style tag to display,
// substituting DefaultStyle for bare-text results.
func (r Result) Normalize() (text, style string) {
	if !r.styled {
		return r.text, DefaultStyle
	}
	return r.text, r.style
}

// Func formats the signed offset of a line from the cursor line. Offset is
// zero only at the cursor line, negative above it, positive below. A Func
// must be pure; an error aborts the render cycle that invoked it.
type Func func(offset int) (Result, error)

// Default formats offsets as absolute decimal numbers with the default
// style tag.
func Default(offset int) (Result, error) {
	if offset < 0 {
		offset = -offset
	}
	return Text(strconv.Itoa(offset)), nil
}
