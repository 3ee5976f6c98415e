// Package policy decides, per visible line, whether its annotation is
// suppressed. The decision is a pure function of the line's state and the
// configured rules; it holds no state between calls.
package policy

// Rules are the configuration knobs the suppression decision consumes.
type Rules struct {
	// ShowOnCursorLine permits an annotation on the cursor line itself.
	ShowOnCursorLine bool

	// ShowOnBlankLines permits annotations on blank (empty or
	// whitespace-only) lines.
	ShowOnBlankLines bool

	// MinLineDistance suppresses lines within this many lines of the
	// cursor, inclusive. Zero disables distance suppression entirely;
	// the cursor line is then governed by ShowOnCursorLine alone.
	MinLineDistance int

	// SpaceReserve is extra column headroom demanded between the line
	// text (plus existing overlays) and the window edge.
	SpaceReserve int
}

// Input is the per-line state the decision is made from.
type Input struct {
	// Line is the 0-based line under consideration.
	Line int

	// CursorLine is the 0-based cursor line of the window.
	CursorLine int

	// Blank reports whether the line is empty or whitespace-only.
	Blank bool

	// ViewportWidth is the window's display width in columns.
	ViewportWidth int

	// LineWidth is the display width of the line's text.
	LineWidth int

	// OverlayWidth is the combined display width of overlays already
	// present on the line from any source, excluding the annotation
	// about to be written.
	OverlayWidth int
}

// ShouldSuppress reports whether the line's annotation is suppressed.
// An annotation is suppressed when any rule holds:
//
//  1. the line is the cursor line and ShowOnCursorLine is off;
//  2. the line is within MinLineDistance of the cursor (inclusive);
//  3. the line is blank and ShowOnBlankLines is off;
//  4. the line text, existing overlays, and SpaceReserve leave no room
//     before the window edge.
//
// Rule 2 uses <=, so with MinLineDistance = 1 the cursor line itself
// (distance 0) and both neighbors are suppressed by distance regardless of
// rule 1. With MinLineDistance = 0 the distance rule is inert and only
// rule 1 can suppress the cursor line.
func ShouldSuppress(in Input, r Rules) bool {
	if in.Line == in.CursorLine && !r.ShowOnCursorLine {
		return true
	}
	if r.MinLineDistance > 0 && abs(in.Line-in.CursorLine) <= r.MinLineDistance {
		return true
	}
	if in.Blank && !r.ShowOnBlankLines {
		return true
	}
	if in.LineWidth+in.OverlayWidth+r.SpaceReserve >= in.ViewportWidth {
		return true
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
