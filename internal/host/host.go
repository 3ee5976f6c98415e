// Package host defines the capability interfaces the annotation engine
// requires from the editor it runs inside: buffer line access, window
// geometry, and the per-line overlay primitive. The engine never talks to
// the editor directly; every external touchpoint goes through one of these
// interfaces so tests and alternate frontends can supply their own.
package host

// BufferID identifies a text buffer owned by the host.
type BufferID int

// WindowID identifies a window (a view onto a buffer) owned by the host.
type WindowID int

// Buffers provides read access to buffer content and metadata.
// The engine only reads lines; it never mutates buffer content.
type Buffers interface {
	// Line returns the raw text of the 0-based line index.
	// ok is false when the buffer does not exist or the index is out of
	// bounds; callers treat missing lines as blank.
	Line(buf BufferID, index int) (text string, ok bool)

	// LineCount returns the number of lines in the buffer.
	// ok is false when the buffer does not exist.
	LineCount(buf BufferID) (count int, ok bool)

	// Filetype returns the host's filetype string for the buffer, or ""
	// when the buffer has no filetype or does not exist.
	Filetype(buf BufferID) string
}

// Windows provides window geometry queries. All queries report ok=false
// for closed or unknown windows, which the engine treats as "nothing
// visible".
type Windows interface {
	// Buffer returns the buffer displayed in the window.
	Buffer(win WindowID) (BufferID, bool)

	// VisibleRange returns the first and last visible 0-based line
	// indices, inclusive.
	VisibleRange(win WindowID) (first, last int, ok bool)

	// Width returns the window's display width in columns.
	Width(win WindowID) (int, bool)

	// CursorLine returns the 0-based line the cursor is on.
	CursorLine(win WindowID) (int, bool)
}

// Placed is one overlay currently present on a buffer line, from any
// source sharing the host's overlay address space.
type Placed struct {
	// Namespace identifies the owner of the overlay.
	Namespace string

	// ID is the owner's stable identifier for the overlay within the
	// namespace. Placing again with the same ID replaces in place.
	ID int

	// Line is the 0-based line the overlay is attached to.
	Line int

	// Text is the displayed overlay text.
	Text string

	// Style is the host style tag the text is rendered with.
	Style string
}

// Overlays is the host's per-line overlay rendering primitive.
// Overlays are addressed by (namespace, buffer, id); placing with an
// existing id replaces the previous overlay rather than accumulating.
type Overlays interface {
	// Place creates or replaces the overlay (ns, buf, id) at the given
	// line with the given text and style tag.
	Place(ns string, buf BufferID, id, line int, text, style string)

	// Remove deletes the overlay (ns, buf, id). Removing an overlay that
	// does not exist is a no-op.
	Remove(ns string, buf BufferID, id int)

	// At returns every overlay currently attached to the line, from all
	// namespaces, in unspecified order.
	At(buf BufferID, line int) []Placed
}

// Host bundles the three capabilities an assembled engine needs.
type Host interface {
	Buffers
	Windows
	Overlays
}
