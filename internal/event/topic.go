package event

import "strings"

// Topic is a hierarchical event type using dot notation, e.g.
// "viewport.scrolled".
type Topic string

// Wildcard constants for subscription patterns.
const (
	// WildcardSingle matches exactly one segment.
	WildcardSingle = "*"

	// WildcardMulti matches zero or more trailing segments.
	WildcardMulti = "**"

	// Separator divides topic segments.
	Separator = "."
)

// Topics published for viewport changes.
const (
	// TopicViewportEntered fires when a window starts displaying a buffer.
	TopicViewportEntered Topic = "viewport.entered"

	// TopicCursorMoved fires when the cursor changes line within a window.
	TopicCursorMoved Topic = "viewport.cursor.moved"

	// TopicViewportScrolled fires when a window's visible range changes.
	TopicViewportScrolled Topic = "viewport.scrolled"
)

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Segments returns the topic split on the separator.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// Match reports whether the topic matches a subscription pattern.
// Patterns use the same dot notation with "*" matching exactly one segment
// and a trailing "**" matching any remainder, including none.
func (t Topic) Match(pattern Topic) bool {
	if pattern == t {
		return true
	}

	ps := pattern.Segments()
	ts := t.Segments()

	for i, p := range ps {
		if p == WildcardMulti {
			// Only meaningful as the final segment.
			return i == len(ps)-1
		}
		if i >= len(ts) {
			return false
		}
		if p != WildcardSingle && p != ts[i] {
			return false
		}
	}
	return len(ps) == len(ts)
}
