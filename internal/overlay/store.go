// Package overlay is the engine's address space for line annotations. Each
// Store owns a namespace in the host's overlay primitive and keeps at most
// one annotation per buffer line, keyed by a stable per-line identifier so
// repeated renders replace in place instead of accumulating. The host's
// address space is shared with other overlay producers; the Store only ever
// mutates its own namespace but reads across all of them when estimating
// occupied row width.
package overlay

import (
	"github.com/google/uuid"

	"github.com/dshills/relnum/internal/host"
	"github.com/dshills/relnum/internal/width"
)

// Store holds this engine's annotations for any number of buffers.
// Not safe for concurrent use; the engine's execution model is
// single-threaded.
type Store struct {
	ns    string
	svc   host.Overlays
	lines map[host.BufferID]map[int]struct{}
}

// New creates a Store writing through to the host overlay primitive under
// a fresh namespace.
func New(svc host.Overlays) *Store {
	return &Store{
		ns:    uuid.NewString(),
		svc:   svc,
		lines: make(map[host.BufferID]map[int]struct{}),
	}
}

// Namespace returns the store's namespace identifier in the host overlay
// address space.
func (s *Store) Namespace() string {
	return s.ns
}

// slotID is the stable per-line identifier. Line L maps to L+1 so that
// identifier 0 is never used.
func slotID(line int) int {
	return line + 1
}

// SetAnnotation sets or replaces the single annotation at the line.
func (s *Store) SetAnnotation(buf host.BufferID, line int, text, style string) {
	s.svc.Place(s.ns, buf, slotID(line), line, text, style)
	owned, ok := s.lines[buf]
	if !ok {
		owned = make(map[int]struct{})
		s.lines[buf] = owned
	}
	owned[line] = struct{}{}
}

// ClearRange removes this store's annotations for buf in the inclusive
// line range. Idempotent; lines without annotations are skipped.
func (s *Store) ClearRange(buf host.BufferID, from, to int) {
	owned, ok := s.lines[buf]
	if !ok {
		return
	}
	for line := from; line <= to; line++ {
		if _, present := owned[line]; !present {
			continue
		}
		s.svc.Remove(s.ns, buf, slotID(line))
		delete(owned, line)
	}
}

// ClearOutside removes this store's annotations for buf on every line
// outside the inclusive range. Used when a render's visible range moves
// or shrinks, so annotations never outlive the last-rendered range.
func (s *Store) ClearOutside(buf host.BufferID, from, to int) {
	owned, ok := s.lines[buf]
	if !ok {
		return
	}
	for line := range owned {
		if line >= from && line <= to {
			continue
		}
		s.svc.Remove(s.ns, buf, slotID(line))
		delete(owned, line)
	}
}

// ClearAll removes every annotation this store holds for the buffer.
func (s *Store) ClearAll(buf host.BufferID) {
	owned, ok := s.lines[buf]
	if !ok {
		return
	}
	for line := range owned {
		s.svc.Remove(s.ns, buf, slotID(line))
	}
	delete(s.lines, buf)
}

// TotalWidthAt returns the combined display width of every overlay
// currently on the line, from any producer sharing the host's address
// space, excluding this store's own slot for the line. Used by the
// suppression policy to estimate how much of the row is already occupied.
func (s *Store) TotalWidthAt(buf host.BufferID, line int) int {
	total := 0
	for _, p := range s.svc.At(buf, line) {
		if p.Namespace == s.ns && p.ID == slotID(line) {
			continue
		}
		total += width.String(p.Text)
	}
	return total
}

// Lines returns the lines currently annotated for the buffer, in
// unspecified order.
func (s *Store) Lines(buf host.BufferID) []int {
	owned := s.lines[buf]
	out := make([]int, 0, len(owned))
	for line := range owned {
		out = append(out, line)
	}
	return out
}
