package host

// Fake is an in-memory Host implementation for tests and headless use.
// It is not safe for concurrent use; the engine's execution model is
// single-threaded and the fake matches it.
type Fake struct {
	buffers map[BufferID]*fakeBuffer
	windows map[WindowID]*fakeWindow
	placed  map[placedKey]Placed

	nextBuf BufferID
	nextWin WindowID
}

type fakeBuffer struct {
	lines    []string
	filetype string
}

type fakeWindow struct {
	buf    BufferID
	first  int
	last   int
	width  int
	cursor int
	closed bool
}

type placedKey struct {
	ns  string
	buf BufferID
	id  int
}

// NewFake creates an empty fake host.
func NewFake() *Fake {
	return &Fake{
		buffers: make(map[BufferID]*fakeBuffer),
		windows: make(map[WindowID]*fakeWindow),
		placed:  make(map[placedKey]Placed),
	}
}

// AddBuffer registers a buffer with the given lines and filetype and
// returns its ID.
func (f *Fake) AddBuffer(filetype string, lines ...string) BufferID {
	f.nextBuf++
	f.buffers[f.nextBuf] = &fakeBuffer{lines: lines, filetype: filetype}
	return f.nextBuf
}

// SetLines replaces the content of a buffer.
func (f *Fake) SetLines(buf BufferID, lines ...string) {
	if b, ok := f.buffers[buf]; ok {
		b.lines = lines
	}
}

// AddWindow opens a window onto buf with the given geometry and returns
// its ID.
func (f *Fake) AddWindow(buf BufferID, first, last, width, cursor int) WindowID {
	f.nextWin++
	f.windows[f.nextWin] = &fakeWindow{buf: buf, first: first, last: last, width: width, cursor: cursor}
	return f.nextWin
}

// MoveCursor positions the cursor of a window.
func (f *Fake) MoveCursor(win WindowID, line int) {
	if w, ok := f.windows[win]; ok {
		w.cursor = line
	}
}

// Scroll sets the visible range of a window.
func (f *Fake) Scroll(win WindowID, first, last int) {
	if w, ok := f.windows[win]; ok {
		w.first, w.last = first, last
	}
}

// Resize sets the display width of a window.
func (f *Fake) Resize(win WindowID, width int) {
	if w, ok := f.windows[win]; ok {
		w.width = width
	}
}

// CloseWindow marks a window closed; geometry queries report ok=false
// afterward.
func (f *Fake) CloseWindow(win WindowID) {
	if w, ok := f.windows[win]; ok {
		w.closed = true
	}
}

// Line implements Buffers.
func (f *Fake) Line(buf BufferID, index int) (string, bool) {
	b, ok := f.buffers[buf]
	if !ok || index < 0 || index >= len(b.lines) {
		return "", false
	}
	return b.lines[index], true
}

// LineCount implements Buffers.
func (f *Fake) LineCount(buf BufferID) (int, bool) {
	b, ok := f.buffers[buf]
	if !ok {
		return 0, false
	}
	return len(b.lines), true
}

// Filetype implements Buffers.
func (f *Fake) Filetype(buf BufferID) string {
	b, ok := f.buffers[buf]
	if !ok {
		return ""
	}
	return b.filetype
}

// Buffer implements Windows.
func (f *Fake) Buffer(win WindowID) (BufferID, bool) {
	w, ok := f.window(win)
	if !ok {
		return 0, false
	}
	return w.buf, true
}

// VisibleRange implements Windows.
func (f *Fake) VisibleRange(win WindowID) (int, int, bool) {
	w, ok := f.window(win)
	if !ok {
		return 0, 0, false
	}
	return w.first, w.last, true
}

// Width implements Windows.
func (f *Fake) Width(win WindowID) (int, bool) {
	w, ok := f.window(win)
	if !ok {
		return 0, false
	}
	return w.width, true
}

// CursorLine implements Windows.
func (f *Fake) CursorLine(win WindowID) (int, bool) {
	w, ok := f.window(win)
	if !ok {
		return 0, false
	}
	return w.cursor, true
}

func (f *Fake) window(win WindowID) (*fakeWindow, bool) {
	w, ok := f.windows[win]
	if !ok || w.closed {
		return nil, false
	}
	return w, true
}

// Place implements Overlays.
func (f *Fake) Place(ns string, buf BufferID, id, line int, text, style string) {
	f.placed[placedKey{ns, buf, id}] = Placed{
		Namespace: ns,
		ID:        id,
		Line:      line,
		Text:      text,
		Style:     style,
	}
}

// Remove implements Overlays.
func (f *Fake) Remove(ns string, buf BufferID, id int) {
	delete(f.placed, placedKey{ns, buf, id})
}

// At implements Overlays.
func (f *Fake) At(buf BufferID, line int) []Placed {
	var out []Placed
	for k, p := range f.placed {
		if k.buf == buf && p.Line == line {
			out = append(out, p)
		}
	}
	return out
}

// AllFor returns every overlay present for a buffer, keyed by line.
// Test helper; not part of the Overlays contract.
func (f *Fake) AllFor(buf BufferID) map[int][]Placed {
	out := make(map[int][]Placed)
	for k, p := range f.placed {
		if k.buf == buf {
			out[p.Line] = append(out[p.Line], p)
		}
	}
	return out
}
