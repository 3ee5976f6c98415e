package render

import (
	"errors"
	"testing"

	"github.com/dshills/relnum/internal/config"
	"github.com/dshills/relnum/internal/format"
	"github.com/dshills/relnum/internal/host"
	"github.com/dshills/relnum/internal/overlay"
)

func newTestEngine(t *testing.T, h *host.Fake, opts config.Options) *Engine {
	t.Helper()
	cfg, err := config.Default().Merge(opts)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return New(h, h, overlay.New(h), cfg)
}

// annotations returns line -> text for the engine's own namespace.
func annotations(e *Engine, h *host.Fake, buf host.BufferID) map[int]string {
	out := make(map[int]string)
	for line, placed := range h.AllFor(buf) {
		for _, p := range placed {
			if p.Namespace == e.Store().Namespace() {
				out[line] = p.Text
			}
		}
	}
	return out
}

func intPtr(n int) *int    { return &n }
func boolPtr(b bool) *bool { return &b }

// Five lines, cursor on line 2, distance 1: the cursor line and both
// neighbors are suppressed by distance, the blank line stays hidden, and
// the outer lines show their relative offsets.
func TestRenderScenarioDistanceOne(t *testing.T) {
	h := host.NewFake()
	buf := h.AddBuffer("go", "a", "", "c", "d", "e")
	win := h.AddWindow(buf, 0, 4, 80, 2)
	e := newTestEngine(t, h, config.Options{})

	if err := e.Render(buf, win); err != nil {
		t.Fatalf("Render: %v", err)
	}

	got := annotations(e, h, buf)
	want := map[int]string{0: "2", 4: "2"}
	if len(got) != len(want) {
		t.Fatalf("annotations = %v, want %v", got, want)
	}
	for line, text := range want {
		if got[line] != text {
			t.Errorf("line %d = %q, want %q", line, got[line], text)
		}
	}
}

// Same buffer with distance 0 and the cursor line hidden: only the blank
// line and the cursor line stay suppressed.
func TestRenderScenarioDistanceZero(t *testing.T) {
	h := host.NewFake()
	buf := h.AddBuffer("go", "a", "", "c", "d", "e")
	win := h.AddWindow(buf, 0, 4, 80, 2)
	e := newTestEngine(t, h, config.Options{
		MinLineDistance:  intPtr(0),
		ShowOnCursorLine: boolPtr(false),
	})

	if err := e.Render(buf, win); err != nil {
		t.Fatalf("Render: %v", err)
	}

	got := annotations(e, h, buf)
	want := map[int]string{0: "2", 3: "1", 4: "2"}
	if len(got) != len(want) {
		t.Fatalf("annotations = %v, want %v", got, want)
	}
	for line, text := range want {
		if got[line] != text {
			t.Errorf("line %d = %q, want %q", line, got[line], text)
		}
	}
	if _, present := got[1]; present {
		t.Error("blank line 1 should stay suppressed")
	}
	if _, present := got[2]; present {
		t.Error("cursor line should stay suppressed via show_on_cursor_line")
	}
}

// Annotations never survive outside the most recently rendered range.
func TestRenderClearsOutsideVisibleRange(t *testing.T) {
	h := host.NewFake()
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "text"
	}
	buf := h.AddBuffer("go", lines...)
	win := h.AddWindow(buf, 0, 9, 80, 0)
	e := newTestEngine(t, h, config.Options{})

	if err := e.Render(buf, win); err != nil {
		t.Fatalf("Render: %v", err)
	}

	h.Scroll(win, 5, 14)
	h.MoveCursor(win, 5)
	if err := e.Render(buf, win); err != nil {
		t.Fatalf("Render after scroll: %v", err)
	}

	for line := range annotations(e, h, buf) {
		if line < 5 || line > 14 {
			t.Errorf("annotation at line %d outside visible range [5,14]", line)
		}
	}
}

// Stale annotations inside the still-visible range are removed when
// suppression newly applies, not just replaced.
func TestRenderRemovesNewlySuppressed(t *testing.T) {
	h := host.NewFake()
	buf := h.AddBuffer("go", "a", "b", "c", "d", "e", "f", "g")
	win := h.AddWindow(buf, 0, 6, 80, 0)
	e := newTestEngine(t, h, config.Options{})

	if err := e.Render(buf, win); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if _, present := annotations(e, h, buf)[5]; !present {
		t.Fatal("line 5 should be annotated with cursor at 0")
	}

	h.MoveCursor(win, 5)
	if err := e.Render(buf, win); err != nil {
		t.Fatalf("Render after move: %v", err)
	}
	got := annotations(e, h, buf)
	for _, line := range []int{4, 5, 6} {
		if _, present := got[line]; present {
			t.Errorf("line %d within distance of new cursor still annotated", line)
		}
	}
}

func TestRenderOverflowGuard(t *testing.T) {
	h := host.NewFake()
	long := make([]byte, 40)
	for i := range long {
		long[i] = 'x'
	}
	buf := h.AddBuffer("go", "short", string(long), "short2")
	win := h.AddWindow(buf, 0, 2, 40, 2)
	e := newTestEngine(t, h, config.Options{MinLineDistance: intPtr(0)})

	if err := e.Render(buf, win); err != nil {
		t.Fatalf("Render: %v", err)
	}

	got := annotations(e, h, buf)
	if _, present := got[0]; !present {
		t.Error("line 0 has room and should be annotated")
	}
	if _, present := got[1]; present {
		t.Error("line 1 fills the window and must be suppressed")
	}
}

func TestRenderCountsForeignOverlays(t *testing.T) {
	h := host.NewFake()
	buf := h.AddBuffer("go", "0123456789", "0123456789")
	win := h.AddWindow(buf, 0, 1, 30, 5) // cursor outside visible lines
	e := newTestEngine(t, h, config.Options{MinLineDistance: intPtr(0)})

	// A foreign diagnostic occupies 20 columns of line 0's row:
	// 10 (text) + 20 (overlay) >= 30 suppresses the annotation.
	h.Place("diagnostics", buf, 1, 0, "EOF expected: 20cols", "error")

	if err := e.Render(buf, win); err != nil {
		t.Fatalf("Render: %v", err)
	}

	got := annotations(e, h, buf)
	if _, present := got[0]; present {
		t.Error("line 0 crowded by a foreign overlay should be suppressed")
	}
	if _, present := got[1]; !present {
		t.Error("line 1 has room and should be annotated")
	}
}

func TestRenderIdempotent(t *testing.T) {
	h := host.NewFake()
	buf := h.AddBuffer("go", "a", "b", "c", "d", "e", "f")
	win := h.AddWindow(buf, 0, 5, 80, 3)
	e := newTestEngine(t, h, config.Options{})

	if err := e.Render(buf, win); err != nil {
		t.Fatalf("first render: %v", err)
	}
	first := annotations(e, h, buf)

	if err := e.Render(buf, win); err != nil {
		t.Fatalf("second render: %v", err)
	}
	second := annotations(e, h, buf)

	if len(first) != len(second) {
		t.Fatalf("annotation count changed: %d then %d", len(first), len(second))
	}
	for line, text := range first {
		if second[line] != text {
			t.Errorf("line %d changed from %q to %q", line, text, second[line])
		}
	}

	// Each line still holds exactly one overlay slot.
	for line, placed := range h.AllFor(buf) {
		if len(placed) != 1 {
			t.Errorf("line %d has %d overlays after re-render, want 1", line, len(placed))
		}
	}
}

func TestRenderClampsRange(t *testing.T) {
	h := host.NewFake()
	buf := h.AddBuffer("go", "a", "b", "c")
	win := h.AddWindow(buf, -5, 100, 80, 0)
	e := newTestEngine(t, h, config.Options{MinLineDistance: intPtr(0), ShowOnCursorLine: boolPtr(false)})

	if err := e.Render(buf, win); err != nil {
		t.Fatalf("Render: %v", err)
	}

	got := annotations(e, h, buf)
	if len(got) != 2 {
		t.Fatalf("annotations = %v, want lines 1 and 2 only", got)
	}
}

func TestRenderUnknownWindowAndBuffer(t *testing.T) {
	h := host.NewFake()
	buf := h.AddBuffer("go", "a", "b")
	win := h.AddWindow(buf, 0, 1, 80, 0)
	e := newTestEngine(t, h, config.Options{})

	if err := e.Render(host.BufferID(999), win); err != nil {
		t.Errorf("unknown buffer should no-op, got %v", err)
	}

	h.CloseWindow(win)
	if err := e.Render(buf, win); err != nil {
		t.Errorf("closed window should no-op, got %v", err)
	}
	if got := len(annotations(e, h, buf)); got != 0 {
		t.Errorf("no-op renders placed %d annotations", got)
	}
}

func TestRenderFormatterFailureAborts(t *testing.T) {
	h := host.NewFake()
	buf := h.AddBuffer("go", "a", "b", "c", "d", "e", "f", "g", "h")
	win := h.AddWindow(buf, 0, 7, 80, 7)

	failAt := errors.New("formatter exploded")
	fn := func(offset int) (format.Result, error) {
		if offset == -3 { // line 4 with cursor at 7
			return format.Result{}, failAt
		}
		return format.Default(offset)
	}
	e := newTestEngine(t, h, config.Options{Format: fn})

	err := e.Render(buf, win)
	if !errors.Is(err, failAt) {
		t.Fatalf("Render error = %v, want wrapped formatter error", err)
	}

	// Lines processed before the failure keep their annotations.
	got := annotations(e, h, buf)
	for _, line := range []int{0, 1, 2, 3} {
		if _, present := got[line]; !present {
			t.Errorf("line %d annotated before the failure was lost", line)
		}
	}
	for _, line := range []int{4, 5} {
		if _, present := got[line]; present {
			t.Errorf("line %d annotated after the aborted cycle", line)
		}
	}
}

func TestRenderEmptyBuffer(t *testing.T) {
	h := host.NewFake()
	buf := h.AddBuffer("go")
	win := h.AddWindow(buf, 0, 10, 80, 0)
	e := newTestEngine(t, h, config.Options{})

	if err := e.Render(buf, win); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := len(annotations(e, h, buf)); got != 0 {
		t.Errorf("empty buffer got %d annotations", got)
	}
}
