// Package render implements the visible-range annotation engine. A render
// takes a snapshot of one window's geometry, clears the engine's prior
// annotations across the visible range, and re-populates it line by line
// under the suppression policy. Renders are deterministic for a given
// snapshot and idempotent; a failed render is simply superseded by the
// next one.
package render

import (
	"fmt"
	"strings"

	"github.com/dshills/relnum/internal/config"
	"github.com/dshills/relnum/internal/host"
	"github.com/dshills/relnum/internal/overlay"
	"github.com/dshills/relnum/internal/policy"
	"github.com/dshills/relnum/internal/width"
)

// Engine renders annotations for windows onto a shared overlay store.
// Not safe for concurrent use; the host delivers events serially on one
// logical thread and a render always runs to completion before the next.
type Engine struct {
	buffers host.Buffers
	windows host.Windows
	store   *overlay.Store
	cfg     config.Config
}

// New creates an engine reading from the given host capabilities and
// writing through the given store.
func New(buffers host.Buffers, windows host.Windows, store *overlay.Store, cfg config.Config) *Engine {
	return &Engine{
		buffers: buffers,
		windows: windows,
		store:   store,
		cfg:     cfg,
	}
}

// SetConfig swaps the engine's configuration. Takes effect on the next
// render; in-flight renders never observe a mixed configuration because
// renders are never concurrent with reconfiguration.
func (e *Engine) SetConfig(cfg config.Config) {
	e.cfg = cfg
}

// Config returns the engine's current configuration.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Store returns the engine's overlay store.
func (e *Engine) Store() *overlay.Store {
	return e.store
}

// Render recomputes the annotations for one window over its buffer.
//
// Geometry queries against a closed window or buffer make the render a
// no-op. The visible range is clamped to the buffer's bounds, the range is
// cleared of stale annotations, and each line is evaluated in ascending
// order: blank state, text width, and occupied row width feed the
// suppression policy; surviving lines get a formatted annotation keyed to
// the line so repeated renders replace in place.
//
// A formatter error aborts the cycle and is returned; annotations written
// before the failure remain until the next successful render clears them.
func (e *Engine) Render(buf host.BufferID, win host.WindowID) error {
	count, ok := e.buffers.LineCount(buf)
	if !ok {
		return nil
	}
	first, last, ok := e.windows.VisibleRange(win)
	if !ok {
		return nil
	}
	viewWidth, ok := e.windows.Width(win)
	if !ok {
		return nil
	}
	cursor, ok := e.windows.CursorLine(win)
	if !ok {
		return nil
	}

	first, last = clampRange(first, last, count)

	// Stale annotations from a scrolled or shrunk view must not outlive
	// this render. An inverted range (nothing visible) clears everything.
	e.store.ClearOutside(buf, first, last)
	if first > last {
		return nil
	}
	e.store.ClearRange(buf, first, last)

	rules := e.cfg.Rules()
	for line := first; line <= last; line++ {
		text, _ := e.buffers.Line(buf, line)

		in := policy.Input{
			Line:          line,
			CursorLine:    cursor,
			Blank:         isBlank(text),
			ViewportWidth: viewWidth,
			LineWidth:     width.String(text),
			OverlayWidth:  e.store.TotalWidthAt(buf, line),
		}
		if policy.ShouldSuppress(in, rules) {
			continue
		}

		res, err := e.cfg.Format(line - cursor)
		if err != nil {
			return fmt.Errorf("render line %d: %w", line, err)
		}
		annText, annStyle := res.Normalize()
		e.store.SetAnnotation(buf, line, annText, annStyle)
	}

	return nil
}

// clampRange restricts [first, last] to valid indices of a buffer with
// count lines. Returns an inverted range when nothing is visible.
func clampRange(first, last, count int) (int, int) {
	if first < 0 {
		first = 0
	}
	if last > count-1 {
		last = count - 1
	}
	return first, last
}

// isBlank reports whether the line is empty or whitespace-only.
// Missing lines read as empty text and are therefore blank.
func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
