// Package term is a tcell frontend used by the relnum command: a
// read-only pager over one file that acts as the engine's host. It serves
// as the reference integration; an editor embedding the engine implements
// the same host interfaces against its own internals.
package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/relnum/internal/event"
	"github.com/dshills/relnum/internal/host"
	"github.com/dshills/relnum/internal/width"
)

// annotationGap is the number of columns between line text and an
// end-of-line overlay.
const annotationGap = 1

// Pager displays one buffer in one window and feeds viewport changes to
// an event bus.
type Pager struct {
	screen tcell.Screen

	lines    []string
	filetype string
	name     string

	top    int
	cursor int

	placed map[placedKey]host.Placed

	bus    *event.Bus
	buf    host.BufferID
	win    host.WindowID
	toggle func(host.WindowID)
}

type placedKey struct {
	ns string
	id int
}

// The single buffer and window the pager exposes.
const (
	pagerBuffer host.BufferID = 1
	pagerWindow host.WindowID = 1
)

// NewPager creates a pager over the given lines.
func NewPager(screen tcell.Screen, name, filetype string, lines []string) *Pager {
	return &Pager{
		screen:   screen,
		lines:    lines,
		filetype: filetype,
		name:     name,
		placed:   make(map[placedKey]host.Placed),
		buf:      pagerBuffer,
		win:      pagerWindow,
	}
}

// Bind attaches the pager to the bus it publishes viewport changes on and
// the toggle command it forwards F2 to.
func (p *Pager) Bind(bus *event.Bus, toggle func(host.WindowID)) {
	p.bus = bus
	p.toggle = toggle
}

// Line implements host.Buffers.
func (p *Pager) Line(buf host.BufferID, index int) (string, bool) {
	if buf != p.buf || index < 0 || index >= len(p.lines) {
		return "", false
	}
	return p.lines[index], true
}

// LineCount implements host.Buffers.
func (p *Pager) LineCount(buf host.BufferID) (int, bool) {
	if buf != p.buf {
		return 0, false
	}
	return len(p.lines), true
}

// Filetype implements host.Buffers.
func (p *Pager) Filetype(buf host.BufferID) string {
	if buf != p.buf {
		return ""
	}
	return p.filetype
}

// Buffer implements host.Windows.
func (p *Pager) Buffer(win host.WindowID) (host.BufferID, bool) {
	if win != p.win {
		return 0, false
	}
	return p.buf, true
}

// VisibleRange implements host.Windows.
func (p *Pager) VisibleRange(win host.WindowID) (int, int, bool) {
	if win != p.win {
		return 0, 0, false
	}
	return p.top, p.top + p.height() - 1, true
}

// Width implements host.Windows.
func (p *Pager) Width(win host.WindowID) (int, bool) {
	if win != p.win {
		return 0, false
	}
	w, _ := p.screen.Size()
	return w, true
}

// CursorLine implements host.Windows.
func (p *Pager) CursorLine(win host.WindowID) (int, bool) {
	if win != p.win {
		return 0, false
	}
	return p.cursor, true
}

// Place implements host.Overlays.
func (p *Pager) Place(ns string, buf host.BufferID, id, line int, text, style string) {
	if buf != p.buf {
		return
	}
	p.placed[placedKey{ns, id}] = host.Placed{
		Namespace: ns,
		ID:        id,
		Line:      line,
		Text:      text,
		Style:     style,
	}
}

// Remove implements host.Overlays.
func (p *Pager) Remove(ns string, buf host.BufferID, id int) {
	if buf != p.buf {
		return
	}
	delete(p.placed, placedKey{ns, id})
}

// At implements host.Overlays.
func (p *Pager) At(buf host.BufferID, line int) []host.Placed {
	if buf != p.buf {
		return nil
	}
	var out []host.Placed
	for _, pl := range p.placed {
		if pl.Line == line {
			out = append(out, pl)
		}
	}
	return out
}

// height is the number of text rows, leaving one row for the status line.
func (p *Pager) height() int {
	_, h := p.screen.Size()
	if h <= 1 {
		return 1
	}
	return h - 1
}

// Run enters the event loop and blocks until the user quits.
func (p *Pager) Run() {
	p.publish(event.TopicViewportEntered)
	p.draw()

	for {
		ev := p.screen.PollEvent()
		switch tev := ev.(type) {
		case *tcell.EventResize:
			p.screen.Sync()
			p.clampView()
			p.publish(event.TopicViewportScrolled)
		case *tcell.EventKey:
			if !p.handleKey(tev) {
				return
			}
		}
		p.draw()
	}
}

func (p *Pager) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		p.moveCursor(-1)
	case tcell.KeyDown:
		p.moveCursor(1)
	case tcell.KeyPgUp:
		p.moveCursor(-p.height())
	case tcell.KeyPgDn:
		p.moveCursor(p.height())
	case tcell.KeyHome:
		p.moveCursorTo(0)
	case tcell.KeyEnd:
		p.moveCursorTo(len(p.lines) - 1)
	case tcell.KeyF2:
		if p.toggle != nil {
			p.toggle(p.win)
		}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'k':
			p.moveCursor(-1)
		case 'j':
			p.moveCursor(1)
		case 'g':
			p.moveCursorTo(0)
		case 'G':
			p.moveCursorTo(len(p.lines) - 1)
		}
	}
	return true
}

func (p *Pager) moveCursor(delta int) {
	p.moveCursorTo(p.cursor + delta)
}

func (p *Pager) moveCursorTo(line int) {
	if line < 0 {
		line = 0
	}
	if line > len(p.lines)-1 {
		line = len(p.lines) - 1
	}
	if line == p.cursor {
		return
	}
	p.cursor = line

	scrolled := p.clampView()
	if scrolled {
		p.publish(event.TopicViewportScrolled)
		return
	}
	p.publish(event.TopicCursorMoved)
}

// clampView scrolls the viewport so the cursor stays visible. Reports
// whether the viewport moved.
func (p *Pager) clampView() bool {
	top := p.top
	if p.cursor < top {
		top = p.cursor
	}
	if bottom := top + p.height() - 1; p.cursor > bottom {
		top = p.cursor - p.height() + 1
	}
	if top < 0 {
		top = 0
	}
	if top == p.top {
		return false
	}
	p.top = top
	return true
}

func (p *Pager) publish(topic event.Topic) {
	if p.bus == nil {
		return
	}
	p.bus.Publish(topic, event.Viewport{Buffer: p.buf, Window: p.win})
}

func (p *Pager) draw() {
	p.screen.Clear()
	w, _ := p.screen.Size()

	for row := 0; row < p.height(); row++ {
		line := p.top + row
		if line >= len(p.lines) {
			break
		}

		style := tcell.StyleDefault
		if line == p.cursor {
			style = style.Bold(true)
		}
		col := drawText(p.screen, 0, row, w, p.lines[line], style)

		for _, pl := range p.At(p.buf, line) {
			col = drawText(p.screen, col+annotationGap, row, w, pl.Text, overlayStyle(pl.Style))
		}
	}

	p.drawStatus(w)
	p.screen.Show()
}

func (p *Pager) drawStatus(w int) {
	_, h := p.screen.Size()
	style := tcell.StyleDefault.Reverse(true)
	status := " " + p.name + "  (j/k move, F2 toggle, q quit)"
	col := drawText(p.screen, 0, h-1, w, status, style)
	for ; col < w; col++ {
		p.screen.SetContent(col, h-1, ' ', nil, style)
	}
}

// drawText writes s at (x, y) clipped to maxX and returns the column
// after the last cell written.
func drawText(s tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	for _, r := range text {
		if x >= maxX {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += width.String(string(r))
	}
	return x
}

// overlayStyle maps an annotation style tag to a terminal style.
func overlayStyle(tag string) tcell.Style {
	switch tag {
	case "relnum-above":
		return tcell.StyleDefault.Foreground(tcell.ColorTeal).Dim(true)
	case "relnum-below":
		return tcell.StyleDefault.Foreground(tcell.ColorOlive).Dim(true)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorGray).Dim(true)
	}
}
