// Package binding connects viewport-change notifications to the render
// engine and owns the global enable state. While enabled, every
// notification for a non-ignored buffer triggers a full render of the
// affected window; while disabled, notifications are no-ops because the
// engine's overlays were cleared on the way down. Ignored buffers are
// never rendered and never cleared; the binding leaves them untouched in
// both directions.
package binding

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/dshills/relnum/internal/event"
	"github.com/dshills/relnum/internal/host"
	"github.com/dshills/relnum/internal/render"
)

// Binding is the event-facing layer over one render engine.
// Not safe for concurrent use; the host delivers notifications serially.
type Binding struct {
	engine  *render.Engine
	buffers host.Buffers
	windows host.Windows
	logger  *log.Logger

	// enabled is the global enable flag. Initialized to true; mutated
	// only by Toggle; read on every notification.
	enabled bool

	bus *event.Bus
	sub event.Subscription
}

// Option configures a Binding.
type Option func(*Binding)

// WithLogger sets the logger for render failures and state transitions.
func WithLogger(logger *log.Logger) Option {
	return func(b *Binding) {
		b.logger = logger
	}
}

// New creates an enabled binding over the engine.
func New(engine *render.Engine, buffers host.Buffers, windows host.Windows, opts ...Option) *Binding {
	b := &Binding{
		engine:  engine,
		buffers: buffers,
		windows: windows,
		logger:  log.New(io.Discard),
		enabled: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach subscribes the binding to all viewport topics on the bus.
func (b *Binding) Attach(bus *event.Bus) {
	if b.bus != nil {
		b.Detach()
	}
	b.bus = bus
	b.sub = bus.Subscribe("viewport.**", b.handle)
}

// Detach removes the binding's subscription.
func (b *Binding) Detach() {
	if b.bus == nil {
		return
	}
	b.bus.Unsubscribe(b.sub)
	b.bus = nil
}

// Enabled reports the global enable flag.
func (b *Binding) Enabled() bool {
	return b.enabled
}

// Toggle flips the global enable flag for the window's buffer.
// Disabling clears every annotation for the buffer; enabling triggers an
// immediate render as if a viewport change had arrived. Ignored buffers
// are left untouched in both directions, and the flag still flips when
// the window is already closed.
func (b *Binding) Toggle(win host.WindowID) {
	b.enabled = !b.enabled
	b.logger.Debug("toggled", "enabled", b.enabled)

	buf, ok := b.windows.Buffer(win)
	if !ok {
		return
	}
	if b.ignored(buf) {
		return
	}

	if !b.enabled {
		b.engine.Store().ClearAll(buf)
		return
	}
	b.render(buf, win)
}

// handle is the bus subscriber for viewport notifications.
func (b *Binding) handle(_ event.Topic, ev event.Viewport) {
	if !b.enabled {
		return
	}
	if b.ignored(ev.Buffer) {
		return
	}
	b.render(ev.Buffer, ev.Window)
}

func (b *Binding) render(buf host.BufferID, win host.WindowID) {
	if err := b.engine.Render(buf, win); err != nil {
		b.logger.Error("render failed", "buffer", int(buf), "window", int(win), "err", err)
	}
}

func (b *Binding) ignored(buf host.BufferID) bool {
	return b.engine.Config().Ignored.Match(b.buffers.Filetype(buf))
}
