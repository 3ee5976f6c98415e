// Package app wires the engine together: overlay store, render engine,
// event bus, and binding layer over a caller-supplied host. It is the
// setup and toggle surface a frontend embeds.
package app

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/dshills/relnum/internal/binding"
	"github.com/dshills/relnum/internal/config"
	"github.com/dshills/relnum/internal/event"
	"github.com/dshills/relnum/internal/host"
	"github.com/dshills/relnum/internal/overlay"
	"github.com/dshills/relnum/internal/render"
)

// App is an assembled annotation engine bound to one host.
type App struct {
	bus     *event.Bus
	engine  *render.Engine
	binding *binding.Binding
	logger  *log.Logger
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger used by the binding layer and the bus panic
// handler.
func WithLogger(logger *log.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// New assembles an engine over the host with the default configuration
// and subscribes it to a fresh bus. The returned App is enabled.
func New(h host.Host, opts ...Option) *App {
	a := &App{
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.engine = render.New(h, h, overlay.New(h), config.Default())
	a.binding = binding.New(a.engine, h, h, binding.WithLogger(a.logger))

	a.bus = event.NewBus()
	a.bus.PanicHandler = func(topic event.Topic, recovered any) {
		a.logger.Error("handler panic", "topic", topic.String(), "panic", recovered)
	}
	a.binding.Attach(a.bus)

	return a
}

// Setup merges options over the current configuration. The merged value
// takes effect on the next render; on error the prior configuration is
// kept.
func (a *App) Setup(o config.Options) error {
	cfg, err := a.engine.Config().Merge(o)
	if err != nil {
		return err
	}
	a.engine.SetConfig(cfg)
	return nil
}

// Bus returns the bus the host publishes viewport notifications on.
func (a *App) Bus() *event.Bus {
	return a.bus
}

// Toggle flips the global enable flag for the window's buffer. This is
// the command surface exposed to the host.
func (a *App) Toggle(win host.WindowID) {
	a.binding.Toggle(win)
}

// Enabled reports the global enable flag.
func (a *App) Enabled() bool {
	return a.binding.Enabled()
}

// Config returns the effective configuration.
func (a *App) Config() config.Config {
	return a.engine.Config()
}
