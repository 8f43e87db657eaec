// Package driver glues simulation state, a renderer and a window host into
// the frame loop.
//
// Every tick samples the clock once, advances the state by the time since
// the previous sample, then renders. State advance always precedes render
// within a tick. Render failures are logged and the loop keeps going unless
// a consecutive-failure limit is configured.
package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/liberty/internal/render"
	"github.com/vovakirdan/liberty/internal/sim"
	"github.com/vovakirdan/liberty/internal/window"
)

// ErrTooManyFailures is returned by Run when the consecutive render failure
// limit is reached.
var ErrTooManyFailures = errors.New("driver: too many consecutive render failures")

// Updater runs after the state advanced and before the frame renders.
type Updater interface {
	Update(st sim.Advancer)
}

// UpdaterFunc adapts a function to Updater.
type UpdaterFunc func(st sim.Advancer)

func (f UpdaterFunc) Update(st sim.Advancer) { f(st) }

// InputSink receives key and mouse events. The driver does not interpret them.
type InputSink interface {
	Input(ev window.Event)
}

// Stats summarizes what a driver has done so far.
type Stats struct {
	Ticks               uint64
	RenderFailures      uint64
	ConsecutiveFailures int
	AdvanceErrors       uint64
	LastDelta           time.Duration
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(d *Driver) { d.clock = c }
}

// WithLogger sets the logger for per-tick problems.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithUpdaters adds post-advance updaters, run in order.
func WithUpdaters(u ...Updater) Option {
	return func(d *Driver) { d.updaters = append(d.updaters, u...) }
}

// WithInputSink forwards key and mouse events to s.
func WithInputSink(s InputSink) Option {
	return func(d *Driver) { d.input = s }
}

// WithMaxRenderFailures stops Run after n render failures in a row.
// Zero, the default, tolerates failures indefinitely.
func WithMaxRenderFailures(n int) Option {
	return func(d *Driver) { d.maxFailures = n }
}

// Driver runs one tick per host callback.
type Driver struct {
	state    sim.Advancer
	renderer render.Renderer
	clock    Clock
	logger   *log.Logger
	updaters []Updater
	input    InputSink

	maxFailures int
	last        time.Time
	stats       Stats
	fatal       error
	stop        context.CancelFunc
}

// New creates a driver. The first tick's delta is measured from now.
func New(state sim.Advancer, renderer render.Renderer, opts ...Option) *Driver {
	d := &Driver{
		state:    state,
		renderer: renderer,
		clock:    WallClock,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = log.Default()
	}
	d.last = d.clock.Now()
	return d
}

// Tick runs one frame: sample, advance, update, render.
func (d *Driver) Tick(_ window.View) {
	now := d.clock.Now()
	delta := now.Sub(d.last)
	d.last = now
	d.stats.Ticks++
	d.stats.LastDelta = delta

	if err := d.state.Advance(delta.Seconds()); err != nil {
		d.stats.AdvanceErrors++
		d.logger.Warn("state advance rejected", "delta", delta, "error", err)
	}

	for _, u := range d.updaters {
		u.Update(d.state)
	}

	if err := d.renderer.Render(); err != nil {
		d.stats.RenderFailures++
		d.stats.ConsecutiveFailures++
		d.logger.Error("render failed", "tick", d.stats.Ticks, "error", err)

		if d.maxFailures > 0 && d.stats.ConsecutiveFailures >= d.maxFailures && d.fatal == nil {
			d.fatal = fmt.Errorf("%w (%d): %w", ErrTooManyFailures, d.stats.ConsecutiveFailures, err)
			if d.stop != nil {
				d.stop()
			}
		}
		return
	}
	d.stats.ConsecutiveFailures = 0
}

// HandleEvent applies resizes to the renderer and forwards input.
func (d *Driver) HandleEvent(ev window.Event) {
	switch e := ev.(type) {
	case window.Resize:
		d.renderer.Resize(e.Width, e.Height)
		d.logger.Debug("viewport resized", "width", e.Width, "height", e.Height)
	case window.KeyPress, window.MouseClick:
		if d.input != nil {
			d.input.Input(ev)
		}
	}
}

// Run drives d from host until the host stops. A close request or an
// exhausted tick budget returns nil. Once the failure limit is reached the
// host is cancelled and Run returns an error wrapping ErrTooManyFailures.
func (d *Driver) Run(ctx context.Context, host window.Host) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	d.stop = cancel
	defer func() { d.stop = nil }()

	err := host.Run(ctx, d)
	if d.fatal != nil {
		return d.fatal
	}
	return err
}

// Stats returns a copy of the driver's counters.
func (d *Driver) Stats() Stats {
	return d.stats
}

// Ensure Driver can be handed to any host
var _ window.Handler = (*Driver)(nil)
