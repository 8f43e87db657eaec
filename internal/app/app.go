// Package app composes simulation state, renderer, window host and frame
// driver from configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/liberty/internal/config"
	"github.com/vovakirdan/liberty/internal/driver"
	"github.com/vovakirdan/liberty/internal/lesson"
	"github.com/vovakirdan/liberty/internal/platform/tui"
	"github.com/vovakirdan/liberty/internal/render"
	"github.com/vovakirdan/liberty/internal/sim"
	"github.com/vovakirdan/liberty/internal/window"
)

// HostFactory creates the window host for a run. The renderer is passed so
// interactive hosts can display its frames.
type HostFactory func(cfg config.AppConfig, frames *render.ScreenRenderer) (window.Host, error)

// Options carries collaborators that do not come from configuration.
type Options struct {
	Logger  *log.Logger
	Catalog *lesson.Catalog // Loaded from cfg.LessonsPath when nil
	Clock   driver.Clock    // Wall clock when nil
	Host    HostFactory     // Chosen from cfg.Headless when nil
	RunID   string          // Generated when empty
}

// Report summarizes a finished run.
type Report struct {
	RunID       string
	Frames      uint64
	RenderCalls uint64
	Elapsed     float64
	Width       int
	Height      int
	Activity    string
	Progress    float32
	Inputs      int
	Stats       driver.Stats
}

// App is one composed frame loop. It runs once.
type App struct {
	cfg      config.AppConfig
	logger   *log.Logger
	runID    string
	state    *sim.State
	renderer *render.ScreenRenderer
	host     window.Host
	driver   *driver.Driver
	inputs   int
}

// Build validates cfg and wires every component. Any error here is a
// construction failure.
func Build(cfg config.AppConfig, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		cfg:    cfg,
		logger: opts.Logger,
		runID:  opts.RunID,
		state:  sim.New(),
	}
	if a.logger == nil {
		a.logger = log.Default()
	}
	if a.runID == "" {
		a.runID = uuid.NewString()
	}
	a.logger = a.logger.With("run", a.runID)

	screenOpts := render.ScreenOptions{Title: cfg.Title}
	if cfg.Headless {
		screenOpts.CellWidth = cfg.Window.CellWidth
		screenOpts.CellHeight = cfg.Window.CellHeight
	}
	a.renderer = render.NewScreenRenderer(a.state, cfg.Window.Width, cfg.Window.Height, screenOpts)

	newHost := opts.Host
	if newHost == nil {
		newHost = DefaultHost
	}
	host, err := newHost(cfg, a.renderer)
	if err != nil {
		return nil, fmt.Errorf("app: cannot create window host: %w", err)
	}
	a.host = host
	a.renderer.Resize(host.Size())

	driverOpts := []driver.Option{
		driver.WithLogger(a.logger),
		driver.WithInputSink(a),
		driver.WithMaxRenderFailures(cfg.Loop.MaxRenderFailures),
	}
	if opts.Clock != nil {
		driverOpts = append(driverOpts, driver.WithClock(opts.Clock))
	}

	if cfg.Lesson != "" {
		catalog := opts.Catalog
		if catalog == nil {
			catalog, err = lesson.Load(cfg.LessonsPath)
			if err != nil {
				return nil, fmt.Errorf("app: cannot load lessons: %w", err)
			}
		}
		l, ok := catalog.Lookup(cfg.Lesson)
		if !ok {
			return nil, fmt.Errorf("app: unknown lesson %q", cfg.Lesson)
		}
		a.state.SetActivity(l.ID, 0)
		driverOpts = append(driverOpts, driver.WithUpdaters(lesson.NewTracker(l, a.state.Elapsed())))
	}

	a.driver = driver.New(a.state, a.renderer, driverOpts...)
	return a, nil
}

// DefaultHost picks the headless or terminal host from cfg.
func DefaultHost(cfg config.AppConfig, frames *render.ScreenRenderer) (window.Host, error) {
	if cfg.Headless {
		return window.NewHeadless(window.HeadlessConfig{
			Title:    cfg.Title,
			Width:    cfg.Window.Width,
			Height:   cfg.Window.Height,
			Ticks:    cfg.Loop.Ticks,
			Interval: cfg.Loop.TickInterval(),
		}), nil
	}
	return tui.NewHost(tui.Config{
		Title:          cfg.Title,
		TickRate:       cfg.Loop.TickRate,
		ShowHelp:       true,
		ProgramOptions: []tea.ProgramOption{tea.WithAltScreen()},
	}, frames), nil
}

// Input receives key and mouse events from the driver.
func (a *App) Input(ev window.Event) {
	a.inputs++
	a.logger.Debug("input", "event", ev)
}

// Host returns the window host the app runs on.
func (a *App) Host() window.Host {
	return a.host
}

// Run drives the loop until the host stops. Cancelling ctx counts as a close
// request; only a failure escalation or host error is returned.
func (a *App) Run(ctx context.Context) (Report, error) {
	w, h := a.host.Size()
	a.logger.Info("frame loop starting", "title", a.cfg.Title, "width", w, "height", h, "headless", a.cfg.Headless)

	err := a.driver.Run(ctx, a.host)
	if errors.Is(err, context.Canceled) && !errors.Is(err, driver.ErrTooManyFailures) {
		err = nil
	}

	report := a.Report()
	if err != nil {
		a.logger.Error("frame loop failed", "error", err, "frames", report.Frames)
		return report, err
	}
	a.logger.Info("frame loop stopped", "frames", report.Frames, "elapsed", report.Elapsed, "render_failures", report.Stats.RenderFailures)
	return report, nil
}

// Report returns the current counters.
func (a *App) Report() Report {
	snap := a.state.Snapshot()
	w, h := a.renderer.Viewport()
	return Report{
		RunID:       a.runID,
		Frames:      snap.Frames,
		RenderCalls: a.renderer.RenderCalls(),
		Elapsed:     snap.Elapsed,
		Width:       w,
		Height:      h,
		Activity:    snap.Activity,
		Progress:    snap.Progress,
		Inputs:      a.inputs,
		Stats:       a.driver.Stats(),
	}
}
