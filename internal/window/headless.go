package window

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrQueueFull is returned by Send when the event queue has no room.
var ErrQueueFull = errors.New("window: event queue full")

// HeadlessConfig controls the windowless host.
type HeadlessConfig struct {
	Title         string
	Width, Height int

	// Ticks is the number of iterations to run. Zero runs until Close or
	// context cancellation.
	Ticks int

	// Interval is the spacing between ticks. Zero means 60Hz.
	Interval time.Duration

	// QueueSize is the capacity of the pending event queue.
	QueueSize int
}

// DefaultHeadlessConfig returns an 800x600 host running 60 ticks at 60Hz.
func DefaultHeadlessConfig() HeadlessConfig {
	return HeadlessConfig{
		Title:     "Learn Liberty",
		Width:     800,
		Height:    600,
		Ticks:     60,
		Interval:  time.Second / 60,
		QueueSize: 64,
	}
}

// Headless is a Host with no platform window. Events are injected with Send
// and ticks fire on a fixed interval, which makes runs deterministic in
// count if not in timing.
type Headless struct {
	cfg    HeadlessConfig
	events chan Event

	mu            sync.RWMutex
	width, height int
	ticks         int

	Lifecycle
}

// NewHeadless creates a headless host.
func NewHeadless(cfg HeadlessConfig) *Headless {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second / 60
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	return &Headless{
		cfg:    cfg,
		events: make(chan Event, cfg.QueueSize),
		width:  cfg.Width,
		height: cfg.Height,
	}
}

// Title returns the window title.
func (h *Headless) Title() string {
	return h.cfg.Title
}

// Size returns the current viewport.
func (h *Headless) Size() (int, int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.width, h.height
}

// Ticks returns how many ticks have fired.
func (h *Headless) Ticks() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ticks
}

// Send queues an event for the next iteration. Safe for concurrent use.
func (h *Headless) Send(ev Event) error {
	select {
	case h.events <- ev:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run drives h until its tick budget is spent, a Close event is drained, or
// ctx is done. Each iteration waits one interval, delivers every queued
// event in order and then ticks once.
func (h *Headless) Run(ctx context.Context, handler Handler) error {
	if err := h.Start(); err != nil {
		return err
	}
	defer h.Finish()

	ticker := time.NewTicker(h.cfg.Interval)
	defer ticker.Stop()

	for h.cfg.Ticks == 0 || h.Ticks() < h.cfg.Ticks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		// A slow tick leaves both channels ready; cancellation wins.
		if err := ctx.Err(); err != nil {
			return err
		}

		if h.drain(handler) {
			h.Closing()
			return nil
		}

		handler.Tick(h)

		h.mu.Lock()
		h.ticks++
		h.mu.Unlock()
	}
	return nil
}

// drain delivers pending events and reports whether a Close was seen.
// Events queued behind a Close are dropped.
func (h *Headless) drain(handler Handler) bool {
	for {
		select {
		case ev := <-h.events:
			switch e := ev.(type) {
			case Close:
				return true
			case Resize:
				h.mu.Lock()
				h.width, h.height = e.Width, e.Height
				h.mu.Unlock()
			}
			handler.HandleEvent(ev)
		default:
			return false
		}
	}
}

// Ensure Headless implements Host
var _ Host = (*Headless)(nil)
