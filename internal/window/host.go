// Package window defines the host that owns the platform window and drives
// the frame loop, plus a headless host for tests and benchmarks.
//
// A host pumps platform events, turns a close request into loop
// termination, and calls its Handler once per iteration. Interactive hosts
// live in platform packages; all of them satisfy Host so the loop can be
// composed against either at startup.
package window

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrHostConsumed is returned by Run on a host that has already run.
var ErrHostConsumed = errors.New("window: host already run")

// View is the read-only window information a tick may inspect.
type View interface {
	Title() string
	Size() (width, height int)
}

// Handler receives what a host produces. Both methods run on the goroutine
// that called Run, never concurrently.
type Handler interface {
	// Tick is called once per loop iteration, after that iteration's events.
	Tick(v View)

	// HandleEvent receives every non-close event in FIFO order.
	HandleEvent(ev Event)
}

// Host owns a window and its event loop.
type Host interface {
	View

	// Run blocks until the window closes, the host's tick budget is spent,
	// or ctx is done. A host runs at most once.
	Run(ctx context.Context, h Handler) error

	// Phase reports where the host is in its lifecycle.
	Phase() Phase
}

// Phase is the run-loop lifecycle state of a host.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseClosing
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseClosing:
		return "closing"
	case PhaseClosed:
		return "closed"
	default:
		return fmt.Sprintf("phase(%d)", int32(p))
	}
}

// HandlerFuncs adapts plain functions to Handler. Nil fields are skipped.
type HandlerFuncs struct {
	OnTick  func(v View)
	OnEvent func(ev Event)
}

func (f HandlerFuncs) Tick(v View) {
	if f.OnTick != nil {
		f.OnTick(v)
	}
}

func (f HandlerFuncs) HandleEvent(ev Event) {
	if f.OnEvent != nil {
		f.OnEvent(ev)
	}
}

// Lifecycle tracks a host's Phase. Hosts embed it to share the
// Idle -> Running -> Closing -> Closed transitions.
type Lifecycle struct {
	phase atomic.Int32
}

// Start moves Idle to Running. It fails if the host has run before.
func (l *Lifecycle) Start() error {
	if !l.phase.CompareAndSwap(int32(PhaseIdle), int32(PhaseRunning)) {
		return ErrHostConsumed
	}
	return nil
}

// Closing records that a close request was observed.
func (l *Lifecycle) Closing() {
	l.phase.CompareAndSwap(int32(PhaseRunning), int32(PhaseClosing))
}

// Finish marks the host closed. Closed is never left.
func (l *Lifecycle) Finish() {
	l.phase.Store(int32(PhaseClosed))
}

// Phase returns the current phase.
func (l *Lifecycle) Phase() Phase {
	return Phase(l.phase.Load())
}
