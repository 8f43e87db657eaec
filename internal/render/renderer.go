// Package render produces frames from simulation snapshots.
//
// A Renderer draws one frame per Render call and keeps two counters, frames
// and render calls, that only ever move together: a failed render leaves both
// untouched. Renderers report failures to the caller and never retry.
package render

import (
	"fmt"

	"github.com/vovakirdan/liberty/internal/sim"
)

// Renderer is the contract the frame driver renders through.
type Renderer interface {
	// Render draws one frame. On error the counters are unchanged.
	Render() error

	// Resize sets the viewport used by the next Render. It never renders.
	Resize(width, height int)

	// Viewport returns the current viewport dimensions.
	Viewport() (width, height int)

	// Frames returns the number of frames produced.
	Frames() uint64

	// RenderCalls returns the number of successful Render calls.
	RenderCalls() uint64
}

// Source supplies the state a frame is drawn from.
type Source interface {
	Snapshot() sim.Snapshot
}

// Kind classifies a render failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindDeviceLost
	KindSurfaceLost
	KindOutOfMemory
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindDeviceLost:
		return "device lost"
	case KindSurfaceLost:
		return "surface lost"
	case KindOutOfMemory:
		return "out of memory"
	default:
		return "unknown"
	}
}

// Error is a render failure of a given kind.
type Error struct {
	Kind Kind
	Err  error // Underlying cause, may be nil
}

// Sentinels for errors.Is checks against a failure kind.
var (
	ErrDeviceLost  = &Error{Kind: KindDeviceLost}
	ErrSurfaceLost = &Error{Kind: KindSurfaceLost}
	ErrOutOfMemory = &Error{Kind: KindOutOfMemory}
)

// NewError wraps cause as a render failure of the given kind.
func NewError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "render: " + e.Kind.String()
	}
	return fmt.Sprintf("render: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// counters holds the paired frame/render-call counts shared by renderers.
type counters struct {
	frames uint64
	calls  uint64
}

// commit records one successful render.
func (c *counters) commit() {
	c.frames++
	c.calls++
}
