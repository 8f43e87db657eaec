// Package sim holds the simulation state advanced once per frame.
// It has no knowledge of windows or rendering; the frame driver feeds it
// wall-clock deltas and renderers read snapshots of it.
package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrNegativeDelta is returned by Advance when the clock moved backwards.
var ErrNegativeDelta = errors.New("sim: negative time delta")

// Advancer is the narrow view of simulation state the frame driver needs.
type Advancer interface {
	Advance(delta float64) error
	SetActivity(id string, progress float32)
	Snapshot() Snapshot
}

// Snapshot is a value copy of the state at one point in time.
type Snapshot struct {
	Elapsed  float64 // Seconds since the first advance
	Frames   uint64  // Number of successful advances
	Activity string  // Identifier of the active content unit
	Progress float32 // Progress through the activity, stored as given
}

// State is the simulation state owned by a single frame driver.
// The zero value is ready to use.
type State struct {
	elapsed  float64
	frames   uint64
	activity string
	progress float32
}

// New returns an empty state.
func New() *State {
	return &State{}
}

// Advance moves the simulation forward by delta seconds and counts one frame.
// A negative (or NaN) delta is rejected and leaves the state untouched.
func (s *State) Advance(delta float64) error {
	if delta < 0 || math.IsNaN(delta) {
		return fmt.Errorf("%w: %v", ErrNegativeDelta, delta)
	}
	s.elapsed += delta
	s.frames++
	return nil
}

// SetActivity overwrites the current activity. Progress is not clamped.
func (s *State) SetActivity(id string, progress float32) {
	s.activity = id
	s.progress = progress
}

// Elapsed returns the accumulated simulation time in seconds.
func (s *State) Elapsed() float64 {
	return s.elapsed
}

// Frames returns the number of advances applied so far.
func (s *State) Frames() uint64 {
	return s.frames
}

// Activity returns the current activity identifier and progress.
func (s *State) Activity() (string, float32) {
	return s.activity, s.progress
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Elapsed:  s.elapsed,
		Frames:   s.frames,
		Activity: s.activity,
		Progress: s.progress,
	}
}
