package driver

import "time"

// Clock supplies the current time. Deltas are computed with time.Time.Sub,
// which uses the monotonic reading when both times carry one.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// WallClock is the real-time clock used by default.
var WallClock Clock = wallClock{}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
