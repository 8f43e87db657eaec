package window

import "fmt"

// Event is a lifecycle or input event delivered by a host, in the order the
// platform produced it.
type Event interface {
	isEvent()
}

// Close asks the run loop to stop. It is terminal: no tick follows it.
type Close struct{}

// Resize reports a new viewport size.
type Resize struct {
	Width, Height int
}

// KeyPress carries a key name. The loop forwards it without interpreting it.
type KeyPress struct {
	Key string
}

// MouseClick carries a click position in viewport coordinates.
type MouseClick struct {
	X, Y float32
}

func (Close) isEvent()      {}
func (Resize) isEvent()     {}
func (KeyPress) isEvent()   {}
func (MouseClick) isEvent() {}

func (Close) String() string        { return "close" }
func (e Resize) String() string     { return fmt.Sprintf("resize %dx%d", e.Width, e.Height) }
func (e KeyPress) String() string   { return fmt.Sprintf("key %q", e.Key) }
func (e MouseClick) String() string { return fmt.Sprintf("click (%.1f, %.1f)", e.X, e.Y) }
