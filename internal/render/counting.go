package render

import "time"

// Counting is a renderer without a drawing backend. It counts frames and
// optionally sleeps to stand in for draw work, which is how benchmarks and
// headless runs exercise the loop.
type Counting struct {
	width, height int
	work          time.Duration
	counters
}

// NewCounting creates a counting renderer with the given viewport.
// work is the simulated time spent per frame (zero for none).
func NewCounting(width, height int, work time.Duration) *Counting {
	return &Counting{width: width, height: height, work: work}
}

// Render never fails.
func (c *Counting) Render() error {
	if c.work > 0 {
		time.Sleep(c.work)
	}
	c.commit()
	return nil
}

// Resize sets the viewport for the next frame.
func (c *Counting) Resize(width, height int) {
	c.width = width
	c.height = height
}

// Viewport returns the current viewport.
func (c *Counting) Viewport() (int, int) {
	return c.width, c.height
}

// Frames returns the number of frames rendered.
func (c *Counting) Frames() uint64 {
	return c.frames
}

// RenderCalls returns the number of successful render calls.
func (c *Counting) RenderCalls() uint64 {
	return c.calls
}
