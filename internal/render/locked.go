package render

import "sync"

// Locked serializes access to a Renderer shared between goroutines.
type Locked struct {
	mu    sync.Mutex
	inner Renderer
}

// NewLocked wraps r. r must not be used directly afterwards.
func NewLocked(r Renderer) *Locked {
	return &Locked{inner: r}
}

func (l *Locked) Render() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Render()
}

func (l *Locked) Resize(width, height int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inner.Resize(width, height)
}

func (l *Locked) Viewport() (int, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Viewport()
}

func (l *Locked) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Frames()
}

func (l *Locked) RenderCalls() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.RenderCalls()
}

// Ensure all renderers implement Renderer
var (
	_ Renderer = (*Counting)(nil)
	_ Renderer = (*ScreenRenderer)(nil)
	_ Renderer = (*Locked)(nil)
)
