package sim

import "sync"

// Locked guards a State with a mutex so several goroutines can tick it.
// Each call holds the lock for the whole operation; there is no ordering
// between callers beyond that.
type Locked struct {
	mu    sync.Mutex
	state State
}

// NewLocked returns an empty mutex-guarded state.
func NewLocked() *Locked {
	return &Locked{}
}

// Advance is State.Advance under the lock.
func (l *Locked) Advance(delta float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Advance(delta)
}

// SetActivity is State.SetActivity under the lock.
func (l *Locked) SetActivity(id string, progress float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.SetActivity(id, progress)
}

// Snapshot returns a consistent copy of the guarded state.
func (l *Locked) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Snapshot()
}

// Ensure both variants satisfy Advancer
var (
	_ Advancer = (*State)(nil)
	_ Advancer = (*Locked)(nil)
)
