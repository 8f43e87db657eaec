package lesson

import "github.com/vovakirdan/liberty/internal/sim"

// Tracker keeps the simulation's activity pointed at one lesson and derives
// its progress from time spent against the lesson's minimum.
type Tracker struct {
	lesson Content
	begin  float64
}

// NewTracker tracks c from simulation time begin (seconds).
func NewTracker(c Content, begin float64) *Tracker {
	return &Tracker{lesson: c, begin: begin}
}

// Progress returns the fraction of the time requirement met at elapsed.
// A lesson without a time requirement is complete immediately.
func (t *Tracker) Progress(elapsed float64) float32 {
	need := float64(t.lesson.Completion.TimeSpentMinimum)
	if need <= 0 {
		return 1
	}
	spent := elapsed - t.begin
	if spent <= 0 {
		return 0
	}
	return float32(min(spent/need, 1))
}

// Update sets the activity from the state's current elapsed time.
func (t *Tracker) Update(st sim.Advancer) {
	snap := st.Snapshot()
	st.SetActivity(t.lesson.ID, t.Progress(snap.Elapsed))
}
