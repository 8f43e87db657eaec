package lesson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/liberty/internal/sim"
)

func TestTrackerProgress(t *testing.T) {
	l := New("lesson_7", "Seven", "")
	l.Completion.TimeSpentMinimum = 10

	tr := NewTracker(l, 2)
	assert.Equal(t, float32(0), tr.Progress(1))
	assert.Equal(t, float32(0), tr.Progress(2))
	assert.InDelta(t, 0.5, tr.Progress(7), 1e-6)
	assert.Equal(t, float32(1), tr.Progress(12))
	assert.Equal(t, float32(1), tr.Progress(100))
}

func TestTrackerNoTimeRequirement(t *testing.T) {
	tr := NewTracker(New("quick", "Quick", ""), 0)
	assert.Equal(t, float32(1), tr.Progress(0))
}

func TestTrackerUpdatesActivity(t *testing.T) {
	l := New("lesson_8", "Eight", "")
	l.Completion.TimeSpentMinimum = 4
	st := sim.New()
	tr := NewTracker(l, 0)

	require.NoError(t, st.Advance(1))
	tr.Update(st)

	id, progress := st.Activity()
	assert.Equal(t, "lesson_8", id)
	assert.InDelta(t, 0.25, progress, 1e-6)
}
