package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateDefault(t *testing.T) {
	s := New()

	assert.Equal(t, uint64(0), s.Frames())
	assert.Equal(t, 0.0, s.Elapsed())
	id, progress := s.Activity()
	assert.Empty(t, id)
	assert.Equal(t, float32(0), progress)
}

func TestStateAdvanceSingle(t *testing.T) {
	var s State

	require.NoError(t, s.Advance(0.016))

	assert.Equal(t, uint64(1), s.Frames())
	assert.Equal(t, 0.016, s.Elapsed())
}

func TestStateAdvanceTenFrames(t *testing.T) {
	s := New()

	for i := 1; i <= 10; i++ {
		require.NoError(t, s.Advance(0.016))
		assert.Equal(t, uint64(i), s.Frames())
		assert.InDelta(t, float64(i)*0.016, s.Elapsed(), 1e-9)
	}

	assert.InDelta(t, 0.16, s.Elapsed(), 1e-9)
}

func TestStateElapsedIsSumOfDeltas(t *testing.T) {
	tests := []struct {
		name   string
		deltas []float64
	}{
		{"empty", nil},
		{"zeros", []float64{0, 0, 0}},
		{"uneven", []float64{0.001, 0.5, 0.0333, 2, 0}},
		{"many small", repeat(1.0/60.0, 600)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			sum := 0.0
			for _, d := range tt.deltas {
				require.NoError(t, s.Advance(d))
				sum += d
			}
			assert.Equal(t, uint64(len(tt.deltas)), s.Frames())
			assert.InDelta(t, sum, s.Elapsed(), 1e-9*float64(len(tt.deltas)+1))
		})
	}
}

func TestStateAdvanceRejectsNegative(t *testing.T) {
	s := New()
	require.NoError(t, s.Advance(0.5))

	err := s.Advance(-0.1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNegativeDelta))

	// State is untouched by the rejected call
	assert.Equal(t, uint64(1), s.Frames())
	assert.Equal(t, 0.5, s.Elapsed())

	err = s.Advance(math.NaN())
	assert.ErrorIs(t, err, ErrNegativeDelta)
	assert.Equal(t, uint64(1), s.Frames())
}

func TestStateSetActivityLastWriteWins(t *testing.T) {
	s := New()

	s.SetActivity("lesson_7", 0.5)
	s.SetActivity("lesson_8", 1.0)

	id, progress := s.Activity()
	assert.Equal(t, "lesson_8", id)
	assert.Equal(t, float32(1.0), progress)
}

func TestStateSetActivityDoesNotClamp(t *testing.T) {
	s := New()

	s.SetActivity("overshoot", 1.5)
	_, progress := s.Activity()
	assert.Equal(t, float32(1.5), progress)

	s.SetActivity("undershoot", -0.25)
	_, progress = s.Activity()
	assert.Equal(t, float32(-0.25), progress)
}

func TestStateSnapshotIsCopy(t *testing.T) {
	s := New()
	s.SetActivity("lesson_1", 0.25)
	require.NoError(t, s.Advance(1))

	snap := s.Snapshot()
	require.NoError(t, s.Advance(1))

	assert.Equal(t, Snapshot{Elapsed: 1, Frames: 1, Activity: "lesson_1", Progress: 0.25}, snap)
	assert.Equal(t, uint64(2), s.Frames())
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func BenchmarkStateAdvance(b *testing.B) {
	s := New()
	for b.Loop() {
		_ = s.Advance(0.016)
	}
}
