package sim

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockedConcurrentAdvance(t *testing.T) {
	const (
		workers = 8
		perG    = 250
	)
	l := NewLocked()

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perG {
				assert.NoError(t, l.Advance(0.001))
			}
		}()
	}
	wg.Wait()

	snap := l.Snapshot()
	assert.Equal(t, uint64(workers*perG), snap.Frames)
	assert.InDelta(t, float64(workers*perG)*0.001, snap.Elapsed, 1e-6)
}

func TestLockedRejectsNegative(t *testing.T) {
	l := NewLocked()
	require.ErrorIs(t, l.Advance(-1), ErrNegativeDelta)
	assert.Equal(t, uint64(0), l.Snapshot().Frames)
}

func TestLockedSetActivity(t *testing.T) {
	l := NewLocked()
	l.SetActivity("lesson_7", 0.5)
	l.SetActivity("lesson_8", 1.0)

	snap := l.Snapshot()
	assert.Equal(t, "lesson_8", snap.Activity)
	assert.Equal(t, float32(1.0), snap.Progress)
}
