package driver

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/liberty/internal/render"
	"github.com/vovakirdan/liberty/internal/sim"
	"github.com/vovakirdan/liberty/internal/window"
)

// stepClock advances by a fixed step on every Now call after the first.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// callLog records calls from the state and renderer doubles in order.
type callLog struct {
	calls []string
}

type recordingState struct {
	*sim.State
	log *callLog
}

func (s recordingState) Advance(delta float64) error {
	s.log.calls = append(s.log.calls, "advance")
	return s.State.Advance(delta)
}

type recordingRenderer struct {
	*render.Counting
	log  *callLog
	fail func(call int) error
	n    int
}

func (r *recordingRenderer) Render() error {
	r.n++
	r.log.calls = append(r.log.calls, "render")
	if r.fail != nil {
		if err := r.fail(r.n); err != nil {
			return err
		}
	}
	return r.Counting.Render()
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func fastHost(ticks int) *window.Headless {
	cfg := window.DefaultHeadlessConfig()
	cfg.Ticks = ticks
	cfg.Interval = time.Millisecond
	return window.NewHeadless(cfg)
}

func TestDriverDeltaFromConstruction(t *testing.T) {
	clock := &stepClock{now: time.Unix(1000, 0), step: 20 * time.Millisecond}
	st := sim.New()
	d := New(st, render.NewCounting(800, 600, 0), WithClock(clock), WithLogger(quietLogger()))

	d.Tick(nil)
	assert.InDelta(t, 0.020, st.Elapsed(), 1e-9, "first delta is measured from New")

	d.Tick(nil)
	d.Tick(nil)
	assert.Equal(t, uint64(3), st.Frames())
	assert.InDelta(t, 0.060, st.Elapsed(), 1e-9)
	assert.Equal(t, 20*time.Millisecond, d.Stats().LastDelta)
}

func TestDriverAdvanceBeforeRender(t *testing.T) {
	calls := &callLog{}
	st := recordingState{State: sim.New(), log: calls}
	r := &recordingRenderer{Counting: render.NewCounting(800, 600, 0), log: calls}
	d := New(st, r, WithLogger(quietLogger()))

	require.NoError(t, d.Run(context.Background(), fastHost(25)))

	require.Len(t, calls.calls, 50)
	for i := 0; i < len(calls.calls); i += 2 {
		assert.Equal(t, "advance", calls.calls[i], "call %d", i)
		assert.Equal(t, "render", calls.calls[i+1], "call %d", i+1)
	}
}

func TestDriverRenderSeesAdvancedState(t *testing.T) {
	st := sim.New()
	var seen []uint64
	r := &recordingRenderer{
		Counting: render.NewCounting(800, 600, 0),
		log:      &callLog{},
		fail: func(int) error {
			seen = append(seen, st.Frames())
			return nil
		},
	}
	d := New(st, r, WithLogger(quietLogger()))

	for range 4 {
		d.Tick(nil)
	}
	assert.Equal(t, []uint64{1, 2, 3, 4}, seen)
}

func TestDriverRenderFailureIsNonFatal(t *testing.T) {
	st := sim.New()
	r := &recordingRenderer{
		Counting: render.NewCounting(800, 600, 0),
		log:      &callLog{},
		fail: func(n int) error {
			if n == 3 {
				return render.NewError(render.KindSurfaceLost, nil)
			}
			return nil
		},
	}
	d := New(st, r, WithLogger(quietLogger()))

	require.NoError(t, d.Run(context.Background(), fastHost(10)))

	assert.Equal(t, uint64(10), st.Frames())
	assert.Equal(t, uint64(9), r.Frames())
	assert.Equal(t, r.Frames(), r.RenderCalls())
	stats := d.Stats()
	assert.Equal(t, uint64(10), stats.Ticks)
	assert.Equal(t, uint64(1), stats.RenderFailures)
	assert.Equal(t, 0, stats.ConsecutiveFailures)
}

func TestDriverEscalatesConsecutiveFailures(t *testing.T) {
	lost := render.NewError(render.KindDeviceLost, errors.New("gpu reset"))
	r := &recordingRenderer{
		Counting: render.NewCounting(800, 600, 0),
		log:      &callLog{},
		fail: func(n int) error {
			if n >= 4 {
				return lost
			}
			return nil
		},
	}
	d := New(sim.New(), r, WithLogger(quietLogger()), WithMaxRenderFailures(3))

	err := d.Run(context.Background(), fastHost(0))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyFailures)
	assert.ErrorIs(t, err, render.ErrDeviceLost)
	assert.Equal(t, uint64(3), r.Frames())
	assert.GreaterOrEqual(t, d.Stats().RenderFailures, uint64(3))
}

func TestDriverStopsRenderingAfterEscalation(t *testing.T) {
	for range 10 {
		lost := render.NewError(render.KindSurfaceLost, errors.New("surface gone"))
		r := &recordingRenderer{
			Counting: render.NewCounting(800, 600, 0),
			log:      &callLog{},
			fail: func(int) error {
				time.Sleep(3 * time.Millisecond)
				return lost
			},
		}
		d := New(sim.New(), r, WithLogger(quietLogger()), WithMaxRenderFailures(2))

		err := d.Run(context.Background(), fastHost(0))

		require.ErrorIs(t, err, ErrTooManyFailures)
		require.Equal(t, 2, r.n, "render after the failure limit")
		require.Equal(t, uint64(2), d.Stats().Ticks)
	}
}

func TestDriverBackwardClockIsRejected(t *testing.T) {
	times := []time.Time{
		time.Unix(100, 0),
		time.Unix(101, 0),
		time.Unix(100, 500_000_000),
		time.Unix(102, 0),
	}
	i := 0
	clock := ClockFunc(func() time.Time {
		t := times[i]
		i++
		return t
	})
	st := sim.New()
	r := render.NewCounting(800, 600, 0)
	d := New(st, r, WithClock(clock), WithLogger(quietLogger()))

	d.Tick(nil)
	d.Tick(nil)
	d.Tick(nil)

	assert.Equal(t, uint64(2), st.Frames())
	assert.InDelta(t, 2.5, st.Elapsed(), 1e-9)
	assert.Equal(t, uint64(3), r.Frames(), "render still runs when advance is rejected")
	assert.Equal(t, uint64(1), d.Stats().AdvanceErrors)
}

type sinkFunc func(window.Event)

func (f sinkFunc) Input(ev window.Event) { f(ev) }

func TestDriverHandleEvent(t *testing.T) {
	r := render.NewCounting(800, 600, 0)
	var forwarded []window.Event
	d := New(sim.New(), r,
		WithLogger(quietLogger()),
		WithInputSink(sinkFunc(func(ev window.Event) { forwarded = append(forwarded, ev) })),
	)

	d.HandleEvent(window.Resize{Width: 1920, Height: 1080})
	d.HandleEvent(window.KeyPress{Key: "space"})
	d.HandleEvent(window.MouseClick{X: 1, Y: 2})

	w, h := r.Viewport()
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)
	assert.Equal(t, uint64(0), r.Frames(), "resize does not render")
	assert.Equal(t, []window.Event{window.KeyPress{Key: "space"}, window.MouseClick{X: 1, Y: 2}}, forwarded)
}

func TestDriverUpdatersRunBetweenAdvanceAndRender(t *testing.T) {
	st := sim.New()
	d := New(st, render.NewCounting(800, 600, 0),
		WithLogger(quietLogger()),
		WithUpdaters(UpdaterFunc(func(s sim.Advancer) {
			snap := s.Snapshot()
			s.SetActivity("lesson_1", float32(snap.Frames)/10)
		})),
	)

	for range 5 {
		d.Tick(nil)
	}
	id, progress := st.Activity()
	assert.Equal(t, "lesson_1", id)
	assert.InDelta(t, 0.5, progress, 1e-6)
}

func TestDriverHeadlessSixtyTicks(t *testing.T) {
	if testing.Short() {
		t.Skip("wall-clock test")
	}
	cfg := window.DefaultHeadlessConfig()
	host := window.NewHeadless(cfg)
	st := sim.New()
	r := render.NewCounting(cfg.Width, cfg.Height, 0)
	d := New(st, r, WithLogger(quietLogger()))

	require.NoError(t, d.Run(context.Background(), host))

	assert.Equal(t, uint64(60), st.Frames())
	assert.Equal(t, uint64(60), r.Frames())
	assert.Equal(t, uint64(60), r.RenderCalls())
	assert.InDelta(t, 1.0, st.Elapsed(), 0.05)
}

func TestDriverResizeThroughHost(t *testing.T) {
	host := fastHost(3)
	st := sim.New()
	r := render.NewScreenRenderer(st, 800, 600, render.ScreenOptions{CellWidth: 8, CellHeight: 16})
	d := New(st, r, WithLogger(quietLogger()))
	require.NoError(t, host.Send(window.Resize{Width: 1920, Height: 1080}))

	require.NoError(t, d.Run(context.Background(), host))

	w, h := r.Viewport()
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)
	assert.Equal(t, 240, r.Canvas().Cols())
	assert.Equal(t, uint64(3), r.Frames())
}

func TestDriverConcurrentTickers(t *testing.T) {
	st := sim.NewLocked()
	r := render.NewLocked(render.NewCounting(800, 600, 0))

	const (
		workers = 4
		ticks   = 50
	)
	errs := make(chan error, workers)
	for range workers {
		go func() {
			d := New(st, r, WithLogger(quietLogger()))
			errs <- d.Run(context.Background(), fastHost(ticks))
		}()
	}
	for range workers {
		require.NoError(t, <-errs)
	}

	assert.Equal(t, uint64(workers*ticks), st.Snapshot().Frames)
	assert.Equal(t, uint64(workers*ticks), r.Frames())
	assert.Equal(t, r.Frames(), r.RenderCalls())
}

func BenchmarkDriverTick(b *testing.B) {
	d := New(sim.New(), render.NewCounting(800, 600, 0), WithLogger(quietLogger()))
	for b.Loop() {
		d.Tick(nil)
	}
}
