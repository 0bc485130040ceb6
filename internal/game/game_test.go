package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/cubefield/internal/engine/renderer"
	"github.com/Faultbox/cubefield/internal/engine/scene"
)

// scriptedHost replays a fixed list of events, one per Poll.
type scriptedHost struct {
	events   []HostEvents
	polls    int
	presents int
	onPoll   func(n int)
}

func (h *scriptedHost) Poll() HostEvents {
	h.polls++
	if h.onPoll != nil {
		h.onPoll(h.polls)
	}
	if h.polls <= len(h.events) {
		return h.events[h.polls-1]
	}
	return HostEvents{}
}

func (h *scriptedHost) Present() {
	h.presents++
}

// fakeClock advances 16ms on every read.
func fakeClock() func() time.Time {
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(16 * time.Millisecond)
		return t
	}
}

func newGame(t *testing.T, opts scene.Options, host Host, gopts Options) (*Game, *renderer.Recorder) {
	t.Helper()
	st := newState(t, opts)
	dev := &renderer.Recorder{}
	r := renderer.New(dev, st.Objects, renderer.Options{})
	g := New(st, host, r, gopts)
	g.now = fakeClock()
	return g, dev
}

func TestRunStopsAtMaxFrames(t *testing.T) {
	host := &scriptedHost{}
	g, dev := newGame(t, scene.DefaultOptions(), host, Options{MaxFrames: 5})

	require.NoError(t, g.Run(context.Background()))

	assert.Equal(t, uint64(5), g.Frames())
	assert.Equal(t, 5, host.presents)
	assert.Equal(t, 5, dev.Count(renderer.OpClear))
	assert.Equal(t, 5*32, dev.Count(renderer.OpDraw))
	assert.Equal(t, 32, dev.Count(renderer.OpCreate), "geometry is uploaded once")
	assert.Equal(t, 0, dev.Count(renderer.OpUpload))
}

func TestRunStopsOnHostQuit(t *testing.T) {
	host := &scriptedHost{events: []HostEvents{{}, {}, {Quit: true}}}
	g, _ := newGame(t, scene.DefaultOptions(), host, Options{})

	require.NoError(t, g.Run(context.Background()))

	assert.Equal(t, uint64(2), g.Frames())
	assert.Equal(t, 2, host.presents)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	host := &scriptedHost{onPoll: func(n int) {
		if n == 3 {
			cancel()
		}
	}}
	g, _ := newGame(t, scene.DefaultOptions(), host, Options{})

	require.NoError(t, g.Run(ctx))

	// The third frame still completes; the loop checks ctx before the next poll.
	assert.Equal(t, uint64(3), g.Frames())
}

func TestRunEmptySceneOnlyClears(t *testing.T) {
	opts := scene.DefaultOptions()
	opts.Count = 0
	host := &scriptedHost{}
	g, dev := newGame(t, opts, host, Options{MaxFrames: 1})

	require.NoError(t, g.Run(context.Background()))

	ops := dev.Ops()
	require.Len(t, ops, 1)
	assert.Equal(t, renderer.OpClear, ops[0].Op)
	assert.True(t, ops[0].Depth)
	assert.Equal(t, background, ops[0].Color)
}

func TestRunDepthClearedOnlyOnFirstFrame(t *testing.T) {
	opts := scene.DefaultOptions()
	opts.Count = 0
	g, dev := newGame(t, opts, &scriptedHost{}, Options{MaxFrames: 3})

	require.NoError(t, g.Run(context.Background()))

	ops := dev.Ops()
	require.Len(t, ops, 3)
	assert.True(t, ops[0].Depth)
	assert.False(t, ops[1].Depth)
	assert.False(t, ops[2].Depth)
}

func TestRunForwardsResize(t *testing.T) {
	host := &scriptedHost{events: []HostEvents{
		{Resized: true, Width: 800, Height: 600},
		{Resized: true, Width: 0, Height: 0},
	}}
	g, dev := newGame(t, unitCubeAtOrigin(), host, Options{MaxFrames: 2})

	require.NoError(t, g.Run(context.Background()))

	require.Equal(t, 1, dev.Count(renderer.OpViewport), "zero sizes are ignored")
	for _, c := range dev.Ops() {
		if c.Op == renderer.OpViewport {
			assert.Equal(t, 800, c.Width)
			assert.Equal(t, 600, c.Height)
		}
	}
}

func TestRunAnimatesBetweenFrames(t *testing.T) {
	g, dev := newGame(t, unitCubeAtOrigin(), &scriptedHost{}, Options{MaxFrames: 2})

	require.NoError(t, g.Run(context.Background()))

	var worlds []renderer.Call
	for _, c := range dev.Ops() {
		if c.Op == renderer.OpSetWorld {
			worlds = append(worlds, c)
		}
	}
	require.Len(t, worlds, 2)
	assert.NotEqual(t, worlds[0].World, worlds[1].World)
}

func TestRunClearsDepthEveryFrameWhenConfigured(t *testing.T) {
	opts := scene.DefaultOptions()
	opts.Count = 0
	g, dev := newGame(t, opts, &scriptedHost{}, Options{MaxFrames: 3})
	g.state.ClearDepthEachFrame = true

	require.NoError(t, g.Run(context.Background()))

	ops := dev.Ops()
	require.Len(t, ops, 3)
	for i, c := range ops {
		assert.True(t, c.Depth, "frame %d", i)
	}
}

func TestRunCapturesLastFrameBeforePresent(t *testing.T) {
	host := &scriptedHost{}
	var captured []renderer.Call
	presentsAtCapture := -1

	g, dev := newGame(t, unitCubeAtOrigin(), host, Options{MaxFrames: 2})
	g.opts.Capture = func() error {
		presentsAtCapture = host.presents
		captured = dev.Ops()
		return nil
	}
	g.state.ClearDepthEachFrame = false

	require.NoError(t, g.Run(context.Background()))

	assert.Equal(t, 2, presentsAtCapture, "capture runs after the loop and is not presented")
	assert.Equal(t, 2, host.presents)

	// Two loop frames plus the redraw.
	assert.Equal(t, 3, dev.Count(renderer.OpClear))
	require.NotEmpty(t, captured)

	// The redraw repeats frame 1 with a depth clear.
	var clears, worlds []renderer.Call
	for _, c := range captured {
		switch c.Op {
		case renderer.OpClear:
			clears = append(clears, c)
		case renderer.OpSetWorld:
			worlds = append(worlds, c)
		}
	}
	require.Len(t, clears, 3)
	require.Len(t, worlds, 3)
	assert.False(t, clears[1].Depth)
	assert.True(t, clears[2].Depth)
	assert.Equal(t, worlds[1].World, worlds[2].World)
}

func TestRunCaptureSkippedWithoutFrames(t *testing.T) {
	called := false
	host := &scriptedHost{events: []HostEvents{{Quit: true}}}
	g, dev := newGame(t, unitCubeAtOrigin(), host, Options{Capture: func() error {
		called = true
		return nil
	}})

	require.NoError(t, g.Run(context.Background()))

	assert.False(t, called)
	assert.Equal(t, 0, dev.Count(renderer.OpClear))
}

func TestRunReturnsCaptureError(t *testing.T) {
	errDisk := errors.New("disk full")
	g, _ := newGame(t, unitCubeAtOrigin(), &scriptedHost{}, Options{
		MaxFrames: 1,
		Capture:   func() error { return errDisk },
	})

	err := g.Run(context.Background())
	require.ErrorIs(t, err, errDisk)
	assert.Equal(t, uint64(1), g.Frames())
}
