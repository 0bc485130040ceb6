// Package game runs the frame loop that animates and draws the cube scene.
package game

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/cubefield/internal/engine/renderer"
	"github.com/Faultbox/cubefield/internal/logger"
)

// HostEvents is what the host reports between two frames.
type HostEvents struct {
	Quit    bool
	Resized bool
	Width   int
	Height  int
}

// Host is the windowing side of the loop: it delivers events and presents
// finished frames. With vsync on, Present paces the loop to the display.
type Host interface {
	Poll() HostEvents
	Present()
}

// Options controls loop termination.
type Options struct {
	// MaxFrames stops the loop after this many frames. Zero runs until the
	// host quits or the context is cancelled.
	MaxFrames uint64

	// Capture, when set, runs once after the loop stops. The last frame has
	// just been redrawn into the back buffer and is not presented, so the
	// callback can read it back.
	Capture func() error
}

// Game ties the static state, the renderer and the host together.
type Game struct {
	state    *State
	host     Host
	renderer *renderer.Renderer
	opts     Options
	log      *zap.Logger

	// now is replaced in tests.
	now func() time.Time

	frames uint64
	last   renderer.Frame
}

// New creates a game. The renderer must already hold buffers for state.Objects.
func New(state *State, host Host, r *renderer.Renderer, opts Options) *Game {
	return &Game{
		state:    state,
		host:     host,
		renderer: r,
		opts:     opts,
		log:      logger.Named("loop"),
		now:      time.Now,
	}
}

// Run drives frames until ctx is cancelled, the host quits or MaxFrames is
// reached. It is single-threaded; every call happens on the caller's goroutine.
// The only error it returns comes from Options.Capture.
func (g *Game) Run(ctx context.Context) error {
	g.loop(ctx)
	return g.capture()
}

func (g *Game) loop(ctx context.Context) {
	start := g.now()
	fpsTimer := start
	fpsFrames := 0

	g.log.Info("starting frame loop",
		zap.Int("objects", len(g.state.Objects)),
		zap.Uint64("max_frames", g.opts.MaxFrames),
	)

	for {
		if err := ctx.Err(); err != nil {
			g.log.Info("frame loop cancelled", zap.Uint64("frames", g.frames))
			return
		}
		if g.opts.MaxFrames > 0 && g.frames >= g.opts.MaxFrames {
			g.log.Info("frame limit reached", zap.Uint64("frames", g.frames))
			return
		}

		ev := g.host.Poll()
		if ev.Quit {
			g.log.Info("host closed", zap.Uint64("frames", g.frames))
			return
		}
		if ev.Resized && ev.Width > 0 && ev.Height > 0 {
			g.renderer.Resize(ev.Width, ev.Height)
		}

		now := g.now()
		g.last = ComputeFrame(g.state, now.Sub(start), g.frames)
		g.renderer.Render(g.last)
		g.host.Present()
		g.frames++

		fpsFrames++
		if since := now.Sub(fpsTimer); since >= time.Second {
			g.log.Debug("fps",
				zap.Float64("fps", float64(fpsFrames)/since.Seconds()),
				zap.Uint64("frame", g.frames),
			)
			fpsFrames = 0
			fpsTimer = now
		}
	}
}

// capture redraws the last presented frame and hands it to Options.Capture.
// Depth is cleared so the redraw does not depend on what the buffer held.
func (g *Game) capture() error {
	if g.opts.Capture == nil || g.frames == 0 {
		return nil
	}

	f := g.last
	f.Clear.Depth = true
	g.renderer.Render(f)

	if err := g.opts.Capture(); err != nil {
		return fmt.Errorf("capturing frame %d: %w", f.Index, err)
	}
	return nil
}

// Frames returns how many frames have been drawn.
func (g *Game) Frames() uint64 {
	return g.frames
}
