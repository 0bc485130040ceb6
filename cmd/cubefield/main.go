// Package main is the entry point for cubefield: a field of spinning cubes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/cubefield/internal/config"
	"github.com/Faultbox/cubefield/internal/engine/camera"
	"github.com/Faultbox/cubefield/internal/engine/gpu"
	"github.com/Faultbox/cubefield/internal/engine/renderer"
	"github.com/Faultbox/cubefield/internal/engine/scene"
	"github.com/Faultbox/cubefield/internal/engine/snapshot"
	"github.com/Faultbox/cubefield/internal/engine/window"
	"github.com/Faultbox/cubefield/internal/game"
	"github.com/Faultbox/cubefield/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", path)
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== cubefield ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("cubefield stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("closed normally")
}

// run builds the scene and drives the frame loop until it stops.
// Any error it returns is terminal; nothing here is retried.
func run(ctx context.Context, cfg *config.Config) error {
	// Scene parameters are checked before any window or GPU work.
	objects, err := scene.Compose(scene.NewRand(cfg.Scene.Seed), sceneOptions(cfg))
	if err != nil {
		return fmt.Errorf("composing scene: %w", err)
	}
	logger.Info("scene composed",
		zap.Int("objects", len(objects)),
		zap.Uint64("seed", cfg.Scene.Seed),
	)

	win, err := window.New(window.Config{
		Title:      cfg.Graphics.Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer win.Close()

	width, height := win.DrawableSize()
	matrices, err := cameraFromConfig(cfg).Matrices(width, height)
	if err != nil {
		return fmt.Errorf("camera: %w", err)
	}

	dev, err := gpu.New(gpu.Config{
		Width:    width,
		Height:   height,
		Matrices: matrices,
	})
	if err != nil {
		return fmt.Errorf("creating device: %w", err)
	}
	defer dev.Close()

	r := renderer.New(dev, objects, renderer.Options{
		ReuploadEachFrame: cfg.Render.ReuploadEachFrame,
	})
	defer r.Close()

	state := &game.State{
		Objects:             objects,
		Camera:              matrices,
		Background:          cfg.Render.Background,
		Rate:                cfg.Animation.Rate,
		ClearDepthEachFrame: cfg.Render.ClearDepthEachFrame,
	}

	opts := game.Options{MaxFrames: cfg.Render.MaxFrames}
	if path := cfg.Render.Snapshot; path != "" {
		opts.Capture = func() error {
			pixels, w, h := dev.ReadBack()
			if err := snapshot.Save(path, pixels, w, h); err != nil {
				return fmt.Errorf("snapshot: %w", err)
			}
			logger.Info("snapshot saved", zap.String("path", path))
			return nil
		}
	}

	g := game.New(state, windowHost{win}, r, opts)
	return g.Run(ctx)
}

func sceneOptions(cfg *config.Config) scene.Options {
	toRange := func(r config.RangeConfig) scene.Range {
		return scene.Range{Min: r.Min, Max: r.Max}
	}
	return scene.Options{
		Count: cfg.Scene.Count,
		Scale: toRange(cfg.Scene.Scale),
		X:     toRange(cfg.Scene.X),
		Y:     toRange(cfg.Scene.Y),
		Z:     toRange(cfg.Scene.Z),
	}
}

func cameraFromConfig(cfg *config.Config) camera.Fixed {
	c := cfg.Camera
	return camera.Fixed{
		Eye:    mgl32.Vec3(c.Eye),
		Target: mgl32.Vec3(c.Target),
		Up:     mgl32.Vec3(c.Up),
		FovY:   mgl32.DegToRad(c.FovDegrees),
		Near:   c.Near,
		Far:    c.Far,
	}
}

// windowHost adapts the SDL window to the frame loop.
type windowHost struct {
	win *window.Window
}

func (h windowHost) Poll() game.HostEvents {
	ev := h.win.Poll()
	return game.HostEvents{
		Quit:    ev.Quit,
		Resized: ev.Resized,
		Width:   ev.Width,
		Height:  ev.Height,
	}
}

func (h windowHost) Present() {
	h.win.Present()
}
