// Package config handles configuration loading and management.
package config

import (
	"errors"
	"fmt"
	gomath "math"
)

// Config holds all settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Scene     SceneConfig     `yaml:"scene"`
	Camera    CameraConfig    `yaml:"camera"`
	Animation AnimationConfig `yaml:"animation"`
	Render    RenderConfig    `yaml:"render"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds window settings.
type GraphicsConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// RangeConfig is a closed [min, max] interval.
type RangeConfig struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// SceneConfig controls procedural scene generation.
type SceneConfig struct {
	Count int         `yaml:"count"`
	Seed  uint64      `yaml:"seed"` // 0 = random layout every run
	Scale RangeConfig `yaml:"scale"`
	X     RangeConfig `yaml:"x"`
	Y     RangeConfig `yaml:"y"`
	Z     RangeConfig `yaml:"z"`
}

// CameraConfig holds the fixed camera placement and lens.
type CameraConfig struct {
	Eye        [3]float32 `yaml:"eye"`
	Target     [3]float32 `yaml:"target"`
	Up         [3]float32 `yaml:"up"`
	FovDegrees float32    `yaml:"fov_degrees"`
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
}

// AnimationConfig holds the spin speed.
type AnimationConfig struct {
	Rate float64 `yaml:"rate"` // radians per second
}

// RenderConfig holds per-frame rendering behavior.
type RenderConfig struct {
	Background          [4]float32 `yaml:"background"`
	ReuploadEachFrame   bool       `yaml:"reupload_each_frame"`
	ClearDepthEachFrame bool       `yaml:"clear_depth_each_frame"`
	MaxFrames           uint64     `yaml:"max_frames"` // 0 = run until closed
	Snapshot            string     `yaml:"snapshot"`   // PNG written from the last frame
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Title:      "cubefield",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Scene: SceneConfig{
			Count: 32,
			Seed:  0,
			Scale: RangeConfig{Min: 0.2, Max: 1.0},
			X:     RangeConfig{Min: -10, Max: 10},
			Y:     RangeConfig{Min: -10, Max: 10},
			Z:     RangeConfig{Min: 0, Max: 0},
		},
		Camera: CameraConfig{
			Eye:        [3]float32{0, 0, -16},
			Target:     [3]float32{0, 0, 0},
			Up:         [3]float32{0, 1, 0},
			FovDegrees: 90,
			Near:       0.1,
			Far:        1000.0,
		},
		Animation: AnimationConfig{
			Rate: 23 * gomath.Pi / 60,
		},
		// Native GL keeps the depth buffer across swaps, so it is cleared every frame.
		Render: RenderConfig{
			Background:          [4]float32{0.1, 0.8, 0.8, 1.0},
			ClearDepthEachFrame: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ErrInvalid is wrapped by every Validate error.
var ErrInvalid = errors.New("invalid config")

// Validate checks values that cannot be fixed up at runtime.
// Scene and camera geometry are checked again by their own packages.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: graphics size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	}
	if c.Scene.Count < 0 {
		return fmt.Errorf("%w: scene count %d", ErrInvalid, c.Scene.Count)
	}
	if !(c.Scene.Scale.Min > 0) || c.Scene.Scale.Max < c.Scene.Scale.Min {
		return fmt.Errorf("%w: scene scale [%v, %v]", ErrInvalid, c.Scene.Scale.Min, c.Scene.Scale.Max)
	}
	if gomath.IsNaN(c.Animation.Rate) || gomath.IsInf(c.Animation.Rate, 0) {
		return fmt.Errorf("%w: animation rate %v", ErrInvalid, c.Animation.Rate)
	}
	for i, v := range c.Render.Background {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: background component %d = %v", ErrInvalid, i, v)
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Logging.Level)
	}
	return nil
}
