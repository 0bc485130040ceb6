package config

import (
	"errors"
	gomath "math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Scene.Count != 32 {
		t.Errorf("expected 32 cubes, got %d", cfg.Scene.Count)
	}
	if cfg.Scene.Scale.Min != 0.2 || cfg.Scene.Scale.Max != 1.0 {
		t.Errorf("expected scale [0.2, 1.0], got %+v", cfg.Scene.Scale)
	}
	if cfg.Scene.X.Min != -10 || cfg.Scene.X.Max != 10 {
		t.Errorf("expected x [-10, 10], got %+v", cfg.Scene.X)
	}
	if cfg.Scene.Z.Min != 0 || cfg.Scene.Z.Max != 0 {
		t.Errorf("expected z fixed at 0, got %+v", cfg.Scene.Z)
	}

	if cfg.Camera.Eye != [3]float32{0, 0, -16} {
		t.Errorf("expected eye (0,0,-16), got %v", cfg.Camera.Eye)
	}
	if cfg.Camera.FovDegrees != 90 {
		t.Errorf("expected fov 90, got %v", cfg.Camera.FovDegrees)
	}
	if cfg.Camera.Near != 0.1 || cfg.Camera.Far != 1000 {
		t.Errorf("expected clip 0.1..1000, got %v..%v", cfg.Camera.Near, cfg.Camera.Far)
	}

	if gomath.Abs(cfg.Animation.Rate-23*gomath.Pi/60) > 1e-12 {
		t.Errorf("expected rate 23π/60, got %v", cfg.Animation.Rate)
	}

	if cfg.Render.Background != [4]float32{0.1, 0.8, 0.8, 1.0} {
		t.Errorf("unexpected background %v", cfg.Render.Background)
	}
	if cfg.Render.ReuploadEachFrame {
		t.Error("expected reupload_each_frame to be false by default")
	}
	if !cfg.Render.ClearDepthEachFrame {
		t.Error("expected clear_depth_each_frame to be true by default")
	}
	if cfg.Render.MaxFrames != 0 {
		t.Errorf("expected unbounded frames, got %d", cfg.Render.MaxFrames)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "cubefield.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
scene:
  count: 100
  seed: 1234
  scale: {min: 0.5, max: 2}
  z: {min: -3, max: 3}
camera:
  eye: [0, 5, -20]
  fov_degrees: 60
animation:
  rate: 1.5
render:
  background: [0, 0, 0, 1]
  reupload_each_frame: true
  clear_depth_each_frame: false
  max_frames: 600
logging:
  level: "debug"
  log_file: "frames.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Scene.Count != 100 {
		t.Errorf("expected count 100, got %d", cfg.Scene.Count)
	}
	if cfg.Scene.Seed != 1234 {
		t.Errorf("expected seed 1234, got %d", cfg.Scene.Seed)
	}
	if cfg.Scene.Scale.Min != 0.5 || cfg.Scene.Scale.Max != 2 {
		t.Errorf("expected scale [0.5, 2], got %+v", cfg.Scene.Scale)
	}
	// Untouched ranges keep their defaults
	if cfg.Scene.X.Min != -10 || cfg.Scene.X.Max != 10 {
		t.Errorf("expected default x range, got %+v", cfg.Scene.X)
	}
	if cfg.Scene.Z.Min != -3 || cfg.Scene.Z.Max != 3 {
		t.Errorf("expected z [-3, 3], got %+v", cfg.Scene.Z)
	}
	if cfg.Camera.Eye != [3]float32{0, 5, -20} {
		t.Errorf("expected eye (0,5,-20), got %v", cfg.Camera.Eye)
	}
	if cfg.Camera.FovDegrees != 60 {
		t.Errorf("expected fov 60, got %v", cfg.Camera.FovDegrees)
	}
	if cfg.Camera.Far != 1000 {
		t.Errorf("expected default far plane, got %v", cfg.Camera.Far)
	}
	if cfg.Animation.Rate != 1.5 {
		t.Errorf("expected rate 1.5, got %v", cfg.Animation.Rate)
	}
	if !cfg.Render.ReuploadEachFrame {
		t.Errorf("expected reupload on, got %+v", cfg.Render)
	}
	if cfg.Render.ClearDepthEachFrame {
		t.Errorf("expected the file to turn per-frame depth clears off, got %+v", cfg.Render)
	}
	if cfg.Render.MaxFrames != 600 {
		t.Errorf("expected max frames 600, got %d", cfg.Render.MaxFrames)
	}
	if cfg.Logging.LogFile != "frames.log" {
		t.Errorf("expected log file 'frames.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "graphics:\n  width: not a number\n  invalid syntax here\n"},
		{"unknown key", "graphics:\n  widht: 800\n"},
		{"short vector", "camera:\n  eye: [0, 1]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if cfg.Scene.Count != 32 {
		t.Errorf("expected defaults to survive, got count %d", cfg.Scene.Count)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/cubefield.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"negative count", func(c *Config) { c.Scene.Count = -1 }},
		{"zero scale", func(c *Config) { c.Scene.Scale.Min = 0 }},
		{"inverted scale", func(c *Config) { c.Scene.Scale = RangeConfig{Min: 1, Max: 0.5} }},
		{"nan rate", func(c *Config) { c.Animation.Rate = gomath.NaN() }},
		{"background out of range", func(c *Config) { c.Render.Background[1] = 1.5 }},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "cubefield.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  count: 3\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find cubefield.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "count flag",
			setup: func() { *flagCount = 0 },
			verify: func(cfg *Config) {
				if cfg.Scene.Count != 0 {
					t.Errorf("expected count 0 from flag, got %d", cfg.Scene.Count)
				}
			},
			teardown: func() { *flagCount = -1 },
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 77 },
			verify: func(cfg *Config) {
				if cfg.Scene.Seed != 77 {
					t.Errorf("expected seed 77, got %d", cfg.Scene.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "frames flag",
			setup: func() { *flagFrames = 120 },
			verify: func(cfg *Config) {
				if cfg.Render.MaxFrames != 120 {
					t.Errorf("expected 120 frames, got %d", cfg.Render.MaxFrames)
				}
			},
			teardown: func() { *flagFrames = 0 },
		},
		{
			name:  "reupload flag",
			setup: func() { *flagReupload = true },
			verify: func(cfg *Config) {
				if !cfg.Render.ReuploadEachFrame {
					t.Error("expected reupload with flag")
				}
			},
			teardown: func() { *flagReupload = false },
		},
		{
			name:  "snapshot flag",
			setup: func() { *flagSnapshot = "last.png" },
			verify: func(cfg *Config) {
				if cfg.Render.Snapshot != "last.png" {
					t.Errorf("expected snapshot last.png, got %q", cfg.Render.Snapshot)
				}
			},
			teardown: func() { *flagSnapshot = "" },
		},
		{
			name:  "depth-once flag",
			setup: func() { *flagDepthOnce = true },
			verify: func(cfg *Config) {
				if cfg.Render.ClearDepthEachFrame {
					t.Error("expected depth cleared on the first frame only with flag")
				}
			},
			teardown: func() { *flagDepthOnce = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "cubefield.yaml")
	yamlContent := `
graphics:
  width: 1600
  height: 900
scene:
  count: 10
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Flag beats file
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	// File beats default
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Scene.Count != 10 {
		t.Errorf("expected count 10 from file, got %d", cfg.Scene.Count)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "cubefield.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  count: -4\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cubefield.yaml")

	cfg := Default()
	cfg.Scene.Count = 5
	cfg.Render.ReuploadEachFrame = true
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Scene.Count != 5 || !loaded.Render.ReuploadEachFrame {
		t.Errorf("saved values lost: %+v", loaded)
	}
}
