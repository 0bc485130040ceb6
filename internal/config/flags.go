package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagCount       = flag.Int("count", -1, "Number of cubes to generate")
	flagSeed        = flag.Uint64("seed", 0, "Scene seed (0 = random)")
	flagWindowed    = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagFrames      = flag.Uint64("frames", 0, "Stop after this many frames (0 = run until closed)")
	flagReupload    = flag.Bool("reupload", false, "Upload cube vertices every frame")
	flagDepthOnce   = flag.Bool("depth-once", false, "Clear the depth buffer on the first frame only")
	flagSnapshot    = flag.String("snapshot", "", "Save the last frame as PNG to this path")
	flagWriteConfig = flag.String("write-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the --write-config destination, if any.
func WriteConfigPath() string {
	return *flagWriteConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagCount >= 0 {
		cfg.Scene.Count = *flagCount
	}
	if *flagSeed != 0 {
		cfg.Scene.Seed = *flagSeed
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagFrames > 0 {
		cfg.Render.MaxFrames = *flagFrames
	}
	if *flagReupload {
		cfg.Render.ReuploadEachFrame = true
	}
	if *flagDepthOnce {
		cfg.Render.ClearDepthEachFrame = false
	}
	if *flagSnapshot != "" {
		cfg.Render.Snapshot = *flagSnapshot
	}
}
