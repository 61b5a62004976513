package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagWidth     = flag.Int("width", 0, "Viewport width")
	flagHeight    = flag.Int("height", 0, "Viewport height")
	flagBoxes     = flag.Int("boxes", 0, "Number of generated boxes")
	flagSeed      = flag.Uint64("seed", 0, "Scene generation seed")
	flagPrefilter = flag.Bool("prefilter", false, "Skip objects whose bounds the pick ray misses")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Viewport.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewport.Height = *flagHeight
	}
	if *flagBoxes > 0 {
		cfg.Scene.BoxCount = *flagBoxes
	}
	if *flagSeed > 0 {
		cfg.Scene.Seed = *flagSeed
	}
	if *flagPrefilter {
		cfg.Picking.BoundsPrefilter = true
	}
}
