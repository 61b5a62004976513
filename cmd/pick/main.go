// Package main is the entry point for the scene picking tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/scenepick/internal/config"
	"github.com/Faultbox/scenepick/internal/logger"
)

var (
	flagX        = flag.Float64("x", -1, "Pointer x in pixels; with -y picks once and exits")
	flagY        = flag.Float64("y", -1, "Pointer y in pixels; with -x picks once and exits")
	flagSnapshot = flag.Bool("snapshot", false, "Write a pick map image and exit")
	flagSave     = flag.Bool("save-config", false, "Write the effective config to the user config dir and exit")
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Scene Pick ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if *flagSave {
		if err := cfg.Save(); err != nil {
			logger.Error("failed to save config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		return
	}

	a, err := newApp(cfg, os.Stdout)
	if err != nil {
		logger.Error("failed to set up scene", zap.Error(err))
		os.Exit(1)
	}

	switch {
	case *flagSnapshot:
		err = a.snapshot()
	case *flagX >= 0 && *flagY >= 0:
		err = a.pickAt(float32(*flagX), float32(*flagY))
	default:
		err = a.run(os.Stdin)
	}
	if err != nil {
		logger.Error("pick session failed", zap.Error(err))
		os.Exit(1)
	}
}
