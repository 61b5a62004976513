package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the standard locations
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the picker cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Viewport.Width <= 0 || c.Viewport.Height <= 0:
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidConfig, c.Viewport.Width, c.Viewport.Height)
	case c.Camera.Eye == c.Camera.Center:
		return fmt.Errorf("%w: camera eye and center coincide", ErrInvalidConfig)
	case !upIsUsable(c.Camera):
		return fmt.Errorf("%w: camera up %v is zero or parallel to the view direction", ErrInvalidConfig, c.Camera.Up)
	case c.Camera.FovY <= 0 || c.Camera.FovY >= 180:
		return fmt.Errorf("%w: fov_y %v outside (0, 180)", ErrInvalidConfig, c.Camera.FovY)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: clip planes near=%v far=%v", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	case c.Snapshot.Format != "png" && c.Snapshot.Format != "bmp":
		return fmt.Errorf("%w: snapshot format %q", ErrInvalidConfig, c.Snapshot.Format)
	case c.Snapshot.Step <= 0:
		return fmt.Errorf("%w: snapshot step must be positive", ErrInvalidConfig)
	case c.Scene.BoxCount < 0:
		return fmt.Errorf("%w: negative box_count", ErrInvalidConfig)
	case c.Scene.BoxCount > 0 && c.Scene.GridDim <= 0:
		return fmt.Errorf("%w: grid_dim must be positive", ErrInvalidConfig)
	}
	for i, s := range c.Scene.BoxSize {
		if s <= 0 {
			return fmt.Errorf("%w: box_size[%d] must be positive", ErrInvalidConfig, i)
		}
	}
	// Stacked boxes sit one spacing apart.
	if c.Scene.BoxCount > 0 && c.Scene.BoxSize[1] > c.Scene.Spacing {
		return fmt.Errorf("%w: box height %v exceeds spacing %v", ErrInvalidConfig, c.Scene.BoxSize[1], c.Scene.Spacing)
	}
	return nil
}

// upIsUsable reports whether up is non-zero and not parallel to eye->center.
func upIsUsable(cam CameraConfig) bool {
	var dir [3]float64
	for i := range dir {
		dir[i] = float64(cam.Center[i] - cam.Eye[i])
	}
	up := [3]float64{float64(cam.Up[0]), float64(cam.Up[1]), float64(cam.Up[2])}

	cross := [3]float64{
		dir[1]*up[2] - dir[2]*up[1],
		dir[2]*up[0] - dir[0]*up[2],
		dir[0]*up[1] - dir[1]*up[0],
	}
	sq := func(v [3]float64) float64 { return v[0]*v[0] + v[1]*v[1] + v[2]*v[2] }

	// |dir x up| = |dir||up|sin(angle)
	return sq(cross) > 1e-12*sq(dir)*sq(up)
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "ScenePick")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "ScenePick")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "scenepick")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "scenepick")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
