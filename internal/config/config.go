// Package config handles picker configuration loading and management.
package config

// Config holds all picker settings.
type Config struct {
	Viewport ViewportConfig `yaml:"viewport"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Picking  PickingConfig  `yaml:"picking"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ViewportConfig holds the pixel size of the view pointer positions refer to.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CameraConfig places the viewer used to unproject pointer positions.
type CameraConfig struct {
	Eye    [3]float32 `yaml:"eye"`
	Center [3]float32 `yaml:"center"`
	Up     [3]float32 `yaml:"up"`
	FovY   float32    `yaml:"fov_y"` // Degrees
	Near   float32    `yaml:"near"`
	Far    float32    `yaml:"far"`
}

// SceneConfig controls the generated box scene.
type SceneConfig struct {
	BoxCount int        `yaml:"box_count"`
	GridDim  int        `yaml:"grid_dim"` // Cells per side
	Spacing  float32    `yaml:"spacing"`  // Distance between cell centers
	BoxSize  [3]float32 `yaml:"box_size"` // Full width, height, depth
	Seed     uint64     `yaml:"seed"`
}

// PickingConfig holds pick query settings.
type PickingConfig struct {
	BoundsPrefilter bool `yaml:"bounds_prefilter"`
}

// SnapshotConfig controls pick map images.
type SnapshotConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // png or bmp
	Step   int    `yaml:"step"`   // Pixels per sample
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewport: ViewportConfig{
			Width:  1280,
			Height: 720,
		},
		Camera: CameraConfig{
			Eye:    [3]float32{0, 30, 60},
			Center: [3]float32{0, 5, 0},
			Up:     [3]float32{0, 1, 0},
			FovY:   60,
			Near:   0.1,
			Far:    1000,
		},
		Scene: SceneConfig{
			BoxCount: 100,
			GridDim:  10,
			Spacing:  5,
			BoxSize:  [3]float32{4, 4.5, 3},
			Seed:     1,
		},
		Picking: PickingConfig{
			BoundsPrefilter: false,
		},
		Snapshot: SnapshotConfig{
			Dir:    "snapshots",
			Format: "png",
			Step:   4,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
