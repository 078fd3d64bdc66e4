// Package config handles flatland configuration loading and management.
package config

import (
	"github.com/Faultbox/flatland/pkg/heightmap"
	"github.com/Faultbox/flatland/pkg/noise"
)

// Config holds all generator settings.
type Config struct {
	Terrain TerrainConfig `yaml:"terrain"`
	Noise   NoiseConfig   `yaml:"noise"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// TerrainConfig holds grid dimensions, tiling and placement.
type TerrainConfig struct {
	heightmap.Params `yaml:",inline"`

	Position      [3]float64 `yaml:"position"`       // world location of the grid origin
	BaseElevation float64    `yaml:"base_elevation"` // flat baseline before noise
	Label         string     `yaml:"label"`
}

// NoiseConfig holds the noise algorithm settings and how they are sampled.
type NoiseConfig struct {
	noise.Settings `yaml:",inline"`

	Scale     float64 `yaml:"scale"`     // coordinate multiplier per grid cell
	Intensity float64 `yaml:"intensity"` // height units per unit of noise
	Workers   int     `yaml:"workers"`   // 0 = GOMAXPROCS, 1 = sequential
}

// Sampling returns the synthesizer's view of the sampling parameters.
func (n NoiseConfig) Sampling() heightmap.NoiseParams {
	return heightmap.NoiseParams{Scale: n.Scale, Intensity: n.Intensity}
}

// OutputConfig holds where generated data is written.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	Raw       string `yaml:"raw"`       // .r16 file name, empty to skip
	Manifest  string `yaml:"manifest"`  // import manifest file name, empty to skip
	Preview   string `yaml:"preview"`   // preview image name; extension picks the encoder
	Preview16 bool   `yaml:"preview16"` // full 16-bit grey instead of the 8-bit texture mapping
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	np := heightmap.DefaultNoiseParams()
	return &Config{
		Terrain: TerrainConfig{
			Params:        heightmap.DefaultParams(),
			BaseElevation: heightmap.BaseElevation,
			Label:         "FlatLandscape",
		},
		Noise: NoiseConfig{
			Settings:  noise.DefaultSettings(),
			Scale:     np.Scale,
			Intensity: np.Intensity,
			Workers:   0,
		},
		Output: OutputConfig{
			Dir:      ".",
			Raw:      "heightmap.r16",
			Manifest: "heightmap.yaml",
			Preview:  "heightmap.png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
