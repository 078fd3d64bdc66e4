package config

import (
	"flag"
	"fmt"
	"math"

	"github.com/Faultbox/flatland/pkg/noise"
)

// Flags holds command-line overrides registered on a FlagSet.
type Flags struct {
	fs *flag.FlagSet

	config  *string
	debug   *bool
	width   *int
	height  *int
	seed    *int
	kind    *string
	outDir  *string
	workers *int
}

// RegisterFlags adds the config override flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:      fs,
		config:  fs.String("config", "", "Path to config file"),
		debug:   fs.Bool("debug", false, "Enable debug logging"),
		width:   fs.Int("width", 0, "Grid width in samples"),
		height:  fs.Int("height", 0, "Grid height in samples"),
		seed:    fs.Int("seed", 0, "Noise seed"),
		kind:    fs.String("noise", "", "Noise kind (value, perlin, simplex, cellular, white, *_fractal)"),
		outDir:  fs.String("out", "", "Output directory"),
		workers: fs.Int("workers", -1, "Synthesis workers (0 = all CPUs, 1 = sequential)"),
	}
}

// ConfigPath returns the explicit config path if provided via --config flag.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) error {
	if f == nil {
		return nil
	}

	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if *f.width > 0 {
		cfg.Terrain.Width = *f.width
	}
	if *f.height > 0 {
		cfg.Terrain.Height = *f.height
	}
	if *f.kind != "" {
		var k noise.Kind
		if err := k.UnmarshalText([]byte(*f.kind)); err != nil {
			return fmt.Errorf("-noise: %w", err)
		}
		cfg.Noise.Kind = k
	}
	if *f.outDir != "" {
		cfg.Output.Dir = *f.outDir
	}
	if *f.workers >= 0 {
		cfg.Noise.Workers = *f.workers
	}

	// Zero is a valid seed, so only an explicitly set flag overrides.
	var seedSet bool
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == "seed" {
			seedSet = true
		}
	})
	if seedSet {
		if *f.seed < math.MinInt32 || *f.seed > math.MaxInt32 {
			return fmt.Errorf("-seed: %d out of int32 range", *f.seed)
		}
		cfg.Noise.Seed = int32(*f.seed)
	}
	return nil
}
