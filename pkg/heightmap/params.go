// Package heightmap synthesizes 16-bit terrain heightmaps from 2D noise.
//
// The calling sequence is always ValidateParameters, then ConfigureNoise,
// then Synthesize. Validation corrects bad input instead of rejecting it, so
// synthesis always produces a full grid.
package heightmap

import (
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/flatland/pkg/noise"
)

// Default parameter values used when a field fails validation.
const (
	DefaultWidth              = 128
	DefaultHeight             = 128
	DefaultScale              = 100.0
	DefaultComponentSizeQuads = 63
	DefaultNumSubsections     = 1
	DefaultNoiseScale         = 1.0
	DefaultNoiseIntensity     = 1000.0
)

// BaseElevation is the midpoint of the uint16 range; noise perturbs around it.
const BaseElevation = 32768

// MaxHeight is the largest storable height sample.
const MaxHeight = math.MaxUint16

// Params holds the grid dimensions and the tiling structure the terrain
// importer needs.
type Params struct {
	Width               int     `yaml:"width"`
	Height              int     `yaml:"height"`
	Scale               float64 `yaml:"scale"`                 // uniform world scale
	ComponentSizeQuads  int     `yaml:"component_size_quads"`  // quads per component edge
	NumSubsections      int     `yaml:"num_subsections"`       // subsections per component edge
	SubsectionSizeQuads int     `yaml:"subsection_size_quads"` // quads per subsection edge
}

// DefaultParams returns the parameter set used for a fresh terrain.
func DefaultParams() Params {
	return Params{
		Width:               DefaultWidth,
		Height:              DefaultHeight,
		Scale:               DefaultScale,
		ComponentSizeQuads:  DefaultComponentSizeQuads,
		NumSubsections:      DefaultNumSubsections,
		SubsectionSizeQuads: DefaultComponentSizeQuads,
	}
}

// NoiseParams scales the sampling coordinates and the sample amplitude.
type NoiseParams struct {
	Scale     float64 `yaml:"scale"`     // per-axis coordinate multiplier
	Intensity float64 `yaml:"intensity"` // height units per unit of noise
}

// DefaultNoiseParams returns the default sampling scale and intensity.
func DefaultNoiseParams() NoiseParams {
	return NoiseParams{Scale: DefaultNoiseScale, Intensity: DefaultNoiseIntensity}
}

// ValidateParameters replaces every non-positive field with its default and
// logs one warning per corrected field. A nil sampler is replaced by a new
// noise.Generator. It never fails.
func ValidateParameters(p Params, sampler noise.Sampler, log *zap.Logger) (Params, noise.Sampler) {
	if log == nil {
		log = zap.NewNop()
	}

	if p.Width <= 0 {
		log.Warn("width must be positive, resetting to default",
			zap.String("field", "width"), zap.Int("got", p.Width), zap.Int("default", DefaultWidth))
		p.Width = DefaultWidth
	}
	if p.Height <= 0 {
		log.Warn("height must be positive, resetting to default",
			zap.String("field", "height"), zap.Int("got", p.Height), zap.Int("default", DefaultHeight))
		p.Height = DefaultHeight
	}
	// !(x > 0) also catches NaN.
	if !(p.Scale > 0) || math.IsInf(p.Scale, 0) {
		log.Warn("scale must be positive, resetting to default",
			zap.String("field", "scale"), zap.Float64("got", p.Scale), zap.Float64("default", DefaultScale))
		p.Scale = DefaultScale
	}
	if p.ComponentSizeQuads <= 0 {
		log.Warn("component size quads must be positive, resetting to default",
			zap.String("field", "component_size_quads"), zap.Int("got", p.ComponentSizeQuads),
			zap.Int("default", DefaultComponentSizeQuads))
		p.ComponentSizeQuads = DefaultComponentSizeQuads
	}
	if p.NumSubsections <= 0 {
		log.Warn("subsection count must be positive, resetting to default",
			zap.String("field", "num_subsections"), zap.Int("got", p.NumSubsections),
			zap.Int("default", DefaultNumSubsections))
		p.NumSubsections = DefaultNumSubsections
	}
	if p.SubsectionSizeQuads <= 0 {
		log.Warn("subsection size quads must be positive, resetting to component size quads",
			zap.String("field", "subsection_size_quads"), zap.Int("got", p.SubsectionSizeQuads),
			zap.Int("default", p.ComponentSizeQuads))
		p.SubsectionSizeQuads = p.ComponentSizeQuads
	}

	if sampler == nil {
		log.Warn("noise sampler was nil, created a default generator")
		sampler = noise.NewGenerator()
	}

	return p, sampler
}

// ValidateNoise corrects non-finite sampling parameters and a non-positive
// frequency, logging one warning per corrected field.
func ValidateNoise(np NoiseParams, s noise.Settings, log *zap.Logger) (NoiseParams, noise.Settings) {
	if log == nil {
		log = zap.NewNop()
	}

	if !isFinite(np.Scale) {
		log.Warn("noise scale must be finite, resetting to default",
			zap.String("field", "noise_scale"), zap.Float64("default", DefaultNoiseScale))
		np.Scale = DefaultNoiseScale
	}
	if !isFinite(np.Intensity) {
		log.Warn("noise intensity must be finite, resetting to default",
			zap.String("field", "noise_intensity"), zap.Float64("default", DefaultNoiseIntensity))
		np.Intensity = DefaultNoiseIntensity
	}

	def := noise.DefaultSettings()
	if !isFinite(s.Frequency) || s.Frequency <= 0 {
		log.Warn("noise frequency must be positive and finite, resetting to default",
			zap.String("field", "frequency"), zap.Float64("got", s.Frequency),
			zap.Float64("default", def.Frequency))
		s.Frequency = def.Frequency
	}
	if s.Octaves <= 0 {
		log.Warn("octaves must be positive, resetting to default",
			zap.String("field", "octaves"), zap.Int("got", s.Octaves), zap.Int("default", def.Octaves))
		s.Octaves = def.Octaves
	}

	return np, s
}

// ConfigureNoise pushes the settings into the sampler.
func ConfigureNoise(sampler noise.Sampler, s noise.Settings) {
	sampler.Configure(s)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
