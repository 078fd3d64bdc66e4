// Package noise provides configurable 2D coherent noise for heightmap synthesis.
//
// A Sampler is configured once with Settings and then sampled at arbitrary
// real coordinates. Sampling is a pure function of the configuration and the
// coordinates, so a configured Sampler may be shared by concurrent readers as
// long as nobody calls Configure at the same time.
package noise

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownName is returned when parsing an enum name that does not exist.
var ErrUnknownName = errors.New("unknown noise option")

// Sampler is the noise-sampling capability consumed by the heightmap synthesizer.
type Sampler interface {
	// Configure replaces the sampler configuration. Calling it twice with the
	// same settings yields the same state.
	Configure(s Settings)
	// Sample2D returns the noise value at (x, y), typically in [-1, 1].
	Sample2D(x, y float64) float64
}

// Kind selects the base noise algorithm.
type Kind int

// Noise kinds. The *Fractal variants sum several octaves of their base noise.
const (
	Value Kind = iota
	ValueFractal
	Perlin
	PerlinFractal
	Simplex
	SimplexFractal
	Cellular
	WhiteNoise
)

var kindNames = []string{"value", "value_fractal", "perlin", "perlin_fractal", "simplex", "simplex_fractal", "cellular", "white"}

// String returns the config name of the kind.
func (k Kind) String() string { return enumName(kindNames, int(k)) }

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error { return parseEnum(kindNames, "kind", b, (*int)(k)) }

// IsFractal reports whether the kind combines multiple octaves.
func (k Kind) IsFractal() bool {
	return k == ValueFractal || k == PerlinFractal || k == SimplexFractal
}

// FractalType selects how octaves are combined.
type FractalType int

// Fractal combination modes.
const (
	FBm FractalType = iota
	Billow
	RigidMulti
)

var fractalNames = []string{"fbm", "billow", "rigid_multi"}

func (f FractalType) String() string { return enumName(fractalNames, int(f)) }

// MarshalText implements encoding.TextMarshaler.
func (f FractalType) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FractalType) UnmarshalText(b []byte) error {
	return parseEnum(fractalNames, "fractal type", b, (*int)(f))
}

// CellularDistance is the metric used to find the nearest feature points.
type CellularDistance int

// Cellular distance functions.
const (
	Euclidean CellularDistance = iota
	Manhattan
	Natural
)

var distanceNames = []string{"euclidean", "manhattan", "natural"}

func (d CellularDistance) String() string { return enumName(distanceNames, int(d)) }

// MarshalText implements encoding.TextMarshaler.
func (d CellularDistance) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *CellularDistance) UnmarshalText(b []byte) error {
	return parseEnum(distanceNames, "cellular distance", b, (*int)(d))
}

// CellularReturn selects what a cellular sample evaluates to.
type CellularReturn int

// Cellular return modes.
const (
	CellValue CellularReturn = iota
	Distance
	Distance2
	Distance2Add
	Distance2Sub
	Distance2Mul
	Distance2Div
)

var returnNames = []string{"cell_value", "distance", "distance2", "distance2_add", "distance2_sub", "distance2_mul", "distance2_div"}

func (r CellularReturn) String() string { return enumName(returnNames, int(r)) }

// MarshalText implements encoding.TextMarshaler.
func (r CellularReturn) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *CellularReturn) UnmarshalText(b []byte) error {
	return parseEnum(returnNames, "cellular return", b, (*int)(r))
}

// Interp is the lattice interpolation curve used by value noise.
type Interp int

// Interpolation modes.
const (
	Linear Interp = iota
	Hermite
	Quintic
)

var interpNames = []string{"linear", "hermite", "quintic"}

func (i Interp) String() string { return enumName(interpNames, int(i)) }

// MarshalText implements encoding.TextMarshaler.
func (i Interp) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Interp) UnmarshalText(b []byte) error {
	return parseEnum(interpNames, "interpolation", b, (*int)(i))
}

// Settings is the full noise configuration pushed into a Sampler.
type Settings struct {
	Kind             Kind             `yaml:"kind"`
	Seed             int32            `yaml:"seed"`
	Frequency        float64          `yaml:"frequency"`
	Octaves          int              `yaml:"octaves"`
	Lacunarity       float64          `yaml:"lacunarity"`
	Gain             float64          `yaml:"gain"`
	Fractal          FractalType      `yaml:"fractal"`
	CellularDistance CellularDistance `yaml:"cellular_distance"`
	CellularReturn   CellularReturn   `yaml:"cellular_return"`
	CellularJitter   float64          `yaml:"cellular_jitter"`
	Interp           Interp           `yaml:"interp"`
}

// DefaultSettings returns the configuration a fresh Generator starts with.
func DefaultSettings() Settings {
	return Settings{
		Kind:             Perlin,
		Seed:             1337,
		Frequency:        0.01,
		Octaves:          3,
		Lacunarity:       2.0,
		Gain:             0.5,
		Fractal:          FBm,
		CellularDistance: Euclidean,
		CellularReturn:   CellValue,
		CellularJitter:   1.0,
		Interp:           Linear,
	}
}

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("unknown(%d)", v)
	}
	return names[v]
}

func parseEnum(names []string, what string, b []byte, out *int) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for i, n := range names {
		if n == s {
			*out = i
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q", ErrUnknownName, what, s)
}
