package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Generator is the default Sampler. Perlin kinds are backed by go-perlin,
// Simplex kinds by OpenSimplex, and the lattice kinds (value, cellular,
// white) by an integer hash.
type Generator struct {
	settings   Settings
	configured bool

	// One source per octave, seeded Seed+i.
	perlins  []*perlin.Perlin
	simplexs []opensimplex.Noise

	fractalBounding float64
}

// NewGenerator creates a Generator configured with DefaultSettings.
func NewGenerator() *Generator {
	g := &Generator{}
	g.Configure(DefaultSettings())
	return g
}

// Settings returns the active configuration.
func (g *Generator) Settings() Settings {
	return g.settings
}

// Configure implements Sampler.
func (g *Generator) Configure(s Settings) {
	if s.Octaves < 1 {
		s.Octaves = 1
	}
	if g.configured && g.settings == s {
		return
	}
	g.settings = s
	g.configured = true

	// Bounding keeps FBm and Billow roughly within [-1, 1].
	amp := s.Gain
	ampFractal := 1.0
	for i := 1; i < s.Octaves; i++ {
		ampFractal += amp
		amp *= s.Gain
	}
	g.fractalBounding = 1 / ampFractal

	g.perlins = g.perlins[:0]
	g.simplexs = g.simplexs[:0]
	octaves := 1
	if s.Kind.IsFractal() {
		octaves = s.Octaves
	}
	switch s.Kind {
	case Perlin, PerlinFractal:
		for i := 0; i < octaves; i++ {
			// n=1: go-perlin's own octave loop is replaced by fractal().
			g.perlins = append(g.perlins, perlin.NewPerlin(2, 2, 1, int64(s.Seed)+int64(i)))
		}
	case Simplex, SimplexFractal:
		for i := 0; i < octaves; i++ {
			g.simplexs = append(g.simplexs, opensimplex.New(int64(s.Seed)+int64(i)))
		}
	}
}

// Sample2D implements Sampler.
func (g *Generator) Sample2D(x, y float64) float64 {
	s := &g.settings
	x *= s.Frequency
	y *= s.Frequency

	switch s.Kind {
	case Value:
		return g.value(0, x, y)
	case ValueFractal:
		return g.fractal(g.value, x, y)
	case Perlin:
		return g.perlin(0, x, y)
	case PerlinFractal:
		return g.fractal(g.perlin, x, y)
	case Simplex:
		return g.simplex(0, x, y)
	case SimplexFractal:
		return g.fractal(g.simplex, x, y)
	case Cellular:
		return g.cellular(x, y)
	case WhiteNoise:
		return whiteNoise(s.Seed, x, y)
	default:
		return 0
	}
}

// fractal combines octaves of a base noise; octave i is seeded Seed+i.
func (g *Generator) fractal(base func(octave int, x, y float64) float64, x, y float64) float64 {
	s := &g.settings
	amp := 1.0

	switch s.Fractal {
	case Billow:
		sum := math.Abs(base(0, x, y))*2 - 1
		for i := 1; i < s.Octaves; i++ {
			x *= s.Lacunarity
			y *= s.Lacunarity
			amp *= s.Gain
			sum += (math.Abs(base(i, x, y))*2 - 1) * amp
		}
		return sum * g.fractalBounding
	case RigidMulti:
		sum := 1 - math.Abs(base(0, x, y))
		for i := 1; i < s.Octaves; i++ {
			x *= s.Lacunarity
			y *= s.Lacunarity
			amp *= s.Gain
			sum -= (1 - math.Abs(base(i, x, y))) * amp
		}
		return sum
	default:
		sum := base(0, x, y)
		for i := 1; i < s.Octaves; i++ {
			x *= s.Lacunarity
			y *= s.Lacunarity
			amp *= s.Gain
			sum += base(i, x, y) * amp
		}
		return sum * g.fractalBounding
	}
}

func (g *Generator) perlin(octave int, x, y float64) float64 {
	return g.perlins[octave].Noise2D(x, y)
}

func (g *Generator) simplex(octave int, x, y float64) float64 {
	return g.simplexs[octave].Eval2(x, y)
}

func (g *Generator) value(octave int, x, y float64) float64 {
	return valueNoise(g.settings.Seed+int32(octave), g.settings.Interp, x, y)
}

func (g *Generator) cellular(x, y float64) float64 {
	s := &g.settings
	return cellularNoise(s.Seed, s.CellularDistance, s.CellularReturn, s.CellularJitter, x, y)
}
