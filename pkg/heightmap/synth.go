package heightmap

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/flatland/pkg/noise"
)

// Synthesize samples the noise at every cell and maps the result into the
// uint16 range. The grid is freshly allocated; cell (x, y) is stored at
// y*Width + x. Params must already be validated.
func Synthesize(p Params, base float64, np NoiseParams, sampler noise.Sampler) *Grid {
	g := NewGrid(p.Width, p.Height)
	for y := 0; y < p.Height; y++ {
		synthesizeRow(g, y, base, np, sampler)
	}
	return g
}

// SynthesizeParallel is Synthesize with rows spread over at most workers
// goroutines (GOMAXPROCS when workers <= 0). The sampler must not be
// reconfigured while it runs. The only error is ctx cancellation.
func SynthesizeParallel(parent context.Context, p Params, base float64, np NoiseParams, sampler noise.Sampler, workers int) (*Grid, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g := NewGrid(p.Width, p.Height)
	eg, ctx := errgroup.WithContext(parent)
	eg.SetLimit(workers)

	for y := 0; y < p.Height; y++ {
		if err := ctx.Err(); err != nil {
			break
		}
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			synthesizeRow(g, y, base, np, sampler)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	// Cancelled before any row was scheduled.
	if err := parent.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

// synthesizeRow writes only row y, so rows never alias each other.
func synthesizeRow(g *Grid, y int, base float64, np NoiseParams, sampler noise.Sampler) {
	row := g.Data[y*g.Width : (y+1)*g.Width]
	fy := float64(y) * np.Scale
	for x := range row {
		sample := sampler.Sample2D(float64(x)*np.Scale, fy)
		row[x] = Quantize(base + finiteOrZero(sample)*np.Intensity)
	}
}

// Quantize rounds a raw height to the nearest integer and clamps it to
// [0, MaxHeight]. Clamping happens before conversion, so +Inf saturates to
// MaxHeight and -Inf and NaN map to 0.
func Quantize(raw float64) uint16 {
	if math.IsNaN(raw) {
		return 0
	}
	h := math.Round(raw)
	if h <= 0 {
		return 0
	}
	if h >= MaxHeight {
		return MaxHeight
	}
	return uint16(h)
}

// finiteOrZero treats NaN and ±Inf noise samples as flat ground.
func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
