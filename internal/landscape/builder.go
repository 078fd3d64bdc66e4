package landscape

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/flatland/internal/config"
	"github.com/Faultbox/flatland/pkg/heightmap"
	"github.com/Faultbox/flatland/pkg/noise"
)

// Builder owns the terrain settings and re-runs the whole pipeline whenever
// they change. It is not safe for concurrent use.
type Builder struct {
	terrain config.TerrainConfig
	noise   config.NoiseConfig
	sampler noise.Sampler
	log     *zap.Logger

	current *Landscape
}

// NewBuilder creates a builder from config. A nil sampler is replaced with
// the default generator during validation.
func NewBuilder(cfg *config.Config, sampler noise.Sampler, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		terrain: cfg.Terrain,
		noise:   cfg.Noise,
		sampler: sampler,
		log:     log,
	}
}

// Current returns the last built landscape, or nil before the first Build.
func (b *Builder) Current() *Landscape {
	return b.current
}

// Build validates the parameters, configures the sampler and synthesizes a
// fresh grid. The previous landscape is replaced, never patched.
func (b *Builder) Build(ctx context.Context) (*Landscape, error) {
	start := time.Now()

	params, sampler := heightmap.ValidateParameters(b.terrain.Params, b.sampler, b.log)
	sampling, settings := heightmap.ValidateNoise(b.noise.Sampling(), b.noise.Settings, b.log)
	b.terrain.Params = params
	b.noise.Settings = settings
	b.noise.Scale, b.noise.Intensity = sampling.Scale, sampling.Intensity
	b.sampler = sampler

	heightmap.ConfigureNoise(sampler, settings)

	var grid *heightmap.Grid
	if b.noise.Workers == 1 {
		grid = heightmap.Synthesize(params, b.terrain.BaseElevation, sampling, sampler)
	} else {
		var err error
		grid, err = heightmap.SynthesizeParallel(ctx, params, b.terrain.BaseElevation, sampling, sampler, b.noise.Workers)
		if err != nil {
			return nil, err
		}
	}

	layout := NewLayout(params)
	if !layout.Consistent() {
		b.log.Warn("subsections do not tile a component exactly",
			zap.Int("component_size_quads", layout.ComponentSizeQuads),
			zap.Int("num_subsections", layout.NumSubsections),
			zap.Int("subsection_size_quads", layout.SubsectionSizeQuads))
	}

	transform := Transform{Position: b.terrain.Position, Scale: params.Scale}
	ls := &Landscape{
		Label:     b.terrain.Label,
		Grid:      grid,
		Layout:    layout,
		Transform: transform,
		Bounds:    computeBounds(grid, transform),
	}
	b.current = ls

	st := grid.Stats()
	b.log.Info("landscape built",
		zap.String("label", ls.Label),
		zap.Int("width", grid.Width),
		zap.Int("height", grid.Height),
		zap.Stringer("noise", settings.Kind),
		zap.Int("components_x", layout.ComponentsX),
		zap.Int("components_y", layout.ComponentsY),
		zap.Uint16("min", st.Min),
		zap.Uint16("max", st.Max),
		zap.Duration("took", time.Since(start)))

	return ls, nil
}

// Rebuild applies edit to the settings and builds again.
func (b *Builder) Rebuild(ctx context.Context, edit func(*config.TerrainConfig, *config.NoiseConfig)) (*Landscape, error) {
	if edit != nil {
		edit(&b.terrain, &b.noise)
	}
	return b.Build(ctx)
}
