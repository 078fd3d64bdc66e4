// Package landscape adapts heightmap synthesis to a terrain importer: it runs
// the validate, configure, synthesize pipeline and derives the component
// layout and world placement the importer expects.
package landscape

import "github.com/Faultbox/flatland/pkg/heightmap"

// HeightScale converts height units to world units before the uniform scale
// is applied; 65536 units span 512 world units.
const HeightScale = 1.0 / 128

// Transform places the terrain in the world.
type Transform struct {
	Position [3]float64 `yaml:"position"`
	Scale    float64    `yaml:"scale"` // uniform
}

// Layout describes how the grid is split into renderable components.
type Layout struct {
	ComponentSizeQuads  int `yaml:"component_size_quads"`
	NumSubsections      int `yaml:"num_subsections"`
	SubsectionSizeQuads int `yaml:"subsection_size_quads"`
	QuadsX              int `yaml:"quads_x"` // Width - 1
	QuadsY              int `yaml:"quads_y"` // Height - 1
	ComponentsX         int `yaml:"components_x"`
	ComponentsY         int `yaml:"components_y"`
}

// Consistent reports whether the subsections exactly tile a component.
func (l Layout) Consistent() bool {
	return l.NumSubsections*l.SubsectionSizeQuads == l.ComponentSizeQuads
}

// Bounds holds the world-space axis-aligned bounding box of the terrain.
type Bounds struct {
	Min [3]float64 `yaml:"min"`
	Max [3]float64 `yaml:"max"`
}

// Landscape is one synthesized terrain ready for import.
type Landscape struct {
	Label     string
	Grid      *heightmap.Grid
	Layout    Layout
	Transform Transform
	Bounds    Bounds
}

// NewLayout derives the component layout from validated parameters.
func NewLayout(p heightmap.Params) Layout {
	l := Layout{
		ComponentSizeQuads:  p.ComponentSizeQuads,
		NumSubsections:      p.NumSubsections,
		SubsectionSizeQuads: p.SubsectionSizeQuads,
		QuadsX:              max(p.Width-1, 0),
		QuadsY:              max(p.Height-1, 0),
	}
	l.ComponentsX = max(ceilDiv(l.QuadsX, l.ComponentSizeQuads), 1)
	l.ComponentsY = max(ceilDiv(l.QuadsY, l.ComponentSizeQuads), 1)
	return l
}

// WorldHeight converts a height sample to a world-space Z offset.
func (t Transform) WorldHeight(sample uint16) float64 {
	return (float64(sample) - heightmap.BaseElevation) * HeightScale * t.Scale
}

// computeBounds returns the world-space box covering every sample.
func computeBounds(g *heightmap.Grid, t Transform) Bounds {
	st := g.Stats()
	sizeX := float64(max(g.Width-1, 0)) * t.Scale
	sizeY := float64(max(g.Height-1, 0)) * t.Scale
	p := t.Position
	return Bounds{
		Min: [3]float64{p[0], p[1], p[2] + t.WorldHeight(st.Min)},
		Max: [3]float64{p[0] + sizeX, p[1] + sizeY, p[2] + t.WorldHeight(st.Max)},
	}
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
