package heightmap

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrSizeMismatch is returned when a buffer does not hold Width*Height samples.
var ErrSizeMismatch = errors.New("heightmap buffer size mismatch")

// Grid is a row-major buffer of 16-bit height samples.
type Grid struct {
	Width  int
	Height int
	Data   []uint16 // len == Width*Height, index y*Width + x
}

// NewGrid allocates a zeroed grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Data:   make([]uint16, width*height),
	}
}

// At returns the sample at (x, y), or 0 outside the grid.
func (g *Grid) At(x, y int) uint16 {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0
	}
	return g.Data[y*g.Width+x]
}

// HeightAt returns the bilinearly interpolated height at fractional grid
// coordinates. Positions outside the grid are clamped to the border.
func (g *Grid) HeightAt(fx, fy float64) float64 {
	if g.Width == 0 || g.Height == 0 {
		return 0
	}

	fx = clampf(fx, 0, float64(g.Width-1))
	fy = clampf(fy, 0, float64(g.Height-1))

	x0, y0 := int(fx), int(fy)
	x1, y1 := min(x0+1, g.Width-1), min(y0+1, g.Height-1)
	tx, ty := fx-float64(x0), fy-float64(y0)

	// South edge (lower y), then north edge, then blend between them.
	south := float64(g.At(x0, y0))*(1-tx) + float64(g.At(x1, y0))*tx
	north := float64(g.At(x0, y1))*(1-tx) + float64(g.At(x1, y1))*tx
	return south*(1-ty) + north*ty
}

// Stats summarises the samples of a grid.
type Stats struct {
	Min  uint16
	Max  uint16
	Mean float64
}

// Stats returns the minimum, maximum and mean sample.
func (g *Grid) Stats() Stats {
	if len(g.Data) == 0 {
		return Stats{}
	}
	s := Stats{Min: g.Data[0], Max: g.Data[0]}
	var sum uint64
	for _, v := range g.Data {
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
		sum += uint64(v)
	}
	s.Mean = float64(sum) / float64(len(g.Data))
	return s
}

// WriteRaw writes the samples as little-endian uint16, row-major, with no
// header. This is the .r16 layout terrain importers accept.
func (g *Grid) WriteRaw(w io.Writer) error {
	if len(g.Data) != g.Width*g.Height {
		return fmt.Errorf("%w: %dx%d grid holds %d samples", ErrSizeMismatch, g.Width, g.Height, len(g.Data))
	}
	return binary.Write(w, binary.LittleEndian, g.Data)
}

// ReadRaw reads a width*height .r16 buffer written by WriteRaw. The reader
// must hold exactly that many samples.
func ReadRaw(r io.Reader, width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 || width > math.MaxInt/2/height {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrSizeMismatch, width, height)
	}

	g := NewGrid(width, height)
	if err := binary.Read(r, binary.LittleEndian, g.Data); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: want %d samples: %v", ErrSizeMismatch, width*height, err)
		}
		return nil, err
	}

	var extra [1]byte
	switch n, err := io.ReadFull(r, extra[:]); {
	case n > 0:
		return nil, fmt.Errorf("%w: trailing data after %d samples", ErrSizeMismatch, width*height)
	case err != nil && !errors.Is(err, io.EOF):
		return nil, err
	}
	return g, nil
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
