package noise

import "math"

// hash2 mixes a seed and lattice coordinate into 32 bits. All arithmetic is
// uint32 so results match on every platform.
func hash2(seed, x, y int32) uint32 {
	h := uint32(seed) + uint32(x)*374761393 + uint32(y)*668265263
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

// unit maps a hash to [0, 1].
func unit(h uint32) float64 {
	return float64(h&0xFFFFFF) / float64(0xFFFFFF)
}

// latticeValue returns a value in [-1, 1] for a lattice point.
func latticeValue(seed, x, y int32) float64 {
	return unit(hash2(seed, x, y))*2 - 1
}

func interpolate(mode Interp, t float64) float64 {
	switch mode {
	case Hermite:
		return t * t * (3 - 2*t)
	case Quintic:
		return t * t * t * (t*(t*6-15) + 10)
	default:
		return t
	}
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func valueNoise(seed int32, mode Interp, x, y float64) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	x0, y0 := int32(fx), int32(fy)
	x1, y1 := x0+1, y0+1

	xs := interpolate(mode, x-fx)
	ys := interpolate(mode, y-fy)

	top := lerp(latticeValue(seed, x0, y0), latticeValue(seed, x1, y0), xs)
	bottom := lerp(latticeValue(seed, x0, y1), latticeValue(seed, x1, y1), xs)
	return lerp(top, bottom, ys)
}

// cellularNoise is Worley noise over a unit grid with one jittered feature
// point per cell, searching the 3x3 neighbourhood.
func cellularNoise(seed int32, metric CellularDistance, ret CellularReturn, jitter, x, y float64) float64 {
	ix := int32(math.Floor(x))
	iy := int32(math.Floor(y))

	d0, d1 := math.MaxFloat64, math.MaxFloat64
	var cx0, cy0 int32

	for ny := int32(-1); ny <= 1; ny++ {
		for nx := int32(-1); nx <= 1; nx++ {
			cx, cy := ix+nx, iy+ny

			h := hash2(seed, cx, cy)
			jx := (unit(h) - 0.5) * jitter
			jy := (unit(hash2(seed+1, cx, cy)) - 0.5) * jitter

			dx := float64(cx) + 0.5 + jx - x
			dy := float64(cy) + 0.5 + jy - y

			var d float64
			switch metric {
			case Manhattan:
				d = math.Abs(dx) + math.Abs(dy)
			case Natural:
				d = math.Abs(dx) + math.Abs(dy) + (dx*dx + dy*dy)
			default:
				d = math.Sqrt(dx*dx + dy*dy)
			}

			if d < d0 {
				d1 = d0
				d0 = d
				cx0, cy0 = cx, cy
			} else if d < d1 {
				d1 = d
			}
		}
	}

	switch ret {
	case Distance:
		return d0 - 1
	case Distance2:
		return d1 - 1
	case Distance2Add:
		return d1 + d0 - 1
	case Distance2Sub:
		return d1 - d0 - 1
	case Distance2Mul:
		return d1*d0 - 1
	case Distance2Div:
		return d0/d1 - 1
	default:
		return latticeValue(seed, cx0, cy0)
	}
}

// whiteNoise hashes the bit patterns of the coordinates, so every distinct
// input gets an unrelated value.
func whiteNoise(seed int32, x, y float64) float64 {
	xb := math.Float32bits(float32(x))
	yb := math.Float32bits(float32(y))
	return latticeValue(seed, int32(xb^(xb>>16)), int32(yb^(yb>>16)))
}
