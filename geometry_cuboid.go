package faunus

import (
	"math"

	v3 "github.com/cpasquier/faunus/v3"
)

// CuboidGeometry is a minimal periodic rectangular box: a reference
// Geometry implementation good enough to drive the end-to-end scenarios
// in spec.md §8 and the package's own tests. Production geometries (with
// excluded volumes, non-orthogonal cells, etc.) are an external
// collaborator's concern, out of scope here.
type CuboidGeometry struct {
	Length v3.Vec
}

// NewCuboidGeometry returns a cubic box of side length.
func NewCuboidGeometry(length float64) *CuboidGeometry {
	return &CuboidGeometry{Length: v3.Vec{X: length, Y: length, Z: length}}
}

func wrapAxis(x, l float64) float64 {
	x = math.Mod(x+l/2, l)
	if x < 0 {
		x += l
	}
	return x - l/2
}

// Wrap implements Geometry.
func (c *CuboidGeometry) Wrap(p v3.Vec) v3.Vec {
	return v3.Vec{
		X: wrapAxis(p.X, c.Length.X),
		Y: wrapAxis(p.Y, c.Length.Y),
		Z: wrapAxis(p.Z, c.Length.Z),
	}
}

// Distance implements Geometry using the minimum-image convention.
func (c *CuboidGeometry) Distance(a, b v3.Vec) float64 {
	d := v3.Sub(a, b)
	d = v3.Vec{
		X: wrapAxis(d.X, c.Length.X),
		Y: wrapAxis(d.Y, c.Length.Y),
		Z: wrapAxis(d.Z, c.Length.Z),
	}
	return v3.Norm(d)
}

// Volume implements Geometry.
func (c *CuboidGeometry) Volume() float64 { return c.Length.X * c.Length.Y * c.Length.Z }

// SetVolume implements Geometry. When scale is the zero vector the box
// is scaled isotropically to the requested volume (isobaric move);
// otherwise scale gives the per-axis multiplier directly and volume is
// ignored (isochoric move, which preserves volume by construction).
func (c *CuboidGeometry) SetVolume(volume float64, scale v3.Vec) {
	if scale == v3.Zero {
		factor := math.Cbrt(volume / c.Volume())
		c.Length = v3.Scale(factor, c.Length)
		return
	}
	c.Length = v3.Vec{X: c.Length.X * scale.X, Y: c.Length.Y * scale.Y, Z: c.Length.Z * scale.Z}
}

// RandomPoint implements Geometry, drawing a uniformly distributed point
// inside the box centered on the origin.
func (c *CuboidGeometry) RandomPoint(uniform func() float64) v3.Vec {
	return v3.Vec{
		X: c.Length.X * (uniform() - 0.5),
		Y: c.Length.Y * (uniform() - 0.5),
		Z: c.Length.Z * (uniform() - 0.5),
	}
}

// HalfLength implements Geometry.
func (c *CuboidGeometry) HalfLength() v3.Vec {
	return v3.Scale(0.5, c.Length)
}
