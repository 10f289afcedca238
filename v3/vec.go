/*
 * vec.go, part of goChem.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * Gochem is developed at the laboratory for instruction in Swedish, Department of Chemistry,
 * University of Helsinki, Finland.
 *
 */

package v3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec is a single point or displacement in 3D space.
type Vec = r3.Vec

// Zero is the additive identity of Vec.
var Zero = Vec{X: 0, Y: 0, Z: 0}

// Add returns a+b.
func Add(a, b Vec) Vec { return r3.Add(a, b) }

// Sub returns a-b.
func Sub(a, b Vec) Vec { return r3.Sub(a, b) }

// Scale returns f*v.
func Scale(f float64, v Vec) Vec { return r3.Scale(f, v) }

// Dot returns the dot product of a and b.
func Dot(a, b Vec) float64 { return r3.Dot(a, b) }

// Cross returns the cross product of a and b.
func Cross(a, b Vec) Vec { return r3.Cross(a, b) }

// Norm returns the Euclidean length of v.
func Norm(v Vec) float64 { return r3.Norm(v) }

// Norm2 returns the squared Euclidean length of v, avoiding the sqrt.
func Norm2(v Vec) float64 { return r3.Dot(v, v) }

// Unit returns v scaled to unit length. Panics if v is the zero vector.
func Unit(v Vec) Vec {
	n := Norm(v)
	if n == 0 {
		panic("v3: cannot normalize the zero vector")
	}
	return Scale(1/n, v)
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Vec) float64 { return Norm(Sub(a, b)) }

// RotateAbout rotates the point p by angle radians around the axis passing
// through origin with direction dir (need not be normalized), using
// Rodrigues' rotation formula. This is the operation every move that
// reorients a group or a single particle bottoms out into: axis-angle
// rotation about an arbitrary line, not just the origin.
func RotateAbout(p, origin, dir Vec, angle float64) Vec {
	axis := Unit(dir)
	rel := Sub(p, origin)
	sin, cos := math.Sincos(angle)
	term1 := Scale(cos, rel)
	term2 := Scale(sin, Cross(axis, rel))
	term3 := Scale(Dot(axis, rel)*(1-cos), axis)
	rotated := Add(Add(term1, term2), term3)
	return Add(origin, rotated)
}

// RandomUnitVector draws a direction uniformly distributed on the unit
// sphere using Marsaglia's method, given a source of uniform(0,1) draws.
func RandomUnitVector(uniform func() float64) Vec {
	for {
		x1 := 2*uniform() - 1
		x2 := 2*uniform() - 1
		s := x1*x1 + x2*x2
		if s >= 1 {
			continue
		}
		f := 2 * math.Sqrt(1-s)
		return Vec{X: x1 * f, Y: x2 * f, Z: 1 - 2*s}
	}
}
