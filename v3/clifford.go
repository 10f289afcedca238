/*
 * clifford.go, part of goChem.
 *
 * Copyright 2012 Janne Pesonen <janne.pesonen{at}helsinkiDOTfi>
 * and Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

	"github.com/skelterjohn/go.matrix"
)

// paravector is a scalar+vector pair in the even subalgebra of the
// geometric algebra of 3-space, the representation a Clifford rotation
// operates on.
type paravector struct {
	real float64
	vec  *matrix.DenseMatrix // 1x3
}

func newParavector() *paravector {
	return &paravector{vec: matrix.Zeros(1, 3)}
}

func paravectorFromVec(v Vec) *paravector {
	p := newParavector()
	p.vec.Set(0, 0, v.X)
	p.vec.Set(0, 1, v.Y)
	p.vec.Set(0, 2, v.Z)
	return p
}

func (p *paravector) toVec() Vec {
	return Vec{X: p.vec.Get(0, 0), Y: p.vec.Get(0, 1), Z: p.vec.Get(0, 2)}
}

func (p *paravector) reverse() *paravector {
	r := newParavector()
	r.real = p.real
	for i := 0; i < 3; i++ {
		r.vec.Set(0, i, -p.vec.Get(0, i))
	}
	return r
}

func (p *paravector) normalize() *paravector {
	norm := p.real * p.real
	for i := 0; i < 3; i++ {
		norm += p.vec.Get(0, i) * p.vec.Get(0, i)
	}
	norm = math.Sqrt(norm)
	r := newParavector()
	r.real = p.real / norm
	for i := 0; i < 3; i++ {
		r.vec.Set(0, i, p.vec.Get(0, i)/norm)
	}
	return r
}

// cliProduct is the geometric product of two even-subalgebra elements,
// each stored as a scalar plus the vector dual to its bivector part; in
// this representation it is the quaternion (Hamilton) product.
func cliProduct(a, b *paravector) *paravector {
	r := newParavector()
	r.real = a.real * b.real
	for i := 0; i < 3; i++ {
		r.real -= a.vec.Get(0, i) * b.vec.Get(0, i)
	}
	r.vec.Set(0, 0, a.real*b.vec.Get(0, 0)+b.real*a.vec.Get(0, 0)+
		a.vec.Get(0, 1)*b.vec.Get(0, 2)-a.vec.Get(0, 2)*b.vec.Get(0, 1))
	r.vec.Set(0, 1, a.real*b.vec.Get(0, 1)+b.real*a.vec.Get(0, 1)+
		a.vec.Get(0, 2)*b.vec.Get(0, 0)-a.vec.Get(0, 0)*b.vec.Get(0, 2))
	r.vec.Set(0, 2, a.real*b.vec.Get(0, 2)+b.real*a.vec.Get(0, 2)+
		a.vec.Get(0, 0)*b.vec.Get(0, 1)-a.vec.Get(0, 1)*b.vec.Get(0, 0))
	return r
}

// cliRotation rotates the paravector p by angle radians around axis (which
// must already be normalized) using the sandwich product R p R~, with R
// the rotor cos(angle/2) + sin(angle/2)*axis.
func cliRotation(p, axis *paravector, angle float64) *paravector {
	r := newParavector()
	r.real = math.Cos(angle / 2)
	half := math.Sin(angle / 2)
	for i := 0; i < 3; i++ {
		r.vec.Set(0, i, half*axis.vec.Get(0, i))
	}
	tmp := cliProduct(r, p)
	return cliProduct(tmp, r.reverse())
}

// RotateAboutClifford rotates p by angle radians around the axis through
// the origin with direction dir, computed through the Clifford-algebra
// sandwich product instead of RotateAbout's direct Rodrigues formula. It
// exists as an independently-derived cross-check on RotateAbout: the two
// share no code path, so agreement between them is evidence neither has a
// sign or convention bug.
func RotateAboutClifford(p, dir Vec, angle float64) Vec {
	axis := paravectorFromVec(Unit(dir)).normalize()
	rotated := cliRotation(paravectorFromVec(p), axis, angle)
	return rotated.toVec()
}
