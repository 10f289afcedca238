/*
 * matrix.go, part of goChem.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package v3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 1e-12

// Matrix is a set of vectors in 3D space, one per row. Within the package it
// is understood that a "vector" is a row of the matrix, i.e. the cartesian
// coordinates of one particle. The name of some functions reflects this.
type Matrix struct {
	*mat.Dense
}

// Zeros returns a zero-filled Matrix with vecs rows and 3 columns.
func Zeros(vecs int) *Matrix {
	return &Matrix{mat.NewDense(vecs, 3, make([]float64, vecs*3))}
}

// NewMatrix builds a Matrix with 3 columns from data, which must have a
// length divisible by 3.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols = 3
	if len(data)%cols != 0 {
		return nil, fmt.Errorf("v3: input slice length %d not divisible by %d", len(data), cols)
	}
	return &Matrix{mat.NewDense(len(data)/cols, cols, data)}, nil
}

// FromVecs builds a Matrix from a slice of Vec, one per row.
func FromVecs(vecs []Vec) *Matrix {
	m := Zeros(len(vecs))
	for i, v := range vecs {
		m.SetVec(i, v)
	}
	return m
}

// ToVecs copies the rows of F into a freshly allocated []Vec.
func (F *Matrix) ToVecs() []Vec {
	n := F.NVecs()
	out := make([]Vec, n)
	for i := 0; i < n; i++ {
		out[i] = F.AtVec(i)
	}
	return out
}

// NVecs returns the number of rows (vectors) held by F.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

// AtVec returns the ith row as a Vec.
func (F *Matrix) AtVec(i int) Vec {
	return Vec{X: F.At(i, 0), Y: F.At(i, 1), Z: F.At(i, 2)}
}

// SetVec sets the ith row to v.
func (F *Matrix) SetVec(i int, v Vec) {
	F.Set(i, 0, v.X)
	F.Set(i, 1, v.Y)
	F.Set(i, 2, v.Z)
}

// VecView returns a view of the ith row of F. Mutations to the view are
// reflected in F and vice versa.
func (F *Matrix) VecView(i int) *Matrix {
	return &Matrix{F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)}
}

// SomeVecs copies into F the rows of A whose indices are given in idx, in
// the order listed. F must have exactly len(idx) rows.
func (F *Matrix) SomeVecs(A *Matrix, idx []int) {
	if F.NVecs() != len(idx) {
		panic("v3: SomeVecs: destination row count must match index count")
	}
	for dst, src := range idx {
		F.SetVec(dst, A.AtVec(src))
	}
}

// SetVecs writes the rows of A into the rows of F whose indices are given in
// idx, in the order listed. A must have exactly len(idx) rows.
func (F *Matrix) SetVecs(A *Matrix, idx []int) {
	if A.NVecs() != len(idx) {
		panic("v3: SetVecs: source row count must match index count")
	}
	for src, dst := range idx {
		F.SetVec(dst, A.AtVec(src))
	}
}

// SwapVecs exchanges rows i and j in place.
func (F *Matrix) SwapVecs(i, j int) {
	vi, vj := F.AtVec(i), F.AtVec(j)
	F.SetVec(i, vj)
	F.SetVec(j, vi)
}

// AddVec adds the row vector vec to every row of A, storing the result in F.
func (F *Matrix) AddVec(A *Matrix, vec Vec) {
	n := A.NVecs()
	for i := 0; i < n; i++ {
		F.SetVec(i, Add(A.AtVec(i), vec))
	}
}

// SubVec subtracts the row vector vec from every row of A, storing the
// result in F.
func (F *Matrix) SubVec(A *Matrix, vec Vec) {
	F.AddVec(A, Scale(-1, vec))
}

// ScaleByVec scales each column of A component-wise by the corresponding
// component of factor, storing the result in F. Used by anisotropic box
// rescaling (isochoric shape moves).
func (F *Matrix) ScaleByVec(A *Matrix, factor Vec) {
	n := A.NVecs()
	for i := 0; i < n; i++ {
		v := A.AtVec(i)
		F.SetVec(i, Vec{X: v.X * factor.X, Y: v.Y * factor.Y, Z: v.Z * factor.Z})
	}
}

// CopyFrom copies the contents of A into F. Both must have the same shape.
func (F *Matrix) CopyFrom(A *Matrix) {
	F.Dense.Copy(A.Dense)
}

// MassCentre returns the unweighted mean position (mass centre assuming
// equal masses) of all rows in F.
func (F *Matrix) MassCentre() Vec {
	n := F.NVecs()
	if n == 0 {
		return Zero
	}
	sum := Zero
	for i := 0; i < n; i++ {
		sum = Add(sum, F.AtVec(i))
	}
	return Scale(1/float64(n), sum)
}

// String returns a readable representation of the matrix, one row per line.
func (F *Matrix) String() string {
	n := F.NVecs()
	lines := make([]string, n)
	for i := 0; i < n; i++ {
		v := F.AtVec(i)
		lines[i] = fmt.Sprintf("%8.3f %8.3f %8.3f", v.X, v.Y, v.Z)
	}
	return strings.Join(lines, "\n")
}
