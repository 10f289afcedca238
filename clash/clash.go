/*
 * clash.go, part of goChem.
 *
 * Copyright 2015 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

// Package clash provides non-periodic pairwise-distance primitives: which
// points lie within a radius of a seed, the smallest separation between
// two point sets, and whether any pair of them overlaps. Of these, the
// move package uses only AnyOverlap, as the rejection-free cluster move's
// MinDist pre-check before calling into the full Hamiltonian.
package clash

import (
	"math"

	v3 "github.com/cpasquier/faunus/v3"
)

// LowestDistance returns the smallest pairwise distance between any point
// in a and any point in b, and the indexes (into a and b respectively)
// of the closest pair. Returns +Inf and {-1,-1} if either set is empty.
func LowestDistance(a, b []v3.Vec) (dist float64, indexes [2]int) {
	dist = math.Inf(1)
	indexes = [2]int{-1, -1}
	for i, p := range a {
		for j, q := range b {
			if d := v3.Dist(p, q); d < dist {
				dist = d
				indexes = [2]int{i, j}
			}
		}
	}
	return dist, indexes
}

// WithinRadius returns the indexes of every point in candidates that lies
// within radius of seed.
func WithinRadius(seed v3.Vec, candidates []v3.Vec, radius float64) []int {
	var members []int
	for i, p := range candidates {
		if v3.Dist(seed, p) <= radius {
			members = append(members, i)
		}
	}
	return members
}

// AnyOverlap reports whether any pair of points between a and b are
// closer than minDist, the hard-sphere overlap rejection used as a cheap
// first-pass filter before a real energy evaluation.
func AnyOverlap(a, b []v3.Vec, minDist float64) bool {
	for _, p := range a {
		for _, q := range b {
			if v3.Dist(p, q) < minDist {
				return true
			}
		}
	}
	return false
}
