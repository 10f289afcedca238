package main

import (
	"math"

	"github.com/cpasquier/faunus"
	v3 "github.com/cpasquier/faunus/v3"
)

// pairHamiltonian is a minimal concrete faunus.Hamiltonian: Coulomb plus
// a soft (1/r^12) repulsive core, the standard textbook combination used
// to exercise a move framework end to end without pulling in a real
// force field. A real deployment wires in whatever potential it needs;
// the move/ and faunus packages never depend on this type, only on
// faunus.Hamiltonian, per interfaces.go.
type pairHamiltonian struct {
	bjerrumLength float64 // e^2/(4*pi*eps0*eps_r*kT), in Angstrom
	repulsionK    float64 // soft-core prefactor of (sigma/r)^12, in kT
}

func newPairHamiltonian(bjerrumLength, repulsionK float64) *pairHamiltonian {
	return &pairHamiltonian{bjerrumLength: bjerrumLength, repulsionK: repulsionK}
}

func (h *pairHamiltonian) pairEnergy(space *faunus.Space, particles []faunus.Particle, a, b faunus.Particle) float64 {
	r := space.Geometry.Distance(a.Pos, b.Pos)
	if r <= 0 {
		return math.Inf(1)
	}
	u := h.bjerrumLength * a.Charge * b.Charge / r
	sigma := a.Radius + b.Radius
	if sigma > 0 {
		u += h.repulsionK * math.Pow(sigma/r, 12)
	}
	return u
}

// NotifyChange implements faunus.Hamiltonian: this demo potential has no
// internal cache or neighbour list to restrict, so it is a no-op.
func (h *pairHamiltonian) NotifyChange(space *faunus.Space, change *faunus.Change) {}

// EnergyChange implements faunus.Hamiltonian: recomputes the pairwise
// energy of every touched particle against the rest of the trial
// configuration, then the same against committed, and returns the
// difference. Quadratic in the touched-particle count against the full
// system; fine for the demo sizes mcrun targets, not for production
// scale (a real Hamiltonian would keep a neighbour list or cell list).
func (h *pairHamiltonian) EnergyChange(space *faunus.Space, change *faunus.Change) float64 {
	if change.GeometryChange {
		// Both terms are evaluated under the box's current (already-
		// rescaled) geometry; for the minimum-image distance this is a
		// demo-only approximation, since the "old" term should strictly
		// use the pre-trial box. A production Hamiltonian would snapshot
		// both volumes instead of relying on space.Geometry's live state.
		return h.FullEnergy(space, space.Trial) - h.FullEnergy(space, space.Committed)
	}

	touched := map[int]bool{}
	for g, idxs := range change.Groups {
		if len(idxs) == 0 {
			for i := space.Groups[g].Front; i < space.Groups[g].Back; i++ {
				touched[i] = true
			}
			continue
		}
		for _, i := range idxs {
			touched[i] = true
		}
	}

	sum := func(particles []faunus.Particle) float64 {
		total := 0.0
		for i := range touched {
			for j, other := range particles {
				if touched[j] && j <= i {
					continue // count each touched-touched pair once
				}
				if j == i {
					continue
				}
				total += h.pairEnergy(space, particles, particles[i], other)
			}
		}
		return total
	}
	return sum(space.Trial) - sum(space.Committed)
}

// FullEnergy implements faunus.Hamiltonian: the full O(n^2) pairwise sum.
func (h *pairHamiltonian) FullEnergy(space *faunus.Space, particles []faunus.Particle) float64 {
	total := 0.0
	for i := 0; i < len(particles); i++ {
		for j := i + 1; j < len(particles); j++ {
			total += h.pairEnergy(space, particles, particles[i], particles[j])
		}
	}
	return total
}

// ElectricField implements faunus.Hamiltonian: the bare Coulomb field
// every other charge exerts at each particle's position, the input the
// polarisation decorator's self-consistent dipole relaxation needs.
func (h *pairHamiltonian) ElectricField(space *faunus.Space, particles []faunus.Particle, field []v3.Vec) {
	for i := range field {
		field[i] = v3.Zero
	}
	for i, pi := range particles {
		for j, pj := range particles {
			if i == j || pj.Charge == 0 {
				continue
			}
			r := v3.Sub(pi.Pos, pj.Pos)
			dist := v3.Norm(r)
			if dist == 0 {
				continue
			}
			mag := h.bjerrumLength * pj.Charge / (dist * dist)
			field[i] = v3.Add(field[i], v3.Scale(mag, v3.Unit(r)))
		}
	}
}
