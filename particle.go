package faunus

import v3 "github.com/cpasquier/faunus/v3"

// MassCentreTolerance is the per-component floating tolerance a
// molecular group's tracked mass centre is allowed to drift from the
// mass centre recomputed from its particles, per spec.
const MassCentreTolerance = 1e-6

// Particle is one point mass/charge in the simulation. Pos is mutated
// directly by moves; the other fields change only through grand-canonical
// or titration moves (TypeID), AtomicRotate (DipoleDir), or the
// polarisation decorator (DipoleDir, DipoleMag).
type Particle struct {
	Pos            v3.Vec
	Charge         float64
	TypeID         int
	Radius         float64
	DipoleMag      float64
	DipoleDir      v3.Vec
	Polarisability float64
	Hydrophobic    bool
}

// Clone returns an independent copy of p (Particle has no reference
// fields, so this is a plain value copy, but the method documents the
// intent at call sites that care about it).
func (p Particle) Clone() Particle { return p }
