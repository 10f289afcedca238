package faunus

import (
	"math"

	v3 "github.com/cpasquier/faunus/v3"
)

// Group is a contiguous half-open range [Front, Back) into a Space's
// particle slices, together with its molecule identity and, for
// molecular groups, its tracked mass centre.
type Group struct {
	Name       string
	MoleculeID int
	Front, Back int // half-open: particles at indices [Front, Back)

	// Molecular is false for an atomic group (a pool of free ions, whose
	// mass centre is meaningless) and true for a rigid/flexible
	// macromolecule whose mass centre is tracked across moves.
	Molecular bool

	CommittedCM v3.Vec
	TrialCM     v3.Vec
}

// Size returns the number of particles in the group.
func (g *Group) Size() int { return g.Back - g.Front }

// Indexes returns the particle indices belonging to the group, in order.
func (g *Group) Indexes() []int {
	idx := make([]int, g.Size())
	for i := range idx {
		idx[i] = g.Front + i
	}
	return idx
}

// Contains reports whether particle index i belongs to the group.
func (g *Group) Contains(i int) bool { return i >= g.Front && i < g.Back }

// RecomputeTrialCM recomputes TrialCM from scratch given the trial
// particle slice, the operation every translate/rotate move on a
// molecular group must perform after touching any of its particles.
func (g *Group) RecomputeTrialCM(trial []Particle) {
	if !g.Molecular {
		return
	}
	pts := make([]v3.Vec, g.Size())
	for i := g.Front; i < g.Back; i++ {
		pts[i-g.Front] = trial[i].Pos
	}
	g.TrialCM = v3.MassCentreOf(pts)
}

// CheckCMConsistency reports an *InvariantError if the group is
// molecular and its CommittedCM disagrees with the mass centre
// recomputed from committed by more than MassCentreTolerance per
// component, per spec.md §3/§8.
func (g *Group) CheckCMConsistency(committed []Particle) error {
	if !g.Molecular {
		return nil
	}
	pts := make([]v3.Vec, g.Size())
	for i := g.Front; i < g.Back; i++ {
		pts[i-g.Front] = committed[i].Pos
	}
	recomputed := v3.MassCentreOf(pts)
	if math.Abs(recomputed.X-g.CommittedCM.X) > MassCentreTolerance ||
		math.Abs(recomputed.Y-g.CommittedCM.Y) > MassCentreTolerance ||
		math.Abs(recomputed.Z-g.CommittedCM.Z) > MassCentreTolerance {
		return NewInvariantError("mass-centre-consistency",
			"group "+g.Name+": tracked mass centre drifted beyond tolerance")
	}
	return nil
}
