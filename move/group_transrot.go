package move

import (
	"fmt"

	"github.com/cpasquier/faunus"
	"github.com/cpasquier/faunus/rng"
	v3 "github.com/cpasquier/faunus/v3"
)

// GroupTranslateRotate rigidly translates and/or rotates a whole
// molecular group about its own mass centre, per spec.md §4.3. Variant
// selection:
//   - N-body (default): a single randomly-chosen group of MoleculeID is
//     moved.
//   - TwoBody: two distinct groups of MoleculeID are moved symmetrically
//     (translated by opposite vectors), modelling a dimer's internal
//     coordinate.
//   - ConformationSwap: instead of displacing particles, the group's
//     entire particle slice is replaced by one drawn from Conformations,
//     recentred on the group's current mass centre.
type GroupTranslateRotate struct {
	Base

	MoleculeID    int
	DP, DPRot     float64
	Dir           v3.Vec
	TwoBody       bool
	Conformations [][]v3.Vec

	lastGroups []int
	lastOld    map[int][]v3.Vec
}

// NewGroupTranslateRotate returns a GroupTranslateRotate for groups of
// moleculeID.
func NewGroupTranslateRotate(name string, moleculeID int, dp, dpRot float64, dir v3.Vec, seed *rng.RNG) *GroupTranslateRotate {
	return &GroupTranslateRotate{
		Base:       NewBase(name, seed),
		MoleculeID: moleculeID,
		DP:         dp,
		DPRot:      dpRot,
		Dir:        dir,
	}
}

func (m *GroupTranslateRotate) groupsOfType(space *faunus.Space) []int {
	var out []int
	for i, g := range space.Groups {
		if g.MoleculeID == m.MoleculeID {
			out = append(out, i)
		}
	}
	return out
}

// Propose implements Mover.
func (m *GroupTranslateRotate) Propose(space *faunus.Space) *faunus.Change {
	change := faunus.NewChange()
	candidates := m.groupsOfType(space)
	if len(candidates) == 0 {
		panic(fmt.Sprintf("move: %s: no groups of molecule %d", m.MoveName, m.MoleculeID))
	}

	var chosen []int
	if m.TwoBody {
		if len(candidates) < 2 {
			panic(fmt.Sprintf("move: %s: twobody variant needs at least two groups", m.MoveName))
		}
		first := candidates[m.RNG.Pick(len(candidates))]
		var second int
		for {
			second = candidates[m.RNG.Pick(len(candidates))]
			if second != first {
				break
			}
		}
		chosen = []int{first, second}
	} else {
		chosen = []int{candidates[m.RNG.Pick(len(candidates))]}
	}
	m.lastGroups = chosen
	m.lastOld = make(map[int][]v3.Vec, len(chosen))

	if len(m.Conformations) > 0 {
		m.swapConformation(space, change, chosen[0])
		return change
	}

	delta := v3.Vec{
		X: m.Dir.X * m.DP * m.RNG.Half(),
		Y: m.Dir.Y * m.DP * m.RNG.Half(),
		Z: m.Dir.Z * m.DP * m.RNG.Half(),
	}
	axis := v3.RandomUnitVector(m.RNG.Uniform)
	angle := m.DPRot * m.RNG.Half() * 2

	for gi, groupIdx := range chosen {
		g := space.Groups[groupIdx]
		old := make([]v3.Vec, g.Size())
		d := delta
		if m.TwoBody && gi == 1 {
			d = v3.Scale(-1, delta)
		}
		for i := g.Front; i < g.Back; i++ {
			old[i-g.Front] = space.Trial[i].Pos
			rotated := v3.RotateAbout(space.Trial[i].Pos, g.TrialCM, axis, angle)
			space.Trial[i].Pos = space.Geometry.Wrap(v3.Add(rotated, d))
			change.AddParticle(groupIdx, i)
		}
		m.lastOld[groupIdx] = old
	}
	return change
}

func (m *GroupTranslateRotate) swapConformation(space *faunus.Space, change *faunus.Change, groupIdx int) {
	g := space.Groups[groupIdx]
	conf := m.Conformations[m.RNG.Pick(len(m.Conformations))]
	if len(conf) != g.Size() {
		panic(fmt.Sprintf("move: %s: conformation size %d does not match group size %d", m.MoveName, len(conf), g.Size()))
	}
	old := make([]v3.Vec, g.Size())
	cm := g.TrialCM
	for i := g.Front; i < g.Back; i++ {
		old[i-g.Front] = space.Trial[i].Pos
		space.Trial[i].Pos = v3.Add(cm, conf[i-g.Front])
		change.AddParticle(groupIdx, i)
	}
	m.lastOld[groupIdx] = old
}

// EnergyChange implements Mover.
func (m *GroupTranslateRotate) EnergyChange(space *faunus.Space, h faunus.Hamiltonian, change *faunus.Change) float64 {
	return h.EnergyChange(space, change)
}

// Accept implements Mover.
func (m *GroupTranslateRotate) Accept(space *faunus.Space, change *faunus.Change) {
	for _, groupIdx := range m.lastGroups {
		space.Groups[groupIdx].RecomputeTrialCM(space.Trial)
	}
	space.Commit()
}

// Reject implements Mover.
func (m *GroupTranslateRotate) Reject(space *faunus.Space, change *faunus.Change) {
	space.Reject()
	for _, groupIdx := range m.lastGroups {
		space.Groups[groupIdx].RecomputeTrialCM(space.Trial)
	}
}

// Report implements Mover.
func (m *GroupTranslateRotate) Report() map[string]any {
	acc := m.Stats.Acceptance(m.MoveName)
	return map[string]any{"trials": acc.Trials, "accepted": acc.Accepted, "ratio": acc.Ratio()}
}
