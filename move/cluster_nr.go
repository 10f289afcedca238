package move

import (
	"fmt"
	"math"

	"github.com/cpasquier/faunus"
	"github.com/cpasquier/faunus/clash"
	"github.com/cpasquier/faunus/rng"
	v3 "github.com/cpasquier/faunus/v3"
)

// PairEnergy evaluates the pairwise interaction energy between two
// particles, the primitive the rejection-free cluster move needs but a
// generic faunus.Hamiltonian does not expose (it only reports whole-trial
// deltas). A Hamiltonian implementation that supports this move wires it
// in explicitly.
type PairEnergy func(a, b faunus.Particle) float64

// NoRejectClusterTranslate implements spec.md §4.5: every mobile
// particle is either moved along with the seed or left behind, decided
// by a per-pair recruitment probability 1-exp(-deltaU_ij), where deltaU_ij
// is the change in the pair energy of an already-moved particle i and a
// candidate j when i alone is displaced. The move is accepted
// unconditionally (EnergyChange reports 0 to the Metropolis test in
// Step) while still respecting detailed balance, following the
// "virtual move" construction Frenkel & Smit describe.
type NoRejectClusterTranslate struct {
	Base

	SeedTypeID      int
	MobileTypes     []int
	DP              float64
	Pair            PairEnergy
	SkipEnergyAudit bool

	// MinDist, when positive, makes Propose discard (revert to the
	// committed positions) any trial that would push a moved particle
	// within MinDist of an unmoved one, a cheap hard-sphere pre-filter
	// ahead of the Hamiltonian call.
	MinDist float64

	lastMoved []int
	lastOld   map[int]v3.Vec
}

// NewNoRejectClusterTranslate returns a NoRejectClusterTranslate move.
func NewNoRejectClusterTranslate(name string, seedTypeID int, mobileTypes []int, dp float64, pair PairEnergy, seed *rng.RNG) *NoRejectClusterTranslate {
	return &NoRejectClusterTranslate{
		Base:        NewBase(name, seed),
		SeedTypeID:  seedTypeID,
		MobileTypes: mobileTypes,
		DP:          dp,
		Pair:        pair,
	}
}

func (m *NoRejectClusterTranslate) mobilePool(space *faunus.Space) []int {
	var out []int
	for _, t := range m.MobileTypes {
		out = append(out, space.Tracker.Indexes(t)...)
	}
	return out
}

// Propose implements Mover: recruits the moved set, translates it, and
// leaves the remaining pool untouched. The move never rejects on energy:
// EnergyChange reports 0 to the acceptance test unless the trial hits a
// hard container overlap (+Inf).
func (m *NoRejectClusterTranslate) Propose(space *faunus.Space) *faunus.Change {
	change := faunus.NewChange()
	seedBucket := space.Tracker.Indexes(m.SeedTypeID)
	if len(seedBucket) == 0 {
		panic(fmt.Sprintf("move: %s: no seed particles of type %d", m.MoveName, m.SeedTypeID))
	}
	seedIdx := seedBucket[m.RNG.Pick(len(seedBucket))]
	pool := m.mobilePool(space)

	delta := v3.Vec{X: m.DP * m.RNG.Half(), Y: m.DP * m.RNG.Half(), Z: m.DP * m.RNG.Half()}
	moved := map[int]bool{seedIdx: true}
	frontier := []int{seedIdx}
	for len(frontier) > 0 {
		var next []int
		for _, candidate := range pool {
			if moved[candidate] {
				continue
			}
			for _, f := range frontier {
				shifted := space.Trial[f]
				shifted.Pos = space.Geometry.Wrap(v3.Add(shifted.Pos, delta))
				deltaU := m.Pair(shifted, space.Trial[candidate]) - m.Pair(space.Trial[f], space.Trial[candidate])
				p := 1 - math.Exp(-math.Max(deltaU, 0))
				if p > 0 && m.RNG.Uniform() < p {
					moved[candidate] = true
					next = append(next, candidate)
					break
				}
			}
		}
		frontier = next
	}

	m.lastMoved = make([]int, 0, len(moved))
	for idx := range moved {
		m.lastMoved = append(m.lastMoved, idx)
	}
	m.lastOld = make(map[int]v3.Vec, len(m.lastMoved))

	for _, idx := range m.lastMoved {
		m.lastOld[idx] = space.Trial[idx].Pos
		space.Trial[idx].Pos = space.Geometry.Wrap(v3.Add(space.Trial[idx].Pos, delta))
		if g := groupOf(space, idx); g >= 0 {
			change.AddParticle(g, idx)
		}
	}

	if m.MinDist > 0 && !m.clusterClear(space, pool) {
		for idx, pos := range m.lastOld {
			space.Trial[idx].Pos = pos
		}
		change.Clear()
	}
	return change
}

// clusterClear reports whether no moved particle has come within
// m.MinDist of an unmoved particle from pool.
func (m *NoRejectClusterTranslate) clusterClear(space *faunus.Space, pool []int) bool {
	movedPts := make([]v3.Vec, len(m.lastMoved))
	for i, idx := range m.lastMoved {
		movedPts[i] = space.Trial[idx].Pos
	}
	movedSet := make(map[int]bool, len(m.lastMoved))
	for _, idx := range m.lastMoved {
		movedSet[idx] = true
	}
	var stillPts []v3.Vec
	for _, idx := range pool {
		if !movedSet[idx] {
			stillPts = append(stillPts, space.Trial[idx].Pos)
		}
	}
	return !clash.AnyOverlap(movedPts, stillPts, m.MinDist)
}

// EnergyChange implements Mover. It returns 0, so Base.Metropolis always
// accepts the trial; the recruitment probability above already enforces
// detailed balance on its own. When SkipEnergyAudit is false, the
// caller's Hamiltonian energy change is still computed and handed to Step
// as the alternate energy, so the propagator's running total stays exact
// even though it never drives acceptance. A +Inf Hamiltonian result (a
// hard container overlap) is returned as is, which rejects the trial.
func (m *NoRejectClusterTranslate) EnergyChange(space *faunus.Space, h faunus.Hamiltonian, change *faunus.Change) float64 {
	m.HasAlternateEnergy = true
	m.AlternateEnergy = 0
	if m.SkipEnergyAudit {
		return 0
	}
	deltaU := h.EnergyChange(space, change)
	if math.IsInf(deltaU, 1) {
		return deltaU
	}
	m.AlternateEnergy = deltaU
	return 0
}

// Accept implements Mover: commits the trial positions written by
// Propose, after refreshing the mass centres of the groups it touched.
func (m *NoRejectClusterTranslate) Accept(space *faunus.Space, change *faunus.Change) {
	for _, idx := range m.lastMoved {
		if g := groupOf(space, idx); g >= 0 {
			space.Groups[g].RecomputeTrialCM(space.Trial)
		}
	}
	space.Commit()
}

// Reject implements Mover. Reached only if EnergyChange returned +Inf
// (a hard container overlap); rolls the whole trial back.
func (m *NoRejectClusterTranslate) Reject(space *faunus.Space, change *faunus.Change) {
	space.Reject()
}

// Report implements Mover.
func (m *NoRejectClusterTranslate) Report() map[string]any {
	acc := m.Stats.Acceptance(m.MoveName)
	return map[string]any{"trials": acc.Trials, "accepted": acc.Accepted, "ratio": acc.Ratio()}
}
