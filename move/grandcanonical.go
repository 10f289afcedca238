package move

import (
	"math"

	"github.com/cpasquier/faunus"
	"github.com/cpasquier/faunus/rng"
)

// IonSpecies is one half of a salt pair's or a general GC combination's
// chemical identity: a particle type and the excess chemical potential
// (already including the ideal-gas pressure*volume term, in kT) driving
// its insertion/deletion equilibrium.
type IonSpecies struct {
	TypeID  int
	Charge  float64
	MuExKT  float64
	Radius  float64
}

// SaltMove implements spec.md §4.8.1: grand-canonical insertion/deletion
// of a neutral salt combination into a reservoir group, coupling the
// cation and anion insertion counts to their charge magnitudes so the
// trial stays electroneutral for multivalent salts (e.g. CaCl2: one
// Ca2+ paired with two Cl-), the same Na=|z_anion|, Nb=|z_cation|
// stoichiometry the original engine's GrandCanonicalSalt::_trialMove
// computes from the configured charges. Insertion places every ion in
// the batch at an independent random point in the box; deletion removes
// that many randomly chosen existing ions of each species.
type SaltMove struct {
	Base

	Cation, Anion IonSpecies
	ReservoirGroup int

	insertedIdx []int // NumCation() cation indices followed by NumAnion() anion indices
	deletedIdx  []int // same layout
	inserting   bool

	nCationBefore, nAnionBefore int
}

// NewSaltMove returns a SaltMove for the given cation/anion pair, drawn
// into/out of the group at reservoirGroup.
func NewSaltMove(name string, cation, anion IonSpecies, reservoirGroup int, seed *rng.RNG) *SaltMove {
	return &SaltMove{Base: NewBase(name, seed), Cation: cation, Anion: anion, ReservoirGroup: reservoirGroup}
}

// NumCation returns the number of cations inserted/deleted together in
// one trial: |z_anion|, so that NumCation()*z_cation+NumAnion()*z_anion
// sums to zero regardless of either ion's valence.
func (m *SaltMove) NumCation() int { return chargeMagnitude(m.Anion.Charge) }

// NumAnion returns the number of anions inserted/deleted together in one
// trial: |z_cation|, the stoichiometric partner to NumCation.
func (m *SaltMove) NumAnion() int { return chargeMagnitude(m.Cation.Charge) }

func chargeMagnitude(charge float64) int {
	n := int(math.Round(math.Abs(charge)))
	if n < 1 {
		n = 1
	}
	return n
}

// Propose implements Mover: a coin flip decides insertion vs deletion of
// the whole NumCation()+NumAnion() batch.
func (m *SaltMove) Propose(space *faunus.Space) *faunus.Change {
	change := faunus.NewChange()
	m.inserting = m.RNG.Uniform() < 0.5
	nCation, nAnion := m.NumCation(), m.NumAnion()
	m.nCationBefore = space.Tracker.Count(m.Cation.TypeID)
	m.nAnionBefore = space.Tracker.Count(m.Anion.TypeID)

	if m.inserting {
		particles := make([]faunus.Particle, 0, nCation+nAnion)
		for i := 0; i < nCation; i++ {
			particles = append(particles, faunus.Particle{Pos: space.Geometry.RandomPoint(m.RNG.Uniform), Charge: m.Cation.Charge, TypeID: m.Cation.TypeID, Radius: m.Cation.Radius})
		}
		for i := 0; i < nAnion; i++ {
			particles = append(particles, faunus.Particle{Pos: space.Geometry.RandomPoint(m.RNG.Uniform), Charge: m.Anion.Charge, TypeID: m.Anion.TypeID, Radius: m.Anion.Radius})
		}
		g := space.Groups[m.ReservoirGroup]
		before := g.Back
		space.GrowGroup(g, particles)
		m.insertedIdx = make([]int, len(particles))
		for i := range particles {
			m.insertedIdx[i] = before + i
		}
		for i := 0; i < nCation; i++ {
			space.Tracker.Add(m.Cation.TypeID, m.insertedIdx[i])
		}
		for i := 0; i < nAnion; i++ {
			space.Tracker.Add(m.Anion.TypeID, m.insertedIdx[nCation+i])
		}
		change.AddWholeGroup(m.ReservoirGroup)
		return change
	}

	cationBucket := space.Tracker.Indexes(m.Cation.TypeID)
	anionBucket := space.Tracker.Indexes(m.Anion.TypeID)
	if len(cationBucket) < nCation || len(anionBucket) < nAnion {
		// Not enough of one species to delete a whole batch this trial:
		// fall back to an empty, always-rejected change rather than
		// treating a transiently depleted reservoir as a fatal error.
		m.deletedIdx = nil
		return change
	}
	m.deletedIdx = make([]int, 0, nCation+nAnion)
	m.deletedIdx = append(m.deletedIdx, pickDistinct(m.RNG, cationBucket, nCation)...)
	m.deletedIdx = append(m.deletedIdx, pickDistinct(m.RNG, anionBucket, nAnion)...)
	change.AddWholeGroup(m.ReservoirGroup)
	return change
}

// pickDistinct draws n distinct indices from bucket without replacement.
func pickDistinct(r *rng.RNG, bucket []int, n int) []int {
	pool := append([]int(nil), bucket...)
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		j := r.Pick(len(pool))
		out = append(out, pool[j])
		pool[j] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}
	return out
}

// sumLogInsert returns sum_{k=1}^{count} ln(v/(nBefore+k)), the
// sequential ideal-gas insertion term for inserting count particles of
// one species into a reservoir that held nBefore before the trial.
func sumLogInsert(v float64, nBefore, count int) float64 {
	sum := 0.0
	for k := 1; k <= count; k++ {
		sum += math.Log(v / float64(nBefore+k))
	}
	return sum
}

// sumLogDelete returns sum_{k=0}^{count-1} ln(v/(nBefore-k)), the
// sequential ideal-gas deletion term for removing count particles of one
// species from a reservoir that held nBefore before the trial.
func sumLogDelete(v float64, nBefore, count int) float64 {
	sum := 0.0
	for k := 0; k < count; k++ {
		sum += math.Log(v / float64(nBefore-k))
	}
	return sum
}

// EnergyChange implements Mover, adding the ideal-gas chemical-potential
// term for the whole inserted/deleted batch: -sum(muEx)-sum(ln(V/(N+k)))
// on insertion, +sum(muEx)+sum(ln(V/(N-k))) on deletion, per spec.md
// §4.8.1's grand-canonical acceptance criterion generalized to Na/Nb>1.
func (m *SaltMove) EnergyChange(space *faunus.Space, h faunus.Hamiltonian, change *faunus.Change) float64 {
	if !m.inserting && m.deletedIdx == nil {
		return math.Inf(1) // nothing was available to delete: force rejection
	}
	hamU := h.EnergyChange(space, change)
	v := space.Geometry.Volume()
	nCation, nAnion := m.NumCation(), m.NumAnion()
	muEx := float64(nCation)*m.Cation.MuExKT + float64(nAnion)*m.Anion.MuExKT
	deltaU := hamU
	if m.inserting {
		logTerm := sumLogInsert(v, m.nCationBefore, nCation) + sumLogInsert(v, m.nAnionBefore, nAnion)
		deltaU -= muEx + logTerm
	} else {
		logTerm := sumLogDelete(v, m.nCationBefore, nCation) + sumLogDelete(v, m.nAnionBefore, nAnion)
		deltaU += muEx + logTerm
	}
	// The Metropolis test above must include the ideal-gas chemical-
	// potential term, but the energy-drift accumulator should only track
	// the Hamiltonian's own contribution: the chemical potential isn't a
	// real potential-energy term (spec.md §4.1 step 4).
	m.HasAlternateEnergy = true
	m.AlternateEnergy = hamU
	return deltaU
}

// Accept implements Mover.
func (m *SaltMove) Accept(space *faunus.Space, change *faunus.Change) {
	if !m.inserting {
		nCation := m.NumCation()
		for i, idx := range m.deletedIdx {
			if i < nCation {
				space.Tracker.Remove(m.Cation.TypeID, idx)
			} else {
				space.Tracker.Remove(m.Anion.TypeID, idx)
			}
		}
		space.ShrinkGroup(space.Groups[m.ReservoirGroup], m.deletedIdx)
	}
	space.Commit()
}

// Reject implements Mover.
func (m *SaltMove) Reject(space *faunus.Space, change *faunus.Change) {
	if m.inserting {
		g := space.Groups[m.ReservoirGroup]
		nCation := m.NumCation()
		for i, idx := range m.insertedIdx {
			if i < nCation {
				space.Tracker.Remove(m.Cation.TypeID, idx)
			} else {
				space.Tracker.Remove(m.Anion.TypeID, idx)
			}
		}
		space.ShrinkGroup(g, m.insertedIdx)
	}
	space.Reject()
}

// Report implements Mover.
func (m *SaltMove) Report() map[string]any {
	acc := m.Stats.Acceptance(m.MoveName)
	return map[string]any{"trials": acc.Trials, "accepted": acc.Accepted, "ratio": acc.Ratio()}
}

// GreenGCMove implements spec.md §4.8.2: insertion/deletion of an
// arbitrary electroneutral combination of species (not limited to a 1:1
// pair), generalizing SaltMove. Combination lists the ion species that
// must be inserted or deleted together.
type GreenGCMove struct {
	Base

	Combination    []IonSpecies
	ReservoirGroup int

	insertedIdx []int
	deletedIdx  []int
	inserting   bool
}

// NewGreenGCMove returns a GreenGCMove for the given neutral combination.
func NewGreenGCMove(name string, combination []IonSpecies, reservoirGroup int, seed *rng.RNG) *GreenGCMove {
	return &GreenGCMove{Base: NewBase(name, seed), Combination: combination, ReservoirGroup: reservoirGroup}
}

// Propose implements Mover.
func (m *GreenGCMove) Propose(space *faunus.Space) *faunus.Change {
	change := faunus.NewChange()
	m.inserting = m.RNG.Uniform() < 0.5
	g := space.Groups[m.ReservoirGroup]

	if m.inserting {
		particles := make([]faunus.Particle, len(m.Combination))
		for i, s := range m.Combination {
			particles[i] = faunus.Particle{Pos: space.Geometry.RandomPoint(m.RNG.Uniform), Charge: s.Charge, TypeID: s.TypeID, Radius: s.Radius}
		}
		before := g.Back
		space.GrowGroup(g, particles)
		m.insertedIdx = make([]int, len(particles))
		for i, s := range m.Combination {
			m.insertedIdx[i] = before + i
			space.Tracker.Add(s.TypeID, m.insertedIdx[i])
		}
		change.AddWholeGroup(m.ReservoirGroup)
		return change
	}

	m.deletedIdx = make([]int, len(m.Combination))
	chosen := make(map[int]bool, len(m.Combination))
	for i, s := range m.Combination {
		bucket := space.Tracker.Indexes(s.TypeID)
		var available []int
		for _, idx := range bucket {
			if !chosen[idx] {
				available = append(available, idx)
			}
		}
		if len(available) == 0 {
			// Nothing of this species left to delete this trial: mark
			// the whole combination unavailable rather than panicking.
			m.deletedIdx = nil
			return change
		}
		pick := available[m.RNG.Pick(len(available))]
		m.deletedIdx[i] = pick
		chosen[pick] = true
	}
	change.AddWholeGroup(m.ReservoirGroup)
	return change
}

// EnergyChange implements Mover.
func (m *GreenGCMove) EnergyChange(space *faunus.Space, h faunus.Hamiltonian, change *faunus.Change) float64 {
	if !m.inserting && m.deletedIdx == nil {
		return math.Inf(1) // nothing was available to delete: force rejection
	}
	hamU := h.EnergyChange(space, change)
	v := space.Geometry.Volume()
	sumMuEx := 0.0
	logTerm := 0.0
	for _, s := range m.Combination {
		sumMuEx += s.MuExKT
		n := float64(space.Tracker.Count(s.TypeID))
		if m.inserting {
			// Propose has already added this trial's particles to the
			// tracker; take them back out to get the pre-trial count.
			for _, o := range m.Combination {
				if o.TypeID == s.TypeID {
					n--
				}
			}
			logTerm += math.Log(v / (n + 1))
		} else {
			logTerm += math.Log(v / n)
		}
	}
	// See SaltMove.EnergyChange: the drift accumulator only tracks the
	// Hamiltonian's own energy, not the chemical-potential term.
	m.HasAlternateEnergy = true
	m.AlternateEnergy = hamU
	if m.inserting {
		return hamU - sumMuEx - logTerm
	}
	return hamU + sumMuEx + logTerm
}

// Accept implements Mover.
func (m *GreenGCMove) Accept(space *faunus.Space, change *faunus.Change) {
	if !m.inserting {
		for i, s := range m.Combination {
			space.Tracker.Remove(s.TypeID, m.deletedIdx[i])
		}
		space.ShrinkGroup(space.Groups[m.ReservoirGroup], m.deletedIdx)
	}
	space.Commit()
}

// Reject implements Mover.
func (m *GreenGCMove) Reject(space *faunus.Space, change *faunus.Change) {
	if m.inserting {
		for i, s := range m.Combination {
			space.Tracker.Remove(s.TypeID, m.insertedIdx[i])
		}
		space.ShrinkGroup(space.Groups[m.ReservoirGroup], m.insertedIdx)
	}
	space.Reject()
}

// Report implements Mover.
func (m *GreenGCMove) Report() map[string]any {
	acc := m.Stats.Acceptance(m.MoveName)
	return map[string]any{"trials": acc.Trials, "accepted": acc.Accepted, "ratio": acc.Ratio()}
}
