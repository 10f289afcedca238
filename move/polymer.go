package move

import (
	"fmt"

	"github.com/cpasquier/faunus"
	"github.com/cpasquier/faunus/rng"
	v3 "github.com/cpasquier/faunus/v3"
)

// PolymerMove implements the three chain-internal moves of spec.md §4.6,
// selected by Kind: Crankshaft rotates a contiguous interior segment of
// a chain about the axis joining its two flanking anchor particles;
// Pivot rotates the part of the chain on one side of a randomly chosen
// interior hinge (the particles after it or those before it, with equal
// probability) about a random axis through the hinge; Reptation removes one
// end-particle and regrows it at the opposite end, displaced by a random
// step of length BondLength, modelling a slithering polymer.
type PolymerKind int

const (
	Crankshaft PolymerKind = iota
	Pivot
	Reptation
)

type PolymerMove struct {
	Base

	MoleculeID int
	Kind       PolymerKind
	DPRot      float64
	MinLen     int
	MaxLen     int
	BondLength float64

	lastGroup   int
	lastIndexes []int
	lastOld     map[int]v3.Vec
}

// NewPolymerMove returns a PolymerMove of the given kind acting on groups
// of moleculeID.
func NewPolymerMove(name string, moleculeID int, kind PolymerKind, dpRot float64, minLen, maxLen int, bondLength float64, seed *rng.RNG) *PolymerMove {
	return &PolymerMove{
		Base:       NewBase(name, seed),
		MoleculeID: moleculeID,
		Kind:       kind,
		DPRot:      dpRot,
		MinLen:     minLen,
		MaxLen:     maxLen,
		BondLength: bondLength,
	}
}

func (m *PolymerMove) pickGroup(space *faunus.Space) *faunus.Group {
	var candidates []int
	for i, g := range space.Groups {
		if g.MoleculeID == m.MoleculeID && g.Size() >= 3 {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		panic(fmt.Sprintf("move: %s: no chain groups of molecule %d with at least 3 particles", m.MoveName, m.MoleculeID))
	}
	m.lastGroup = candidates[m.RNG.Pick(len(candidates))]
	return space.Groups[m.lastGroup]
}

// Propose implements Mover.
func (m *PolymerMove) Propose(space *faunus.Space) *faunus.Change {
	change := faunus.NewChange()
	g := m.pickGroup(space)

	switch m.Kind {
	case Crankshaft:
		m.proposeCrankshaft(space, g, change)
	case Pivot:
		m.proposePivot(space, g, change)
	case Reptation:
		m.proposeReptation(space, g, change)
	}
	return change
}

func (m *PolymerMove) proposeCrankshaft(space *faunus.Space, g *faunus.Group, change *faunus.Change) {
	n := g.Size()
	segLen := m.MinLen
	if m.MaxLen > m.MinLen {
		segLen = m.MinLen + m.RNG.Pick(m.MaxLen-m.MinLen+1)
	}
	if segLen < 1 {
		segLen = 1
	}
	if segLen > n-2 {
		segLen = n - 2
	}
	start := g.Front + 1 + m.RNG.Pick(n-2-segLen+1)
	end := start + segLen // exclusive

	anchorA := space.Trial[start-1].Pos
	anchorB := space.Trial[end].Pos
	axis := v3.Sub(anchorB, anchorA)
	angle := m.DPRot * m.RNG.Half() * 2

	m.lastIndexes = nil
	m.lastOld = make(map[int]v3.Vec, segLen)
	for i := start; i < end; i++ {
		m.lastOld[i] = space.Trial[i].Pos
		space.Trial[i].Pos = v3.RotateAbout(space.Trial[i].Pos, anchorA, axis, angle)
		m.lastIndexes = append(m.lastIndexes, i)
		change.AddParticle(m.lastGroup, i)
	}
}

func (m *PolymerMove) proposePivot(space *faunus.Space, g *faunus.Group, change *faunus.Change) {
	n := g.Size()
	hinge := g.Front + 1 + m.RNG.Pick(n-2)
	axis := v3.RandomUnitVector(m.RNG.Uniform)
	angle := m.DPRot * m.RNG.Half() * 2
	hingePos := space.Trial[hinge].Pos

	m.lastIndexes = nil
	m.lastOld = make(map[int]v3.Vec)
	tailStart := hinge + 1
	if m.RNG.Uniform() < 0.5 {
		for i := tailStart; i < g.Back; i++ {
			m.lastOld[i] = space.Trial[i].Pos
			space.Trial[i].Pos = v3.RotateAbout(space.Trial[i].Pos, hingePos, axis, angle)
			m.lastIndexes = append(m.lastIndexes, i)
			change.AddParticle(m.lastGroup, i)
		}
	} else {
		for i := g.Front; i < hinge; i++ {
			m.lastOld[i] = space.Trial[i].Pos
			space.Trial[i].Pos = v3.RotateAbout(space.Trial[i].Pos, hingePos, axis, angle)
			m.lastIndexes = append(m.lastIndexes, i)
			change.AddParticle(m.lastGroup, i)
		}
	}
}

func (m *PolymerMove) proposeReptation(space *faunus.Space, g *faunus.Group, change *faunus.Change) {
	growHead := m.RNG.Uniform() < 0.5
	dir := v3.RandomUnitVector(m.RNG.Uniform)
	step := v3.Scale(m.BondLength, dir)

	m.lastIndexes = nil
	m.lastOld = make(map[int]v3.Vec)
	if growHead {
		head, tail := g.Front, g.Back-1
		m.lastOld[head] = space.Trial[head].Pos
		newHead := v3.Add(space.Trial[head].Pos, step)
		for i := tail; i > head; i-- {
			space.Trial[i].Pos = space.Trial[i-1].Pos
		}
		space.Trial[head].Pos = newHead
	} else {
		head, tail := g.Front, g.Back-1
		m.lastOld[tail] = space.Trial[tail].Pos
		newTail := v3.Add(space.Trial[tail].Pos, step)
		for i := head; i < tail; i++ {
			space.Trial[i].Pos = space.Trial[i+1].Pos
		}
		space.Trial[tail].Pos = newTail
	}
	for i := g.Front; i < g.Back; i++ {
		m.lastIndexes = append(m.lastIndexes, i)
		change.AddParticle(m.lastGroup, i)
	}
}

// EnergyChange implements Mover.
func (m *PolymerMove) EnergyChange(space *faunus.Space, h faunus.Hamiltonian, change *faunus.Change) float64 {
	return h.EnergyChange(space, change)
}

// Accept implements Mover.
func (m *PolymerMove) Accept(space *faunus.Space, change *faunus.Change) {
	space.Groups[m.lastGroup].RecomputeTrialCM(space.Trial)
	space.Commit()
}

// Reject implements Mover.
func (m *PolymerMove) Reject(space *faunus.Space, change *faunus.Change) {
	space.Reject()
}

// Report implements Mover.
func (m *PolymerMove) Report() map[string]any {
	acc := m.Stats.Acceptance(m.MoveName)
	return map[string]any{"trials": acc.Trials, "accepted": acc.Accepted, "ratio": acc.Ratio()}
}
