package move

import (
	"fmt"

	"github.com/cpasquier/faunus"
	"github.com/cpasquier/faunus/rng"
	v3 "github.com/cpasquier/faunus/v3"
)

// AtomicTranslate displaces a single randomly-chosen particle of a given
// type by a random vector within [-dp/2, dp/2] along each unmasked axis,
// per spec.md §4.2. The "2D-sphere" variant is selected by RandomSphere:
// instead of a Cartesian displacement, the particle is moved to a random
// point at SphereRadius from the origin, as the original engine's
// rsphere variant does for interfacial adsorbates confined to a shell.
type AtomicTranslate struct {
	Base

	TypeID       int
	DP           float64
	Dir          v3.Vec
	RandomSphere bool
	SphereRadius float64

	lastIdx int
}

// NewAtomicTranslate returns an AtomicTranslate acting on particles of
// typeID, with a per-axis displacement drawn from [-dp/2, dp/2) and
// restricted to the axes where dir is nonzero.
func NewAtomicTranslate(name string, typeID int, dp float64, dir v3.Vec, seed *rng.RNG) *AtomicTranslate {
	return &AtomicTranslate{
		Base:   NewBase(name, seed),
		TypeID: typeID,
		DP:     dp,
		Dir:    dir,
	}
}

// Propose implements Mover. When Step has selected a move-list entry for
// this trial's molecule type, its DP1/Dir override this move's own
// defaults, per spec.md §3.
func (m *AtomicTranslate) Propose(space *faunus.Space) *faunus.Change {
	change := faunus.NewChange()
	idx := m.pickParticle(space)
	m.lastIdx = idx
	old := space.Trial[idx].Pos

	dp, dir := m.DP, m.Dir
	if entry, ok := m.MolList[m.CurrentMolID]; ok {
		if entry.DP1 != 0 {
			dp = entry.DP1
		}
		if entry.Dir != [3]float64{} {
			dir = v3.Vec{X: entry.Dir[0], Y: entry.Dir[1], Z: entry.Dir[2]}
		}
	}

	if m.RandomSphere {
		sdir := v3.RandomUnitVector(m.RNG.Uniform)
		space.Trial[idx].Pos = v3.Scale(m.SphereRadius, sdir)
	} else {
		delta := v3.Vec{
			X: dir.X * dp * m.RNG.Half(),
			Y: dir.Y * dp * m.RNG.Half(),
			Z: dir.Z * dp * m.RNG.Half(),
		}
		space.Trial[idx].Pos = space.Geometry.Wrap(v3.Add(old, delta))
	}

	if g := groupOf(space, idx); g >= 0 {
		change.AddParticle(g, idx)
	}
	return change
}

func (m *AtomicTranslate) pickParticle(space *faunus.Space) int {
	bucket := space.Tracker.Indexes(m.TypeID)
	if len(bucket) == 0 {
		panic(fmt.Sprintf("move: %s: no particles of type %d to translate", m.MoveName, m.TypeID))
	}
	return bucket[m.RNG.Pick(len(bucket))]
}

// EnergyChange implements Mover.
func (m *AtomicTranslate) EnergyChange(space *faunus.Space, h faunus.Hamiltonian, change *faunus.Change) float64 {
	return h.EnergyChange(space, change)
}

// Accept implements Mover: commits the trial position and, if the
// particle belongs to a molecular group, refreshes that group's tracked
// mass centre.
func (m *AtomicTranslate) Accept(space *faunus.Space, change *faunus.Change) {
	if g := groupOf(space, m.lastIdx); g >= 0 {
		space.Groups[g].RecomputeTrialCM(space.Trial)
	}
	space.Commit()
}

// Reject implements Mover.
func (m *AtomicTranslate) Reject(space *faunus.Space, change *faunus.Change) {
	space.Reject()
}

// Report implements Mover.
func (m *AtomicTranslate) Report() map[string]any {
	acc := m.Stats.Acceptance(m.MoveName)
	return map[string]any{"trials": acc.Trials, "accepted": acc.Accepted, "ratio": acc.Ratio()}
}

// AtomicRotate reorients a single particle's dipole direction (its only
// rotatable degree of freedom, since an atomic particle has no shape) by
// a random angle about a random axis, per spec.md §4.2.
type AtomicRotate struct {
	Base

	TypeID int
	DPRot  float64

	lastIdx int
}

// NewAtomicRotate returns an AtomicRotate acting on particles of typeID
// with maximum rotation angle dpRot radians.
func NewAtomicRotate(name string, typeID int, dpRot float64, seed *rng.RNG) *AtomicRotate {
	return &AtomicRotate{Base: NewBase(name, seed), TypeID: typeID, DPRot: dpRot}
}

// Propose implements Mover. When Step has selected a move-list entry for
// this trial's molecule type, its DP1 overrides DPRot, per spec.md §3.
func (m *AtomicRotate) Propose(space *faunus.Space) *faunus.Change {
	change := faunus.NewChange()
	bucket := space.Tracker.Indexes(m.TypeID)
	if len(bucket) == 0 {
		panic(fmt.Sprintf("move: %s: no particles of type %d to rotate", m.MoveName, m.TypeID))
	}
	idx := bucket[m.RNG.Pick(len(bucket))]
	m.lastIdx = idx

	dpRot := m.DPRot
	if entry, ok := m.MolList[m.CurrentMolID]; ok && entry.DP1 != 0 {
		dpRot = entry.DP1
	}

	axis := v3.RandomUnitVector(m.RNG.Uniform)
	angle := dpRot * m.RNG.Half() * 2
	old := space.Trial[idx].DipoleDir
	space.Trial[idx].DipoleDir = v3.RotateAbout(old, v3.Zero, axis, angle)

	if g := groupOf(space, idx); g >= 0 {
		change.AddParticle(g, idx)
	}
	return change
}

// EnergyChange implements Mover.
func (m *AtomicRotate) EnergyChange(space *faunus.Space, h faunus.Hamiltonian, change *faunus.Change) float64 {
	return h.EnergyChange(space, change)
}

// Accept implements Mover.
func (m *AtomicRotate) Accept(space *faunus.Space, change *faunus.Change) { space.Commit() }

// Reject implements Mover.
func (m *AtomicRotate) Reject(space *faunus.Space, change *faunus.Change) { space.Reject() }

// Report implements Mover.
func (m *AtomicRotate) Report() map[string]any {
	acc := m.Stats.Acceptance(m.MoveName)
	return map[string]any{"trials": acc.Trials, "accepted": acc.Accepted, "ratio": acc.Ratio()}
}
