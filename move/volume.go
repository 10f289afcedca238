package move

import (
	"math"

	"github.com/cpasquier/faunus"
	"github.com/cpasquier/faunus/rng"
	v3 "github.com/cpasquier/faunus/v3"
)

// VolumeMove implements spec.md §4.7: a trial rescaling of the box
// volume (isobaric, ScaleDir zero: an isotropic scale of every group's
// mass centre) or shape (isochoric, ScaleDir nonzero: a volume-preserving
// anisotropic scale along ScaleDir), with the
// corresponding ideal-gas pressure term folded into EnergyChange so that
// Base.Metropolis tests exp(-(deltaU - N*ln(Vnew/Vold) + P*(Vnew-Vold))).
type VolumeMove struct {
	Base

	DV         float64
	PressureKT float64
	ScaleDir   v3.Vec // zero for isotropic (isobaric); else fixed-volume anisotropic axes

	oldGroupPositions map[int][]v3.Vec
	oldVolume         float64
	newVolume         float64
}

// NewVolumeMove returns a VolumeMove whose trial ln(V) step is drawn
// uniformly from [-dv/2, dv/2), with
// the given pressure (already converted to kT units, see
// config.MoveConfig.PressureKT).
func NewVolumeMove(name string, dv, pressureKT float64, seed *rng.RNG) *VolumeMove {
	return &VolumeMove{Base: NewBase(name, seed), DV: dv, PressureKT: pressureKT}
}

// Propose implements Mover: draws a trial ln(V) step, rescales the
// geometry, and rescales positions about the origin. In an atomic group
// every particle position is scaled; a molecular group has only its mass
// centre scaled and its particles translated rigidly with it, so its
// internal geometry (bond lengths etc.) is unchanged.
func (m *VolumeMove) Propose(space *faunus.Space) *faunus.Change {
	change := faunus.NewChange()
	m.oldVolume = space.Geometry.Volume()

	lnV := math.Log(m.oldVolume) + m.DV*m.RNG.Half()
	m.newVolume = math.Exp(lnV)
	factor := math.Cbrt(m.newVolume / m.oldVolume)

	scale := v3.Zero
	if m.ScaleDir != v3.Zero {
		scale = m.ScaleDir
		factor = 1 // unused in the isochoric branch below
		m.newVolume = m.oldVolume
	}

	m.oldGroupPositions = make(map[int][]v3.Vec, len(space.Groups))
	for gi, g := range space.Groups {
		old := make([]v3.Vec, g.Size())
		for i := g.Front; i < g.Back; i++ {
			old[i-g.Front] = space.Trial[i].Pos
			target, offset := space.Trial[i].Pos, v3.Zero
			if g.Molecular {
				target, offset = g.TrialCM, v3.Sub(space.Trial[i].Pos, g.TrialCM)
			}
			if m.ScaleDir != v3.Zero {
				space.Trial[i].Pos = v3.Vec{
					X: target.X * scale.X,
					Y: target.Y * scale.Y,
					Z: target.Z * scale.Z,
				}
			} else {
				space.Trial[i].Pos = v3.Scale(factor, target)
			}
			space.Trial[i].Pos = v3.Add(space.Trial[i].Pos, offset)
			change.AddParticle(gi, i)
		}
		m.oldGroupPositions[gi] = old
	}

	if m.ScaleDir != v3.Zero {
		space.Geometry.SetVolume(m.oldVolume, scale)
	} else {
		space.Geometry.SetVolume(m.newVolume, v3.Zero)
	}
	change.GeometryChange = true
	change.DV = m.newVolume - m.oldVolume
	return change
}

// EnergyChange implements Mover, folding in the ideal-gas pressure term
// and, for the isobaric branch, the N*ln(Vnew/Vold) volume-entropy term
// spec.md §4.7 requires (isochoric moves conserve N*ln(V) by
// construction since Vnew==Vold).
func (m *VolumeMove) EnergyChange(space *faunus.Space, h faunus.Hamiltonian, change *faunus.Change) float64 {
	deltaU := h.EnergyChange(space, change)
	n := len(space.Trial)
	entropy := -float64(n) * math.Log(m.newVolume/m.oldVolume)
	pv := m.PressureKT * (m.newVolume - m.oldVolume)
	return deltaU + entropy + pv
}

// Accept implements Mover.
func (m *VolumeMove) Accept(space *faunus.Space, change *faunus.Change) {
	for gi := range m.oldGroupPositions {
		space.Groups[gi].RecomputeTrialCM(space.Trial)
	}
	space.Commit()
}

// Reject implements Mover: rolls back both the particle positions and
// the geometry's box dimensions.
func (m *VolumeMove) Reject(space *faunus.Space, change *faunus.Change) {
	space.Reject()
	if m.ScaleDir != v3.Zero {
		inverse := v3.Vec{X: 1 / m.ScaleDir.X, Y: 1 / m.ScaleDir.Y, Z: 1 / m.ScaleDir.Z}
		space.Geometry.SetVolume(m.oldVolume, inverse)
	} else {
		space.Geometry.SetVolume(m.oldVolume, v3.Zero)
	}
}

// Report implements Mover.
func (m *VolumeMove) Report() map[string]any {
	acc := m.Stats.Acceptance(m.MoveName)
	return map[string]any{"trials": acc.Trials, "accepted": acc.Accepted, "ratio": acc.Ratio()}
}
