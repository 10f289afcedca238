package move

import (
	"github.com/cpasquier/faunus"
	v3 "github.com/cpasquier/faunus/v3"
)

// Polarize wraps another Mover, adding a self-consistent induced-dipole
// relaxation before every energy evaluation, per spec.md §4.9: the
// wrapped move's Propose runs unchanged; then, once a Hamiltonian is
// available (EnergyChange is the first point in the protocol that
// carries one), every polarisable particle's dipole is repeatedly set to
// Polarisability*E(r) until no dipole changes by more than Tolerance
// between sweeps, or the iteration bound is exceeded and a
// *faunus.FieldIterationError aborts the run — a fatal configuration or
// potential problem, not a rejection.
type Polarize struct {
	Inner Mover

	MaxIterations int
	Tolerance     float64

	lastOldDipoles map[int]v3.Vec
}

// NewPolarize wraps inner with a field-iteration loop bounded by
// maxIterations and converging once no dipole changes by more than
// tolerance between sweeps.
func NewPolarize(inner Mover, maxIterations int, tolerance float64) *Polarize {
	return &Polarize{Inner: inner, MaxIterations: maxIterations, Tolerance: tolerance}
}

// Propose implements Mover: delegates to Inner unchanged.
func (p *Polarize) Propose(space *faunus.Space) *faunus.Change {
	return p.Inner.Propose(space)
}

// EnergyChange implements Mover: relaxes every polarisable particle's
// dipole to self-consistency against h's field, then delegates to Inner.
func (p *Polarize) EnergyChange(space *faunus.Space, h faunus.Hamiltonian, change *faunus.Change) float64 {
	p.relax(space, h)
	return p.Inner.EnergyChange(space, h, change)
}

// relax runs the self-consistent-field loop over every polarisable
// particle in space.Trial.
func (p *Polarize) relax(space *faunus.Space, h faunus.Hamiltonian) {
	var polarisable []int
	for i, particle := range space.Trial {
		if particle.Polarisability > 0 {
			polarisable = append(polarisable, i)
		}
	}
	if len(polarisable) == 0 {
		return
	}

	p.lastOldDipoles = make(map[int]v3.Vec, len(polarisable))
	for _, idx := range polarisable {
		p.lastOldDipoles[idx] = space.Trial[idx].DipoleDir
	}

	field := make([]v3.Vec, len(space.Trial))
	for iter := 0; iter < p.MaxIterations; iter++ {
		// ElectricField is recomputed against the whole particle slice
		// each sweep so induced dipoles see each other's contribution,
		// the original engine's SCF polarisation loop.
		h.ElectricField(space, space.Trial, field)

		maxDelta := 0.0
		for _, idx := range polarisable {
			mag := space.Trial[idx].Polarisability * v3.Norm(field[idx])
			var newDipole v3.Vec
			if v3.Norm(field[idx]) > 0 {
				newDipole = v3.Scale(mag, v3.Unit(field[idx]))
			}
			delta := v3.Dist(newDipole, space.Trial[idx].DipoleDir)
			if delta > maxDelta {
				maxDelta = delta
			}
			space.Trial[idx].DipoleDir = newDipole
			space.Trial[idx].DipoleMag = mag
		}
		if maxDelta < p.Tolerance {
			return
		}
	}
	panic(&faunus.FieldIterationError{Iterations: p.MaxIterations, Threshold: p.Tolerance})
}

// Accept implements Mover.
func (p *Polarize) Accept(space *faunus.Space, change *faunus.Change) { p.Inner.Accept(space, change) }

// Reject implements Mover: undoes both the inner move and the dipole
// relaxation.
func (p *Polarize) Reject(space *faunus.Space, change *faunus.Change) {
	for idx, old := range p.lastOldDipoles {
		space.Trial[idx].DipoleDir = old
	}
	p.Inner.Reject(space, change)
}

// Report implements Mover.
func (p *Polarize) Report() map[string]any { return p.Inner.Report() }

// Name implements Mover.
func (p *Polarize) Name() string { return p.Inner.Name() }
