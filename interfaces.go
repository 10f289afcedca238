package faunus

import v3 "github.com/cpasquier/faunus/v3"

// Geometry is the external collaborator that owns the simulation box and
// its periodic boundary rules. It is explicitly out of scope for this
// module's hard core (spec.md §1): moves depend only on this interface,
// never on a concrete box implementation.
type Geometry interface {
	// Wrap folds p back into the primary periodic image.
	Wrap(p v3.Vec) v3.Vec
	// Distance returns the (possibly periodic-minimum-image) distance
	// between a and b.
	Distance(a, b v3.Vec) float64
	// Volume returns the current box volume.
	Volume() float64
	// SetVolume rescales the box, used by the volume move: a zero scale
	// requests an isotropic rescale to the given volume; a nonzero scale
	// multiplies the box side along each axis by the matching component.
	SetVolume(volume float64, scale v3.Vec)
	// RandomPoint returns a uniformly distributed point inside the box,
	// using the given uniform(0,1) source; needed by grand-canonical
	// insertion moves.
	RandomPoint(uniform func() float64) v3.Vec
	// HalfLength returns half the box's extent along each axis, used by
	// the full-molecular cluster move's periodic-aliasing check.
	HalfLength() v3.Vec
}

// Hamiltonian is the external collaborator that evaluates the energy
// implications of a trial. It is explicitly out of scope for this
// module's hard core; the move framework only ever calls through this
// interface.
type Hamiltonian interface {
	// NotifyChange lets the Hamiltonian see what a trial touched before
	// EnergyChange is called, so it can restrict its own internal
	// bookkeeping (caches, neighbour lists) to the affected region.
	NotifyChange(space *Space, change *Change)
	// EnergyChange returns the trial-minus-committed energy implied by
	// change. May return +Inf for a container collision, or NaN to
	// signal a transient pathology (logged by the caller, not here).
	EnergyChange(space *Space, change *Change) float64
	// FullEnergy returns the total energy of the given particle slice,
	// used by parallel tempering and the propagator's energy audit.
	FullEnergy(space *Space, particles []Particle) float64
	// ElectricField fills field with the electric field each particle in
	// particles experiences, for the polarisation decorator's induced-
	// dipole iteration. len(field) == len(particles).
	ElectricField(space *Space, particles []Particle, field []v3.Vec)
}
