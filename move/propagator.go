package move

import (
	"fmt"
	"math"

	"github.com/cpasquier/faunus"
	"github.com/cpasquier/faunus/rng"
)

// registeredMove pairs a Mover with the Base that drives it and the
// per-call repeat count configured for it (the outer n passed to Step,
// independent of any inner move-list repeat the move itself applies).
type registeredMove struct {
	mover Mover
	base  *Base
	n     int
}

// Propagator is the dispatcher every simulation loop drives: it owns a
// heterogeneous list of registered moves (each a Mover plus its own
// Base), samples one uniformly per macrostep via its own dedicated RNG,
// runs its Step, and accumulates the total energy change, per spec.md
// §2/§4.11. A move's configured run-fraction (how often it actually
// acts once selected) is gated inside its own Base.Step via MolList, not
// here: the propagator's draw among registered moves is always uniform.
// EnergyDriftThreshold bounds the periodic audit that compares the
// accumulated delta against a fresh full-energy evaluation.
type Propagator struct {
	RNG                  *rng.RNG
	Hamiltonian          faunus.Hamiltonian
	EnergyDriftThreshold float64

	moves     []registeredMove
	deltaUSum float64
}

// NewPropagator returns an empty Propagator seeded from seed, with the
// default 0.1% relative energy-drift threshold spec.md §4.11 names.
func NewPropagator(hamiltonian faunus.Hamiltonian, seed *rng.RNG) *Propagator {
	return &Propagator{RNG: seed.Derive(), Hamiltonian: hamiltonian, EnergyDriftThreshold: 1e-3}
}

// Register adds mv to the propagator's move list, driven by base (the
// same Base embedded in mv, passed separately since Go interfaces can't
// expose an embedded field), attempted n times per invocation.
func (p *Propagator) Register(mv Mover, base *Base, n int) {
	p.moves = append(p.moves, registeredMove{mover: mv, base: base, n: n})
}

// Step samples one registered move uniformly at random, runs its Step,
// and folds the resulting energy change into the running total.
func (p *Propagator) Step(space *faunus.Space) (float64, error) {
	if len(p.moves) == 0 {
		return 0, fmt.Errorf("move: propagator: no moves registered")
	}
	chosen := p.moves[p.RNG.Pick(len(p.moves))]

	deltaU, err := chosen.base.Step(chosen.mover, space, p.Hamiltonian, chosen.n)
	if err != nil {
		return 0, err
	}
	p.deltaUSum += deltaU
	return deltaU, nil
}

// AuditEnergyDrift recomputes the full system energy and compares it
// against fullEnergyAtStart+p.deltaUSum, returning an *faunus.
// InvariantError if the relative drift exceeds EnergyDriftThreshold, the
// diagnostic spec.md §4.11/§8 requires every simulation run at some
// configured interval.
func (p *Propagator) AuditEnergyDrift(space *faunus.Space, fullEnergyAtStart float64) error {
	tracked := fullEnergyAtStart + p.deltaUSum
	actual := p.Hamiltonian.FullEnergy(space, space.Committed)
	denom := math.Max(math.Abs(actual), 1)
	if math.Abs(tracked-actual)/denom > p.EnergyDriftThreshold {
		return faunus.NewInvariantError("energy-drift",
			fmt.Sprintf("tracked energy %g diverged from recomputed energy %g beyond threshold %g", tracked, actual, p.EnergyDriftThreshold))
	}
	return nil
}

// DeltaUSum returns the propagator's running total of accepted energy
// changes since construction (or since ResetDrift).
func (p *Propagator) DeltaUSum() float64 { return p.deltaUSum }

// ResetDrift zeroes the running energy-change total, used after a
// successful AuditEnergyDrift re-anchors the tracked value to a fresh
// full-energy evaluation.
func (p *Propagator) ResetDrift() { p.deltaUSum = 0 }
