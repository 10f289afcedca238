package move

import (
	"math"
	"time"

	"github.com/cpasquier/faunus"
	"github.com/cpasquier/faunus/mclog"
	"github.com/cpasquier/faunus/rng"
	"github.com/cpasquier/faunus/stats"
)

// MoveListEntry is the per-(move,molecule) configuration spec.md §3
// describes: a trial probability, a direction mask restricting the move
// to a coordinate subspace, two move-specific scalar parameters, and the
// perAtom/perMol multipliers that compute Repeat at trial time.
type MoveListEntry struct {
	MoleculeID int
	Prob       float64
	Dir        [3]float64
	DP1, DP2   float64
	PerAtom    bool
	PerMol     bool

	// Repeat is computed fresh by ComputeRepeat before every trial.
	Repeat int
}

// ComputeRepeat sets e.Repeat to 1 * (PerAtom ? groupSize : 1) *
// (PerMol ? numMoleculesOfType : 1), per spec.md §3.
func (e *MoveListEntry) ComputeRepeat(groupSize, numMoleculesOfType int) {
	n := 1
	if e.PerAtom {
		n *= groupSize
	}
	if e.PerMol {
		n *= numMoleculesOfType
	}
	e.Repeat = n
}

// Mover is the protocol every concrete move implements: propose a trial,
// evaluate its energy change, commit or roll it back, and report
// structured statistics. Base implements the shared Step driver in terms
// of these five operations.
type Mover interface {
	Propose(space *faunus.Space) *faunus.Change
	EnergyChange(space *faunus.Space, h faunus.Hamiltonian, change *faunus.Change) float64
	Accept(space *faunus.Space, change *faunus.Change)
	Reject(space *faunus.Space, change *faunus.Change)
	Report() map[string]any
	Name() string
}

// Base is embedded by every concrete move. It owns the move's dedicated
// RNG, its move-list (empty for moves that aren't scoped per molecule
// type), its statistics sink, and the Step/Metropolis driver every move
// shares.
type Base struct {
	MoveName string
	MolList  map[int]*MoveListEntry

	RNG    *rng.RNG
	Stats  *stats.Report
	Logger mclog.Logger

	// CurrentMolID is set by Step before calling Propose, so a
	// molecule-scoped move knows which molecule type's trial this is.
	CurrentMolID int

	// HasAlternateEnergy / AlternateEnergy implement the grand-canonical
	// override: the energy a move reports to the propagator can differ
	// from the energy it tested acceptance against (spec.md §4.1 step 4).
	HasAlternateEnergy bool
	AlternateEnergy    float64
}

// NewBase returns a Base with sane defaults: a fresh report, a no-op
// logger, and an empty move-list (every trial runs unconditionally).
func NewBase(name string, seed *rng.RNG) Base {
	return Base{
		MoveName: name,
		MolList:  make(map[int]*MoveListEntry),
		RNG:      seed.Derive(),
		Stats:    stats.NewReport(),
		Logger:   mclog.NewNoOp(),
	}
}

// Name implements Mover.
func (b *Base) Name() string { return b.MoveName }

// Metropolis draws exactly one uniform variate and compares it against
// exp(-deltaU)*bias, regardless of the sign of deltaU, matching the
// original engine's requirement that every trial consume one RNG draw
// unconditionally (needed for replica lockstep in parallel tempering).
func (b *Base) Metropolis(deltaU, bias float64) bool {
	u := b.RNG.Uniform()
	if math.IsNaN(deltaU) {
		b.Logger.Warnf("%s: NaN energy change encountered", b.MoveName)
		return false
	}
	return u < bias*math.Exp(-deltaU)
}

// Step executes one Markov step of up to n inner repeats, per spec.md
// §4.1. When the move has a non-empty move-list, n and the run-fraction
// are overridden from the move-list entry sampled for this step.
func (b *Base) Step(mv Mover, space *faunus.Space, h faunus.Hamiltonian, n int) (float64, error) {
	runFraction := 1.0
	if len(b.MolList) > 0 {
		ids := make([]int, 0, len(b.MolList))
		for id := range b.MolList {
			ids = append(ids, id)
		}
		chosen := ids[b.RNG.Pick(len(ids))]
		entry := b.MolList[chosen]
		b.CurrentMolID = chosen
		groupSize, numMolecules := moleculeStats(space, chosen)
		entry.ComputeRepeat(groupSize, numMolecules)
		n = entry.Repeat
		runFraction = entry.Prob
	}

	if b.RNG.Uniform() > runFraction {
		return 0, nil
	}

	start := timeNow()
	var deltaUSum, alternateSum float64
	acc := b.Stats.Acceptance(b.MoveName)
	for i := 0; i < n; i++ {
		change := mv.Propose(space)
		h.NotifyChange(space, change)
		deltaU := mv.EnergyChange(space, h, change)

		accepted := b.Metropolis(deltaU, 1.0)
		acc.Observe(accepted, deltaU)
		if accepted {
			mv.Accept(space, change)
			deltaUSum += deltaU
			alternateSum += b.AlternateEnergy
		} else {
			mv.Reject(space, change)
		}
		change.Clear()
	}
	b.Stats.AddMoveTime(b.MoveName, timeNow().Sub(start))

	if err := space.CheckInvariants(); err != nil {
		return 0, err
	}

	if b.HasAlternateEnergy {
		return alternateSum, nil
	}
	return deltaUSum, nil
}

// timeNow is a seam so Step's timing is decoupled from the global clock
// in exactly one place.
var timeNow = time.Now

// moleculeStats scans space.Groups for every group of the given
// molecule type, returning the count of such groups (numMolecules) and
// the particle count of one of them (groupSize), the two counts
// MoveListEntry.ComputeRepeat needs. Group sizes are assumed uniform
// across molecules of the same type, as every move-list-scoped move in
// this package expects.
func moleculeStats(space *faunus.Space, moleculeID int) (groupSize, numMolecules int) {
	for _, g := range space.Groups {
		if g.MoleculeID == moleculeID {
			numMolecules++
			groupSize = g.Size()
		}
	}
	return groupSize, numMolecules
}

// groupOf returns the index into space.Groups of the group containing
// particle index idx, or -1 if idx belongs to no group.
func groupOf(space *faunus.Space, idx int) int {
	for i, g := range space.Groups {
		if g.Contains(idx) {
			return i
		}
	}
	return -1
}
