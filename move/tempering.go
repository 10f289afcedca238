package move

import (
	"math"

	"github.com/cpasquier/faunus"
	"github.com/cpasquier/faunus/rng"
)

// ReplicaLink is the message-passing collaborator a ParallelTempering
// move exchanges state through. It stands in for the original engine's
// blocking MPI send/receive pair: a Go-idiomatic channel-based
// implementation (or a network RPC one) satisfies this interface without
// the move package depending on any particular transport.
type ReplicaLink interface {
	// PartnerIndex returns the rank of this replica's exchange partner
	// for the current attempt, or -1 if this replica sits idle this
	// round (odd replica count with even/odd partner pairing).
	PartnerIndex(rank int, roundIsEven bool) int
	// Exchange blocks until the partner rank has also called Exchange,
	// then returns the partner's full energy and its inverse
	// temperature (beta), implementing the lockstep rendezvous a real
	// MPI Sendrecv performs.
	Exchange(partnerRank int, localEnergy, localBeta float64) (partnerEnergy, partnerBeta float64, err error)
	// SwapConfiguration exchanges this replica's particle configuration
	// with partnerRank's, called only when the Metropolis test accepts.
	SwapConfiguration(partnerRank int, space *faunus.Space) error
}

// ParallelTempering implements spec.md §4.10: a replica-exchange trial
// between this replica and a partner selected by alternating even/odd
// pairing, accepted with probability
// min(1, exp(-(betaA-betaB)*(energyB-energyA))), the standard Metropolis
// criterion for a temperature swap between two independently-thermostated
// replicas.
type ParallelTempering struct {
	Base

	Rank  int
	Beta  float64
	Link  ReplicaLink
	Round int

	lastPartner int
}

// NewParallelTempering returns a ParallelTempering move for this
// replica's rank and inverse temperature beta, talking to link.
func NewParallelTempering(name string, rank int, beta float64, link ReplicaLink, seed *rng.RNG) *ParallelTempering {
	return &ParallelTempering{Base: NewBase(name, seed), Rank: rank, Beta: beta, Link: link}
}

// Propose implements Mover: no particle state changes locally (a
// temperature swap doesn't move anything until Accept), so the returned
// Change only carries GeometryChange=false/no groups; the real work
// happens by exchanging energies with the partner over Link.
func (m *ParallelTempering) Propose(space *faunus.Space) *faunus.Change {
	change := faunus.NewChange()
	m.Round++
	m.lastPartner = m.Link.PartnerIndex(m.Rank, m.Round%2 == 0)
	return change
}

// EnergyChange implements Mover: computes this replica's full energy,
// exchanges it with the partner over Link, and returns the combined
// Metropolis exponent (betaA-betaB)*(energyB-energyA), with A this
// replica and B its partner, as "deltaU" so
// that Base.Metropolis's single exp(-deltaU) comparison implements the
// swap criterion directly.
func (m *ParallelTempering) EnergyChange(space *faunus.Space, h faunus.Hamiltonian, change *faunus.Change) float64 {
	if m.lastPartner < 0 {
		return math.Inf(1) // idle this round: force rejection, no swap attempted
	}
	localEnergy := h.FullEnergy(space, space.Trial)
	partnerEnergy, partnerBeta, err := m.Link.Exchange(m.lastPartner, localEnergy, m.Beta)
	if err != nil {
		m.Logger.Errorf("parallel tempering: exchange with rank %d failed: %v", m.lastPartner, err)
		return math.Inf(1)
	}
	return (m.Beta - partnerBeta) * (partnerEnergy - localEnergy)
}

// Accept implements Mover: swaps this replica's configuration with its
// partner's over Link.
func (m *ParallelTempering) Accept(space *faunus.Space, change *faunus.Change) {
	if err := m.Link.SwapConfiguration(m.lastPartner, space); err != nil {
		m.Logger.Errorf("parallel tempering: swap with rank %d failed: %v", m.lastPartner, err)
		return
	}
	space.Commit()
}

// Reject implements Mover: nothing local changed, so this is a no-op
// beyond the usual trial/trial reconciliation.
func (m *ParallelTempering) Reject(space *faunus.Space, change *faunus.Change) {
	space.Reject()
}

// Report implements Mover.
func (m *ParallelTempering) Report() map[string]any {
	acc := m.Stats.Acceptance(m.MoveName)
	return map[string]any{"trials": acc.Trials, "accepted": acc.Accepted, "ratio": acc.Ratio()}
}
