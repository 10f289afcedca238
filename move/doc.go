// Package move implements the Monte Carlo move operator protocol and
// every concrete move: atomic and group translate/rotate, cluster moves
// (biased and rejection-free), polymer moves, volume moves,
// grand-canonical and titration moves, the polarisation decorator,
// parallel tempering, and the Propagator that drives them all.
//
// Every move implements Mover: propose, then EnergyChange against a
// faunus.Hamiltonian, then Accept or Reject, then Report. Base
// implements the shared driver (Step) and Metropolis test that every
// concrete move embeds, the same way the original engine's move
// hierarchy shared one base class implementing the trial-loop and left
// only Propose/deltaEnergy to the subclass.
package move
