// Command mcrun is a thin entrypoint wiring config.Load, a faunus.Space,
// and a move.Propagator together: load the moves table, build the
// starting configuration, run the requested number of macrosteps, and
// write the acceptance/histogram report. It follows the same
// flag-parse-then-wire-the-library shape as achemdb-sim's main.go
// (_examples/daniacca-achemdb/cmd/achemdb-sim).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cpasquier/faunus"
	"github.com/cpasquier/faunus/config"
	"github.com/cpasquier/faunus/move"
	"github.com/cpasquier/faunus/rng"
	"github.com/cpasquier/faunus/stats"
	v3 "github.com/cpasquier/faunus/v3"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML configuration file overlaying the embedded defaults")
		numAtoms   = flag.Int("atoms", 100, "number of free atomic particles to seed the box with")
		boxLength  = flag.Float64("box", 50, "cubic box edge length, in Angstrom")
		dp         = flag.Float64("dp", 1.0, "default atomic-translation displacement parameter, in Angstrom")
		steps      = flag.Int64("steps", 1_000_000, "number of Metropolis trials to run")
		auditEvery = flag.Int64("audit-every", 100_000, "recompute the full energy and check drift every this many trials")
		seed       = flag.Int64("seed", 42, "master RNG seed")
		reportPath = flag.String("report", "stats.json", "path to write the end-of-run statistics report to")
	)
	flag.Parse()

	doc, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mcrun: loading configuration: %v\n", err)
		os.Exit(1)
	}
	if doc.JSONFile != "" {
		*reportPath = doc.JSONFile
	}

	space := newDemoSpace(*numAtoms, *boxLength)
	master := rng.New(*seed)
	hamiltonian := newPairHamiltonian(7.1, 1.0) // water-like Bjerrum length in Angstrom at room temperature

	propagator := move.NewPropagator(hamiltonian, master)
	report := stats.NewReport()
	registerMoves(propagator, doc, master, *dp, report)

	if err := run(propagator, space, *steps, *auditEvery, hamiltonian); err != nil {
		fmt.Fprintf(os.Stderr, "mcrun: %v\n", err)
		os.Exit(1)
	}

	if err := report.WriteJSON(*reportPath); err != nil {
		fmt.Fprintf(os.Stderr, "mcrun: writing report: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(report.String())
}

// newDemoSpace seeds n atomic particles of TypeID 1 at random positions
// in a cubic box of the given edge length, in a single non-molecular
// group, the scenario spec.md §8's first named test ("100 particles in
// a 50 Angstrom cube") describes.
func newDemoSpace(n int, boxLength float64) *faunus.Space {
	master := rng.New(1)
	geom := faunus.NewCuboidGeometry(boxLength)
	particles := make([]faunus.Particle, n)
	for i := range particles {
		particles[i] = faunus.Particle{
			Pos:    geom.RandomPoint(master.Uniform),
			TypeID: 1,
			Charge: 1 - 2*float64(i%2), // alternating +1/-1, net neutral
			Radius: 2.0,
		}
	}
	group := &faunus.Group{Name: "free", MoleculeID: 1, Front: 0, Back: n, Molecular: false}
	return faunus.NewSpace(particles, []*faunus.Group{group}, geom)
}

// moleculeIDs maps the molecule names a moves.<kind>.permolecule table
// may key on to the faunus.Group.MoleculeID values newDemoSpace assigns:
// this demo binary has a single molecule type, "free", for its unbound
// atomic particles.
var moleculeIDs = map[string]int{"free": 1}

// registerMoves wires the propagator's move list from the configuration
// document. Every move kind present under doc.Moves is registered;
// absent a config entry for a kind, it is simply not run. Each move's
// Base.MolList is populated from that kind's permolecule table via
// buildMolList, so Base.Step's move-list sampling (run-fraction,
// direction mask, repeat count) is driven by real configuration rather
// than going unused, per spec.md §2/§3/§4.1. Every registered move's
// Base.Stats is repointed at the shared report so the end-of-run dump
// covers every move under one set of keys, rather than each move's own
// private report NewBase starts it with.
func registerMoves(p *move.Propagator, doc *config.Document, master *rng.RNG, defaultDP float64, report *stats.Report) {
	// atomtranslate always runs, even with an empty moves table (the
	// embedded defaults.yaml ships one): every other move kind is
	// additive on top of it.
	mv := doc.Moves["atomtranslate"]
	{
		m := move.NewAtomicTranslate("atomtranslate", 1, dpOrDefault(mv, defaultDP), v3.Vec{X: 1, Y: 1, Z: 1}, master)
		m.Stats = report
		m.MolList = buildMolList(mv, moleculeIDs["free"])
		p.Register(m, &m.Base, 1)
	}
	if mv, ok := doc.Moves["atomrotate"]; ok {
		m := move.NewAtomicRotate("atomrotate", 1, dpRotOrDefault(mv, 0.5), master)
		m.Stats = report
		m.MolList = buildMolList(mv, moleculeIDs["free"])
		p.Register(m, &m.Base, 1)
	}
	if mv, ok := doc.Moves["isobaric"]; ok {
		m := move.NewVolumeMove("isobaric", dpOrDefault(mv, 0.1), mv.PressureKT(), master)
		m.Stats = report
		m.MolList = buildMolList(mv, 0) // box-scale move: no molecule type of its own
		p.Register(m, &m.Base, 1)
	}
}

// buildMolList turns mv.PerMolecule into the move.MoveListEntry table
// Base.Step samples from, resolving each configured molecule name
// through moleculeIDs and skipping entries for names this demo binary
// doesn't know about. When the table is empty, a legacy single-molecule
// config (moves.<kind>.prob at the top level, with no permolecule
// table) still produces one entry keyed on primaryMolID, so an old-style
// "prob: 0.5" config keeps gating the move's own run-fraction exactly as
// it did when propagator weighting (since removed, per spec.md §2's
// uniform move selection) used to carry it.
func buildMolList(mv config.MoveConfig, primaryMolID int) map[int]*move.MoveListEntry {
	entries := make(map[int]*move.MoveListEntry, len(mv.PerMolecule))
	for name, params := range mv.PerMolecule {
		id, ok := moleculeIDs[name]
		if !ok {
			continue
		}
		entries[id] = &move.MoveListEntry{
			MoleculeID: id,
			Prob:       probOrDefault(params.Prob),
			Dir:        [3]float64{float64(params.Dir[0]), float64(params.Dir[1]), float64(params.Dir[2])},
			DP1:        params.DP,
			DP2:        params.DPRot,
			PerAtom:    params.PerAtom,
			PerMol:     params.PerMol,
		}
	}
	if len(entries) == 0 && mv.Prob > 0 && mv.Prob < 1 {
		entries[primaryMolID] = &move.MoveListEntry{MoleculeID: primaryMolID, Prob: mv.Prob}
	}
	return entries
}

func probOrDefault(p float64) float64 {
	if p > 0 {
		return p
	}
	return 1
}

func dpOrDefault(mv config.MoveConfig, fallback float64) float64 {
	for _, params := range mv.PerMolecule {
		if params.DP != 0 {
			return params.DP
		}
	}
	return fallback
}

func dpRotOrDefault(mv config.MoveConfig, fallback float64) float64 {
	for _, params := range mv.PerMolecule {
		if params.DPRot != 0 {
			return params.DPRot
		}
	}
	return fallback
}

// run drives the propagator for the requested number of trials,
// auditing the accumulated energy drift at the configured interval, per
// spec.md §4.11/§8.
func run(p *move.Propagator, space *faunus.Space, steps, auditEvery int64, h faunus.Hamiltonian) error {
	startEnergy := h.FullEnergy(space, space.Committed)
	var i int64
	for i = 0; i < steps; i++ {
		if _, err := p.Step(space); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if auditEvery > 0 && (i+1)%auditEvery == 0 {
			if err := p.AuditEnergyDrift(space, startEnergy); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			startEnergy = h.FullEnergy(space, space.Committed)
			p.ResetDrift()
		}
	}
	return nil
}
