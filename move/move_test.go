package move

import (
	"testing"

	"github.com/cpasquier/faunus"
	"github.com/cpasquier/faunus/config"
	"github.com/cpasquier/faunus/rng"
	v3 "github.com/cpasquier/faunus/v3"
)

// zeroHamiltonian is a Hamiltonian stub that always reports zero energy,
// isolating the move framework's structural correctness (invariants,
// bookkeeping) from any particular potential.
type zeroHamiltonian struct{}

func (zeroHamiltonian) NotifyChange(space *faunus.Space, change *faunus.Change) {}
func (zeroHamiltonian) EnergyChange(space *faunus.Space, change *faunus.Change) float64 {
	return 0
}
func (zeroHamiltonian) FullEnergy(space *faunus.Space, particles []faunus.Particle) float64 {
	return 0
}
func (zeroHamiltonian) ElectricField(space *faunus.Space, particles []faunus.Particle, field []v3.Vec) {
	for i := range field {
		field[i] = v3.Zero
	}
}

func newTestSpace(n int) *faunus.Space {
	particles := make([]faunus.Particle, n)
	for i := range particles {
		particles[i] = faunus.Particle{Pos: v3.Vec{X: float64(i), Y: 0, Z: 0}, TypeID: 1, Charge: 1}
	}
	groups := []*faunus.Group{{Name: "free", MoleculeID: 1, Front: 0, Back: n, Molecular: false}}
	return faunus.NewSpace(particles, groups, faunus.NewCuboidGeometry(50))
}

func TestAtomicTranslateStepPreservesInvariants(t *testing.T) {
	space := newTestSpace(10)
	seed := rng.New(1)
	mv := NewAtomicTranslate("atomtranslate", 1, 1.0, v3.Vec{X: 1, Y: 1, Z: 1}, seed)
	h := zeroHamiltonian{}

	for i := 0; i < 50; i++ {
		if _, err := mv.Step(mv, space, h, 1); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if err := space.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants after 50 steps: %v", err)
	}
	acc := mv.Stats.Acceptance("atomtranslate")
	if acc.Trials != 50 {
		t.Fatalf("trials: got %d, want 50", acc.Trials)
	}
	if acc.Accepted != 50 {
		t.Fatalf("with a zero-energy Hamiltonian every trial should accept: got %d/50", acc.Accepted)
	}
}

func TestGroupTranslateRotateKeepsMassCentreConsistent(t *testing.T) {
	particles := []faunus.Particle{
		{Pos: v3.Vec{X: 0, Y: 0, Z: 0}, TypeID: 2},
		{Pos: v3.Vec{X: 1, Y: 0, Z: 0}, TypeID: 2},
		{Pos: v3.Vec{X: 2, Y: 0, Z: 0}, TypeID: 2},
	}
	g := &faunus.Group{Name: "mol", MoleculeID: 2, Front: 0, Back: 3, Molecular: true}
	g.RecomputeTrialCM(particles)
	g.CommittedCM = g.TrialCM
	space := faunus.NewSpace(particles, []*faunus.Group{g}, faunus.NewCuboidGeometry(50))

	seed := rng.New(2)
	mv := NewGroupTranslateRotate("grouptranslate", 2, 2.0, 1.0, v3.Vec{X: 1, Y: 1, Z: 1}, seed)
	h := zeroHamiltonian{}

	for i := 0; i < 20; i++ {
		if _, err := mv.Step(mv, space, h, 1); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if err := space.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants: %v", err)
	}
}

func TestClusterMoveStepPreservesInvariants(t *testing.T) {
	space := newTestSpace(5)
	seed := rng.New(3)
	mv := NewClusterMove("cluster", 1, []int{1}, 0.5, 1.0, 0.5, seed)
	h := zeroHamiltonian{}
	for i := 0; i < 20; i++ {
		if _, err := mv.Step(mv, space, h, 1); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if err := space.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants: %v", err)
	}
}

func TestVolumeMoveRescalesGeometryAndParticles(t *testing.T) {
	space := newTestSpace(4)
	seed := rng.New(4)
	mv := NewVolumeMove("isobaric", 0.1, 0.0, seed)
	h := zeroHamiltonian{}
	before := space.Geometry.Volume()

	for i := 0; i < 20; i++ {
		if _, err := mv.Step(mv, space, h, 1); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if err := space.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants: %v", err)
	}
	after := space.Geometry.Volume()
	if after == before {
		t.Fatalf("volume never changed across 20 trial steps")
	}
}

func TestSaltMoveGrowsAndShrinksReservoir(t *testing.T) {
	reservoir := &faunus.Group{Name: "salt", MoleculeID: 3, Front: 0, Back: 0, Molecular: false}
	space := faunus.NewSpace(nil, []*faunus.Group{reservoir}, faunus.NewCuboidGeometry(100))

	seed := rng.New(5)
	cation := IonSpecies{TypeID: 10, Charge: 1, MuExKT: 0}
	anion := IonSpecies{TypeID: 11, Charge: -1, MuExKT: 0}
	mv := NewSaltMove("saltmove", cation, anion, 0, seed)
	h := zeroHamiltonian{}

	for i := 0; i < 30; i++ {
		if _, err := mv.Step(mv, space, h, 1); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if err := space.CheckInvariants(); err != nil {
			t.Fatalf("CheckInvariants at iteration %d: %v", i, err)
		}
	}
}

func TestTitrationMoveFlipsSiteType(t *testing.T) {
	particles := []faunus.Particle{
		{Pos: v3.Vec{X: 0}, TypeID: 20}, // bound
		{Pos: v3.Vec{X: 1}, TypeID: 20},
	}
	g := &faunus.Group{Name: "site", MoleculeID: 4, Front: 0, Back: 2}
	space := faunus.NewSpace(particles, []*faunus.Group{g}, faunus.NewCuboidGeometry(50))

	seed := rng.New(6)
	process := config.EquilibriumProcess{Bound: "AH", Unbound: "A-", PK: 4.0, PH: 7.0}
	mv := NewTitrationMove("titration", process, 20, 21, seed)
	h := zeroHamiltonian{}

	for i := 0; i < 20; i++ {
		if _, err := mv.Step(mv, space, h, 1); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if err := space.CheckInvariants(); err != nil {
			t.Fatalf("CheckInvariants at iteration %d: %v", i, err)
		}
	}
}

func TestPropagatorAccumulatesAndAudits(t *testing.T) {
	space := newTestSpace(6)
	seed := rng.New(7)
	h := zeroHamiltonian{}
	prop := NewPropagator(h, seed)

	mv := NewAtomicTranslate("atomtranslate", 1, 1.0, v3.Vec{X: 1, Y: 1, Z: 1}, seed)
	prop.Register(mv, &mv.Base, 1)

	for i := 0; i < 30; i++ {
		if _, err := prop.Step(space); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if err := prop.AuditEnergyDrift(space, 0); err != nil {
		t.Fatalf("AuditEnergyDrift: %v", err)
	}
}

func TestNoRejectClusterTranslateNeverRejects(t *testing.T) {
	space := newTestSpace(6)
	seed := rng.New(8)
	pair := func(a, b faunus.Particle) float64 { return 0.1 }
	mv := NewNoRejectClusterTranslate("clusternr", 1, []int{1}, 1.0, pair, seed)
	h := zeroHamiltonian{}

	acc := mv.Stats.Acceptance("clusternr")
	for i := 0; i < 10; i++ {
		deltaU, err := mv.Step(mv, space, h, 1)
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		if deltaU != 0 {
			t.Fatalf("expected zero tracked energy with a zero Hamiltonian, got %v", deltaU)
		}
	}
	if acc.Trials != 10 || acc.Accepted != 10 {
		t.Fatalf("rejection-free move should accept every trial: trials=%d accepted=%d", acc.Trials, acc.Accepted)
	}
	if err := space.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants: %v", err)
	}
}

func TestPolymerMoveKindsPreserveInvariants(t *testing.T) {
	for _, kind := range []PolymerKind{Crankshaft, Pivot, Reptation} {
		particles := make([]faunus.Particle, 6)
		for i := range particles {
			particles[i] = faunus.Particle{Pos: v3.Vec{X: float64(i)}, TypeID: 30}
		}
		g := &faunus.Group{Name: "chain", MoleculeID: 30, Front: 0, Back: 6, Molecular: true}
		g.RecomputeTrialCM(particles)
		g.CommittedCM = g.TrialCM
		space := faunus.NewSpace(particles, []*faunus.Group{g}, faunus.NewCuboidGeometry(50))

		seed := rng.New(9)
		mv := NewPolymerMove("polymer", 30, kind, 0.5, 1, 2, 1.5, seed)
		h := zeroHamiltonian{}
		for i := 0; i < 15; i++ {
			if _, err := mv.Step(mv, space, h, 1); err != nil {
				t.Fatalf("kind %v: Step: %v", kind, err)
			}
		}
		if err := space.CheckInvariants(); err != nil {
			t.Fatalf("kind %v: CheckInvariants: %v", kind, err)
		}
	}
}

func TestGreenGCMoveBalancesTracker(t *testing.T) {
	reservoir := &faunus.Group{Name: "gc", MoleculeID: 5, Front: 0, Back: 0}
	space := faunus.NewSpace(nil, []*faunus.Group{reservoir}, faunus.NewCuboidGeometry(100))
	seed := rng.New(10)
	combo := []IonSpecies{{TypeID: 40, Charge: 2}, {TypeID: 41, Charge: -1}, {TypeID: 41, Charge: -1}}
	mv := NewGreenGCMove("greengc", combo, 0, seed)
	h := zeroHamiltonian{}

	for i := 0; i < 20; i++ {
		if _, err := mv.Step(mv, space, h, 1); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if err := space.CheckInvariants(); err != nil {
			t.Fatalf("CheckInvariants at iteration %d: %v", i, err)
		}
	}
}

func TestSaltMoveMultivalentStoichiometryStaysNeutral(t *testing.T) {
	reservoir := &faunus.Group{Name: "salt", MoleculeID: 3, Front: 0, Back: 0, Molecular: false}
	space := faunus.NewSpace(nil, []*faunus.Group{reservoir}, faunus.NewCuboidGeometry(100))

	seed := rng.New(12)
	cation := IonSpecies{TypeID: 10, Charge: 2, MuExKT: 0} // Ca2+
	anion := IonSpecies{TypeID: 11, Charge: -1, MuExKT: 0} // Cl-
	mv := NewSaltMove("saltmove", cation, anion, 0, seed)
	if mv.NumCation() != 1 || mv.NumAnion() != 2 {
		t.Fatalf("stoichiometry: got Na=%d Nb=%d, want Na=1 Nb=2", mv.NumCation(), mv.NumAnion())
	}
	h := zeroHamiltonian{}

	for i := 0; i < 40; i++ {
		if _, err := mv.Step(mv, space, h, 1); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if err := space.CheckInvariants(); err != nil {
			t.Fatalf("CheckInvariants at iteration %d: %v", i, err)
		}
		nCation := len(space.Tracker.Indexes(cation.TypeID))
		nAnion := len(space.Tracker.Indexes(anion.TypeID))
		if nAnion != 2*nCation {
			t.Fatalf("iteration %d: expected 2 Cl- per Ca2+, got nCation=%d nAnion=%d", i, nCation, nAnion)
		}
	}
}

func TestMoveListEntryComputeRepeat(t *testing.T) {
	e := &MoveListEntry{PerAtom: true, PerMol: true}
	e.ComputeRepeat(4, 3)
	if e.Repeat != 12 {
		t.Fatalf("Repeat: got %d, want 12", e.Repeat)
	}

	e2 := &MoveListEntry{}
	e2.ComputeRepeat(4, 3)
	if e2.Repeat != 1 {
		t.Fatalf("Repeat with no multipliers: got %d, want 1", e2.Repeat)
	}
}

func TestBaseStepUsesMolListRepeatAndRunFraction(t *testing.T) {
	space := newTestSpace(4)
	seed := rng.New(13)
	mv := NewAtomicTranslate("atomtranslate", 1, 1.0, v3.Vec{X: 1, Y: 1, Z: 1}, seed)
	mv.MolList = map[int]*MoveListEntry{
		1: {MoleculeID: 1, Prob: 1, PerAtom: true},
	}
	h := zeroHamiltonian{}

	acc := mv.Stats.Acceptance("atomtranslate")
	if _, err := mv.Step(mv, space, h, 1); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if acc.Trials != 4 {
		t.Fatalf("PerAtom repeat: got %d trials, want 4 (group size)", acc.Trials)
	}
	if mv.CurrentMolID != 1 {
		t.Fatalf("CurrentMolID: got %d, want 1", mv.CurrentMolID)
	}

	mv.MolList[1].Prob = 0
	if _, err := mv.Step(mv, space, h, 1); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if acc.Trials != 4 {
		t.Fatalf("Prob=0 should gate the whole trial: trials grew to %d", acc.Trials)
	}
}

func TestCombinedGCTitrationRejectsNonUnitCharge(t *testing.T) {
	seed := rng.New(11)
	salt := *NewSaltMove("combined-salt", IonSpecies{TypeID: 50, Charge: 2}, IonSpecies{TypeID: 51, Charge: -2}, 0, seed)
	titration := *NewTitrationMove("combined-tit", config.EquilibriumProcess{PK: 4, PH: 7}, 60, 61, seed)
	if _, err := NewCombinedGCTitration("combined", salt, titration, seed); err == nil {
		t.Fatal("expected an error for non-unit-charge coupled ions")
	}
}

func TestCombinedGCTitrationRunsBothBranches(t *testing.T) {
	titrationGroup := &faunus.Group{Name: "site", MoleculeID: 4, Front: 0, Back: 2}
	reservoir := &faunus.Group{Name: "salt", MoleculeID: 3, Front: 2, Back: 2, Molecular: false}
	sites := []faunus.Particle{{Pos: v3.Vec{X: 0}, TypeID: 20}, {Pos: v3.Vec{X: 1}, TypeID: 20}}
	space := faunus.NewSpace(sites, []*faunus.Group{titrationGroup, reservoir}, faunus.NewCuboidGeometry(100))

	seed := rng.New(14)
	salt := *NewSaltMove("combined-salt", IonSpecies{TypeID: 50, Charge: 1}, IonSpecies{TypeID: 51, Charge: -1}, 1, seed)
	titration := *NewTitrationMove("combined-tit", config.EquilibriumProcess{PK: 4, PH: 7}, 20, 21, seed)
	mv, err := NewCombinedGCTitration("combined", salt, titration, seed)
	if err != nil {
		t.Fatalf("NewCombinedGCTitration: %v", err)
	}
	h := zeroHamiltonian{}

	var sawSaltOnly, sawCoupled bool
	for i := 0; i < 60; i++ {
		if _, err := mv.Step(mv, space, h, 1); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if mv.saltOnly {
			sawSaltOnly = true
		} else {
			sawCoupled = true
		}
		if err := space.CheckInvariants(); err != nil {
			t.Fatalf("CheckInvariants at iteration %d: %v", i, err)
		}
	}
	if !sawSaltOnly || !sawCoupled {
		t.Fatalf("expected both branches to run over 60 trials: sawSaltOnly=%v sawCoupled=%v", sawSaltOnly, sawCoupled)
	}
}
