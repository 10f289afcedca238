package faunus

import (
	"math"
	"testing"

	v3 "github.com/cpasquier/faunus/v3"
)

func makeGroup(front, back int, molecular bool) *Group {
	return &Group{Front: front, Back: back, Molecular: molecular}
}

func TestGroupRecomputeAndConsistency(t *testing.T) {
	g := makeGroup(0, 2, true)
	trial := []Particle{
		{Pos: v3.Vec{X: 0, Y: 0, Z: 0}},
		{Pos: v3.Vec{X: 2, Y: 0, Z: 0}},
	}
	g.RecomputeTrialCM(trial)
	want := v3.Vec{X: 1, Y: 0, Z: 0}
	if v3.Dist(g.TrialCM, want) > 1e-12 {
		t.Fatalf("RecomputeTrialCM: got %v, want %v", g.TrialCM, want)
	}
	g.CommittedCM = want
	if err := g.CheckCMConsistency(trial); err != nil {
		t.Fatalf("CheckCMConsistency: unexpected error %v", err)
	}
	g.CommittedCM = v3.Vec{X: 5, Y: 5, Z: 5}
	if err := g.CheckCMConsistency(trial); err == nil {
		t.Fatal("CheckCMConsistency: expected an error after drift")
	}
}

func TestChangeLifecycle(t *testing.T) {
	c := NewChange()
	if !c.Empty() {
		t.Fatal("a fresh Change should be empty")
	}
	c.AddParticle(0, 5)
	c.AddWholeGroup(1)
	if c.Empty() {
		t.Fatal("Change should not be empty after registering a touch")
	}
	c.Clear()
	if !c.Empty() {
		t.Fatal("Change should be empty after Clear")
	}
}

func TestParticleTrackerRoundTrip(t *testing.T) {
	committed := []Particle{{TypeID: 1}, {TypeID: 2}, {TypeID: 1}}
	tr := NewParticleTracker(committed)
	if tr.Count(1) != 2 || tr.Count(2) != 1 {
		t.Fatalf("Count: got %d/%d, want 2/1", tr.Count(1), tr.Count(2))
	}
	if err := tr.ConsistentWith(committed); err != nil {
		t.Fatalf("ConsistentWith: unexpected error %v", err)
	}
	tr.Move(1, 3, 0)
	if tr.Count(1) != 1 || tr.Count(3) != 1 {
		t.Fatalf("after Move: got Count(1)=%d Count(3)=%d", tr.Count(1), tr.Count(3))
	}
}

func TestSpaceCommitAndReject(t *testing.T) {
	committed := []Particle{{Pos: v3.Vec{X: 0}}, {Pos: v3.Vec{X: 1}}}
	geom := NewCuboidGeometry(50)
	s := NewSpace(committed, nil, geom)
	s.Trial[0].Pos = v3.Vec{X: 9}
	s.Reject()
	if s.Trial[0].Pos != s.Committed[0].Pos {
		t.Fatal("Reject should restore trial from committed")
	}
	s.Trial[1].Pos = v3.Vec{X: 42}
	s.Commit()
	if s.Committed[1].Pos != (v3.Vec{X: 42}) {
		t.Fatal("Commit should copy trial into committed")
	}
	if err := s.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants: unexpected error %v", err)
	}
}

func TestCuboidGeometryWrapAndDistance(t *testing.T) {
	g := NewCuboidGeometry(10)
	p := g.Wrap(v3.Vec{X: 7, Y: 0, Z: 0})
	if math.Abs(p.X-(-3)) > 1e-9 {
		t.Fatalf("Wrap: got %v, want X=-3", p)
	}
	d := g.Distance(v3.Vec{X: -4, Y: 0, Z: 0}, v3.Vec{X: 4, Y: 0, Z: 0})
	if math.Abs(d-2) > 1e-9 {
		t.Fatalf("Distance across periodic boundary: got %v, want 2", d)
	}
}

func TestCuboidGeometryVolumeScaling(t *testing.T) {
	g := NewCuboidGeometry(10)
	g.SetVolume(2*g.Volume(), v3.Zero)
	if math.Abs(g.Volume()-2000) > 1e-6 {
		t.Fatalf("SetVolume isobaric: got volume %v, want 2000", g.Volume())
	}
	g2 := NewCuboidGeometry(10)
	before := g2.Volume()
	g2.SetVolume(0, v3.Vec{X: 2, Y: 2, Z: 0.25})
	if math.Abs(g2.Volume()-before) > 1e-6 {
		t.Fatalf("SetVolume isochoric should preserve volume: got %v, want %v", g2.Volume(), before)
	}
}
