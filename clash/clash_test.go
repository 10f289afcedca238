package clash

import (
	"math"
	"testing"

	v3 "github.com/cpasquier/faunus/v3"
)

func TestLowestDistance(t *testing.T) {
	a := []v3.Vec{{X: 0, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0}}
	b := []v3.Vec{{X: 0, Y: 3, Z: 0}, {X: 10, Y: 1, Z: 0}}
	dist, idx := LowestDistance(a, b)
	if math.Abs(dist-1) > 1e-9 {
		t.Fatalf("LowestDistance: got %v, want 1", dist)
	}
	if idx != [2]int{1, 1} {
		t.Fatalf("LowestDistance indexes: got %v, want [1 1]", idx)
	}
}

func TestLowestDistanceEmpty(t *testing.T) {
	dist, idx := LowestDistance(nil, []v3.Vec{{}})
	if !math.IsInf(dist, 1) || idx != [2]int{-1, -1} {
		t.Fatalf("LowestDistance on empty set: got %v, %v", dist, idx)
	}
}

func TestWithinRadius(t *testing.T) {
	seed := v3.Vec{X: 0, Y: 0, Z: 0}
	candidates := []v3.Vec{{X: 1, Y: 0, Z: 0}, {X: 5, Y: 0, Z: 0}, {X: 0, Y: 2, Z: 0}}
	members := WithinRadius(seed, candidates, 2)
	if len(members) != 2 || members[0] != 0 || members[1] != 2 {
		t.Fatalf("WithinRadius: got %v", members)
	}
}

func TestAnyOverlap(t *testing.T) {
	a := []v3.Vec{{X: 0, Y: 0, Z: 0}}
	b := []v3.Vec{{X: 0.5, Y: 0, Z: 0}}
	if !AnyOverlap(a, b, 1.0) {
		t.Fatal("expected overlap within 1.0")
	}
	if AnyOverlap(a, b, 0.1) {
		t.Fatal("did not expect overlap within 0.1")
	}
}
