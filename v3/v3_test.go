package v3

import (
	"math"
	"testing"
)

func TestVecArith(t *testing.T) {
	a := Vec{X: 1, Y: 2, Z: 3}
	b := Vec{X: 4, Y: -1, Z: 2}
	if got := Add(a, b); got != (Vec{X: 5, Y: 1, Z: 5}) {
		t.Errorf("Add: got %v", got)
	}
	if got := Sub(a, b); got != (Vec{X: -3, Y: 3, Z: 1}) {
		t.Errorf("Sub: got %v", got)
	}
	if got := Dot(a, b); got != 8 {
		t.Errorf("Dot: got %v, want 8", got)
	}
	cross := Cross(Vec{X: 1, Y: 0, Z: 0}, Vec{X: 0, Y: 1, Z: 0})
	if cross != (Vec{X: 0, Y: 0, Z: 1}) {
		t.Errorf("Cross: got %v", cross)
	}
}

func TestUnitPanicsOnZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Unit(Zero) should panic")
		}
	}()
	Unit(Zero)
}

func TestUnitAndNorm(t *testing.T) {
	v := Vec{X: 3, Y: 4, Z: 0}
	if n := Norm(v); math.Abs(n-5) > 1e-12 {
		t.Fatalf("Norm: got %v, want 5", n)
	}
	u := Unit(v)
	if math.Abs(Norm(u)-1) > 1e-12 {
		t.Fatalf("Unit: norm %v, want 1", Norm(u))
	}
}

func TestRotateAboutQuarterTurn(t *testing.T) {
	p := Vec{X: 1, Y: 0, Z: 0}
	got := RotateAbout(p, Zero, Vec{X: 0, Y: 0, Z: 1}, math.Pi/2)
	want := Vec{X: 0, Y: 1, Z: 0}
	if Dist(got, want) > 1e-9 {
		t.Fatalf("RotateAbout: got %v, want %v", got, want)
	}
}

func TestRotateAboutPreservesDistanceToAxis(t *testing.T) {
	origin := Vec{X: 1, Y: 1, Z: 1}
	axis := Vec{X: 0, Y: 0, Z: 1}
	p := Vec{X: 3, Y: 5, Z: 7}
	before := Dist(p, origin)
	for _, angle := range []float64{0.3, 1.7, math.Pi, -2.1} {
		rotated := RotateAbout(p, origin, axis, angle)
		if after := Dist(rotated, origin); math.Abs(after-before) > 1e-9 {
			t.Fatalf("angle %v: distance to origin changed from %v to %v", angle, before, after)
		}
	}
}

func TestRandomUnitVectorIsNormalized(t *testing.T) {
	calls := []float64{0.1, 0.2, 0.9, 0.95, 0.4, 0.6, 0.3, 0.7}
	i := 0
	uniform := func() float64 {
		v := calls[i%len(calls)]
		i++
		return v
	}
	for n := 0; n < 4; n++ {
		v := RandomUnitVector(uniform)
		if math.Abs(Norm(v)-1) > 1e-9 {
			t.Fatalf("RandomUnitVector: norm %v, want 1", Norm(v))
		}
	}
}

func TestMatrixVecRoundTrip(t *testing.T) {
	vecs := []Vec{{X: 1, Y: 2, Z: 3}, {X: -1, Y: 0, Z: 5}, {X: 2, Y: 2, Z: 2}}
	m := FromVecs(vecs)
	if m.NVecs() != len(vecs) {
		t.Fatalf("NVecs: got %d, want %d", m.NVecs(), len(vecs))
	}
	for i, v := range vecs {
		if m.AtVec(i) != v {
			t.Fatalf("row %d: got %v, want %v", i, m.AtVec(i), v)
		}
	}
	back := m.ToVecs()
	for i, v := range vecs {
		if back[i] != v {
			t.Fatalf("ToVecs row %d: got %v, want %v", i, back[i], v)
		}
	}
}

func TestMatrixVecView(t *testing.T) {
	m := FromVecs([]Vec{{X: 1, Y: 1, Z: 1}, {X: 2, Y: 2, Z: 2}})
	view := m.VecView(1)
	view.SetVec(0, Vec{X: 9, Y: 9, Z: 9})
	if got := m.AtVec(1); got != (Vec{X: 9, Y: 9, Z: 9}) {
		t.Fatalf("VecView mutation not reflected in parent: got %v", got)
	}
}

func TestMatrixSwapVecs(t *testing.T) {
	m := FromVecs([]Vec{{X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}})
	m.SwapVecs(0, 1)
	if m.AtVec(0) != (Vec{X: 0, Y: 1, Z: 0}) || m.AtVec(1) != (Vec{X: 1, Y: 0, Z: 0}) {
		t.Fatalf("SwapVecs: unexpected rows %v %v", m.AtVec(0), m.AtVec(1))
	}
}

func TestMatrixSomeVecsAndSetVecs(t *testing.T) {
	full := FromVecs([]Vec{{X: 1}, {X: 2}, {X: 3}, {X: 4}})
	subset := Zeros(2)
	subset.SomeVecs(full, []int{1, 3})
	if subset.AtVec(0).X != 2 || subset.AtVec(1).X != 4 {
		t.Fatalf("SomeVecs: got %v, %v", subset.AtVec(0), subset.AtVec(1))
	}
	subset.SetVec(0, Vec{X: 20})
	subset.SetVec(1, Vec{X: 40})
	full.SetVecs(subset, []int{1, 3})
	if full.AtVec(1).X != 20 || full.AtVec(3).X != 40 {
		t.Fatalf("SetVecs: got %v, %v", full.AtVec(1), full.AtVec(3))
	}
}

func TestMatrixAddSubVec(t *testing.T) {
	m := FromVecs([]Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 1}})
	shifted := Zeros(2)
	shifted.AddVec(m, Vec{X: 1, Y: 2, Z: 3})
	if shifted.AtVec(0) != (Vec{X: 1, Y: 2, Z: 3}) || shifted.AtVec(1) != (Vec{X: 2, Y: 3, Z: 4}) {
		t.Fatalf("AddVec: unexpected result %v %v", shifted.AtVec(0), shifted.AtVec(1))
	}
	back := Zeros(2)
	back.SubVec(shifted, Vec{X: 1, Y: 2, Z: 3})
	if back.AtVec(0) != m.AtVec(0) || back.AtVec(1) != m.AtVec(1) {
		t.Fatalf("SubVec did not invert AddVec")
	}
}

func TestMatrixScaleByVec(t *testing.T) {
	m := FromVecs([]Vec{{X: 1, Y: 1, Z: 1}, {X: 2, Y: 2, Z: 2}})
	scaled := Zeros(2)
	scaled.ScaleByVec(m, Vec{X: 2, Y: 3, Z: 0.5})
	want := Vec{X: 2, Y: 3, Z: 0.5}
	if scaled.AtVec(0) != want {
		t.Fatalf("ScaleByVec row 0: got %v, want %v", scaled.AtVec(0), want)
	}
}

func TestMatrixMassCentre(t *testing.T) {
	m := FromVecs([]Vec{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}})
	mc := m.MassCentre()
	if mc != (Vec{X: 1, Y: 0, Z: 0}) {
		t.Fatalf("MassCentre: got %v, want {1 0 0}", mc)
	}
}

func TestGeometryHelpers(t *testing.T) {
	pts := []Vec{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 0, Y: 2, Z: 0}}
	if mc := MassCentreOf(pts); Dist(mc, Vec{X: 2.0 / 3, Y: 2.0 / 3, Z: 0}) > 1e-9 {
		t.Fatalf("MassCentreOf: got %v", mc)
	}
	shifted := TranslateAll(pts, Vec{X: 1, Y: 1, Z: 1})
	if shifted[0] != (Vec{X: 1, Y: 1, Z: 1}) {
		t.Fatalf("TranslateAll: got %v", shifted[0])
	}
	if d := LongestPairwiseDistance(pts); math.Abs(d-2*math.Sqrt2) > 1e-9 {
		t.Fatalf("LongestPairwiseDistance: got %v, want 2*sqrt(2)", d)
	}
}

func TestRotateAboutAgreesWithClifford(t *testing.T) {
	p := Vec{X: 1.3, Y: -2.1, Z: 0.7}
	axis := Vec{X: 0.2, Y: 0.4, Z: 1}
	for _, angle := range []float64{0.1, 1.0, 2.5, -1.3} {
		a := RotateAbout(p, Zero, axis, angle)
		b := RotateAboutClifford(p, axis, angle)
		if Dist(a, b) > 1e-9 {
			t.Fatalf("angle %v: Rodrigues %v vs Clifford %v disagree", angle, a, b)
		}
	}
}

func TestNewMatrixRejectsBadLength(t *testing.T) {
	if _, err := NewMatrix([]float64{1, 2, 3, 4}); err == nil {
		t.Fatal("NewMatrix should reject a length not divisible by 3")
	}
}
