package rng

import "testing"

func TestUniformAndHalfRanges(t *testing.T) {
	r := New(1)
	for i := 0; i < 1000; i++ {
		u := r.Uniform()
		if u < 0 || u >= 1 {
			t.Fatalf("Uniform out of range: %v", u)
		}
		h := r.Half()
		if h < -0.5 || h >= 0.5 {
			t.Fatalf("Half out of range: %v", h)
		}
	}
}

func TestDeterministicWithSameSeed(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 50; i++ {
		if a.Uniform() != b.Uniform() {
			t.Fatal("two RNGs with the same seed diverged")
		}
	}
}

func TestPickWithinBounds(t *testing.T) {
	r := New(7)
	for i := 0; i < 500; i++ {
		p := r.Pick(5)
		if p < 0 || p >= 5 {
			t.Fatalf("Pick out of range: %v", p)
		}
	}
}

func TestSignIsPlusOrMinusOne(t *testing.T) {
	r := New(3)
	seenPos, seenNeg := false, false
	for i := 0; i < 200; i++ {
		switch r.Sign() {
		case 1:
			seenPos = true
		case -1:
			seenNeg = true
		default:
			t.Fatal("Sign returned a value other than +-1")
		}
	}
	if !seenPos || !seenNeg {
		t.Fatal("Sign should produce both +1 and -1 over enough draws")
	}
}

func TestDeriveIsIndependentStream(t *testing.T) {
	r := New(9)
	child := r.Derive()
	if child == r {
		t.Fatal("Derive should return a distinct RNG")
	}
}
