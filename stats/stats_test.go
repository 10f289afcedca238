package stats

import (
	"encoding/json"
	"testing"
)

func TestHistogramAddAndNormalize(t *testing.T) {
	h := NewHistogram("displacement", []float64{0, 1, 2, 3, 4})
	h.Add(0.5, 1.5, 1.6, 3.9, -1, 4.1)
	if got := h.Sum(); got != 4 {
		t.Fatalf("Sum before normalize: got %v, want 4 (out-of-range points dropped)", got)
	}
	h.Normalize()
	if got := h.Sum(); got < 0.999 || got > 1.001 {
		t.Fatalf("Sum after normalize: got %v, want ~1", got)
	}
	h.unnormalize()
	if got := h.Sum(); got != 4 {
		t.Fatalf("Sum after unnormalize: got %v, want 4", got)
	}
}

func TestHistogramJSONRoundTrip(t *testing.T) {
	h := NewHistogram("msd", []float64{0, 1, 2, 3})
	h.Add(0.1, 1.1, 2.9)
	b, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	h2 := &Histogram{}
	if err := json.Unmarshal(b, h2); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if h2.Label() != h.Label() || h2.Sum() != h.Sum() {
		t.Fatalf("round trip mismatch: got %+v, want %+v", h2, h)
	}
}

func TestAcceptanceRatio(t *testing.T) {
	a := &Acceptance{}
	a.Observe(true, -1.0)
	a.Observe(false, 0)
	a.Observe(true, 1.0)
	if got := a.Ratio(); got != 2.0/3.0 {
		t.Fatalf("Ratio: got %v, want %v", got, 2.0/3.0)
	}
	if got := a.MeanEnergyChange(); got != 0 {
		t.Fatalf("MeanEnergyChange: got %v, want 0", got)
	}
}

func TestReportAcceptanceAndTime(t *testing.T) {
	r := NewReport()
	acc := r.Acceptance("atomic-translation")
	acc.Observe(true, -0.5)
	acc.Observe(true, -0.5)
	acc.Observe(false, 0)
	if got := r.Acceptance("atomic-translation").Ratio(); got < 0.666 || got > 0.667 {
		t.Fatalf("Ratio via report: got %v", got)
	}
	r.AddMoveTime("atomic-translation", 10)
	r.AddMoveTime("atomic-rotation", 30)
	if got := r.RelativeTime("atomic-rotation"); got != 0.75 {
		t.Fatalf("RelativeTime: got %v, want 0.75", got)
	}
}

func TestSortStrings(t *testing.T) {
	s := []string{"c", "a", "b"}
	sortStrings(s)
	if s[0] != "a" || s[1] != "b" || s[2] != "c" {
		t.Fatalf("sortStrings: got %v", s)
	}
}
