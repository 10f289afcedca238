package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefaultsOnly(t *testing.T) {
	doc, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): unexpected error %v", err)
	}
	if doc.JSONFile != "stats.json" {
		t.Fatalf("JSONFile: got %q, want %q", doc.JSONFile, "stats.json")
	}
}

func TestLoadOverlayFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.yaml")
	content := []byte(`
_jsonfile: run1.json
moves:
  atomtranslate:
    permolecule:
      Na+:
        dir: [1, 1, 1]
        peratom: true
        prob: 0.5
        dp: 2.0
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: unexpected error %v", err)
	}
	if doc.JSONFile != "run1.json" {
		t.Fatalf("JSONFile: got %q, want run1.json", doc.JSONFile)
	}
	mv, ok := doc.Moves["atomtranslate"]
	if !ok {
		t.Fatal("expected an atomtranslate entry")
	}
	na, ok := mv.PerMolecule["Na+"]
	if !ok || na.DP != 2.0 || !na.PerAtom {
		t.Fatalf("Na+ params: got %+v", na)
	}
}

func TestLoadRejectsBadProbability(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	content := []byte(`
moves:
  isobaric:
    prob: 1.5
`)
	os.WriteFile(path, content, 0644)
	if _, err := Load(path); err == nil {
		t.Fatal("expected a ConfigError for an out-of-range probability")
	}
}

func TestPressureKT(t *testing.T) {
	mv := MoveConfig{Pressure: 1000} // 1 molar
	got := mv.PressureKT()
	want := AvogadroPerCubicAngstromLiter
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("PressureKT: got %v, want %v", got, want)
	}
}

func TestEquilibriumProcessDeltaG(t *testing.T) {
	p := EquilibriumProcess{PK: 4.0, PH: 7.0}
	got := p.DeltaG()
	want := math.Ln10 * 3.0
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("DeltaG: got %v, want %v", got, want)
	}
}
