// Package config loads the simulation's configuration document: the
// moves table and the equilibrium-process list spec.md §6 describes,
// as YAML with go:embed defaults, the way pthm-soup/config and
// achemdb's config/schema split load theirs.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cpasquier/faunus"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// AvogadroPerCubicAngstromLiter converts a molar (mol/L) concentration to
// a number density in particles per Å³: 1 L = 10²⁷ Å³.
const AvogadroPerCubicAngstromLiter = 6.02214076e23 * 1e-27

// MoleculeMoveParams is the union of per-(move,molecule) parameters
// spec.md §6's table lists across move kinds; each concrete move reads
// only the subset it needs.
type MoleculeMoveParams struct {
	Dir        [3]int  `yaml:"dir"`
	PerMol     bool    `yaml:"permol"`
	PerAtom    bool    `yaml:"peratom"`
	Prob       float64 `yaml:"prob"`
	DP         float64 `yaml:"dp"`
	DPRot      float64 `yaml:"dprot"`
	MinLen     int     `yaml:"minlen"`
	MaxLen     int     `yaml:"maxlen"`
	BondLength float64 `yaml:"bondlength"`
	Threshold  float64 `yaml:"threshold"`
}

// EquilibriumProcess is one titratable-site process: bound <-> unbound
// with an intrinsic pK, evaluated at the simulation pH per spec.md §6.
type EquilibriumProcess struct {
	Bound   string  `yaml:"bound"`
	Unbound string  `yaml:"unbound"`
	PK      float64 `yaml:"pk"`
	PH      float64 `yaml:"ph"`
}

// DeltaG returns the intrinsic free-energy change ln10*(pH-pK) of moving
// bound -> unbound, in units of kT.
func (p EquilibriumProcess) DeltaG() float64 {
	return math.Ln10 * (p.PH - p.PK)
}

// MoveConfig is one entry in the moves table: the per-molecule parameter
// objects plus whatever move-specific extras that move kind needs.
type MoveConfig struct {
	PerMolecule  map[string]MoleculeMoveParams `yaml:"permolecule"`
	StaticMol    []string                      `yaml:"staticmol"`
	ClusterGroup string                        `yaml:"clustergroup"`
	SkipEnergy   bool                          `yaml:"skipenergy"`
	Pressure     float64                       `yaml:"pressure"` // millimolar
	Combinations [][]string                    `yaml:"combinations"`
	Processes    []EquilibriumProcess          `yaml:"processes"`
	SaveCharge   bool                          `yaml:"savecharge"`
	Neutralize   bool                          `yaml:"neutralize"`
	Format       string                        `yaml:"format"`
	Molecule     string                        `yaml:"molecule"`
	Prob         float64                       `yaml:"prob"`
}

// PressureKT converts the configured millimolar pressure into the ideal-
// gas "pV" number-density term the isobaric move's Hamiltonian-side
// correction needs, in particles per Å³.
func (m MoveConfig) PressureKT() float64 {
	return (m.Pressure / 1000) * AvogadroPerCubicAngstromLiter
}

// Document is the top-level configuration: a map from move-kind key
// (spec.md §6: "atomtranslate", "isobaric", "gctit", ...) to its
// configuration, plus the output file for the end-of-run statistics dump.
type Document struct {
	Moves    map[string]MoveConfig `yaml:"moves"`
	JSONFile string                `yaml:"_jsonfile"`
}

// Load reads defaults.yaml, then overlays path (if non-empty) on top of
// it, returning a *faunus.ConfigError for malformed YAML or an
// out-of-range value; absent fields keep their zero or default value.
func Load(path string) (*Document, error) {
	doc := &Document{}
	if err := yaml.Unmarshal(defaultsYAML, doc); err != nil {
		return nil, faunus.NewConfigError("", fmt.Sprintf("parsing embedded defaults: %v", err))
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, faunus.NewConfigError(path, fmt.Sprintf("reading config file: %v", err))
		}
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, faunus.NewConfigError(path, fmt.Sprintf("parsing config file: %v", err))
		}
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *Document) validate() error {
	for kind, mv := range d.Moves {
		if mv.Prob < 0 || mv.Prob > 1 {
			return faunus.NewConfigError("moves."+kind+".prob", "probability must be in [0,1]")
		}
		for mol, p := range mv.PerMolecule {
			if p.Prob < 0 || p.Prob > 1 {
				return faunus.NewConfigError("moves."+kind+".permolecule."+mol+".prob", "probability must be in [0,1]")
			}
			for _, d := range p.Dir {
				if d != 0 && d != 1 {
					return faunus.NewConfigError("moves."+kind+".permolecule."+mol+".dir", "direction mask components must be 0 or 1")
				}
			}
		}
	}
	return nil
}

// WriteYAML serializes the document to path.
func (d *Document) WriteYAML(path string) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("config: marshaling document: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
