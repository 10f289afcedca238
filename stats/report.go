package stats

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Acceptance tracks the trial/accept counters for a single move, plus a
// running mean and variance (Welford's algorithm) of the energy changes
// it accepted, matching the acceptance-ratio bookkeeping every Movebase
// subclass in the original engine kept for itself.
type Acceptance struct {
	Trials, Accepted int
	mean, m2         float64
}

// Observe records the outcome of one trial and, when accepted, folds the
// resulting energy change into the running mean/variance.
func (a *Acceptance) Observe(accepted bool, energyChange float64) {
	a.Trials++
	if !accepted {
		return
	}
	a.Accepted++
	delta := energyChange - a.mean
	a.mean += delta / float64(a.Accepted)
	delta2 := energyChange - a.mean
	a.m2 += delta * delta2
}

// Ratio returns the fraction of trials accepted, or 0 if there were none.
func (a *Acceptance) Ratio() float64 {
	if a.Trials == 0 {
		return 0
	}
	return float64(a.Accepted) / float64(a.Trials)
}

// MeanEnergyChange returns the running mean of the accepted energy changes.
func (a *Acceptance) MeanEnergyChange() float64 { return a.mean }

// VarianceEnergyChange returns the running (population) variance of the
// accepted energy changes.
func (a *Acceptance) VarianceEnergyChange() float64 {
	if a.Accepted < 2 {
		return 0
	}
	return a.m2 / float64(a.Accepted)
}

// Report is the top-level statistics container a propagator hands each
// move so it can log trials, acceptances and displacement histograms
// under its own key, and that gets dumped to disk at the end of a run.
type Report struct {
	StartedAt   time.Time
	acceptance  map[string]*Acceptance
	histograms  map[string]*Histogram
	relativeMS  map[string]time.Duration
	elapsedTime time.Duration
}

// NewReport returns an empty Report.
func NewReport() *Report {
	return &Report{
		StartedAt:  time.Time{},
		acceptance: make(map[string]*Acceptance),
		histograms: make(map[string]*Histogram),
		relativeMS: make(map[string]time.Duration),
	}
}

// Acceptance returns (creating if necessary) the accumulator for the move
// registered under key, e.g. "atomic-translation/Na+".
func (r *Report) Acceptance(key string) *Acceptance {
	a, ok := r.acceptance[key]
	if !ok {
		a = &Acceptance{}
		r.acceptance[key] = a
	}
	return a
}

// Histogram returns (creating with dividers if necessary) the histogram
// registered under key.
func (r *Report) Histogram(key string, dividers []float64) *Histogram {
	h, ok := r.histograms[key]
	if !ok {
		h = NewHistogram(key, dividers)
		r.histograms[key] = h
	}
	return h
}

// AddMoveTime accumulates wall-clock time spent inside a move's step,
// mirroring the original engine's per-move relative-time bookkeeping.
func (r *Report) AddMoveTime(key string, d time.Duration) {
	r.relativeMS[key] += d
	r.elapsedTime += d
}

// RelativeTime returns the fraction of total tracked move time spent in
// the move registered under key.
func (r *Report) RelativeTime(key string) float64 {
	if r.elapsedTime == 0 {
		return 0
	}
	return float64(r.relativeMS[key]) / float64(r.elapsedTime)
}

// String renders a human-readable acceptance table, sorted by key for
// deterministic output.
func (r *Report) String() string {
	var b strings.Builder
	keys := make([]string, 0, len(r.acceptance))
	for k := range r.acceptance {
		keys = append(keys, k)
	}
	sortStrings(keys)
	for _, k := range keys {
		a := r.acceptance[k]
		fmt.Fprintf(&b, "%-40s trials=%-8d accepted=%-8d ratio=%.4f relTime=%.4f\n",
			k, a.Trials, a.Accepted, a.Ratio(), r.RelativeTime(k))
	}
	return b.String()
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

type reportJSON struct {
	Acceptance map[string]*Acceptance `json:"acceptance"`
	Histograms map[string]*Histogram  `json:"histograms"`
}

// WriteJSON serializes the report to path. When path ends in ".zst" the
// stream is written through a zstd.Writer; when it ends in ".gz", through
// gzip; otherwise the JSON is written uncompressed. This follows the
// teacher's convention of picking a streaming compressor by output
// extension rather than by an explicit flag.
func (r *Report) WriteJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("stats: creating report file: %w", err)
	}
	defer f.Close()

	doc := reportJSON{Acceptance: r.acceptance, Histograms: r.histograms}

	var w io.Writer = f
	switch {
	case strings.HasSuffix(path, ".zst"):
		zw, err := zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("stats: creating zstd writer: %w", err)
		}
		defer zw.Close()
		w = zw
	case strings.HasSuffix(path, ".gz"):
		gw := gzip.NewWriter(f)
		defer gw.Close()
		w = gw
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("stats: encoding report: %w", err)
	}
	return nil
}
