package stats

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Histogram accumulates a single scalar quantity (a displacement, an
// angle, an energy change) into fixed bins. It is the unit stats.Report
// uses to describe how a move's step size behaves over a run.
type Histogram struct {
	label      string
	normalized bool
	total      int
	dividers   []float64
	counts     []float64
}

// NewHistogram returns an empty histogram with the given bin edges and
// label. dividers must be strictly increasing and have at least 2 entries.
func NewHistogram(label string, dividers []float64) *Histogram {
	if len(dividers) < 2 {
		panic("stats: NewHistogram needs at least 2 dividers")
	}
	d := make([]float64, len(dividers))
	copy(d, dividers)
	return &Histogram{
		label:    label,
		dividers: d,
		counts:   make([]float64, len(dividers)-1),
	}
}

// Label returns the histogram's descriptive name, e.g. "translation-displacement".
func (h *Histogram) Label() string { return h.label }

// Add bins one or more data points. Values outside the divider range are
// silently dropped, matching the teacher's histogram behaviour.
func (h *Histogram) Add(points ...float64) {
	wasNormalized := h.normalized
	if wasNormalized {
		h.unnormalize()
	}
	for _, v := range points {
		for j := 0; j < len(h.dividers)-1; j++ {
			if h.dividers[j] <= v && v < h.dividers[j+1] {
				h.counts[j]++
				h.total++
				break
			}
		}
	}
	if wasNormalized {
		h.Normalize()
	}
}

// Normalize scales the bin counts so they sum to 1.
func (h *Histogram) Normalize() {
	if h.total <= 0 || h.normalized {
		return
	}
	floats.Scale(1/float64(h.total), h.counts)
	h.normalized = true
}

func (h *Histogram) unnormalize() {
	if !h.normalized {
		return
	}
	floats.Scale(float64(h.total), h.counts)
	h.normalized = false
}

// Sum returns the sum of the (possibly normalized) bin counts.
func (h *Histogram) Sum() float64 { return floats.Sum(h.counts) }

// Counts returns the bin counts. The returned slice is a copy.
func (h *Histogram) Counts() []float64 {
	out := make([]float64, len(h.counts))
	copy(out, h.counts)
	return out
}

// Dividers returns the bin edges. The returned slice is a copy.
func (h *Histogram) Dividers() []float64 {
	out := make([]float64, len(h.dividers))
	copy(out, h.dividers)
	return out
}

// Rebin recomputes the histogram from scratch given raw sample data, using
// gonum's stat.Histogram, which panics on out-of-range values, so samples
// beyond the divider range are trimmed first.
func (h *Histogram) Rebin(rawdata []float64) {
	data := make([]float64, len(rawdata))
	copy(data, rawdata)
	sort.Float64s(data)
	lo := sort.SearchFloat64s(data, h.dividers[0])
	hi := sort.SearchFloat64s(data, h.dividers[len(h.dividers)-1])
	if hi < len(data) {
		data = data[:hi]
	}
	if lo > 0 && lo <= len(data) {
		data = data[lo:]
	}
	h.total = len(data)
	h.normalized = false
	h.counts = stat.Histogram(nil, h.dividers, data, nil)
}

// String renders a compact two-line text summary: bin ranges over counts.
func (h *Histogram) String() string {
	header := fmt.Sprintf("%s (n=%d, normalized=%v)", h.label, h.total, h.normalized)
	ranges := make([]string, len(h.counts))
	values := make([]string, len(h.counts))
	for i := range h.counts {
		ranges[i] = fmt.Sprintf("%6.2f-%6.2f", h.dividers[i], h.dividers[i+1])
		values[i] = fmt.Sprintf("%9.4f", h.counts[i])
	}
	return header + "\n" + strings.Join(ranges, " ") + "\n" + strings.Join(values, " ")
}

type histogramJSON struct {
	Label      string    `json:"label"`
	Normalized bool      `json:"normalized"`
	Total      int       `json:"total"`
	Dividers   []float64 `json:"dividers"`
	Counts     []float64 `json:"counts"`
}

// MarshalJSON implements json.Marshaler.
func (h *Histogram) MarshalJSON() ([]byte, error) {
	return json.Marshal(histogramJSON{
		Label:      h.label,
		Normalized: h.normalized,
		Total:      h.total,
		Dividers:   h.dividers,
		Counts:     h.counts,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *Histogram) UnmarshalJSON(b []byte) error {
	var a histogramJSON
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	h.label = a.Label
	h.normalized = a.Normalized
	h.total = a.Total
	h.dividers = a.Dividers
	h.counts = a.Counts
	return nil
}
