/*
 * plot.go, part of goChem.
 *
 * Copyright 2015 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * Gochem is developed at the laboratory for instruction in Swedish, Department of Chemistry,
 * University of Helsinki, Finland.
 *
 */

package stats

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotAcceptance renders the acceptance ratio of each tracked move as a
// bar-like series over its own index, saved at path in the image format
// its extension names (e.g. .png). It exists as
// a debugging aid analogous to the teacher's Ramachandran plots: a quick
// visual sanity check rather than a load-bearing analysis tool.
func PlotAcceptance(r *Report, title, path string) error {
	keys := make([]string, 0, len(r.acceptance))
	for k := range r.acceptance {
		keys = append(keys, k)
	}
	sortStrings(keys)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "move"
	p.Y.Label.Text = "acceptance ratio"
	p.Y.Min = 0
	p.Y.Max = 1

	pts := make(plotter.XYs, len(keys))
	for i, k := range keys {
		pts[i].X = float64(i)
		pts[i].Y = r.acceptance[k].Ratio()
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("stats: building acceptance line: %w", err)
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("stats: building acceptance scatter: %w", err)
	}
	p.Add(line, scatter)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("stats: saving acceptance plot: %w", err)
	}
	return nil
}

// PlotHistogram renders a single displacement/rotation histogram as a bar
// chart saved at path in the image format its extension names.
func PlotHistogram(h *Histogram, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = h.label
	p.Y.Label.Text = "count"

	bars, err := plotter.NewBarChart(plotter.Values(h.counts), vg.Points(20))
	if err != nil {
		return fmt.Errorf("stats: building histogram bars: %w", err)
	}
	p.Add(bars)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("stats: saving histogram plot: %w", err)
	}
	return nil
}
