package report

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/scorego/pkg/errors"
	"github.com/YuminosukeSato/scorego/woe"
)

// DefaultHistogramBins is the bin count ScoreHistogram uses when the caller
// passes bins <= 0.
const DefaultHistogramBins = 10

// WoEBarChart renders one feature's per-bin WoE values as a bar chart with
// the bin labels on the X axis. Bin order follows the table.
func WoEBarChart(t *woe.Table) (*plot.Plot, error) {
	const op = "WoEBarChart"
	if t == nil || len(t.Bins) == 0 {
		return nil, errors.NewEmptyInputError(op, "bin table")
	}

	values := make(plotter.Values, len(t.Bins))
	labels := make([]string, len(t.Bins))
	for i := range t.Bins {
		values[i] = t.Bins[i].WoE
		labels[i] = t.Bins[i].Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(25))
	if err != nil {
		return nil, errors.Wrap(err, "report: failed to build bar chart")
	}

	p := plot.New()
	p.Title.Text = "WoE by bin: " + t.Feature
	p.Y.Label.Text = "WoE"
	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}

// ScoreHistogram renders the distribution of applied scores. Non-finite
// scores are rejected before plotting.
func ScoreHistogram(scores []float64, bins int) (*plot.Plot, error) {
	const op = "ScoreHistogram"
	if len(scores) == 0 {
		return nil, errors.NewEmptyInputError(op, "scores")
	}
	for i, s := range scores {
		if err := errors.CheckScalar(op, s, i); err != nil {
			return nil, err
		}
	}
	if bins <= 0 {
		bins = DefaultHistogramBins
	}

	h, err := plotter.NewHist(plotter.Values(scores), bins)
	if err != nil {
		return nil, errors.Wrap(err, "report: failed to build histogram")
	}

	p := plot.New()
	p.Title.Text = "Score distribution"
	p.X.Label.Text = "Score"
	p.Y.Label.Text = "Count"
	p.Add(h)
	return p, nil
}

// SavePNG persists a plot as a PNG image of the given size. The path must
// carry a .png extension; plot.Plot.Save derives the image format from it.
func SavePNG(p *plot.Plot, width, height vg.Length, path string) error {
	const op = "SavePNG"
	if p == nil {
		return errors.NewValueError(op, "nil plot")
	}
	if filepath.Ext(path) != ".png" {
		return errors.NewValueError(op, fmt.Sprintf("path %q must have a .png extension", path))
	}
	if err := p.Save(width, height, path); err != nil {
		return errors.Wrap(err, "report: failed to save plot")
	}
	return nil
}
