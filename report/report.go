// Package report renders fitted binning and scoring artifacts for human
// review: per-feature bin tables, the Information-Value summary, and the
// scorecard points table as text tables, plus WoE bar charts and score
// histograms as plots.
//
// The writers never mutate their inputs. Text output goes to any io.Writer;
// plots are returned as *plot.Plot so callers can adjust styling before
// saving.
package report

import (
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/YuminosukeSato/scorego/pkg/errors"
	"github.com/YuminosukeSato/scorego/scorecard"
	"github.com/YuminosukeSato/scorego/woe"
)

// IVEntry is one row of the Information-Value summary.
type IVEntry struct {
	Feature  string       `json:"feature"`
	Bins     int          `json:"bins"`
	IV       float64      `json:"iv"`
	Strength woe.Strength `json:"strength"`
}

// IVSummary returns one entry per dictionary feature, sorted by IV
// descending with ties broken by feature name. It is the programmatic form
// of WriteIVSummary.
func IVSummary(dict woe.Dict) []IVEntry {
	entries := make([]IVEntry, 0, len(dict))
	for _, name := range dict.Features() {
		t := dict[name]
		entries = append(entries, IVEntry{
			Feature:  name,
			Bins:     len(t.Bins),
			IV:       t.IV,
			Strength: t.Strength,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IV != entries[j].IV {
			return entries[i].IV > entries[j].IV
		}
		return entries[i].Feature < entries[j].Feature
	})
	return entries
}

// WriteBinTable renders one feature's bins with their counts, event rates,
// WoE values, and IV components. The footer row carries the feature totals
// and the IV strength tier.
func WriteBinTable(w io.Writer, t *woe.Table) error {
	const op = "WriteBinTable"
	if t == nil || len(t.Bins) == 0 {
		return errors.NewEmptyInputError(op, "bin table")
	}

	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetHeader([]string{"Bin", "Count", "Events", "Non-Events", "Event Rate", "WoE", "IV"})
	for i := range t.Bins {
		b := &t.Bins[i]
		tw.Append([]string{
			b.Label,
			strconv.Itoa(b.Count),
			strconv.Itoa(b.Events),
			strconv.Itoa(b.NonEvents),
			strconv.FormatFloat(b.EventRate, 'f', 4, 64),
			strconv.FormatFloat(b.WoE, 'f', 4, 64),
			strconv.FormatFloat(b.IV, 'f', 4, 64),
		})
	}
	tw.SetFooter([]string{
		t.Feature,
		strconv.Itoa(t.TotalCount()),
		strconv.Itoa(t.TotalEvents),
		strconv.Itoa(t.TotalNonEvents),
		strconv.FormatFloat(t.OverallEventRate(), 'f', 4, 64),
		string(t.Strength),
		strconv.FormatFloat(t.IV, 'f', 4, 64),
	})
	tw.Render()
	return nil
}

// WriteIVSummary renders the dictionary's features sorted by IV descending.
func WriteIVSummary(w io.Writer, dict woe.Dict) error {
	const op = "WriteIVSummary"
	if len(dict) == 0 {
		return errors.NewEmptyInputError(op, "dictionary")
	}

	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetHeader([]string{"Feature", "Bins", "IV", "Strength"})
	for _, e := range IVSummary(dict) {
		tw.Append([]string{
			e.Feature,
			strconv.Itoa(e.Bins),
			strconv.FormatFloat(e.IV, 'f', 4, 64),
			string(e.Strength),
		})
	}
	tw.Render()
	return nil
}

// WriteScorecard renders the fitted points table: one row per feature/bin
// pair with its WoE value and assigned points.
func WriteScorecard(w io.Writer, sc *scorecard.Scorecard) error {
	const op = "WriteScorecard"
	if sc == nil || !sc.IsFitted() {
		return errors.NewNotFittedError("Scorecard", op)
	}

	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetHeader([]string{"Feature", "Bin", "WoE", "Points"})
	for _, e := range sc.Entries {
		tw.Append([]string{
			e.Feature,
			e.Label,
			strconv.FormatFloat(e.WoE, 'f', 4, 64),
			strconv.FormatFloat(e.Points, 'f', 2, 64),
		})
	}
	tw.SetFooter([]string{
		"",
		"",
		"factor / offset",
		strconv.FormatFloat(sc.Factor, 'f', 4, 64) + " / " + strconv.FormatFloat(sc.Offset, 'f', 4, 64),
	})
	tw.Render()
	return nil
}
