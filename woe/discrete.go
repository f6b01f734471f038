package woe

import (
	"sort"

	"github.com/YuminosukeSato/scorego/pkg/errors"
)

// Discrete bins a categorical feature against a binary target, one bin per
// distinct raw value, and returns the fitted Table.
//
// values carries the canonical labels of the feature column (see
// frame.Series.Labels) and target the aligned {0,1} outcomes. When safety is
// true the number of distinct values is checked against maxCategories before
// any bin statistics are computed; maxCategories <= 0 selects
// DefaultMaxCategories. Bins are ordered by ascending event rate, ties by
// label, which keeps reports deterministic and easy to scan.
func Discrete(feature string, values []string, target []float64, safety bool, maxCategories int) (*Table, error) {
	const op = "Discrete"
	if len(values) == 0 {
		return nil, errors.NewEmptyInputError(op, "feature column")
	}
	if len(target) == 0 {
		return nil, errors.NewEmptyInputError(op, "target column")
	}
	if len(values) != len(target) {
		return nil, errors.NewDimensionError(op, len(values), len(target), 0)
	}
	totalEvents, totalNonEvents, err := validateTarget(op, target)
	if err != nil {
		return nil, err
	}

	limit := maxCategories
	if limit <= 0 {
		limit = DefaultMaxCategories
	}
	if safety {
		distinct := make(map[string]struct{}, limit+1)
		for _, v := range values {
			distinct[v] = struct{}{}
		}
		if len(distinct) > limit {
			return nil, errors.NewCardinalityError(feature, len(distinct), limit)
		}
	}

	type group struct {
		count  int
		events int
	}
	groups := make(map[string]*group)
	for i, v := range values {
		g := groups[v]
		if g == nil {
			g = &group{}
			groups[v] = g
		}
		g.count++
		if target[i] == 1 {
			g.events++
		}
	}

	bins := make([]Bin, 0, len(groups))
	for label, g := range groups {
		bins = append(bins, Bin{
			Label:     label,
			Count:     g.count,
			Events:    g.events,
			NonEvents: g.count - g.events,
		})
	}
	sort.Slice(bins, func(i, j int) bool {
		ri := float64(bins[i].Events) / float64(bins[i].Count)
		rj := float64(bins[j].Events) / float64(bins[j].Count)
		if ri != rj {
			return ri < rj
		}
		return bins[i].Label < bins[j].Label
	})

	return finalize(feature, KindDiscrete, bins, totalEvents, totalNonEvents), nil
}
