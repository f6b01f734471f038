package woe

import (
	"fmt"
	"sort"
	"strings"

	"github.com/YuminosukeSato/scorego/core/model"
	"github.com/YuminosukeSato/scorego/core/parallel"
	"github.com/YuminosukeSato/scorego/frame"
	"github.com/YuminosukeSato/scorego/pkg/errors"
)

// parallelThreshold is the row count above which row-wise work is chunked
// across CPU cores. Output is bit-identical to sequential processing
// because every row is written by exactly one worker.
const parallelThreshold = 1000

// FeatureSpec declares how one feature is to be binned by Encoder.Fit.
type FeatureSpec struct {
	// Name of the dataset column.
	Name string

	// Kind selects discrete (one bin per distinct label) or continuous
	// (caller-supplied interval partition) analysis.
	Kind Kind

	// Partition is the ordered interval partition for a continuous
	// feature. Ignored for discrete features.
	Partition []Interval

	// MaxCategories overrides the discrete cardinality limit;
	// <= 0 selects DefaultMaxCategories. Ignored for continuous features.
	MaxCategories int

	// SkipSafety disables the discrete cardinality guard.
	SkipSafety bool
}

// Result is the output of one Transform call: the WoE-coded dataset plus
// the production-mode drop report.
type Result struct {
	// Frame holds the transformed rows. With Dummy false it contains
	// exactly the dictionary's features, re-coded to their WoE values;
	// with Dummy true each raw feature column is kept and followed by a
	// "<feature>_woe" column.
	Frame *frame.Frame

	// Rows is the number of rows in the input dataset.
	Rows int

	// Dropped is the number of rows removed by the production outlier
	// policy. Always 0 in development mode, which fails instead.
	Dropped int

	// DroppedIndex lists the original row indexes of the removed rows in
	// ascending order.
	DroppedIndex []int
}

// Kept returns the original row indexes retained by the transform, in
// ascending order.
func (r *Result) Kept() []int {
	kept := make([]int, 0, r.Rows-r.Dropped)
	d := 0
	for i := 0; i < r.Rows; i++ {
		if d < len(r.DroppedIndex) && r.DroppedIndex[d] == i {
			d++
			continue
		}
		kept = append(kept, i)
	}
	return kept
}

// Encoder is the WoE lookup transformer. Fit bins each declared feature
// against a binary target and stores the resulting Dict; Transform re-codes
// any dataset by replacing raw values with their bin's WoE value.
//
// Out-of-dictionary values ("outliers") are handled by one of two policies:
// with Production false the transform fails fast with an UnseenValueError
// and returns no partial output; with Production true the offending rows are
// dropped, the drop count is returned in the Result, and an
// OutlierDropWarning is raised through the warning system.
type Encoder struct {
	model.BaseEstimator

	// Production selects the outlier policy: false fails on unseen
	// values, true drops the offending rows and reports the count.
	Production bool

	// Dummy selects the output shape: false replaces the feature columns
	// with their WoE values, true keeps the raw columns and adds parallel
	// "<feature>_woe" columns.
	Dummy bool

	specs []FeatureSpec
	dict  Dict
}

// NewEncoder creates an Encoder that will fit the given feature specs.
// Both policy fields default to false: development-mode fail-fast and
// in-place column replacement.
func NewEncoder(specs ...FeatureSpec) *Encoder {
	return &Encoder{specs: specs}
}

// NewEncoderFromDict wraps an existing dictionary in an immediately fitted
// Encoder. Restricting the dictionary's keys before calling is how a caller
// transforms a subset of features. The Encoder holds the Dict read-only.
func NewEncoderFromDict(dict Dict) *Encoder {
	e := &Encoder{dict: dict}
	e.SetFitted()
	return e
}

// Dict returns the fitted dictionary, or nil before Fit. The returned map
// is the Encoder's working state and must not be mutated.
func (e *Encoder) Dict() Dict {
	return e.dict
}

// Fit bins every declared feature of the dataset against the target column
// and builds the dictionary. Discrete features are grouped by canonical
// label, continuous features require a Float column and a partition on
// their FeatureSpec.
func (e *Encoder) Fit(f *frame.Frame, target []float64) error {
	const op = "Encoder.Fit"
	if f == nil || f.NumRows() == 0 {
		return errors.NewEmptyInputError(op, "dataset")
	}
	if len(e.specs) == 0 {
		return errors.NewEmptyInputError(op, "feature spec list")
	}
	if len(target) != f.NumRows() {
		return errors.NewDimensionError(op, f.NumRows(), len(target), 0)
	}
	seen := make(map[string]struct{}, len(e.specs))
	for _, spec := range e.specs {
		if _, dup := seen[spec.Name]; dup {
			return errors.NewValueError(op, fmt.Sprintf("duplicate feature spec %q", spec.Name))
		}
		seen[spec.Name] = struct{}{}
	}

	dict := make(Dict, len(e.specs))
	for _, spec := range e.specs {
		var (
			table *Table
			err   error
		)
		switch spec.Kind {
		case KindDiscrete:
			var labels []string
			labels, err = f.Labels(spec.Name)
			if err == nil {
				table, err = Discrete(spec.Name, labels, target, !spec.SkipSafety, spec.MaxCategories)
			}
		case KindContinuous:
			var values []float64
			values, err = f.Floats(spec.Name)
			if err == nil {
				table, err = Continuous(spec.Name, values, target, spec.Partition)
			}
		default:
			err = errors.NewValueError(op, fmt.Sprintf("unknown feature kind %d", spec.Kind))
		}
		if err != nil {
			return errors.Wrapf(err, "%s: feature %q", op, spec.Name)
		}
		dict[spec.Name] = table
	}

	e.dict = dict
	e.SetFitted()
	return nil
}

// Transform re-codes the dataset's dictionary features into WoE values.
// The output contains exactly the dictionary's features; see Result for the
// exact shape and the Encoder doc for the outlier policies. Transforming
// the same dataset twice yields bit-identical output.
func (e *Encoder) Transform(f *frame.Frame) (*Result, error) {
	const op = "Encoder.Transform"
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("Encoder", "Transform")
	}
	if f == nil || f.NumRows() == 0 {
		return nil, errors.NewEmptyInputError(op, "dataset")
	}
	if len(e.dict) == 0 {
		return nil, errors.NewEmptyInputError(op, "dictionary")
	}

	// Dictionary features in the dataset's column order; the order fixes
	// which feature an UnseenValueError names first.
	var missing []string
	for _, name := range e.dict.Features() {
		if !f.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewValueError(op,
			fmt.Sprintf("dataset lacks dictionary feature(s) [%s]", strings.Join(missing, ", ")))
	}
	var features []string
	for _, name := range f.Columns() {
		if _, ok := e.dict[name]; ok {
			features = append(features, name)
		}
	}

	rows := f.NumRows()
	cols := make([]*frame.Series, len(features))
	tables := make([]*Table, len(features))
	for j, name := range features {
		c, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		cols[j] = c
		tables[j] = e.dict[name]
	}

	// Row-wise bin lookup. Workers own disjoint row ranges and write
	// disjoint cells, so the result is independent of the worker count.
	woeVals := make([][]float64, len(features))
	miss := make([][]bool, len(features))
	for j := range features {
		woeVals[j] = make([]float64, rows)
		miss[j] = make([]bool, rows)
	}
	parallel.ParallelizeWithThreshold(rows, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := range features {
				idx := tables[j].RowBin(cols[j], i)
				if idx < 0 {
					miss[j][i] = true
				} else {
					woeVals[j][i] = tables[j].Bins[idx].WoE
				}
			}
		}
	})

	var droppedIdx []int
	rowBad := make([]bool, rows)
	anyMiss := false
	for j := range features {
		for i := 0; i < rows; i++ {
			if miss[j][i] {
				rowBad[i] = true
				anyMiss = true
			}
		}
	}

	if anyMiss && !e.Production {
		// Development mode: report the first offending feature with its
		// distinct unseen values, return no partial output.
		for j := range features {
			badRows := 0
			labels := make(map[string]struct{})
			for i := 0; i < rows; i++ {
				if miss[j][i] {
					badRows++
					labels[cols[j].Label(i)] = struct{}{}
				}
			}
			if badRows == 0 {
				continue
			}
			sample := make([]string, 0, len(labels))
			for l := range labels {
				sample = append(sample, l)
			}
			sort.Strings(sample)
			if len(sample) > maxSampleValues {
				sample = sample[:maxSampleValues]
			}
			return nil, errors.NewUnseenValueError(features[j], sample, badRows)
		}
	}

	kept := make([]int, 0, rows)
	for i := 0; i < rows; i++ {
		if rowBad[i] {
			droppedIdx = append(droppedIdx, i)
		} else {
			kept = append(kept, i)
		}
	}
	if len(droppedIdx) > 0 {
		var affected []string
		for j, name := range features {
			for i := 0; i < rows; i++ {
				if miss[j][i] {
					affected = append(affected, name)
					break
				}
			}
		}
		errors.Warn(errors.NewOutlierDropWarning(op, len(droppedIdx), rows, affected))
	}

	out, err := e.assemble(f, features, woeVals, kept, len(droppedIdx) == 0)
	if err != nil {
		return nil, err
	}
	return &Result{
		Frame:        out,
		Rows:         rows,
		Dropped:      len(droppedIdx),
		DroppedIndex: droppedIdx,
	}, nil
}

// assemble builds the output frame from the per-feature WoE values and the
// retained row indexes.
func (e *Encoder) assemble(f *frame.Frame, features []string, woeVals [][]float64, kept []int, full bool) (*frame.Frame, error) {
	woeCols := make([]*frame.Series, len(features))
	for j, name := range features {
		vals := woeVals[j]
		if !full {
			sub := make([]float64, len(kept))
			for i, r := range kept {
				sub[i] = vals[r]
			}
			vals = sub
		}
		colName := name
		if e.Dummy {
			colName = name + "_woe"
		}
		woeCols[j] = frame.NewFloatSeries(colName, vals)
	}
	if !e.Dummy {
		return frame.New(woeCols...)
	}

	raw, err := f.Select(features...)
	if err != nil {
		return nil, err
	}
	if !full {
		raw, err = raw.Filter(kept)
		if err != nil {
			return nil, err
		}
	}
	// Each raw column is immediately followed by its WoE column.
	pairs := make([]*frame.Series, 0, 2*len(features))
	for j, name := range features {
		c, err := raw.Column(name)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, c, woeCols[j])
	}
	return frame.New(pairs...)
}

// FitTransform fits the encoder on the dataset and immediately transforms
// it.
func (e *Encoder) FitTransform(f *frame.Frame, target []float64) (*Result, error) {
	if err := e.Fit(f, target); err != nil {
		return nil, err
	}
	return e.Transform(f)
}

// GetParams returns the encoder's policy parameters.
func (e *Encoder) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"production": e.Production,
		"dummy":      e.Dummy,
	}
}

// String returns a short description of the encoder.
func (e *Encoder) String() string {
	if !e.IsFitted() {
		return fmt.Sprintf("Encoder(features=%d, production=%t, dummy=%t)",
			len(e.specs), e.Production, e.Dummy)
	}
	return fmt.Sprintf("Encoder(features=%d, production=%t, dummy=%t, fitted=true)",
		len(e.dict), e.Production, e.Dummy)
}

// RowBin returns the index of the bin holding row i of the column, or -1
// when the raw value lies outside every fitted bin. Discrete tables match on
// the canonical label, continuous tables on interval membership; NaN values
// and unseen labels match nothing. This is the single membership rule shared
// by the lookup transformer and the scorecard scaler.
func (t *Table) RowBin(col *frame.Series, i int) int {
	if t.Kind == KindContinuous {
		return t.FindValue(col.Float(i))
	}
	return t.FindLabel(col.Label(i))
}
