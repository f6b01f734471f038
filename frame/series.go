// Package frame provides the in-memory tabular data model shared by the
// binning, transformation, and scoring engines.
//
// A Frame is an ordered collection of equal-length named columns (Series).
// Rows are observations; a binary target column is a Float series containing
// only the values 0 and 1. Frames and Series are immutable after
// construction: every operation returns a new value, so the engines stay
// side-effect-free on their inputs.
package frame

import (
	"math"
	"strconv"
)

// Kind identifies the scalar type a Series holds.
type Kind int

const (
	// String marks a column of categorical labels.
	String Kind = iota
	// Float marks a column of float64 values.
	Float
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Float:
		return "float"
	default:
		return "unknown"
	}
}

// Series is one named column of a Frame. The backing data is copied at
// construction and never mutated afterwards.
type Series struct {
	name   string
	kind   Kind
	strs   []string
	floats []float64
}

// NewStringSeries builds a categorical column. The input slice is copied.
func NewStringSeries(name string, values []string) *Series {
	s := &Series{name: name, kind: String, strs: make([]string, len(values))}
	copy(s.strs, values)
	return s
}

// NewFloatSeries builds a numeric column. The input slice is copied.
func NewFloatSeries(name string, values []float64) *Series {
	s := &Series{name: name, kind: Float, floats: make([]float64, len(values))}
	copy(s.floats, values)
	return s
}

// Name returns the column name.
func (s *Series) Name() string { return s.name }

// Kind returns the column kind.
func (s *Series) Kind() Kind { return s.kind }

// Len returns the number of rows.
func (s *Series) Len() int {
	if s.kind == String {
		return len(s.strs)
	}
	return len(s.floats)
}

// Str returns the value at row i of a String column.
// For a Float column it returns the canonical label instead.
func (s *Series) Str(i int) string {
	if s.kind == String {
		return s.strs[i]
	}
	return formatFloat(s.floats[i])
}

// Float returns the value at row i of a Float column.
// For a String column it returns NaN.
func (s *Series) Float(i int) float64 {
	if s.kind == Float {
		return s.floats[i]
	}
	return math.NaN()
}

// Label returns the canonical string form of the cell at row i: the raw
// string for a String column, or the shortest round-trip decimal form for a
// Float column. This is the single canonicalization used by both the
// binning engine and the lookup transformer, so a value binned during Fit
// is guaranteed to produce the same label during Transform.
func (s *Series) Label(i int) string {
	return s.Str(i)
}

// Labels returns the canonical labels of all rows as a fresh slice.
func (s *Series) Labels() []string {
	out := make([]string, s.Len())
	for i := range out {
		out[i] = s.Label(i)
	}
	return out
}

// Floats returns a copy of a Float column's values. For a String column it
// returns nil.
func (s *Series) Floats() []float64 {
	if s.kind != Float {
		return nil
	}
	out := make([]float64, len(s.floats))
	copy(out, s.floats)
	return out
}

// take returns a new Series holding the rows named by keep, in order.
// Index validation is the caller's responsibility.
func (s *Series) take(keep []int) *Series {
	if s.kind == String {
		vals := make([]string, len(keep))
		for i, r := range keep {
			vals[i] = s.strs[r]
		}
		return &Series{name: s.name, kind: String, strs: vals}
	}
	vals := make([]float64, len(keep))
	for i, r := range keep {
		vals[i] = s.floats[r]
	}
	return &Series{name: s.name, kind: Float, floats: vals}
}

// formatFloat is the canonical float-to-label encoding: shortest decimal
// string that round-trips to the same float64.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
