package woe

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/YuminosukeSato/scorego/pkg/errors"
)

// Interval is one half-open numeric bin (Lo, Hi]: a value v belongs to the
// interval when Lo < v && v <= Hi. Unbounded ends use math.Inf. The same
// membership rule is applied by the binning engine, the lookup transformer,
// and the scorecard scaler, so a value assigned to a bin during analysis is
// guaranteed to find the same bin during transformation.
type Interval struct {
	Lo float64
	Hi float64
}

// Contains reports whether v lies in (Lo, Hi]. NaN is never contained.
func (iv Interval) Contains(v float64) bool {
	return iv.Lo < v && v <= iv.Hi
}

// String renders the interval as a bin label, e.g. "(-inf,30]" or
// "(30,+inf)". A finite upper bound is closed, an infinite one is open.
func (iv Interval) String() string {
	s := "(" + boundString(iv.Lo) + "," + boundString(iv.Hi)
	if math.IsInf(iv.Hi, 1) {
		return s + ")"
	}
	return s + "]"
}

func boundString(v float64) string {
	switch {
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsInf(v, 1):
		return "+inf"
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

// intervalJSON carries the bounds as shortest-round-trip strings so that
// ±Inf and every finite bound survive serialization byte-exactly.
type intervalJSON struct {
	Lo string `json:"lo"`
	Hi string `json:"hi"`
}

// MarshalJSON encodes the bounds as strings ("-Inf", "30", "1e+21", ...).
func (iv Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal(intervalJSON{
		Lo: strconv.FormatFloat(iv.Lo, 'g', -1, 64),
		Hi: strconv.FormatFloat(iv.Hi, 'g', -1, 64),
	})
}

// UnmarshalJSON decodes the string-encoded bounds.
func (iv *Interval) UnmarshalJSON(data []byte) error {
	var enc intervalJSON
	if err := json.Unmarshal(data, &enc); err != nil {
		return err
	}
	lo, err := strconv.ParseFloat(enc.Lo, 64)
	if err != nil {
		return errors.Wrapf(err, "woe: invalid interval lower bound %q", enc.Lo)
	}
	hi, err := strconv.ParseFloat(enc.Hi, 64)
	if err != nil {
		return errors.Wrapf(err, "woe: invalid interval upper bound %q", enc.Hi)
	}
	iv.Lo, iv.Hi = lo, hi
	return nil
}

// Partition builds the conventional exhaustive partition from ascending cut
// points: (-inf,c1], (c1,c2], ..., (ck,+inf). With no cuts it returns the
// single all-covering interval (-inf,+inf).
func Partition(cuts ...float64) []Interval {
	ivs := make([]Interval, 0, len(cuts)+1)
	lo := math.Inf(-1)
	for _, c := range cuts {
		ivs = append(ivs, Interval{Lo: lo, Hi: c})
		lo = c
	}
	return append(ivs, Interval{Lo: lo, Hi: math.Inf(1)})
}

// validatePartition checks the structural invariants of a caller-supplied
// partition: non-empty, every interval non-degenerate, and ordered without
// overlap. Gaps between consecutive intervals are structurally legal; rows
// falling into a gap surface later as a PartitionError.
func validatePartition(op string, partition []Interval) error {
	if len(partition) == 0 {
		return errors.NewValueError(op, "partition has no intervals")
	}
	for i, iv := range partition {
		if math.IsNaN(iv.Lo) || math.IsNaN(iv.Hi) {
			return errors.NewValueError(op, "interval "+iv.String()+" has a NaN bound")
		}
		if iv.Lo >= iv.Hi {
			return errors.NewValueError(op, "interval "+iv.String()+" is degenerate (lo >= hi)")
		}
		if i > 0 && iv.Lo < partition[i-1].Hi {
			return errors.NewValueError(op, "interval "+iv.String()+" overlaps "+partition[i-1].String())
		}
	}
	return nil
}
