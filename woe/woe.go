// Package woe implements the Weight-of-Evidence analytical core: per-bin
// WoE/IV statistics for discrete and continuous features, the bin-table
// data model handed between engines, and the deterministic lookup
// transformer that re-codes raw datasets into WoE values.
//
// The hand-off artifact is the Dict: a mapping from feature name to an
// immutable Table of bins. A Dict is produced once, by Discrete and
// Continuous (or by Encoder.Fit), and consumed read-only by the Encoder
// and the scorecard package; no consumer ever mutates it, so concurrent
// read-only use is safe.
package woe

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/YuminosukeSato/scorego/pkg/errors"
)

// ZeroCountSubstitute is the published zero-count guard. When a bin holds
// zero events or zero non-events, the zero side enters the distribution
// numerator as this fraction of one observation; totals stay unchanged.
// This keeps every WoE finite and every IV component non-negative. An
// empty bin has both sides substituted.
const ZeroCountSubstitute = 0.5

// DefaultMaxCategories is the discrete cardinality safety limit applied
// when the caller passes maxCategories <= 0.
const DefaultMaxCategories = 300

// Kind tags a Table as discrete or continuous. The lookup transformer and
// the scorecard scaler dispatch on the tag; there is no type hierarchy.
type Kind int

const (
	// KindDiscrete marks one bin per distinct raw value.
	KindDiscrete Kind = iota
	// KindContinuous marks interval bins over a numeric domain.
	KindContinuous
)

// String returns "discrete" or "continuous".
func (k Kind) String() string {
	switch k {
	case KindDiscrete:
		return "discrete"
	case KindContinuous:
		return "continuous"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the kind as "discrete" or "continuous".
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes "discrete" or "continuous".
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "discrete":
		*k = KindDiscrete
	case "continuous":
		*k = KindContinuous
	default:
		return errors.Newf("woe: unknown kind %q", s)
	}
	return nil
}

// Strength is the qualitative Information-Value tier of a feature.
type Strength string

// Fixed published IV tiers. The thresholds are the conventional scorecard
// cutoffs; "suspicious" flags separation strong enough to suggest leakage.
const (
	Unpredictive Strength = "unpredictive" // IV < 0.02
	Weak         Strength = "weak"         // 0.02 <= IV < 0.1
	Medium       Strength = "medium"       // 0.1 <= IV < 0.3
	Strong       Strength = "strong"       // 0.3 <= IV < 0.5
	Suspicious   Strength = "suspicious"   // IV >= 0.5
)

// StrengthOf maps an IV magnitude to its qualitative tier.
func StrengthOf(iv float64) Strength {
	switch {
	case iv < 0.02:
		return Unpredictive
	case iv < 0.1:
		return Weak
	case iv < 0.3:
		return Medium
	case iv < 0.5:
		return Strong
	default:
		return Suspicious
	}
}

// Bin is an atomic partition unit of one feature's domain together with
// its observed statistics.
type Bin struct {
	// Label is the raw categorical value for discrete bins, or the
	// rendered interval (e.g. "(-inf,30]") for continuous bins.
	Label string `json:"label"`

	// Interval is set for continuous bins only.
	Interval *Interval `json:"interval,omitempty"`

	// Observed totals within the bin.
	Count     int `json:"count"`
	Events    int `json:"events"`
	NonEvents int `json:"non_events"`

	// EventRate is Events/Count, 0 for an empty bin.
	EventRate float64 `json:"event_rate"`

	// WoE is ln((Events/TotalEvents)/(NonEvents/TotalNonEvents)) with the
	// ZeroCountSubstitute guard applied to zero sides.
	WoE float64 `json:"woe"`

	// IV is the bin's Information-Value component,
	// (eventDist - nonEventDist) * WoE, always >= 0.
	IV float64 `json:"iv"`
}

// Table is the ordered bin sequence of one feature. It is immutable after
// creation: the bins of a discrete table partition the observed labels,
// the bins of a continuous table are the caller-supplied intervals in
// partition order, including intervals that captured no observations.
type Table struct {
	Feature        string   `json:"feature"`
	Kind           Kind     `json:"kind"`
	Bins           []Bin    `json:"bins"`
	TotalEvents    int      `json:"total_events"`
	TotalNonEvents int      `json:"total_non_events"`
	IV             float64  `json:"iv"`
	Strength       Strength `json:"strength"`
}

// TotalCount returns the number of observations the table was fitted on.
func (t *Table) TotalCount() int {
	return t.TotalEvents + t.TotalNonEvents
}

// OverallEventRate returns the event rate of the full fitting sample.
func (t *Table) OverallEventRate() float64 {
	n := t.TotalCount()
	if n == 0 {
		return 0
	}
	return float64(t.TotalEvents) / float64(n)
}

// FindLabel returns the index of the bin whose label equals the given
// canonical label, or -1 when no bin matches. Used for discrete lookup.
func (t *Table) FindLabel(label string) int {
	for i := range t.Bins {
		if t.Bins[i].Label == label {
			return i
		}
	}
	return -1
}

// FindValue returns the index of the interval bin containing v, or -1
// when no interval contains it (NaN never matches). Used for continuous
// lookup.
func (t *Table) FindValue(v float64) int {
	for i := range t.Bins {
		if t.Bins[i].Interval != nil && t.Bins[i].Interval.Contains(v) {
			return i
		}
	}
	return -1
}

// String returns a short diagnostic description of the table.
func (t *Table) String() string {
	return fmt.Sprintf("Table(feature=%s, kind=%s, bins=%d, iv=%.4f, strength=%s)",
		t.Feature, t.Kind, len(t.Bins), t.IV, t.Strength)
}

// Dict maps feature names to their fitted Tables. It is the sole hand-off
// artifact between the binning engine, the lookup transformer, and the
// scorecard scaler. Restricting its keys before a transform restricts the
// transform to those features.
type Dict map[string]*Table

// Features returns the feature names in sorted order.
func (d Dict) Features() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToJSON serializes the dictionary. Interval bounds are encoded as
// shortest-round-trip strings and map keys are sorted, so decoding and
// re-encoding reproduces the bytes exactly. For binary persistence use the
// gob helpers in core/model.
func (d Dict) ToJSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// DictFromJSON reconstructs a dictionary serialized by ToJSON.
func DictFromJSON(data []byte) (Dict, error) {
	var d Dict
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(err, "woe: failed to decode dictionary")
	}
	return d, nil
}

// woeIV computes the zero-guarded WoE and IV component for one bin.
func woeIV(events, nonEvents, totalEvents, totalNonEvents int) (woe, iv float64) {
	ev := float64(events)
	ne := float64(nonEvents)
	if events == 0 {
		ev = ZeroCountSubstitute
	}
	if nonEvents == 0 {
		ne = ZeroCountSubstitute
	}
	eventDist := ev / float64(totalEvents)
	nonEventDist := ne / float64(totalNonEvents)
	woe = math.Log(eventDist / nonEventDist)
	iv = (eventDist - nonEventDist) * woe
	return woe, iv
}

// finalize fills the derived statistics of every bin and assembles the
// Table. The bins arrive with Count/Events/NonEvents set and in their
// final order.
func finalize(feature string, kind Kind, bins []Bin, totalEvents, totalNonEvents int) *Table {
	var iv float64
	for i := range bins {
		b := &bins[i]
		if b.Count > 0 {
			b.EventRate = float64(b.Events) / float64(b.Count)
		}
		b.WoE, b.IV = woeIV(b.Events, b.NonEvents, totalEvents, totalNonEvents)
		iv += b.IV
	}
	return &Table{
		Feature:        feature,
		Kind:           kind,
		Bins:           bins,
		TotalEvents:    totalEvents,
		TotalNonEvents: totalNonEvents,
		IV:             iv,
		Strength:       StrengthOf(iv),
	}
}

// validateTarget checks that the target column is binary with both classes
// present and returns the class totals.
func validateTarget(op string, target []float64) (events, nonEvents int, err error) {
	for i, v := range target {
		switch v {
		case 0:
			nonEvents++
		case 1:
			events++
		default:
			return 0, 0, errors.NewInvalidTargetError(op, v, i)
		}
	}
	if events == 0 {
		return 0, 0, errors.NewSingleClassTargetError(op, 0)
	}
	if nonEvents == 0 {
		return 0, 0, errors.NewSingleClassTargetError(op, 1)
	}
	return events, nonEvents, nil
}
