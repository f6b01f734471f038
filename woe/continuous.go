package woe

import (
	"github.com/YuminosukeSato/scorego/pkg/errors"
)

// maxSampleValues bounds the number of offending values carried by
// diagnostic errors (PartitionError, UnseenValueError).
const maxSampleValues = 10

// Continuous bins a numeric feature against a binary target using a
// caller-supplied ordered partition and returns the fitted Table.
//
// Every observation must fall into exactly one interval under the (lo, hi]
// membership rule; rows outside every interval (including NaN) raise a
// PartitionError carrying the outside count and a bounded sample of
// offending values. Intervals that captured no observations still appear in
// the Table with their WoE defined via the zero-count guard, so the lookup
// transformer can later cover the full declared domain. Bins keep the
// partition order.
func Continuous(feature string, values, target []float64, partition []Interval) (*Table, error) {
	const op = "Continuous"
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
	if err := validatePartition(op, partition); err != nil {
		return nil, err
	}

	bins := make([]Bin, len(partition))
	for i := range partition {
		iv := partition[i]
		bins[i] = Bin{Label: iv.String(), Interval: &iv}
	}

	outside := 0
	var sample []float64
	for i, v := range values {
		idx := findInterval(partition, v)
		if idx < 0 {
			outside++
			if len(sample) < maxSampleValues {
				sample = append(sample, v)
			}
			continue
		}
		bins[idx].Count++
		if target[i] == 1 {
			bins[idx].Events++
		}
	}
	if outside > 0 {
		return nil, errors.NewPartitionError(feature, outside, sample)
	}
	for i := range bins {
		bins[i].NonEvents = bins[i].Count - bins[i].Events
	}

	return finalize(feature, KindContinuous, bins, totalEvents, totalNonEvents), nil
}

// Coverage reports how many of the given values fall outside every interval
// of the partition, together with a bounded sample of the offending values.
// It is the standalone form of the exhaustiveness check Continuous performs,
// for callers that want to vet a partition before analysis. The partition is
// taken as given; see Continuous for structural validation.
func Coverage(values []float64, partition []Interval) (outside int, sample []float64) {
	for _, v := range values {
		if findInterval(partition, v) < 0 {
			outside++
			if len(sample) < maxSampleValues {
				sample = append(sample, v)
			}
		}
	}
	return outside, sample
}

// findInterval returns the index of the interval containing v, or -1. The
// partition is ordered, but bins are few in practice, so a linear scan keeps
// the membership rule in one obvious place.
func findInterval(partition []Interval, v float64) int {
	for i := range partition {
		if partition[i].Contains(v) {
			return i
		}
	}
	return -1
}
