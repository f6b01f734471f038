package woe

import (
	"math"
	"testing"

	scoregoErrors "github.com/YuminosukeSato/scorego/pkg/errors"
)

func TestContinuousBinning(t *testing.T) {
	// 年齢を (-inf,30], (30,60], (60,+inf) に分割する
	values := []float64{25, 30, 31, 45, 60, 61, 75, 28, 50, 90}
	target := []float64{1, 1, 0, 0, 1, 0, 0, 1, 0, 0}

	table, err := Continuous("age", values, target, Partition(30, 60))
	if err != nil {
		t.Fatalf("Continuous() error = %v", err)
	}

	if table.Kind != KindContinuous {
		t.Fatalf("Kind = %v, want continuous", table.Kind)
	}
	if len(table.Bins) != 3 {
		t.Fatalf("bins = %d, want 3", len(table.Bins))
	}

	// 境界値は下のビンに落ちる: 30 -> (-inf,30], 60 -> (30,60]
	wantCounts := []struct {
		label  string
		count  int
		events int
	}{
		{"(-inf,30]", 3, 3}, // 25, 30, 28
		{"(30,60]", 4, 1},   // 31, 45, 60, 50
		{"(60,+inf)", 3, 0}, // 61, 75, 90
	}
	for i, w := range wantCounts {
		bin := table.Bins[i]
		if bin.Label != w.label {
			t.Errorf("bin %d label = %s, want %s", i, bin.Label, w.label)
		}
		if bin.Count != w.count || bin.Events != w.events {
			t.Errorf("bin %s = %d rows / %d events, want %d/%d", bin.Label, bin.Count, bin.Events, w.count, w.events)
		}
		if bin.Interval == nil {
			t.Fatalf("bin %s has no interval", bin.Label)
		}
	}
}

func TestContinuousKeepsPartitionOrder(t *testing.T) {
	// イベント率が単調でなくてもビンは分割順のまま
	values := []float64{10, 10, 40, 40, 70, 70}
	target := []float64{0, 1, 0, 0, 1, 1}

	table, err := Continuous("f", values, target, Partition(30, 60))
	if err != nil {
		t.Fatalf("Continuous() error = %v", err)
	}
	want := []string{"(-inf,30]", "(30,60]", "(60,+inf)"}
	for i, w := range want {
		if table.Bins[i].Label != w {
			t.Errorf("bin %d = %s, want %s", i, table.Bins[i].Label, w)
		}
	}
	if !(table.Bins[2].EventRate > table.Bins[0].EventRate) {
		t.Fatal("test data should have non-monotonic rates across partition order")
	}
}

func TestContinuousZeroCountBinKept(t *testing.T) {
	// (30,60] に観測なし: ビンは残り、WoEはガード経由で有限
	values := []float64{10, 20, 70, 80}
	target := []float64{1, 0, 0, 1}

	table, err := Continuous("f", values, target, Partition(30, 60))
	if err != nil {
		t.Fatalf("Continuous() error = %v", err)
	}

	empty := table.Bins[1]
	if empty.Label != "(30,60]" || empty.Count != 0 {
		t.Fatalf("bin 1 = %s with %d rows, want empty (30,60]", empty.Label, empty.Count)
	}
	if math.IsInf(empty.WoE, 0) || math.IsNaN(empty.WoE) {
		t.Errorf("empty bin WoE = %g, want finite", empty.WoE)
	}
	if empty.EventRate != 0 {
		t.Errorf("empty bin EventRate = %g, want 0", empty.EventRate)
	}
	if empty.IV < 0 {
		t.Errorf("empty bin IV = %g, want >= 0", empty.IV)
	}
}

func TestContinuousNonExhaustivePartition(t *testing.T) {
	partition := []Interval{{0, 10}, {10, 20}}

	t.Run("value below all intervals", func(t *testing.T) {
		_, err := Continuous("f", []float64{-5, 5, 15}, []float64{1, 0, 1}, partition)
		var partErr *scoregoErrors.PartitionError
		if !scoregoErrors.As(err, &partErr) {
			t.Fatalf("want *PartitionError, got %T: %v", err, err)
		}
		if partErr.Outside != 1 {
			t.Errorf("Outside = %d, want 1", partErr.Outside)
		}
		if len(partErr.Sample) != 1 || partErr.Sample[0] != -5 {
			t.Errorf("Sample = %v, want [-5]", partErr.Sample)
		}
	})

	t.Run("first finite lower bound excluded", func(t *testing.T) {
		// 先頭区間のLoちょうどの値は (0,10] に属さない
		_, err := Continuous("f", []float64{0, 5, 15}, []float64{1, 0, 1}, partition)
		var partErr *scoregoErrors.PartitionError
		if !scoregoErrors.As(err, &partErr) {
			t.Fatalf("want *PartitionError, got %T: %v", err, err)
		}
		if partErr.Sample[0] != 0 {
			t.Errorf("Sample = %v, want [0]", partErr.Sample)
		}
	})

	t.Run("NaN value", func(t *testing.T) {
		_, err := Continuous("f", []float64{math.NaN(), 5, 15}, []float64{1, 0, 1}, partition)
		var partErr *scoregoErrors.PartitionError
		if !scoregoErrors.As(err, &partErr) {
			t.Fatalf("want *PartitionError, got %T: %v", err, err)
		}
	})

	t.Run("gap between intervals", func(t *testing.T) {
		gapped := []Interval{{0, 10}, {20, 30}}
		_, err := Continuous("f", []float64{5, 15, 25, 5}, []float64{1, 0, 1, 0}, gapped)
		var partErr *scoregoErrors.PartitionError
		if !scoregoErrors.As(err, &partErr) {
			t.Fatalf("want *PartitionError, got %T: %v", err, err)
		}
		if partErr.Outside != 1 || partErr.Sample[0] != 15 {
			t.Errorf("Outside = %d Sample = %v, want 1 / [15]", partErr.Outside, partErr.Sample)
		}
	})

	t.Run("sample is bounded", func(t *testing.T) {
		values := make([]float64, 20)
		target := make([]float64, 20)
		for i := range values {
			values[i] = float64(100 + i) // 全て範囲外
			target[i] = float64(i % 2)
		}
		values[0], values[1] = 5, 15 // 2行だけ範囲内
		_, err := Continuous("f", values, target, partition)
		var partErr *scoregoErrors.PartitionError
		if !scoregoErrors.As(err, &partErr) {
			t.Fatalf("want *PartitionError, got %T: %v", err, err)
		}
		if partErr.Outside != 18 {
			t.Errorf("Outside = %d, want 18", partErr.Outside)
		}
		if len(partErr.Sample) != maxSampleValues {
			t.Errorf("len(Sample) = %d, want capped at %d", len(partErr.Sample), maxSampleValues)
		}
	})
}

func TestContinuousPartitionValidation(t *testing.T) {
	values := []float64{1, 2}
	target := []float64{0, 1}

	tests := []struct {
		name      string
		partition []Interval
	}{
		{"empty partition", nil},
		{"degenerate interval", []Interval{{5, 5}}},
		{"overlapping intervals", []Interval{{0, 10}, {5, 20}}},
		{"NaN bound", []Interval{{math.NaN(), 10}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Continuous("f", values, target, tt.partition)
			var valueErr *scoregoErrors.ValueError
			if !scoregoErrors.As(err, &valueErr) {
				t.Errorf("want *ValueError, got %T: %v", err, err)
			}
		})
	}
}

func TestCoverage(t *testing.T) {
	partition := Partition(30, 60)

	outside, sample := Coverage([]float64{10, 40, 70}, partition)
	if outside != 0 || len(sample) != 0 {
		t.Errorf("Coverage of exhaustive partition = %d %v, want 0 []", outside, sample)
	}

	gapped := []Interval{{0, 10}, {20, 30}}
	outside, sample = Coverage([]float64{5, 15, 25, 35, math.NaN()}, gapped)
	if outside != 3 {
		t.Errorf("outside = %d, want 3", outside)
	}
	if len(sample) != 3 || sample[0] != 15 || sample[1] != 35 {
		t.Errorf("sample = %v, want [15 35 NaN]", sample)
	}
}
