package woe

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/YuminosukeSato/scorego/core/model"
)

// makeColumn builds aligned value/target slices from (label, count, events)
// triples.
func makeColumn(groups []struct {
	label  string
	count  int
	events int
}) (values []string, target []float64) {
	for _, g := range groups {
		for i := 0; i < g.count; i++ {
			values = append(values, g.label)
			if i < g.events {
				target = append(target, 1)
			} else {
				target = append(target, 0)
			}
		}
	}
	return values, target
}

func TestMaritalStatusScenario(t *testing.T) {
	// Single: 70行中20イベント、Married: 30行中5イベント、全体率 25/100
	values, target := makeColumn([]struct {
		label  string
		count  int
		events int
	}{
		{"Single", 70, 20},
		{"Married", 30, 5},
	})

	table, err := Discrete("marital_status", values, target, true, 0)
	if err != nil {
		t.Fatalf("Discrete() error = %v", err)
	}

	if table.TotalEvents != 25 || table.TotalNonEvents != 75 {
		t.Fatalf("totals = %d/%d, want 25/75", table.TotalEvents, table.TotalNonEvents)
	}
	if got := table.OverallEventRate(); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("OverallEventRate() = %g, want 0.25", got)
	}

	// 昇順イベント率: Married(0.1667) が先、Single(0.2857) が後
	if table.Bins[0].Label != "Married" || table.Bins[1].Label != "Single" {
		t.Fatalf("bin order = [%s, %s], want [Married, Single]",
			table.Bins[0].Label, table.Bins[1].Label)
	}

	married, single := table.Bins[0], table.Bins[1]

	// WoE(Single) = ln((20/25)/(50/75)) = ln(1.2)
	if math.Abs(single.WoE-math.Log(1.2)) > 1e-12 {
		t.Errorf("WoE(Single) = %g, want %g", single.WoE, math.Log(1.2))
	}
	// WoE(Married) = ln((5/25)/(25/75)) = ln(0.6)
	if math.Abs(married.WoE-math.Log(0.6)) > 1e-12 {
		t.Errorf("WoE(Married) = %g, want %g", married.WoE, math.Log(0.6))
	}

	// 符号特性: イベント率が全体率を上回るビンのみWoE > 0
	if single.WoE <= 0 {
		t.Error("WoE(Single) should be positive: event rate 0.286 > 0.25")
	}
	if married.WoE >= 0 {
		t.Error("WoE(Married) should be negative: event rate 0.167 < 0.25")
	}

	wantIV := (0.8-50.0/75.0)*math.Log(1.2) + (0.2-25.0/75.0)*math.Log(0.6)
	if math.Abs(table.IV-wantIV) > 1e-12 {
		t.Errorf("IV = %g, want %g", table.IV, wantIV)
	}
	if table.Strength != Weak {
		t.Errorf("Strength = %s, want %s (IV=%g)", table.Strength, Weak, table.IV)
	}
}

func TestWoESignProperty(t *testing.T) {
	tests := []struct {
		name   string
		groups []struct {
			label  string
			count  int
			events int
		}
	}{
		{
			name: "two groups",
			groups: []struct {
				label  string
				count  int
				events int
			}{{"A", 40, 10}, {"B", 60, 30}},
		},
		{
			name: "three groups",
			groups: []struct {
				label  string
				count  int
				events int
			}{{"A", 10, 1}, {"B", 50, 25}, {"C", 40, 8}},
		},
		{
			name: "uniform rates",
			groups: []struct {
				label  string
				count  int
				events int
			}{{"A", 20, 10}, {"B", 40, 20}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, target := makeColumn(tt.groups)
			table, err := Discrete("f", values, target, true, 0)
			if err != nil {
				t.Fatalf("Discrete() error = %v", err)
			}
			overall := table.OverallEventRate()
			for _, bin := range table.Bins {
				switch {
				case bin.EventRate > overall && bin.WoE <= 0:
					t.Errorf("bin %s: rate %g > overall %g but WoE = %g",
						bin.Label, bin.EventRate, overall, bin.WoE)
				case bin.EventRate < overall && bin.WoE >= 0:
					t.Errorf("bin %s: rate %g < overall %g but WoE = %g",
						bin.Label, bin.EventRate, overall, bin.WoE)
				case bin.EventRate == overall && math.Abs(bin.WoE) > 1e-12:
					t.Errorf("bin %s: rate equals overall but WoE = %g", bin.Label, bin.WoE)
				}
			}
		})
	}
}

func TestIVNonNegativity(t *testing.T) {
	tests := []struct {
		name   string
		groups []struct {
			label  string
			count  int
			events int
		}
		wantZero bool
	}{
		{
			name: "separating feature",
			groups: []struct {
				label  string
				count  int
				events int
			}{{"A", 30, 25}, {"B", 70, 5}},
		},
		{
			name: "zero-event bin",
			groups: []struct {
				label  string
				count  int
				events int
			}{{"A", 10, 0}, {"B", 10, 5}},
		},
		{
			name: "uninformative feature",
			groups: []struct {
				label  string
				count  int
				events int
			}{{"A", 20, 10}, {"B", 40, 20}},
			wantZero: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, target := makeColumn(tt.groups)
			table, err := Discrete("f", values, target, true, 0)
			if err != nil {
				t.Fatalf("Discrete() error = %v", err)
			}
			if table.IV < 0 {
				t.Errorf("IV = %g, want >= 0", table.IV)
			}
			for _, bin := range table.Bins {
				if bin.IV < 0 {
					t.Errorf("bin %s: IV component = %g, want >= 0", bin.Label, bin.IV)
				}
			}
			if tt.wantZero && math.Abs(table.IV) > 1e-12 {
				t.Errorf("IV = %g, want 0 for uninformative feature", table.IV)
			}
			if !tt.wantZero && table.IV <= 0 {
				t.Errorf("IV = %g, want > 0 for separating feature", table.IV)
			}
		})
	}
}

func TestZeroCountGuard(t *testing.T) {
	// Aはイベント0件: 置換定数0.5が分子に入り、WoEは有限の負値になる
	values, target := makeColumn([]struct {
		label  string
		count  int
		events int
	}{
		{"A", 10, 0},
		{"B", 10, 5},
	})

	table, err := Discrete("f", values, target, true, 0)
	if err != nil {
		t.Fatalf("Discrete() error = %v", err)
	}

	var binA Bin
	for _, b := range table.Bins {
		if b.Label == "A" {
			binA = b
		}
	}
	if binA.Events != 0 {
		t.Fatalf("bin A events = %d, want 0", binA.Events)
	}
	if math.IsInf(binA.WoE, 0) || math.IsNaN(binA.WoE) {
		t.Fatalf("WoE(A) = %g, want finite via the zero-count guard", binA.WoE)
	}

	// WoE(A) = ln((0.5/5)/(10/15))
	want := math.Log((ZeroCountSubstitute / 5.0) / (10.0 / 15.0))
	if math.Abs(binA.WoE-want) > 1e-12 {
		t.Errorf("WoE(A) = %g, want %g", binA.WoE, want)
	}
	if binA.IV < 0 {
		t.Errorf("IV component of guarded bin = %g, want >= 0", binA.IV)
	}
}

func TestStrengthOf(t *testing.T) {
	tests := []struct {
		iv   float64
		want Strength
	}{
		{0.0, Unpredictive},
		{0.019, Unpredictive},
		{0.02, Weak},
		{0.099, Weak},
		{0.1, Medium},
		{0.29, Medium},
		{0.3, Strong},
		{0.49, Strong},
		{0.5, Suspicious},
		{2.0, Suspicious},
	}
	for _, tt := range tests {
		if got := StrengthOf(tt.iv); got != tt.want {
			t.Errorf("StrengthOf(%g) = %s, want %s", tt.iv, got, tt.want)
		}
	}
}

func TestKindJSON(t *testing.T) {
	for _, k := range []Kind{KindDiscrete, KindContinuous} {
		data, err := json.Marshal(k)
		if err != nil {
			t.Fatalf("Marshal(%v) error = %v", k, err)
		}
		var back Kind
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", data, err)
		}
		if back != k {
			t.Errorf("round trip of %v = %v", k, back)
		}
	}

	var k Kind
	if err := json.Unmarshal([]byte(`"ordinal"`), &k); err == nil {
		t.Error("unknown kind should fail to decode")
	}
}

func testDict(t *testing.T) Dict {
	t.Helper()
	values, target := makeColumn([]struct {
		label  string
		count  int
		events int
	}{
		{"Single", 70, 20},
		{"Married", 30, 5},
	})
	discrete, err := Discrete("marital_status", values, target, true, 0)
	if err != nil {
		t.Fatal(err)
	}

	ages := make([]float64, 100)
	for i := range ages {
		ages[i] = float64(20 + i%50)
	}
	continuous, err := Continuous("age", ages, target, Partition(30, 50))
	if err != nil {
		t.Fatal(err)
	}
	return Dict{"marital_status": discrete, "age": continuous}
}

func TestDictJSONRoundTrip(t *testing.T) {
	dict := testDict(t)

	first, err := dict.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	back, err := DictFromJSON(first)
	if err != nil {
		t.Fatalf("DictFromJSON() error = %v", err)
	}
	second, err := back.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() after round trip error = %v", err)
	}

	// ハンドオフ構造はバイト単位で等価に往復しなければならない
	if !bytes.Equal(first, second) {
		t.Error("Dict JSON round trip is not byte-identical")
	}

	age := back["age"]
	if age == nil || age.Kind != KindContinuous {
		t.Fatal("decoded dict lacks continuous table 'age'")
	}
	if !math.IsInf(age.Bins[0].Interval.Lo, -1) {
		t.Errorf("decoded lower bound = %g, want -Inf", age.Bins[0].Interval.Lo)
	}
	if !math.IsInf(age.Bins[len(age.Bins)-1].Interval.Hi, 1) {
		t.Errorf("decoded upper bound = %g, want +Inf", age.Bins[len(age.Bins)-1].Interval.Hi)
	}
	for i, bin := range age.Bins {
		if bin.WoE != dict["age"].Bins[i].WoE {
			t.Errorf("bin %d WoE = %v, want exact %v", i, bin.WoE, dict["age"].Bins[i].WoE)
		}
	}
}

func TestDictGobRoundTrip(t *testing.T) {
	dict := testDict(t)

	var buf bytes.Buffer
	if err := model.SaveModelToWriter(dict, &buf); err != nil {
		t.Fatalf("SaveModelToWriter() error = %v", err)
	}
	var back Dict
	if err := model.LoadModelFromReader(&back, &buf); err != nil {
		t.Fatalf("LoadModelFromReader() error = %v", err)
	}

	if len(back) != len(dict) {
		t.Fatalf("decoded dict has %d features, want %d", len(back), len(dict))
	}
	for name, table := range dict {
		got := back[name]
		if got == nil {
			t.Fatalf("decoded dict lacks feature %q", name)
		}
		if got.IV != table.IV || got.Kind != table.Kind || len(got.Bins) != len(table.Bins) {
			t.Errorf("feature %q: table mismatch after gob round trip", name)
		}
		for i := range table.Bins {
			if got.Bins[i].WoE != table.Bins[i].WoE || got.Bins[i].Label != table.Bins[i].Label {
				t.Errorf("feature %q bin %d: mismatch after gob round trip", name, i)
			}
		}
	}
}

func TestTableAccessors(t *testing.T) {
	dict := testDict(t)
	table := dict["marital_status"]

	if got := table.TotalCount(); got != 100 {
		t.Errorf("TotalCount() = %d, want 100", got)
	}
	if idx := table.FindLabel("Single"); idx < 0 || table.Bins[idx].Label != "Single" {
		t.Errorf("FindLabel(Single) = %d", idx)
	}
	if idx := table.FindLabel("Widowed"); idx != -1 {
		t.Errorf("FindLabel(Widowed) = %d, want -1", idx)
	}

	cont := dict["age"]
	if idx := cont.FindValue(35); idx != 1 {
		t.Errorf("FindValue(35) = %d, want 1", idx)
	}
	if idx := cont.FindValue(math.NaN()); idx != -1 {
		t.Errorf("FindValue(NaN) = %d, want -1", idx)
	}

	if s := table.String(); s == "" {
		t.Error("String() should describe the table")
	}
	if names := dict.Features(); len(names) != 2 || names[0] != "age" {
		t.Errorf("Features() = %v, want sorted [age marital_status]", names)
	}
}
