package frame

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scorego/pkg/errors"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		cols    []*Series
		wantErr bool
	}{
		{
			name: "valid frame",
			cols: []*Series{
				NewStringSeries("status", []string{"Single", "Married"}),
				NewFloatSeries("age", []float64{31, 45}),
			},
			wantErr: false,
		},
		{
			name:    "no columns",
			cols:    nil,
			wantErr: true,
		},
		{
			name: "length mismatch",
			cols: []*Series{
				NewStringSeries("status", []string{"Single", "Married"}),
				NewFloatSeries("age", []float64{31}),
			},
			wantErr: true,
		},
		{
			name: "duplicate name",
			cols: []*Series{
				NewFloatSeries("age", []float64{31}),
				NewFloatSeries("age", []float64{45}),
			},
			wantErr: true,
		},
		{
			name: "empty name",
			cols: []*Series{
				NewFloatSeries("", []float64{31}),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cols...)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSeriesLabelCanonicalization(t *testing.T) {
	// ラベルはFitとTransformで完全に一致しなければならない
	// 定数式の-0.0は+0になるため、負のゼロはCopysignで作る
	s := NewFloatSeries("x", []float64{1, 1.5, 0.1, 1e21, math.Copysign(0, -1)})

	wants := []string{"1", "1.5", "0.1", "1e+21", "-0"}
	for i, want := range wants {
		if got := s.Label(i); got != want {
			t.Errorf("Label(%d) = %q, want %q", i, got, want)
		}
	}

	str := NewStringSeries("s", []string{"A", ""})
	if str.Label(0) != "A" || str.Label(1) != "" {
		t.Error("String series labels should be the raw values")
	}
}

func TestSeriesImmutable(t *testing.T) {
	src := []float64{1, 2, 3}
	s := NewFloatSeries("x", src)
	src[0] = 99

	if s.Float(0) != 1 {
		t.Error("Series should copy its input slice")
	}

	out := s.Floats()
	out[1] = 99
	if s.Float(1) != 2 {
		t.Error("Floats() should return a copy")
	}
}

func TestFilter(t *testing.T) {
	f, err := New(
		NewStringSeries("status", []string{"A", "B", "C", "D"}),
		NewFloatSeries("age", []float64{10, 20, 30, 40}),
	)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		keep     []int
		wantRows int
		wantErr  bool
	}{
		{name: "subset", keep: []int{0, 2}, wantRows: 2},
		{name: "all rows", keep: []int{0, 1, 2, 3}, wantRows: 4},
		{name: "empty keep", keep: nil, wantRows: 0},
		{name: "out of range", keep: []int{0, 4}, wantErr: true},
		{name: "not ascending", keep: []int{2, 1}, wantErr: true},
		{name: "duplicate index", keep: []int{1, 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Filter(tt.keep)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Filter() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.NumRows() != tt.wantRows {
				t.Errorf("NumRows() = %d, want %d", got.NumRows(), tt.wantRows)
			}
		})
	}

	// 行の値が正しく対応していることを確認
	sub, err := f.Filter([]int{1, 3})
	if err != nil {
		t.Fatal(err)
	}
	col, _ := sub.Column("status")
	if col.Str(0) != "B" || col.Str(1) != "D" {
		t.Errorf("Filter rows = [%s, %s], want [B, D]", col.Str(0), col.Str(1))
	}

	// 元のFrameは変更されない
	if f.NumRows() != 4 {
		t.Error("Filter must not mutate the source frame")
	}
}

func TestSelectAndWithColumn(t *testing.T) {
	f, err := New(
		NewStringSeries("status", []string{"A", "B"}),
		NewFloatSeries("age", []float64{10, 20}),
		NewFloatSeries("income", []float64{100, 200}),
	)
	if err != nil {
		t.Fatal(err)
	}

	sel, err := f.Select("income", "status")
	if err != nil {
		t.Fatal(err)
	}
	wantCols := []string{"income", "status"}
	for i, name := range sel.Columns() {
		if name != wantCols[i] {
			t.Errorf("Select columns = %v, want %v", sel.Columns(), wantCols)
		}
	}

	if _, err := f.Select("missing"); err == nil {
		t.Error("Select with unknown column should fail")
	}

	// 置き換え
	replaced, err := f.WithColumn(NewFloatSeries("age", []float64{11, 21}))
	if err != nil {
		t.Fatal(err)
	}
	if replaced.NumCols() != 3 {
		t.Errorf("NumCols() = %d, want 3 after replace", replaced.NumCols())
	}
	vals, _ := replaced.Floats("age")
	if vals[0] != 11 {
		t.Errorf("replaced age[0] = %g, want 11", vals[0])
	}
	orig, _ := f.Floats("age")
	if orig[0] != 10 {
		t.Error("WithColumn must not mutate the source frame")
	}

	// 追加
	appended, err := f.WithColumn(NewFloatSeries("age_woe", []float64{0.1, -0.2}))
	if err != nil {
		t.Fatal(err)
	}
	if appended.NumCols() != 4 {
		t.Errorf("NumCols() = %d, want 4 after append", appended.NumCols())
	}

	// 長さ不一致
	if _, err := f.WithColumn(NewFloatSeries("bad", []float64{1})); err == nil {
		t.Error("WithColumn with mismatched length should fail")
	}
}

func TestFloatsAndLabels(t *testing.T) {
	f, err := New(
		NewStringSeries("status", []string{"A", "B"}),
		NewFloatSeries("age", []float64{10.5, 20}),
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.Floats("status"); err == nil {
		t.Error("Floats on a string column should fail")
	}
	var valErr *errors.ValueError
	_, err = f.Floats("status")
	if !errors.As(err, &valErr) {
		t.Errorf("expected *ValueError, got %T", err)
	}

	labels, err := f.Labels("age")
	if err != nil {
		t.Fatal(err)
	}
	if labels[0] != "10.5" || labels[1] != "20" {
		t.Errorf("Labels = %v, want [10.5 20]", labels)
	}
}

func TestMatrixRoundTrip(t *testing.T) {
	f, err := New(
		NewStringSeries("status", []string{"A", "B", "C"}),
		NewFloatSeries("age", []float64{10, 20, 30}),
		NewFloatSeries("income", []float64{1, 2, 3}),
	)
	if err != nil {
		t.Fatal(err)
	}

	// 名前指定なし: Float列のみ
	m, err := f.Matrix()
	if err != nil {
		t.Fatal(err)
	}
	r, c := m.Dims()
	if r != 3 || c != 2 {
		t.Fatalf("Matrix dims = (%d, %d), want (3, 2)", r, c)
	}
	if m.At(1, 0) != 20 || m.At(2, 1) != 3 {
		t.Error("Matrix values do not match the source columns")
	}

	// String列を指定するとエラー
	if _, err := f.Matrix("status"); err == nil {
		t.Error("Matrix over a string column should fail")
	}

	// 逆変換
	back, err := FromMatrix([]string{"age", "income"}, m)
	if err != nil {
		t.Fatal(err)
	}
	vals, _ := back.Floats("age")
	if math.Abs(vals[2]-30) > 1e-12 {
		t.Errorf("round-trip age[2] = %g, want 30", vals[2])
	}

	// 列数と名前数の不一致
	if _, err := FromMatrix([]string{"one"}, m); err == nil {
		t.Error("FromMatrix with wrong name count should fail")
	}
	if _, err := FromMatrix(nil, nil); err == nil {
		t.Error("FromMatrix with nil matrix should fail")
	}
	if _, err := FromMatrix([]string{}, &mat.Dense{}); err == nil {
		t.Error("FromMatrix with empty matrix should fail")
	}
}
