package frame

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scorego/pkg/errors"
)

// Frame is an ordered collection of equal-length, uniquely named Series.
type Frame struct {
	cols  []*Series
	index map[string]int
}

// New builds a Frame from the given columns. All columns must share the
// same length and carry unique, non-empty names.
func New(cols ...*Series) (*Frame, error) {
	if len(cols) == 0 {
		return nil, errors.NewEmptyInputError("frame.New", "column list")
	}
	index := make(map[string]int, len(cols))
	n := cols[0].Len()
	for i, c := range cols {
		if c == nil {
			return nil, errors.NewValueError("frame.New", fmt.Sprintf("column %d is nil", i))
		}
		if c.Name() == "" {
			return nil, errors.NewValueError("frame.New", fmt.Sprintf("column %d has an empty name", i))
		}
		if _, dup := index[c.Name()]; dup {
			return nil, errors.NewValueError("frame.New", fmt.Sprintf("duplicate column name %q", c.Name()))
		}
		if c.Len() != n {
			return nil, errors.NewDimensionError("frame.New", n, c.Len(), 0)
		}
		index[c.Name()] = i
	}
	owned := make([]*Series, len(cols))
	copy(owned, cols)
	return &Frame{cols: owned, index: index}, nil
}

// NumRows returns the number of rows (observations).
func (f *Frame) NumRows() int {
	if len(f.cols) == 0 {
		return 0
	}
	return f.cols[0].Len()
}

// NumCols returns the number of columns.
func (f *Frame) NumCols() int { return len(f.cols) }

// Columns returns the column names in frame order.
func (f *Frame) Columns() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name()
	}
	return names
}

// Has reports whether a column with the given name exists.
func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Column returns the named Series.
func (f *Frame) Column(name string) (*Series, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, errors.NewValueError("Frame.Column", fmt.Sprintf("no column %q", name))
	}
	return f.cols[i], nil
}

// Select returns a new Frame holding only the named columns, in the order
// given. The underlying Series are shared; they are immutable.
func (f *Frame) Select(names ...string) (*Frame, error) {
	if len(names) == 0 {
		return nil, errors.NewEmptyInputError("Frame.Select", "column list")
	}
	cols := make([]*Series, 0, len(names))
	for _, name := range names {
		c, err := f.Column(name)
		if err != nil {
			return nil, errors.Wrap(err, "Frame.Select")
		}
		cols = append(cols, c)
	}
	return New(cols...)
}

// Filter returns a new Frame holding only the rows named by keep, which
// must be strictly ascending original row indexes. An empty keep yields a
// zero-row Frame with the same columns.
func (f *Frame) Filter(keep []int) (*Frame, error) {
	n := f.NumRows()
	for i, r := range keep {
		if r < 0 || r >= n {
			return nil, errors.NewValueError("Frame.Filter", fmt.Sprintf("row index %d out of range [0,%d)", r, n))
		}
		if i > 0 && r <= keep[i-1] {
			return nil, errors.NewValueError("Frame.Filter", "row indexes must be strictly ascending")
		}
	}
	cols := make([]*Series, len(f.cols))
	for i, c := range f.cols {
		cols[i] = c.take(keep)
	}
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c.Name()] = i
	}
	return &Frame{cols: cols, index: index}, nil
}

// WithColumn returns a new Frame with col replacing the column of the same
// name, or appended when no such column exists. The column length must
// match the frame's row count.
func (f *Frame) WithColumn(col *Series) (*Frame, error) {
	if col == nil {
		return nil, errors.NewValueError("Frame.WithColumn", "column is nil")
	}
	if col.Len() != f.NumRows() {
		return nil, errors.NewDimensionError("Frame.WithColumn", f.NumRows(), col.Len(), 0)
	}
	cols := make([]*Series, len(f.cols), len(f.cols)+1)
	copy(cols, f.cols)
	if i, ok := f.index[col.Name()]; ok {
		cols[i] = col
	} else {
		cols = append(cols, col)
	}
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c.Name()] = i
	}
	return &Frame{cols: cols, index: index}, nil
}

// Floats returns a copy of the named Float column's values. This is the
// accessor used for target columns and continuous features.
func (f *Frame) Floats(name string) ([]float64, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind() != Float {
		return nil, errors.NewValueError("Frame.Floats", fmt.Sprintf("column %q is %s, not float", name, c.Kind()))
	}
	return c.Floats(), nil
}

// Labels returns the canonical labels of the named column. Both kinds are
// accepted; this is the accessor used for discrete features.
func (f *Frame) Labels(name string) ([]string, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	return c.Labels(), nil
}

// Matrix packs the named Float columns into a gonum dense matrix, one
// column per feature in the order given. With no names, all Float columns
// are used in frame order.
func (f *Frame) Matrix(names ...string) (*mat.Dense, error) {
	if len(names) == 0 {
		for _, c := range f.cols {
			if c.Kind() == Float {
				names = append(names, c.Name())
			}
		}
		if len(names) == 0 {
			return nil, errors.NewValueError("Frame.Matrix", "frame has no float columns")
		}
	}
	r := f.NumRows()
	if r == 0 {
		return nil, errors.NewEmptyInputError("Frame.Matrix", "frame")
	}
	cols := make([]*Series, len(names))
	for j, name := range names {
		c, err := f.Column(name)
		if err != nil {
			return nil, errors.Wrap(err, "Frame.Matrix")
		}
		if c.Kind() != Float {
			return nil, errors.NewValueError("Frame.Matrix", fmt.Sprintf("column %q is %s, not float", name, c.Kind()))
		}
		cols[j] = c
	}
	m := mat.NewDense(r, len(cols), nil)
	for j, c := range cols {
		for i := 0; i < r; i++ {
			m.Set(i, j, c.Float(i))
		}
	}
	return m, nil
}

// FromMatrix builds a Frame of Float columns from a gonum matrix. names
// must supply one name per matrix column.
func FromMatrix(names []string, m mat.Matrix) (*Frame, error) {
	if m == nil {
		return nil, errors.NewEmptyInputError("frame.FromMatrix", "matrix")
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewEmptyInputError("frame.FromMatrix", "matrix")
	}
	if len(names) != c {
		return nil, errors.NewDimensionError("frame.FromMatrix", c, len(names), 1)
	}
	cols := make([]*Series, c)
	for j := 0; j < c; j++ {
		vals := make([]float64, r)
		for i := 0; i < r; i++ {
			vals[i] = m.At(i, j)
		}
		cols[j] = &Series{name: names[j], kind: Float, floats: vals}
	}
	return New(cols...)
}
