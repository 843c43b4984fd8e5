// Package dataset holds tabular data with mixed column types, loads it from
// CSV and generates synthetic regression problems for feature selection.
package dataset

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/featsel/pkg/errors"
	"github.com/YuminosukeSato/featsel/selection"
	"gonum.org/v1/gonum/mat"
)

// Kind is the type of a column.
type Kind int

const (
	// Numeric columns hold float64 values; missing values are NaN.
	Numeric Kind = iota
	// Categorical columns hold string labels.
	Categorical
)

func (k Kind) String() string {
	if k == Categorical {
		return "categorical"
	}
	return "numeric"
}

// Column is one named column of a Frame. Exactly one of Values and Labels is
// set, depending on Kind.
type Column struct {
	Name   string
	Kind   Kind
	Values []float64
	Labels []string
}

// Len returns the number of rows in the column.
func (c Column) Len() int {
	if c.Kind == Categorical {
		return len(c.Labels)
	}
	return len(c.Values)
}

// Frame is a column-oriented table whose columns may be numeric or categorical.
type Frame struct {
	columns []Column
	index   map[string]int
	rows    int
}

// NewFrame returns an empty frame.
func NewFrame() *Frame {
	return &Frame{index: make(map[string]int)}
}

// AddNumeric appends a numeric column. The slice is not copied.
func (f *Frame) AddNumeric(name string, values []float64) error {
	return f.add(Column{Name: name, Kind: Numeric, Values: values})
}

// AddCategorical appends a categorical column. The slice is not copied.
func (f *Frame) AddCategorical(name string, labels []string) error {
	return f.add(Column{Name: name, Kind: Categorical, Labels: labels})
}

func (f *Frame) add(col Column) error {
	const op = "Frame.Add"
	if _, dup := f.index[col.Name]; dup {
		return errors.NewInvalidArgumentError(op, "name", errors.InvalidType, fmt.Sprintf("duplicate column name %q", col.Name))
	}
	if len(f.columns) > 0 && col.Len() != f.rows {
		return errors.NewDimensionError(op, f.rows, col.Len(), 0)
	}
	f.rows = col.Len()
	f.index[col.Name] = len(f.columns)
	f.columns = append(f.columns, col)
	return nil
}

// Dims returns the number of rows and columns.
func (f *Frame) Dims() (rows, cols int) { return f.rows, len(f.columns) }

// Column returns column j.
func (f *Frame) Column(j int) Column { return f.columns[j] }

// Lookup returns the named column.
func (f *Frame) Lookup(name string) (Column, bool) {
	j, ok := f.index[name]
	if !ok {
		return Column{}, false
	}
	return f.columns[j], true
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.columns))
	for j, c := range f.columns {
		names[j] = c.Name
	}
	return names
}

// Table returns the numeric columns, except the excluded ones, as a named
// selection.Table. Categorical columns are left out.
func (f *Frame) Table(exclude ...string) (*selection.Table, error) {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	var cols []Column
	for _, c := range f.columns {
		if c.Kind == Numeric && !skip[c.Name] {
			cols = append(cols, c)
		}
	}
	if f.rows == 0 || len(cols) == 0 {
		return nil, errors.NewInvalidArgumentError("Frame.Table", "X", errors.InvalidShape, "frame has no numeric feature columns")
	}

	data := mat.NewDense(f.rows, len(cols), nil)
	names := make([]string, len(cols))
	for j, c := range cols {
		data.SetCol(j, c.Values)
		names[j] = c.Name
	}
	return selection.NewTable(data, names)
}

// Target returns the named numeric column as a vector. Missing values are
// rejected since no scorer can use them.
func (f *Frame) Target(name string) (*mat.VecDense, error) {
	const op = "Frame.Target"
	c, ok := f.Lookup(name)
	if !ok {
		return nil, errors.NewInvalidArgumentError(op, "target", errors.InvalidType, fmt.Sprintf("no column named %q", name))
	}
	if c.Kind != Numeric {
		return nil, errors.NewInvalidArgumentError(op, "target", errors.InvalidType, fmt.Sprintf("column %q is categorical", name))
	}
	for i, v := range c.Values {
		if math.IsNaN(v) {
			return nil, errors.NewValueError(op, fmt.Sprintf("target %q has a missing value in row %d", name, i))
		}
	}
	return mat.NewVecDense(len(c.Values), append([]float64(nil), c.Values...)), nil
}

// Split returns the feature table and target vector for a supervised task.
func (f *Frame) Split(target string) (*selection.Table, *mat.VecDense, error) {
	y, err := f.Target(target)
	if err != nil {
		return nil, nil, err
	}
	X, err := f.Table(target)
	if err != nil {
		return nil, nil, err
	}
	return X, y, nil
}
