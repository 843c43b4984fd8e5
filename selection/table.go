package selection

import (
	"fmt"
	"strconv"

	"github.com/YuminosukeSato/featsel/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Table is the canonical feature matrix every engine works on: samples as
// rows, features as columns, with a name for every column.
//
// Tables built without names carry positional names ("0", "1", ...). Column
// subsets keep the names of the table they were cut from, so a column keeps
// its original identity however many times the table is narrowed.
//
// *Table implements mat.Matrix and can be passed anywhere a matrix is expected.
type Table struct {
	data  *mat.Dense
	names []string
	index map[string]int
	named bool
}

var _ mat.Matrix = (*Table)(nil)

// NewTable wraps data with optional column names. A nil names slice assigns
// positional names. The matrix is not copied.
func NewTable(data *mat.Dense, names []string) (*Table, error) {
	const op = "NewTable"
	if data == nil {
		return nil, errors.NewInvalidArgumentError(op, "X", errors.InvalidType, "X must be a matrix")
	}
	if data.IsEmpty() {
		return nil, errors.NewInvalidArgumentError(op, "X", errors.InvalidShape, "X must be a non-empty 2-d array")
	}
	_, c := data.Dims()

	named := names != nil
	if !named {
		names = positionalNames(c)
	} else {
		if len(names) != c {
			return nil, errors.NewInvalidArgumentError(op, "names", errors.InvalidShape,
				fmt.Sprintf("got %d column names for %d columns", len(names), c))
		}
		names = append([]string(nil), names...)
	}

	index := make(map[string]int, c)
	for j, name := range names {
		if _, dup := index[name]; dup {
			return nil, errors.NewInvalidArgumentError(op, "names", errors.InvalidType,
				fmt.Sprintf("duplicate column name %q", name))
		}
		index[name] = j
	}

	return &Table{data: data, names: names, index: index, named: named}, nil
}

// FromRows builds a Table from row-major data. Ragged rows are rejected since
// they do not form a 2-d array.
func FromRows(rows [][]float64, names []string) (*Table, error) {
	const op = "FromRows"
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.NewInvalidArgumentError(op, "X", errors.InvalidShape, "X must be a non-empty 2-d array")
	}
	c := len(rows[0])
	flat := make([]float64, 0, len(rows)*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, errors.NewInvalidArgumentError(op, "X", errors.InvalidShape,
				fmt.Sprintf("X must be a 2-d array: row %d has %d values, expected %d", i, len(row), c))
		}
		flat = append(flat, row...)
	}
	return NewTable(mat.NewDense(len(rows), c, flat), names)
}

// AsTable coerces any matrix to a Table. A *Table is returned unchanged, any
// other matrix is copied and gets positional names.
func AsTable(X mat.Matrix) (*Table, error) {
	return asTable("AsTable", X)
}

func asTable(op string, X mat.Matrix) (*Table, error) {
	switch m := X.(type) {
	case nil:
		return nil, errors.NewInvalidArgumentError(op, "X", errors.InvalidType, "X must be a matrix, got nil")
	case *Table:
		if m == nil {
			return nil, errors.NewInvalidArgumentError(op, "X", errors.InvalidType, "X must be a matrix, got nil *Table")
		}
		return m, nil
	case *mat.Dense:
		if m == nil {
			return nil, errors.NewInvalidArgumentError(op, "X", errors.InvalidType, "X must be a matrix, got nil *mat.Dense")
		}
		if m.IsEmpty() {
			return nil, errors.NewInvalidArgumentError(op, "X", errors.InvalidShape, "X must be a non-empty 2-d array")
		}
	}

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewInvalidArgumentError(op, "X", errors.InvalidShape, "X must be a non-empty 2-d array")
	}
	return NewTable(mat.DenseCopyOf(X), nil)
}

func positionalNames(n int) []string {
	names := make([]string, n)
	for j := range names {
		names[j] = strconv.Itoa(j)
	}
	return names
}

// Dims implements mat.Matrix.
func (t *Table) Dims() (r, c int) { return t.data.Dims() }

// At implements mat.Matrix.
func (t *Table) At(i, j int) float64 { return t.data.At(i, j) }

// T implements mat.Matrix.
func (t *Table) T() mat.Matrix { return mat.Transpose{Matrix: t} }

// Dense returns the underlying matrix. Callers must not modify it.
func (t *Table) Dense() *mat.Dense { return t.data }

// HasNames reports whether the column names were supplied by the caller.
func (t *Table) HasNames() bool { return t.named }

// Names returns a copy of the column names in column order.
func (t *Table) Names() []string { return append([]string(nil), t.names...) }

// Name returns the name of column j.
func (t *Table) Name(j int) string { return t.names[j] }

// Index returns the position of the named column.
func (t *Table) Index(name string) (int, bool) {
	j, ok := t.index[name]
	return j, ok
}

// Indices maps names to column positions.
func (t *Table) Indices(names []string) ([]int, error) {
	out := make([]int, len(names))
	for i, name := range names {
		j, ok := t.index[name]
		if !ok {
			return nil, errors.NewInvalidArgumentError("Table.Indices", "names", errors.InvalidType,
				fmt.Sprintf("unknown column %q", name))
		}
		out[i] = j
	}
	return out, nil
}

// NamesOf returns the names of the given column positions.
func (t *Table) NamesOf(cols []int) []string {
	out := make([]string, len(cols))
	for i, j := range cols {
		out[i] = t.names[j]
	}
	return out
}

// Columns returns a new table holding the given columns in the given order.
// Names are carried over from t.
func (t *Table) Columns(cols []int) *Table {
	r, _ := t.data.Dims()
	sub := mat.NewDense(r, len(cols), nil)
	for k, j := range cols {
		for i := 0; i < r; i++ {
			sub.Set(i, k, t.data.At(i, j))
		}
	}

	names := t.NamesOf(cols)
	index := make(map[string]int, len(cols))
	for k, name := range names {
		index[name] = k
	}
	return &Table{data: sub, names: names, index: index, named: t.named}
}

// Masked returns the columns where mask is true, in column order.
func (t *Table) Masked(mask []bool) *Table {
	return t.Columns(maskIndices(mask))
}

func maskIndices(mask []bool) []int {
	idx := make([]int, 0, len(mask))
	for j, keep := range mask {
		if keep {
			idx = append(idx, j)
		}
	}
	return idx
}
