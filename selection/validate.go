package selection

import (
	"fmt"

	"github.com/YuminosukeSato/featsel/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// validateInputs checks the arguments shared by every engine, in order:
// scorer, X, y, then sample counts. Nothing is scored before it returns.
func validateInputs(op string, scorerMissing bool, X, y mat.Matrix) (*Table, *mat.VecDense, error) {
	if scorerMissing {
		return nil, nil, errors.NewInvalidArgumentError(op, "scorer", errors.ScorerNotCallable, "scorer must be a non-nil function")
	}

	table, err := asTable(op, X)
	if err != nil {
		return nil, nil, err
	}

	target, err := asTarget(op, y)
	if err != nil {
		return nil, nil, err
	}

	r, _ := table.Dims()
	if n := target.Len(); n != r {
		return nil, nil, errors.NewInvalidArgumentError(op, "y", errors.SampleMismatch,
			fmt.Sprintf("found input variables with inconsistent numbers of samples: [%d, %d]", r, n))
	}
	return table, target, nil
}

// asTarget coerces y to a vector. Accepts a mat.Vector or a single-column matrix.
func asTarget(op string, y mat.Matrix) (*mat.VecDense, error) {
	switch v := y.(type) {
	case nil:
		return nil, errors.NewInvalidArgumentError(op, "y", errors.InvalidType, "y must be a vector, got nil")
	case *mat.VecDense:
		if v == nil {
			return nil, errors.NewInvalidArgumentError(op, "y", errors.InvalidType, "y must be a vector, got nil *mat.VecDense")
		}
	case *mat.Dense:
		if v == nil {
			return nil, errors.NewInvalidArgumentError(op, "y", errors.InvalidType, "y must be a vector, got nil *mat.Dense")
		}
		if v.IsEmpty() {
			return nil, errors.NewInvalidArgumentError(op, "y", errors.InvalidShape, "y must be a non-empty 1-d array")
		}
	}

	r, c := y.Dims()
	if c != 1 {
		return nil, errors.NewInvalidArgumentError(op, "y", errors.InvalidShape,
			fmt.Sprintf("y must be a 1-d array, got shape (%d, %d)", r, c))
	}
	if r == 0 {
		return nil, errors.NewInvalidArgumentError(op, "y", errors.InvalidShape, "y must be a non-empty 1-d array")
	}

	out := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		out.SetVec(i, y.At(i, 0))
	}
	return out, nil
}
