package selection

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/featsel/pkg/errors"
	"github.com/YuminosukeSato/featsel/pkg/log"
)

var digitNames = []string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}

// constantColumns returns a table whose column j is the constant j+1.
func constantColumns(t *testing.T, rows int, names []string) *Table {
	t.Helper()
	data := mat.NewDense(rows, len(names), nil)
	for i := 0; i < rows; i++ {
		for j := range names {
			data.Set(i, j, float64(j+1))
		}
	}
	table, err := NewTable(data, names)
	require.NoError(t, err)
	return table
}

// smallestMean names the column with the smallest mean.
func smallestMean(calls *int) WeakestColumnFn {
	return func(X *Table, _ *mat.VecDense) (string, error) {
		*calls++
		r, c := X.Dims()
		col := make([]float64, r)
		best, bestMean := 0, 0.0
		for j := 0; j < c; j++ {
			mat.Col(col, j, X)
			m := stat.Mean(col, nil)
			if j == 0 || m < bestMean {
				best, bestMean = j, m
			}
		}
		return X.Name(best), nil
	}
}

func TestRecursiveFeatureEliminationNamedColumns(t *testing.T) {
	X := constantColumns(t, 5, digitNames)
	y := mat.NewVecDense(5, []float64{1, 2, 3, 4, 5})

	calls := 0
	got, err := RecursiveFeatureElimination(smallestMean(&calls), X, y, 4, WithLogger(log.NewNopLogger()))
	require.NoError(t, err)
	assert.Equal(t, []string{"six", "seven", "eight", "nine"}, got)
	assert.Equal(t, 6, calls)

	idx, err := X.Indices(got)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 7, 8, 9}, idx)
}

func TestRecursiveFeatureEliminationPositional(t *testing.T) {
	X := constantColumns(t, 3, digitNames[:4])
	dense := X.Dense()
	y := mat.NewVecDense(3, nil)

	// 列を逆順に並べ替えると最弱列は右端になる
	reversed := mat.NewDense(3, 4, nil)
	for j := 0; j < 4; j++ {
		col := mat.Col(nil, 3-j, dense)
		reversed.SetCol(j, col)
	}

	calls := 0
	got, err := RecursiveFeatureElimination(smallestMean(&calls), reversed, y, 2, WithLogger(log.NewNopLogger()))
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1"}, got)
}

func TestRecursiveFeatureEliminationIgnoresSampleCount(t *testing.T) {
	// 行数が列数より少なくても削除回数は ncols - n
	X := constantColumns(t, 2, digitNames)
	y := mat.NewVecDense(2, nil)

	calls := 0
	got, err := RecursiveFeatureElimination(smallestMean(&calls), X, y, 1, WithLogger(log.NewNopLogger()))
	require.NoError(t, err)
	assert.Equal(t, []string{"nine"}, got)
	assert.Equal(t, 9, calls)
}

func TestRecursiveFeatureEliminationConfigurationErrors(t *testing.T) {
	X := constantColumns(t, 3, digitNames[:4])
	y := mat.NewVecDense(3, nil)

	for _, n := range []int{0, -1, 4, 5} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			calls := 0
			_, err := RecursiveFeatureElimination(smallestMean(&calls), X, y, n)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrConfiguration))
			assert.Zero(t, calls)
		})
	}
}

func TestRecursiveFeatureEliminationInvalidScorerResult(t *testing.T) {
	X := constantColumns(t, 3, digitNames[:4])
	y := mat.NewVecDense(3, nil)

	t.Run("unknown name", func(t *testing.T) {
		weakest := func(*Table, *mat.VecDense) (string, error) { return "eleven", nil }
		_, err := RecursiveFeatureElimination(weakest, X, y, 2, WithLogger(log.NewNopLogger()))

		var argErr *errors.InvalidArgumentError
		require.True(t, errors.As(err, &argErr))
		assert.Equal(t, errors.InvalidScorerResult, argErr.Kind)
	})

	t.Run("already eliminated name", func(t *testing.T) {
		weakest := func(*Table, *mat.VecDense) (string, error) { return "zero", nil }
		_, err := RecursiveFeatureElimination(weakest, X, y, 2, WithLogger(log.NewNopLogger()))

		var argErr *errors.InvalidArgumentError
		require.True(t, errors.As(err, &argErr))
		assert.Equal(t, errors.InvalidScorerResult, argErr.Kind)
	})
}

func TestRecursiveFeatureEliminationScorerErrorPropagates(t *testing.T) {
	X := constantColumns(t, 3, digitNames[:4])
	y := mat.NewVecDense(3, nil)
	boom := errors.New("no coefficients")

	weakest := func(*Table, *mat.VecDense) (string, error) { return "", boom }
	got, err := RecursiveFeatureElimination(weakest, X, y, 2, WithLogger(log.NewNopLogger()))
	assert.Nil(t, got)
	assert.Equal(t, boom, err)
}

func TestRecursiveFeatureEliminationTrace(t *testing.T) {
	X := constantColumns(t, 3, digitNames[:4])
	y := mat.NewVecDense(3, nil)

	obs := &recordingObserver{}
	calls := 0
	_, err := RecursiveFeatureElimination(smallestMean(&calls), X, y, 1,
		WithObserver(obs), WithLogger(log.NewNopLogger()))
	require.NoError(t, err)

	require.Len(t, obs.steps, 3)
	for i, step := range obs.steps {
		assert.Equal(t, i, step.Round)
		assert.Equal(t, i, step.Feature)
		assert.True(t, step.Accepted)
		assert.NaN(t, step.Score)
	}
	assert.Equal(t, 3, obs.evaluations)
}
