package selection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featsel/pkg/errors"
	"github.com/YuminosukeSato/featsel/pkg/log"
)

func TestForwardSelectorFitTransform(t *testing.T) {
	X, y := testData(5, 4)
	weights := map[string]float64{"0": 50, "1": 30, "2": 0.2, "3": 10}
	calls := 0

	sel := NewForwardSelector(weightScorer(weights, &calls), 1, 4, WithLogger(log.NewNopLogger()))
	assert.False(t, sel.IsFitted())

	out, err := sel.FitTransform(X, y)
	require.NoError(t, err)
	assert.True(t, sel.IsFitted())
	assert.Equal(t, []int{0, 1, 3}, sel.Support())
	assert.Equal(t, []string{"0", "1", "3"}, sel.SupportNames())

	r, c := out.Dims()
	assert.Equal(t, 5, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, X.At(2, 3), out.At(2, 2))

	history := sel.History()
	require.Len(t, history, 4)
	assert.False(t, history[3].Accepted)
}

func TestRFESelectorKeepsNames(t *testing.T) {
	X := constantColumns(t, 4, digitNames)
	y := mat.NewVecDense(4, nil)
	calls := 0

	sel := NewRFESelector(smallestMean(&calls), 3, WithLogger(log.NewNopLogger()))
	require.NoError(t, sel.Fit(X, y))
	assert.Equal(t, []int{7, 8, 9}, sel.Support())
	assert.Equal(t, []string{"seven", "eight", "nine"}, sel.SupportNames())
	assert.Len(t, sel.History(), 7)

	out, err := sel.Transform(X)
	require.NoError(t, err)
	table, ok := out.(*Table)
	require.True(t, ok)
	assert.Equal(t, []string{"seven", "eight", "nine"}, table.Names())
}

func TestAnnealingSelector(t *testing.T) {
	X, y := testData(4, 10)
	calls := 0

	sel := NewAnnealingSelector(subsetSize(&calls), 1e-9, 500, WithSeed(4), WithLogger(log.NewNopLogger()))
	require.NoError(t, sel.Fit(X, y))
	assert.Len(t, sel.Support(), 1)
	assert.Equal(t, 1.0, sel.BestScore())
	assert.NotEmpty(t, sel.History())
}

func TestSelectorTransformBeforeFit(t *testing.T) {
	X, _ := testData(3, 3)
	calls := 0
	sel := NewForwardSelector(weightScorer(nil, &calls), 1, 2)

	_, err := sel.Transform(X)
	var nf *errors.NotFittedError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "ForwardSelector", nf.ModelName)
	assert.Equal(t, "Transform", nf.Method)
}

func TestSelectorTransformDimensionMismatch(t *testing.T) {
	X, y := testData(4, 3)
	weights := map[string]float64{"0": 50, "1": 30, "2": 10}
	calls := 0

	sel := NewForwardSelector(weightScorer(weights, &calls), 1, 2, WithLogger(log.NewNopLogger()))
	require.NoError(t, sel.Fit(X, y))

	other, _ := testData(4, 5)
	_, err := sel.Transform(other)
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 3, dimErr.Expected)
	assert.Equal(t, 5, dimErr.Got)
}

func TestSelectorFailedFitResets(t *testing.T) {
	X, y := testData(4, 3)
	weights := map[string]float64{"0": 50, "1": 30, "2": 10}
	calls := 0

	sel := NewForwardSelector(weightScorer(weights, &calls), 1, 2, WithLogger(log.NewNopLogger()))
	require.NoError(t, sel.Fit(X, y))
	require.True(t, sel.IsFitted())

	err := sel.Fit(X, mat.NewVecDense(2, nil))
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
	assert.False(t, sel.IsFitted())
	assert.Empty(t, sel.Support())
	assert.Empty(t, sel.History())
}

func TestSelectorConfigurationErrors(t *testing.T) {
	X, y := testData(4, 3)
	calls := 0

	selectors := map[string]*Selector{
		"forward":   NewForwardSelector(weightScorer(nil, &calls), 3, 1),
		"rfe":       NewRFESelector(smallestMean(&calls), 3),
		"annealing": NewAnnealingSelector(subsetSize(&calls), 0, 10),
	}
	for name, sel := range selectors {
		t.Run(name, func(t *testing.T) {
			err := sel.Fit(X, y)
			assert.True(t, errors.Is(err, errors.ErrConfiguration))
		})
	}
	assert.Zero(t, calls)

	_, err := NewRFESelector(nil, 1).FitTransform(X, y)
	var argErr *errors.InvalidArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, errors.ScorerNotCallable, argErr.Kind)
}

func TestSelectorMatchesFunctionValidation(t *testing.T) {
	X, y := testData(4, 3)
	calls := 0
	nop := WithLogger(log.NewNopLogger())

	t.Run("nan threshold", func(t *testing.T) {
		opt := WithImprovementThreshold(math.NaN())
		_, fnErr := ForwardSelection(weightScorer(nil, &calls), X, y, 1, 3, opt, nop)
		selErr := NewForwardSelector(weightScorer(nil, &calls), 1, 3, opt, nop).Fit(X, y)

		assert.True(t, errors.Is(fnErr, errors.ErrConfiguration))
		var cfgErr *errors.ConfigurationError
		require.True(t, errors.As(selErr, &cfgErr), "got %v", selErr)
		assert.Equal(t, "improvement_threshold", cfgErr.Param)
	})

	t.Run("infinite control rate", func(t *testing.T) {
		_, fnErr := SimulatedAnnealing(subsetSize(&calls), X, y, math.Inf(1), 5, nop)
		selErr := NewAnnealingSelector(subsetSize(&calls), math.Inf(1), 5, nop).Fit(X, y)

		assert.True(t, errors.Is(fnErr, errors.ErrConfiguration))
		var cfgErr *errors.ConfigurationError
		require.True(t, errors.As(selErr, &cfgErr), "got %v", selErr)
		assert.Equal(t, "control_rate", cfgErr.Param)
	})

	assert.Zero(t, calls)
}

func TestSelectorReportsMissingScorerFirst(t *testing.T) {
	selectors := map[string]*Selector{
		"forward":   NewForwardSelector(nil, 1, 2),
		"rfe":       NewRFESelector(nil, 1),
		"annealing": NewAnnealingSelector(nil, 1, 5),
	}
	for name, sel := range selectors {
		t.Run(name, func(t *testing.T) {
			err := sel.Fit(nil, nil)
			var argErr *errors.InvalidArgumentError
			require.True(t, errors.As(err, &argErr), "got %v", err)
			assert.Equal(t, "scorer", argErr.Param)
			assert.Equal(t, errors.ScorerNotCallable, argErr.Kind)
		})
	}
}
