package selection

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featsel/pkg/errors"
	"github.com/YuminosukeSato/featsel/pkg/log"
)

// subsetSize scores a subset by its number of columns.
func subsetSize(calls *int) ScoreFn {
	return func(X *Table, _ *mat.VecDense) (float64, error) {
		*calls++
		_, c := X.Dims()
		return float64(c), nil
	}
}

func TestSimulatedAnnealingDeterministicWithSeed(t *testing.T) {
	X, y := testData(6, 20)
	weights := map[string]float64{"0": 10, "3": 7, "5": 4, "11": 2}

	run := func() *AnnealingResult {
		calls := 0
		res, err := SimulatedAnnealing(weightScorer(weights, &calls), X, y, 0.5, 200,
			WithSeed(42), WithLogger(log.NewNopLogger()))
		require.NoError(t, err)
		return res
	}

	first, second := run(), run()
	assert.Equal(t, first.Mask, second.Mask)
	assert.Equal(t, first.Score, second.Score)
	assert.Len(t, first.Mask, 20)
	assert.NotEmpty(t, first.Indices())
}

func TestSimulatedAnnealingWithRandTakesPrecedence(t *testing.T) {
	X, y := testData(6, 20)
	calls := 0

	a, err := SimulatedAnnealing(subsetSize(&calls), X, y, 1, 50,
		WithRand(rand.New(rand.NewPCG(7, 7))), WithSeed(99), WithLogger(log.NewNopLogger()))
	require.NoError(t, err)

	b, err := SimulatedAnnealing(subsetSize(&calls), X, y, 1, 50,
		WithRand(rand.New(rand.NewPCG(7, 7))), WithLogger(log.NewNopLogger()))
	require.NoError(t, err)

	assert.Equal(t, a.Mask, b.Mask)
}

func TestSimulatedAnnealingZeroIterations(t *testing.T) {
	X, y := testData(4, 8)

	for seed := uint64(0); seed < 20; seed++ {
		calls := 0
		res, err := SimulatedAnnealing(subsetSize(&calls), X, y, 1, 0,
			WithSeed(seed), WithLogger(log.NewNopLogger()))
		require.NoError(t, err)
		assert.NotEmpty(t, res.Indices(), "seed %d", seed)
		assert.Equal(t, 1, calls)
		assert.Equal(t, float64(len(res.Indices())), res.Score)
	}
}

func TestSimulatedAnnealingNeverEmpty(t *testing.T) {
	X, y := testData(3, 2)
	calls := 0
	var steps []Step

	res, err := SimulatedAnnealing(subsetSize(&calls), X, y, 0.01, 300,
		WithSeed(3), WithStepHook(func(s Step) { steps = append(steps, s) }), WithLogger(log.NewNopLogger()))
	require.NoError(t, err)
	assert.NotEmpty(t, res.Indices())
	for _, s := range steps {
		assert.GreaterOrEqual(t, s.Score, 1.0)
		assert.Equal(t, -1, s.Feature)
	}
}

func TestSimulatedAnnealingSingleColumn(t *testing.T) {
	X, y := testData(3, 1)
	calls := 0

	// 唯一の列を反転すると空になるので全ての手がスキップされる
	res, err := SimulatedAnnealing(subsetSize(&calls), X, y, 1, 25, WithSeed(1), WithLogger(log.NewNopLogger()))
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, res.Mask)
	assert.Equal(t, 1, calls)
}

func TestSimulatedAnnealingConvergesOnImprovements(t *testing.T) {
	X, y := testData(3, 20)
	calls := 0

	// 冷却が速いので i >= 1 では悪化する手はほぼ採用されない
	res, err := SimulatedAnnealing(subsetSize(&calls), X, y, 1e-9, 1000,
		WithSeed(11), WithLogger(log.NewNopLogger()))
	require.NoError(t, err)
	assert.Len(t, res.Indices(), 1)
	assert.Equal(t, 1.0, res.Score)
}

func TestSimulatedAnnealingZeroScoreRejectsEqualMoves(t *testing.T) {
	X, y := testData(3, 20)
	zero := func(*Table, *mat.VecDense) (float64, error) { return 0, nil }

	var steps []Step
	_, err := SimulatedAnnealing(zero, X, y, 1, 50,
		WithSeed(5), WithStepHook(func(s Step) { steps = append(steps, s) }), WithLogger(log.NewNopLogger()))
	require.NoError(t, err)
	require.NotEmpty(t, steps)
	for _, s := range steps {
		assert.False(t, s.Accepted)
	}
}

func TestSimulatedAnnealingConfigurationErrors(t *testing.T) {
	X, y := testData(3, 4)

	tests := []struct {
		name        string
		controlRate float64
		iterations  int
		param       string
	}{
		{"zero control rate", 0, 10, "control_rate"},
		{"negative control rate", -1, 10, "control_rate"},
		{"NaN control rate", math.NaN(), 10, "control_rate"},
		{"negative iterations", 1, -1, "iterations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			_, err := SimulatedAnnealing(subsetSize(&calls), X, y, tt.controlRate, tt.iterations)
			var cfgErr *errors.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.param, cfgErr.Param)
			assert.Zero(t, calls)
		})
	}
}

func TestSimulatedAnnealingScorerErrorPropagates(t *testing.T) {
	X, y := testData(3, 4)
	boom := errors.New("scorer failed")
	fail := func(*Table, *mat.VecDense) (float64, error) { return 0, boom }

	res, err := SimulatedAnnealing(fail, X, y, 1, 10, WithSeed(1), WithLogger(log.NewNopLogger()))
	assert.Nil(t, res)
	assert.Equal(t, boom, err)
}

func TestSimulatedAnnealingScoreCache(t *testing.T) {
	X, y := testData(3, 4)
	obs := &recordingObserver{}
	calls := 0

	_, err := SimulatedAnnealing(subsetSize(&calls), X, y, 1, 200,
		WithSeed(8), WithScoreCache(64), WithObserver(obs), WithLogger(log.NewNopLogger()))
	require.NoError(t, err)

	// 4列の非空部分集合は15通りしかない
	assert.LessOrEqual(t, calls, 15)
	assert.Equal(t, calls, obs.evaluations)
	assert.Positive(t, obs.cached)
}

func TestSimulatedAnnealingIndices(t *testing.T) {
	X, y := testData(4, 10)
	calls := 0

	idx, err := SimulatedAnnealingIndices(subsetSize(&calls), X, y, 1, 30, WithSeed(2), WithLogger(log.NewNopLogger()))
	require.NoError(t, err)

	res, err := SimulatedAnnealing(subsetSize(&calls), X, y, 1, 30, WithSeed(2), WithLogger(log.NewNopLogger()))
	require.NoError(t, err)
	assert.Equal(t, res.Indices(), idx)
}

func TestAcceptProbability(t *testing.T) {
	// 最初の反復では常に採用される
	assert.Equal(t, 1.0, acceptProbability(0, 1, 12, 10))
	assert.InDelta(t, math.Exp(-0.4), acceptProbability(2, 1, 12, 10), 1e-12)
	assert.InDelta(t, math.Exp(-0.04), acceptProbability(2, 10, 12, 10), 1e-12)
}
