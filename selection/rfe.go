package selection

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/YuminosukeSato/featsel/pkg/errors"
	"github.com/YuminosukeSato/featsel/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// RecursiveFeatureElimination repeatedly asks weakest for the weakest of the
// remaining columns and drops it until nFeaturesToSelect columns are left.
// The number of eliminations is always ncols - nFeaturesToSelect.
//
// The survivors are returned as column names in their original order. For
// tables without caller-supplied names these are positional names ("0",
// "1", ...); Table.Indices maps them back to positions.
//
// Errors: InvalidArgumentError for a nil scorer, a malformed X or y,
// mismatched sample counts, or a scorer naming a column that is not among the
// remaining ones; ConfigurationError when nFeaturesToSelect is not in
// [1, ncols). Scorer errors are returned unchanged.
func RecursiveFeatureElimination(weakest WeakestColumnFn, X, y mat.Matrix, nFeaturesToSelect int, opts ...Option) ([]string, error) {
	const op = "RecursiveFeatureElimination"
	table, target, err := validateInputs(op, weakest == nil, X, y)
	if err != nil {
		return nil, err
	}

	if err := checkRFE(op, table, nFeaturesToSelect); err != nil {
		return nil, err
	}

	cols, err := eliminate(op, weakest, table, target, nFeaturesToSelect, newSettings(opts))
	if err != nil {
		return nil, err
	}
	return table.NamesOf(cols), nil
}

func checkRFE(op string, X *Table, nFeaturesToSelect int) error {
	_, ncols := X.Dims()
	if nFeaturesToSelect < 1 {
		return errors.NewConfigurationError(op, "n_features_to_select", nFeaturesToSelect, "n_features_to_select should be a positive number")
	}
	if nFeaturesToSelect >= ncols {
		return errors.NewConfigurationError(op, "n_features_to_select", nFeaturesToSelect,
			fmt.Sprintf("n_features_to_select must be less than the number of input features (%d)", ncols))
	}
	return nil
}

// eliminate returns the surviving positions in ascending order.
func eliminate(op string, weakest WeakestColumnFn, X *Table, y *mat.VecDense, keep int, cfg *settings) ([]int, error) {
	start := time.Now()
	samples, ncols := X.Dims()
	logger := cfg.logger.With(log.EngineKey, log.EngineRFE)

	remaining := make([]int, ncols)
	for j := range remaining {
		remaining[j] = j
	}

	for round := 0; len(remaining) > keep; round++ {
		subset := X.Columns(remaining)

		callStart := time.Now()
		name, err := weakest(subset, y)
		cfg.observer.ObserveEvaluation(log.EngineRFE, time.Since(callStart), false)
		if err != nil {
			return nil, err
		}

		pos, ok := subset.Index(name)
		if !ok {
			return nil, errors.NewInvalidArgumentError(op, "scorer", errors.InvalidScorerResult,
				fmt.Sprintf("scorer returned %q, which is not one of the %d remaining columns", name, len(remaining)))
		}
		feature := remaining[pos]
		remaining = append(remaining[:pos], remaining[pos+1:]...)
		cfg.emit(log.EngineRFE, Step{Round: round, Feature: feature, Score: math.NaN(), Accepted: true})

		if logger.Enabled(context.Background(), log.LevelDebug) {
			logger.Debug("column eliminated",
				log.RoundKey, round,
				log.FeatureKey, name,
			)
		}
	}

	logger.Info("search finished",
		log.SamplesKey, samples,
		log.FeaturesKey, ncols,
		log.SelectedKey, len(remaining),
		log.EvaluationsKey, ncols-len(remaining),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return remaining, nil
}
