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

const (
	stopMaxFeatures = "max_features"
	stopExhausted   = "columns_exhausted"
	stopImprovement = "insufficient_improvement"
	stopIncrease    = "score_increase"
)

// ForwardSelection greedily grows a feature set. Every round scores the
// current selection plus each remaining column, in ascending column order,
// and accepts the column with the lowest score (the first one on ties).
//
// From the second round on, the search stops without accepting the round's
// best column when at least minFeatures columns are selected and the stopping
// rule fires. By default the rule is StopOnRelativeImprovement with a 5%
// threshold. The search also ends after maxFeatures rounds or when no column
// is left.
//
// The returned positions are in acceptance order.
//
// Errors: InvalidArgumentError for a nil scorer, a malformed X or y, or
// mismatched sample counts; ConfigurationError when minFeatures < 1,
// minFeatures > maxFeatures, or the improvement threshold is outside [0, 1).
// Scorer errors are returned unchanged.
func ForwardSelection(score ScoreFn, X, y mat.Matrix, minFeatures, maxFeatures int, opts ...Option) ([]int, error) {
	const op = "ForwardSelection"
	table, target, err := validateInputs(op, score == nil, X, y)
	if err != nil {
		return nil, err
	}
	cfg := newSettings(opts)
	if err := checkForward(op, minFeatures, maxFeatures, cfg); err != nil {
		return nil, err
	}
	return forwardSelect(score, table, target, minFeatures, maxFeatures, cfg)
}

func checkForward(op string, minFeatures, maxFeatures int, cfg *settings) error {
	if minFeatures < 1 {
		return errors.NewConfigurationError(op, "min_features", minFeatures, "min_features should be a positive number")
	}
	if minFeatures > maxFeatures {
		return errors.NewConfigurationError(op, "max_features", maxFeatures,
			fmt.Sprintf("max_features should be greater or equal to min_features (%d)", minFeatures))
	}
	if cfg.threshold < 0 || cfg.threshold >= 1 || math.IsNaN(cfg.threshold) {
		return errors.NewConfigurationError(op, "improvement_threshold", cfg.threshold, "must be in [0, 1)")
	}
	return nil
}

func forwardSelect(score ScoreFn, X *Table, y *mat.VecDense, minFeatures, maxFeatures int, cfg *settings) ([]int, error) {
	start := time.Now()
	samples, ncols := X.Dims()
	logger := cfg.logger.With(log.EngineKey, log.EngineForward)

	rounds := maxFeatures
	if rounds > ncols {
		errors.Warn(errors.NewSearchWarning(log.EngineForward, "max_features",
			fmt.Sprintf("max_features=%d exceeds the %d available columns; searching at most %d rounds", maxFeatures, ncols, ncols)))
		rounds = ncols
	}

	ev, err := newEvaluator(log.EngineForward, score, X, y, cfg)
	if err != nil {
		return nil, err
	}

	selected := make([]int, 0, rounds)
	remaining := make([]int, ncols)
	for j := range remaining {
		remaining[j] = j
	}

	var prevBest float64
	stopReason := stopMaxFeatures
	if rounds == ncols && maxFeatures > ncols {
		stopReason = stopExhausted
	}
	candidate := make([]int, 0, rounds)

	for round := 0; round < rounds; round++ {
		candidate = append(candidate[:0], selected...)
		candidate = append(candidate, 0)
		last := len(candidate) - 1

		bestPos := -1
		best := math.NaN()
		for pos, c := range remaining {
			candidate[last] = c
			s, err := ev.eval(candidate)
			if err != nil {
				return nil, err
			}
			if bestPos < 0 || better(s, best) {
				bestPos, best = pos, s
			}
		}
		feature := remaining[bestPos]

		if round > 0 && len(selected) >= minFeatures {
			if reason, stop := cfg.shouldStop(prevBest, best); stop {
				cfg.emit(log.EngineForward, Step{Round: round, Feature: feature, Score: best})
				if logger.Enabled(context.Background(), log.LevelDebug) {
					logger.Debug("round rejected",
						log.RoundKey, round,
						log.FeatureKey, X.Name(feature),
						log.ScoreKey, best,
					)
				}
				stopReason = reason
				break
			}
		}

		selected = append(selected, feature)
		remaining = append(remaining[:bestPos], remaining[bestPos+1:]...)
		prevBest = best
		cfg.emit(log.EngineForward, Step{Round: round, Feature: feature, Score: best, Accepted: true})

		if logger.Enabled(context.Background(), log.LevelDebug) {
			logger.Debug("round accepted",
				log.RoundKey, round,
				log.FeatureKey, X.Name(feature),
				log.ScoreKey, best,
			)
		}
	}

	logger.Info("search finished",
		log.SamplesKey, samples,
		log.FeaturesKey, ncols,
		log.SelectedKey, len(selected),
		log.EvaluationsKey, ev.evaluations,
		log.CacheHitsKey, ev.hits,
		log.StopReasonKey, stopReason,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return selected, nil
}

// shouldStop applies the stopping rule to the previous and current best scores.
func (s *settings) shouldStop(prevBest, best float64) (string, bool) {
	switch s.rule {
	case StopOnIncrease:
		return stopIncrease, best > prevBest
	default:
		// 0 からの相対改善は、負のスコアへ下がったときだけ無限大とみなす
		if prevBest == 0 {
			return stopImprovement, best >= 0
		}
		return stopImprovement, (prevBest-best)/math.Abs(prevBest) <= s.threshold
	}
}
