package selection

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/YuminosukeSato/featsel/pkg/errors"
	"github.com/YuminosukeSato/featsel/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// mutationRate is the fraction of columns flipped per move, rounded up.
const mutationRate = 0.05

// AnnealingResult is the state simulated annealing ended in.
type AnnealingResult struct {
	// Mask has one entry per input column; at least one is true.
	Mask []bool
	// Score is the scorer value of Mask.
	Score float64
}

// Indices returns the positions where Mask is true, ascending.
func (r *AnnealingResult) Indices() []int {
	return maskIndices(r.Mask)
}

// SimulatedAnnealing searches feature masks stochastically. It starts from a
// random non-empty mask and, for every iteration i, flips ceil(5% of ncols)
// distinct columns. A move that lowers the score is always taken; any other
// move is taken with probability exp((-i/controlRate) * (new-cur)/cur), so
// worse moves become rarer as the search cools. Moves that would empty the
// mask are skipped.
//
// The random source comes from WithRand or WithSeed. Without either, every
// call draws a fresh time-seeded source.
//
// Errors: InvalidArgumentError for a nil scorer, a malformed X or y, or
// mismatched sample counts; ConfigurationError when controlRate <= 0 or
// iterations < 0. Scorer errors are returned unchanged.
func SimulatedAnnealing(score ScoreFn, X, y mat.Matrix, controlRate float64, iterations int, opts ...Option) (*AnnealingResult, error) {
	const op = "SimulatedAnnealing"
	table, target, err := validateInputs(op, score == nil, X, y)
	if err != nil {
		return nil, err
	}
	if err := checkAnnealing(op, controlRate, iterations); err != nil {
		return nil, err
	}
	return anneal(score, table, target, controlRate, iterations, newSettings(opts))
}

func checkAnnealing(op string, controlRate float64, iterations int) error {
	if !(controlRate > 0) || math.IsInf(controlRate, 0) {
		return errors.NewConfigurationError(op, "control_rate", controlRate, "control_rate must be a positive finite number")
	}
	if iterations < 0 {
		return errors.NewConfigurationError(op, "iterations", iterations, "iterations must be non-negative")
	}
	return nil
}

// SimulatedAnnealingIndices is SimulatedAnnealing returning the selected
// positions instead of the mask.
func SimulatedAnnealingIndices(score ScoreFn, X, y mat.Matrix, controlRate float64, iterations int, opts ...Option) ([]int, error) {
	res, err := SimulatedAnnealing(score, X, y, controlRate, iterations, opts...)
	if err != nil {
		return nil, err
	}
	return res.Indices(), nil
}

func anneal(score ScoreFn, X *Table, y *mat.VecDense, controlRate float64, iterations int, cfg *settings) (*AnnealingResult, error) {
	start := time.Now()
	samples, ncols := X.Dims()
	logger := cfg.logger.With(log.EngineKey, log.EngineAnnealing)
	rng := cfg.random()

	ev, err := newEvaluator(log.EngineAnnealing, score, X, y, cfg)
	if err != nil {
		return nil, err
	}

	mask := initialMask(rng, ncols)
	cur, err := ev.eval(maskIndices(mask))
	if err != nil {
		return nil, err
	}

	flips := int(math.Ceil(float64(ncols) * mutationRate))
	accepted, skipped := 0, 0
	debug := logger.Enabled(context.Background(), log.LevelDebug)

	for i := 0; i < iterations; i++ {
		next := append([]bool(nil), mask...)
		for _, j := range rng.Perm(ncols)[:flips] {
			next[j] = !next[j]
		}
		cols := maskIndices(next)
		if len(cols) == 0 {
			skipped++
			continue
		}

		s, err := ev.eval(cols)
		if err != nil {
			return nil, err
		}

		take, p := true, 1.0
		if !better(s, cur) {
			p = acceptProbability(i, controlRate, s, cur)
			u := rng.Float64()
			take = cur != 0 && u <= p
		}
		if take {
			mask, cur = next, s
			accepted++
		}
		cfg.emit(log.EngineAnnealing, Step{Round: i, Feature: -1, Score: s, Accepted: take})

		if debug {
			logger.Debug("move evaluated",
				log.IterationKey, i,
				log.ScoreKey, s,
				log.AcceptProbabilityKey, p,
				log.AcceptedKey, take,
			)
		}
	}

	res := &AnnealingResult{Mask: mask, Score: cur}
	logger.Info("search finished",
		log.SamplesKey, samples,
		log.FeaturesKey, ncols,
		log.SelectedKey, len(res.Indices()),
		log.IterationKey, iterations,
		log.EvaluationsKey, ev.evaluations,
		log.CacheHitsKey, ev.hits,
		"selection.accepted_moves", accepted,
		"selection.skipped_moves", skipped,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return res, nil
}

// initialMask draws each column with probability 1/2 until at least one is set.
func initialMask(rng *rand.Rand, n int) []bool {
	mask := make([]bool, n)
	for {
		nonEmpty := false
		for j := range mask {
			mask[j] = rng.IntN(2) == 1
			nonEmpty = nonEmpty || mask[j]
		}
		if nonEmpty {
			return mask
		}
	}
}

// acceptProbability is the Metropolis-style probability of taking a move
// that does not improve cur. It is undefined (NaN or Inf) when cur is 0.
func acceptProbability(iteration int, controlRate, next, cur float64) float64 {
	return math.Exp((-float64(iteration) / controlRate) * ((next - cur) / cur))
}
