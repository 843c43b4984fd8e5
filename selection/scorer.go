package selection

import (
	"time"

	"gonum.org/v1/gonum/mat"
)

// ScoreFn evaluates a candidate feature subset. X holds only the candidate
// columns, in the order the engine chose them. Lower scores are better.
//
// Errors returned by a ScoreFn abort the search and reach the caller unchanged.
type ScoreFn func(X *Table, y *mat.VecDense) (float64, error)

// WeakestColumnFn names the weakest column of X. The name must be one of
// X.Names(); recursive elimination removes it and asks again.
type WeakestColumnFn func(X *Table, y *mat.VecDense) (string, error)

// Step is one entry of a search trace.
//
// Forward selection records the best candidate of every round, with Accepted
// false for the round that triggered the stop. Recursive elimination records
// every eliminated column with Accepted true and a NaN Score. Simulated
// annealing records every evaluated move with Feature set to -1.
type Step struct {
	Round    int
	Feature  int
	Score    float64
	Accepted bool
}

// Observer receives search progress. Implementations must not block; they
// are called synchronously between scorer calls.
type Observer interface {
	// ObserveEvaluation is called after every scorer call. cached is true
	// when the result came from the score cache and the scorer was skipped.
	ObserveEvaluation(engine string, elapsed time.Duration, cached bool)

	// ObserveStep is called once per trace entry.
	ObserveStep(engine string, step Step)
}

type nopObserver struct{}

func (nopObserver) ObserveEvaluation(string, time.Duration, bool) {}
func (nopObserver) ObserveStep(string, Step)                      {}
