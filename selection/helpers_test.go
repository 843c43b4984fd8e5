package selection

import (
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"
)

// testData returns an n x c matrix with distinct entries and a target of n rows.
func testData(n, c int) (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(n, c, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < c; j++ {
			X.Set(i, j, float64(i*c+j))
		}
		y.SetVec(i, float64(i))
	}
	return X, y
}

// weightScorer scores a subset as 100 minus the sum of its column weights,
// so adding a heavier column lowers the score more.
func weightScorer(weights map[string]float64, calls *int) ScoreFn {
	return func(X *Table, _ *mat.VecDense) (float64, error) {
		*calls++
		s := 100.0
		for _, name := range X.Names() {
			s -= weights[name]
		}
		return s, nil
	}
}

type recordingObserver struct {
	mu          sync.Mutex
	evaluations int
	cached      int
	steps       []Step
}

func (o *recordingObserver) ObserveEvaluation(_ string, _ time.Duration, cached bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if cached {
		o.cached++
		return
	}
	o.evaluations++
}

func (o *recordingObserver) ObserveStep(_ string, step Step) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.steps = append(o.steps, step)
}
