package selection

import (
	"math"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"gonum.org/v1/gonum/mat"
)

// evaluator runs a ScoreFn on column subsets of one table, with optional
// memoisation and observer callbacks.
type evaluator struct {
	engine   string
	score    ScoreFn
	X        *Table
	y        *mat.VecDense
	cache    *lru.Cache[string, float64]
	observer Observer

	evaluations int
	hits        int
}

func newEvaluator(engine string, score ScoreFn, X *Table, y *mat.VecDense, cfg *settings) (*evaluator, error) {
	ev := &evaluator{
		engine:   engine,
		score:    score,
		X:        X,
		y:        y,
		observer: cfg.observer,
	}
	if cfg.cacheSize > 0 {
		cache, err := lru.New[string, float64](cfg.cacheSize)
		if err != nil {
			return nil, err
		}
		ev.cache = cache
	}
	return ev, nil
}

// eval scores the given columns. Scorer errors are returned as is.
func (e *evaluator) eval(cols []int) (float64, error) {
	var key string
	if e.cache != nil {
		key = subsetKey(cols)
		if s, ok := e.cache.Get(key); ok {
			e.hits++
			e.observer.ObserveEvaluation(e.engine, 0, true)
			return s, nil
		}
	}

	start := time.Now()
	s, err := e.score(e.X.Columns(cols), e.y)
	e.evaluations++
	e.observer.ObserveEvaluation(e.engine, time.Since(start), false)
	if err != nil {
		return 0, err
	}

	if e.cache != nil {
		e.cache.Add(key, s)
	}
	return s, nil
}

func subsetKey(cols []int) string {
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(c))
	}
	return b.String()
}

// better reports whether score s beats the incumbent. NaN never wins and
// always loses to a number.
func better(s, incumbent float64) bool {
	if math.IsNaN(s) {
		return false
	}
	return math.IsNaN(incumbent) || s < incumbent
}
