package selection

import (
	"math/rand/v2"
	"time"

	"github.com/YuminosukeSato/featsel/pkg/log"
)

// StoppingRule decides when forward selection stops adding features.
type StoppingRule int

const (
	// StopOnRelativeImprovement stops once the best score of a round improves
	// on the previous round by no more than the improvement threshold,
	// relative to the previous score.
	StopOnRelativeImprovement StoppingRule = iota

	// StopOnIncrease stops once the best score of a round is worse than the
	// previous round's.
	StopOnIncrease
)

func (r StoppingRule) String() string {
	switch r {
	case StopOnRelativeImprovement:
		return "relative_improvement"
	case StopOnIncrease:
		return "score_increase"
	default:
		return "unknown"
	}
}

// DefaultImprovementThreshold is the relative improvement below which forward
// selection stops.
const DefaultImprovementThreshold = 0.05

// Option configures a single search call.
type Option func(*settings)

type settings struct {
	logger    log.Logger
	rng       *rand.Rand
	seed      *uint64
	cacheSize int
	rule      StoppingRule
	threshold float64
	observer  Observer
	onStep    []func(Step)
}

func newSettings(opts []Option) *settings {
	s := &settings{
		logger:    log.GetLogger(),
		rule:      StopOnRelativeImprovement,
		threshold: DefaultImprovementThreshold,
		observer:  nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithLogger sets the logger for the search. Defaults to log.GetLogger().
func WithLogger(logger log.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRand sets the random source for simulated annealing. It takes
// precedence over WithSeed.
func WithRand(rng *rand.Rand) Option {
	return func(s *settings) {
		s.rng = rng
	}
}

// WithSeed makes simulated annealing reproducible: the same seed on the same
// data and scorer yields the same result.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = &seed
	}
}

// WithScoreCache memoises scorer results per column subset in an LRU cache
// holding at most size entries. The cache lives for one call. Only use it
// with deterministic scorers. size <= 0 disables caching.
func WithScoreCache(size int) Option {
	return func(s *settings) {
		s.cacheSize = size
	}
}

// WithStoppingRule selects the forward-selection stopping rule.
func WithStoppingRule(rule StoppingRule) Option {
	return func(s *settings) {
		s.rule = rule
	}
}

// WithImprovementThreshold sets the relative improvement threshold used by
// StopOnRelativeImprovement. Must be in [0, 1).
func WithImprovementThreshold(threshold float64) Option {
	return func(s *settings) {
		s.threshold = threshold
	}
}

// WithObserver reports search progress to o.
func WithObserver(o Observer) Option {
	return func(s *settings) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithStepHook calls fn for every trace entry. Several hooks may be set.
func WithStepHook(fn func(Step)) Option {
	return func(s *settings) {
		if fn != nil {
			s.onStep = append(s.onStep, fn)
		}
	}
}

// random returns the caller's source, a seeded PCG, or a fresh time-seeded PCG.
func (s *settings) random() *rand.Rand {
	if s.rng != nil {
		return s.rng
	}
	if s.seed != nil {
		return rand.New(rand.NewPCG(*s.seed, *s.seed))
	}
	now := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(now, now^0x9e3779b97f4a7c15))
}

func (s *settings) emit(engine string, step Step) {
	s.observer.ObserveStep(engine, step)
	for _, fn := range s.onStep {
		fn(step)
	}
}
