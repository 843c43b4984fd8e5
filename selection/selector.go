package selection

import (
	"github.com/YuminosukeSato/featsel/core/model"
	"github.com/YuminosukeSato/featsel/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Selector は探索エンジンを Fit/Transform 形式で包むセレクタ。
// Fit で探索を実行し、Transform は選ばれた列だけを残す
type Selector struct {
	model.BaseEstimator

	name          string
	search        func(X *Table, y *mat.VecDense, cfg *settings) ([]int, error)
	check         func(X *Table, cfg *settings) error
	opts          []Option
	scorerMissing bool

	// 学習結果
	support   []int
	names     []string
	nFeatures int
	history   []Step
	score     float64
}

var _ model.Selector = (*Selector)(nil)

// NewForwardSelector は ForwardSelection を実行するセレクタを作成する
//
// 使用例:
//
//	sel := selection.NewForwardSelector(scoring.ResidualSumOfSquares, 1, 5)
//	if err := sel.Fit(X, y); err != nil {
//	    return err
//	}
//	XSel, err := sel.Transform(X)
func NewForwardSelector(score ScoreFn, minFeatures, maxFeatures int, opts ...Option) *Selector {
	const op = "ForwardSelector.Fit"
	return &Selector{
		name:          "ForwardSelector",
		opts:          opts,
		scorerMissing: score == nil,
		check: func(_ *Table, cfg *settings) error {
			return checkForward(op, minFeatures, maxFeatures, cfg)
		},
		search: func(X *Table, y *mat.VecDense, cfg *settings) ([]int, error) {
			return forwardSelect(score, X, y, minFeatures, maxFeatures, cfg)
		},
	}
}

// NewRFESelector は RecursiveFeatureElimination を実行するセレクタを作成する
func NewRFESelector(weakest WeakestColumnFn, nFeaturesToSelect int, opts ...Option) *Selector {
	const op = "RFESelector.Fit"
	return &Selector{
		name:          "RFESelector",
		opts:          opts,
		scorerMissing: weakest == nil,
		check: func(X *Table, _ *settings) error {
			return checkRFE(op, X, nFeaturesToSelect)
		},
		search: func(X *Table, y *mat.VecDense, cfg *settings) ([]int, error) {
			return eliminate(op, weakest, X, y, nFeaturesToSelect, cfg)
		},
	}
}

// NewAnnealingSelector は SimulatedAnnealing を実行するセレクタを作成する。
// 再現性が必要な場合は WithSeed を渡すこと
func NewAnnealingSelector(score ScoreFn, controlRate float64, iterations int, opts ...Option) *Selector {
	const op = "AnnealingSelector.Fit"
	s := &Selector{
		name:          "AnnealingSelector",
		opts:          opts,
		scorerMissing: score == nil,
	}
	s.check = func(_ *Table, _ *settings) error {
		return checkAnnealing(op, controlRate, iterations)
	}
	s.search = func(X *Table, y *mat.VecDense, cfg *settings) ([]int, error) {
		res, err := anneal(score, X, y, controlRate, iterations, cfg)
		if err != nil {
			return nil, err
		}
		s.score = res.Score
		return res.Indices(), nil
	}
	return s
}

// Fit は X, y に対して探索を実行し、選ばれた列を記録する。
// 失敗した場合、以前の学習結果は破棄される
func (s *Selector) Fit(X, y mat.Matrix) error {
	s.Reset()
	s.support, s.names, s.history, s.nFeatures = nil, nil, nil, 0
	s.score = 0

	op := s.name + ".Fit"
	table, target, err := validateInputs(op, s.scorerMissing, X, y)
	if err != nil {
		return err
	}

	var history []Step
	opts := append(append([]Option(nil), s.opts...), WithStepHook(func(st Step) {
		history = append(history, st)
	}))
	cfg := newSettings(opts)
	if err := s.check(table, cfg); err != nil {
		return err
	}

	support, err := s.search(table, target, cfg)
	if err != nil {
		return err
	}

	_, s.nFeatures = table.Dims()
	s.support = support
	s.names = table.NamesOf(support)
	s.history = history
	s.SetFitted()
	return nil
}

// Transform は選ばれた列だけを Fit 時の順序で含むテーブルを返す
func (s *Selector) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError(s.name, "Transform")
	}
	table, err := asTable(s.name+".Transform", X)
	if err != nil {
		return nil, err
	}
	if _, c := table.Dims(); c != s.nFeatures {
		return nil, errors.NewDimensionError(s.name+".Transform", s.nFeatures, c, 1)
	}
	return table.Columns(s.support), nil
}

// FitTransform はFitとTransformを同時に実行する
func (s *Selector) FitTransform(X, y mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X, y); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// Support は選ばれた列の位置を返す。
// 前進選択では採用順、それ以外は昇順
func (s *Selector) Support() []int {
	return append([]int(nil), s.support...)
}

// SupportNames は選ばれた列の名前を Support と同じ順序で返す
func (s *Selector) SupportNames() []string {
	return append([]string(nil), s.names...)
}

// History は直近の Fit の探索履歴を返す
func (s *Selector) History() []Step {
	return append([]Step(nil), s.history...)
}

// BestScore は焼きなましセレクタの最終スコアを返す。他のセレクタでは 0
func (s *Selector) BestScore() float64 {
	return s.score
}
