// Package scoring は特徴量選択エンジン向けの組み込みスコアラーを提供する。
//
// ScoreFn 型のスコアラーは部分集合ごとに最小二乗の線形回帰をフィットし、
// 「小さいほど良い」値を返す。WeakestColumnFn 型のスコアラーは係数から最も弱い列の名前を返す。
package scoring

import (
	"math"

	"github.com/YuminosukeSato/featsel/linear"
	"github.com/YuminosukeSato/featsel/metrics"
	"github.com/YuminosukeSato/featsel/pkg/errors"
	"github.com/YuminosukeSato/featsel/preprocessing"
	"github.com/YuminosukeSato/featsel/selection"
	"gonum.org/v1/gonum/mat"
)

var (
	_ selection.ScoreFn         = ResidualSumOfSquares
	_ selection.ScoreFn         = MeanSquaredError
	_ selection.ScoreFn         = OneMinusR2
	_ selection.WeakestColumnFn = WeakestCoefficient
)

// fitPredict は X, y に線形回帰をフィットし、学習データ上の予測値を返す
func fitPredict(op string, X *selection.Table, y *mat.VecDense) (mat.Vector, error) {
	lr := linear.NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		return nil, errors.Wrap(err, op)
	}
	pred, err := lr.Predict(X)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	r, _ := pred.Dims()
	out := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		out.SetVec(i, pred.At(i, 0))
	}
	return out, nil
}

func checked(op string, score float64) (float64, error) {
	if err := errors.CheckScalar(op, score, 0); err != nil {
		return 0, err
	}
	return score, nil
}

// ResidualSumOfSquares は最小二乗フィットの残差平方和を返す
func ResidualSumOfSquares(X *selection.Table, y *mat.VecDense) (float64, error) {
	const op = "scoring.ResidualSumOfSquares"
	pred, err := fitPredict(op, X, y)
	if err != nil {
		return 0, err
	}
	rss, err := metrics.RSS(y, pred)
	if err != nil {
		return 0, errors.Wrap(err, op)
	}
	return checked(op, rss)
}

// MeanSquaredError は最小二乗フィットの学習データ上の平均二乗誤差を返す
func MeanSquaredError(X *selection.Table, y *mat.VecDense) (float64, error) {
	const op = "scoring.MeanSquaredError"
	pred, err := fitPredict(op, X, y)
	if err != nil {
		return 0, err
	}
	mse, err := metrics.MSE(y, pred)
	if err != nil {
		return 0, errors.Wrap(err, op)
	}
	return checked(op, mse)
}

// OneMinusR2 は 1 - R² を返す。y が定数の場合はエラー
func OneMinusR2(X *selection.Table, y *mat.VecDense) (float64, error) {
	const op = "scoring.OneMinusR2"
	pred, err := fitPredict(op, X, y)
	if err != nil {
		return 0, err
	}
	r2, err := metrics.R2Score(y, pred)
	if err != nil {
		return 0, errors.Wrap(err, op)
	}
	return checked(op, 1-r2)
}

// WeakestCoefficient は符号付き係数が最小の列の名前を返す。
// 同値の場合は左側の列を選ぶ
func WeakestCoefficient(X *selection.Table, y *mat.VecDense) (string, error) {
	const op = "scoring.WeakestCoefficient"
	weights, err := coefficients(op, X, y)
	if err != nil {
		return "", err
	}
	return X.Name(argmin(weights, func(w float64) float64 { return w })), nil
}

// WeakestAbsCoefficient は係数の絶対値が最小の列の名前を返すスコアラーを作る。
// standardize が true の場合、フィット前に各列を標準化して単位の違いを打ち消す
func WeakestAbsCoefficient(standardize bool) selection.WeakestColumnFn {
	const op = "scoring.WeakestAbsCoefficient"
	return func(X *selection.Table, y *mat.VecDense) (string, error) {
		var design mat.Matrix = X
		if standardize {
			scaled, err := preprocessing.NewStandardScalerDefault().FitTransform(X)
			if err != nil {
				return "", errors.Wrap(err, op)
			}
			design = scaled
		}

		weights, err := coefficients(op, design, y)
		if err != nil {
			return "", err
		}
		return X.Name(argmin(weights, math.Abs)), nil
	}
}

func coefficients(op string, X mat.Matrix, y *mat.VecDense) ([]float64, error) {
	lr := linear.NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		return nil, errors.Wrap(err, op)
	}
	weights := lr.GetWeights()
	if err := errors.CheckNumericalStability(op, weights, 0); err != nil {
		return nil, err
	}
	return weights, nil
}

func argmin(values []float64, key func(float64) float64) int {
	best := 0
	for j := 1; j < len(values); j++ {
		if key(values[j]) < key(values[best]) {
			best = j
		}
	}
	return best
}
