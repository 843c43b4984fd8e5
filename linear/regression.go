package linear

import (
	"fmt"

	"github.com/YuminosukeSato/featsel/core/model"
	"github.com/YuminosukeSato/featsel/core/parallel"
	"github.com/YuminosukeSato/featsel/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// 並列処理の閾値（この値以下の行数では逐次処理を使用）
const defaultParallelThreshold = 1000

// LinearRegression は最小二乗法による線形回帰モデル。
// 特徴量選択の組み込みスコアラーが部分集合ごとにフィットする
type LinearRegression struct {
	model.BaseEstimator
	Weights   *mat.VecDense // 重み（係数）
	Intercept float64       // 切片
	NFeatures int           // 特徴量の数

	fitIntercept      bool
	parallelThreshold int
}

var _ model.LinearModel = (*LinearRegression)(nil)

// NewLinearRegression は新しい線形回帰モデルを作成する
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		fitIntercept:      true,
		parallelThreshold: defaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit はモデルを訓練データで学習させる。
// 正規方程式 (X^T X) w = X^T y をコレスキー分解で解き、失敗した場合はQR分解の最小二乗解にフォールバックする
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	lr.Reset()

	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}

	offset := 0
	if lr.fitIntercept {
		offset = 1
	}
	p := c + offset

	// 切片項のために X に 1 の列を追加
	design := mat.NewDense(r, p, nil)
	parallel.ParallelizeWithThreshold(r, lr.parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			if offset == 1 {
				design.Set(i, 0, 1.0)
			}
			for j := 0; j < c; j++ {
				design.Set(i, j+offset, X.At(i, j))
			}
		}
	})

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	coef, err := solveLeastSquares(design, yVec)
	if err != nil {
		return errors.NewModelError("LinearRegression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}
	if err := errors.CheckNumericalStability("LinearRegression.Fit", coef.RawVector().Data, 0); err != nil {
		return err
	}

	lr.NFeatures = c
	lr.Intercept = 0
	if offset == 1 {
		lr.Intercept = coef.AtVec(0)
	}
	lr.Weights = mat.NewVecDense(c, nil)
	for j := 0; j < c; j++ {
		lr.Weights.SetVec(j, coef.AtVec(j+offset))
	}

	lr.SetFitted()
	return nil
}

func solveLeastSquares(design *mat.Dense, y *mat.VecDense) (*mat.VecDense, error) {
	r, p := design.Dims()
	// 行数が係数の数より少ない場合は解が一意に定まらない
	if r < p {
		return nil, errors.ErrSingularMatrix
	}

	var xtx mat.SymDense
	xtx.SymOuterK(1, design.T())

	var xty mat.VecDense
	xty.MulVec(design.T(), y)

	var chol mat.Cholesky
	coef := mat.NewVecDense(p, nil)
	if chol.Factorize(&xtx) {
		if err := chol.SolveVecTo(coef, &xty); err == nil {
			return coef, nil
		}
	}

	// 条件の悪い設計行列ではQR分解で解く
	var qr mat.QR
	qr.Factorize(design)
	var sol mat.Dense
	if err := qr.SolveTo(&sol, false, y); err != nil {
		return nil, err
	}
	return mat.VecDenseCopyOf(sol.ColView(0)), nil
}

// Predict は入力データに対する予測を行う
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "Predict")
	}

	r, c := X.Dims()
	if c != lr.NFeatures {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.NFeatures, c, 1)
	}

	// 予測: y = X * weights + intercept
	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := lr.Intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * lr.Weights.AtVec(j)
		}
		predictions.Set(i, 0, pred)
	}

	return predictions, nil
}

// GetWeights は学習された重み（係数）を返す
func (lr *LinearRegression) GetWeights() []float64 {
	if lr.Weights == nil {
		return nil
	}
	weights := make([]float64, lr.Weights.Len())
	for i := range weights {
		weights[i] = lr.Weights.AtVec(i)
	}
	return weights
}

// GetIntercept は学習された切片を返す
func (lr *LinearRegression) GetIntercept() float64 {
	if !lr.IsFitted() {
		return 0
	}
	return lr.Intercept
}

// Residuals は y - Predict(X) を返す
func (lr *LinearRegression) Residuals(X, y mat.Matrix) (*mat.VecDense, error) {
	yPred, err := lr.Predict(X)
	if err != nil {
		return nil, err
	}
	r, _ := y.Dims()
	pr, _ := yPred.Dims()
	if pr != r {
		return nil, errors.NewDimensionError("LinearRegression.Residuals", pr, r, 0)
	}
	res := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		res.SetVec(i, y.At(i, 0)-yPred.At(i, 0))
	}
	return res, nil
}

// Score はモデルの決定係数（R²）を計算する
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	if !lr.IsFitted() {
		return 0, errors.NewNotFittedError("LinearRegression", "Score")
	}

	res, err := lr.Residuals(X, y)
	if err != nil {
		return 0, err
	}

	r := res.Len()
	var yMean float64
	for i := 0; i < r; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(r)

	// 全変動 (TSS) と残差変動 (RSS)
	var tss, rss float64
	for i := 0; i < r; i++ {
		d := y.At(i, 0) - yMean
		tss += d * d
		rss += res.AtVec(i) * res.AtVec(i)
	}

	if tss == 0 {
		return 0, errors.Newf("total sum of squares is zero")
	}
	return 1 - rss/tss, nil
}

// String はモデルの文字列表現を返す
func (lr *LinearRegression) String() string {
	if !lr.IsFitted() {
		return fmt.Sprintf("LinearRegression(fit_intercept=%t)", lr.fitIntercept)
	}
	return fmt.Sprintf("LinearRegression(fit_intercept=%t, n_features=%d)", lr.fitIntercept, lr.NFeatures)
}
