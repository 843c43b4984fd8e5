package preprocessing

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/featsel/core/model"
	"github.com/YuminosukeSato/featsel/dataset"
	"github.com/YuminosukeSato/featsel/pkg/errors"
	"github.com/YuminosukeSato/featsel/pkg/log"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// VarianceThresholding は分散がしきい値を超える列の位置を昇順で返す。
//
// 分散は不偏分散（n-1 で割る）で、欠損値（NaN）は除いて計算する。
// 値が2つ未満の数値列は分散が定義できないため除外される。
// カテゴリ列は分散を持たないので常に残す。
//
// 使用例:
//
//	keep, err := preprocessing.VarianceThresholding(frame, 0)
func VarianceThresholding(frame *dataset.Frame, threshold float64) ([]int, error) {
	const op = "VarianceThresholding"
	if frame == nil {
		return nil, errors.NewInvalidArgumentError(op, "frame", errors.InvalidType, "frame must not be nil")
	}
	rows, cols := frame.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.NewInvalidArgumentError(op, "frame", errors.InvalidShape, "frame must be a non-empty 2-d table")
	}
	if err := checkThreshold(op, threshold); err != nil {
		return nil, err
	}

	keep := make([]int, 0, cols)
	for j := 0; j < cols; j++ {
		c := frame.Column(j)
		if c.Kind == dataset.Categorical || sampleVariance(c.Values) > threshold {
			keep = append(keep, j)
		}
	}

	log.GetLogger().Debug("variance thresholding finished",
		log.EngineKey, log.EngineVariance,
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.ThresholdKey, threshold,
		log.SelectedKey, len(keep),
	)
	return keep, nil
}

// VarianceThresholdingMatrix は数値行列に対する VarianceThresholding
func VarianceThresholdingMatrix(X mat.Matrix, threshold float64) ([]int, error) {
	vt := NewVarianceThreshold(threshold)
	if err := vt.Fit(X); err != nil {
		return nil, err
	}
	return vt.Support(), nil
}

func checkThreshold(op string, threshold float64) error {
	if threshold < 0 || math.IsNaN(threshold) {
		return errors.NewConfigurationError(op, "threshold", threshold, "threshold must be non-negative")
	}
	return nil
}

// sampleVariance は NaN を除いた不偏分散を返す。値が2つ未満なら NaN
func sampleVariance(values []float64) float64 {
	present := values
	for _, v := range values {
		if math.IsNaN(v) {
			present = make([]float64, 0, len(values))
			for _, w := range values {
				if !math.IsNaN(w) {
					present = append(present, w)
				}
			}
			break
		}
	}
	if len(present) < 2 {
		return math.NaN()
	}
	return stat.Variance(present, nil)
}

// VarianceThreshold は分散の小さい列を取り除く変換器
type VarianceThreshold struct {
	model.BaseEstimator

	// Threshold はこの値以下の分散を持つ列を除外する
	Threshold float64

	// Variances は各列の不偏分散（Fit後に設定）
	Variances []float64

	// NFeatures は特徴量の数
	NFeatures int

	support []int
}

var _ model.Transformer = (*VarianceThreshold)(nil)

// NewVarianceThreshold は新しいVarianceThresholdを作成する
func NewVarianceThreshold(threshold float64) *VarianceThreshold {
	return &VarianceThreshold{Threshold: threshold}
}

// Fit は各列の分散を計算し、残す列を決める
func (v *VarianceThreshold) Fit(X mat.Matrix) error {
	const op = "VarianceThreshold.Fit"
	v.Reset()

	if X == nil {
		return errors.NewInvalidArgumentError(op, "X", errors.InvalidType, "X must be a matrix, got nil")
	}
	if d, ok := X.(*mat.Dense); ok && (d == nil || d.IsEmpty()) {
		return errors.NewInvalidArgumentError(op, "X", errors.InvalidShape, "X must be a non-empty 2-d array")
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewInvalidArgumentError(op, "X", errors.InvalidShape, "X must be a non-empty 2-d array")
	}
	if err := checkThreshold(op, v.Threshold); err != nil {
		return err
	}

	v.NFeatures = c
	v.Variances = make([]float64, c)
	v.support = make([]int, 0, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		v.Variances[j] = sampleVariance(col)
		if v.Variances[j] > v.Threshold {
			v.support = append(v.support, j)
		}
	}

	v.SetFitted()
	return nil
}

// Transform は残す列だけを含む行列を返す
func (v *VarianceThreshold) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !v.IsFitted() {
		return nil, errors.NewNotFittedError("VarianceThreshold", "Transform")
	}
	r, c := X.Dims()
	if c != v.NFeatures {
		return nil, errors.NewDimensionError("VarianceThreshold.Transform", v.NFeatures, c, 1)
	}
	if len(v.support) == 0 {
		return nil, errors.NewValueError("VarianceThreshold.Transform",
			fmt.Sprintf("no feature meets the variance threshold %g", v.Threshold))
	}

	result := mat.NewDense(r, len(v.support), nil)
	col := make([]float64, r)
	for k, j := range v.support {
		mat.Col(col, j, X)
		result.SetCol(k, col)
	}
	return result, nil
}

// FitTransform は学習と変換を同時に実行する
func (v *VarianceThreshold) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := v.Fit(X); err != nil {
		return nil, err
	}
	return v.Transform(X)
}

// Support は残す列の位置を昇順で返す
func (v *VarianceThreshold) Support() []int {
	out := make([]int, len(v.support))
	copy(out, v.support)
	return out
}
