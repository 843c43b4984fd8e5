package model

import "gonum.org/v1/gonum/mat"

// Transformer は教師なしのデータ変換のインターフェース（スケーラー、分散しきい値など）
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// Selector は教師ありの特徴量選択器のインターフェース。
// Fit で選ばれた列の位置を Support が返し、Transform はその列だけを残す
type Selector interface {
	Fitter

	// Transform は選択された列だけを含む行列を返す
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X, y mat.Matrix) (mat.Matrix, error)

	// Support は選択された列の位置を返す
	Support() []int
}
