package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデル・セレクタのインターフェース
type Fitter interface {
	// Fit は訓練データ X と目的変数 y で学習する
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// LinearModel は係数を公開する線形モデルのインターフェース。
// 係数ベースの「最弱列」スコアラーはこのインターフェースに依存する
type LinearModel interface {
	Fitter
	Predictor
	// GetWeights は学習された重み（係数）を返す
	GetWeights() []float64
	// GetIntercept は学習された切片を返す
	GetIntercept() float64
	// Score は決定係数（R²）を計算する
	Score(X, y mat.Matrix) (float64, error)
}
