package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestRegressionMetrics(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0})
	yPred := mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5})

	tests := []struct {
		name string
		fn   func(a, b mat.Vector) (float64, error)
		want float64
	}{
		{"RSS", RSS, 1.0},
		{"MSE", MSE, 0.25}, // ((0.5)^2 * 4) / 4
		{"RMSE", RMSE, 0.5},
		{"MAE", MAE, 0.5},
		{"R2Score", R2Score, 0.8}, // 1 - 1.0/5.0
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(yTrue, yPred)
			if err != nil {
				t.Fatalf("%s() error = %v", tt.name, err)
			}
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("%s() = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestRegressionMetricsErrors(t *testing.T) {
	tests := []struct {
		name  string
		yTrue mat.Vector
		yPred mat.Vector
	}{
		{
			name:  "dimension mismatch",
			yTrue: mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred: mat.NewVecDense(2, []float64{1.0, 2.0}),
		},
		{
			name:  "empty vectors",
			yTrue: &mat.VecDense{},
			yPred: &mat.VecDense{},
		},
	}

	fns := map[string]func(a, b mat.Vector) (float64, error){
		"RSS": RSS, "MSE": MSE, "RMSE": RMSE, "MAE": MAE, "R2Score": R2Score,
	}
	for _, tt := range tests {
		for name, fn := range fns {
			t.Run(tt.name+"/"+name, func(t *testing.T) {
				if _, err := fn(tt.yTrue, tt.yPred); err == nil {
					t.Errorf("%s() expected error", name)
				}
			})
		}
	}
}

func TestR2ScoreConstantTarget(t *testing.T) {
	y := mat.NewVecDense(3, []float64{2, 2, 2})
	if _, err := R2Score(y, y); err == nil {
		t.Error("expected error when yTrue has no variance")
	}
}

func BenchmarkRSS(b *testing.B) {
	n := 10000
	yTrue := mat.NewVecDense(n, nil)
	yPred := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		yTrue.SetVec(i, float64(i))
		yPred.SetVec(i, float64(i)+0.5)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = RSS(yTrue, yPred)
	}
}
