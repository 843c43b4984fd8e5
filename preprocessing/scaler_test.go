package preprocessing

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/featsel/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 10,
		3, 10,
		4, 10,
	})

	scaler := NewStandardScalerDefault()
	XScaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	if math.Abs(scaler.Mean[0]-2.5) > 1e-12 {
		t.Errorf("Mean[0] = %v, want 2.5", scaler.Mean[0])
	}
	if math.Abs(scaler.Scale[0]-math.Sqrt(1.25)) > 1e-12 {
		t.Errorf("Scale[0] = %v, want %v", scaler.Scale[0], math.Sqrt(1.25))
	}
	// 定数列のスケールは1
	if scaler.Scale[1] != 1 {
		t.Errorf("Scale[1] = %v, want 1 for a constant column", scaler.Scale[1])
	}

	var sum float64
	for i := 0; i < 4; i++ {
		sum += XScaled.At(i, 0)
		if XScaled.At(i, 1) != 0 {
			t.Errorf("constant column should scale to 0, got %v", XScaled.At(i, 1))
		}
	}
	if math.Abs(sum) > 1e-12 {
		t.Errorf("scaled column mean = %v, want 0", sum/4)
	}

	back, err := scaler.InverseTransform(XScaled)
	if err != nil {
		t.Fatalf("InverseTransform failed: %v", err)
	}
	if !mat.EqualApprox(back, X, 1e-12) {
		t.Errorf("InverseTransform did not recover the input:\n%v", mat.Formatted(back))
	}
}

func TestStandardScalerWithoutMean(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{2, 4})

	scaler := NewStandardScaler(false, true)
	out, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}
	// 平均は引かず標準偏差1で割る
	if out.At(0, 0) != 2 || out.At(1, 0) != 4 {
		t.Errorf("unexpected output %v", mat.Formatted(out))
	}
}

func TestStandardScalerErrors(t *testing.T) {
	scaler := NewStandardScalerDefault()

	_, err := scaler.Transform(mat.NewDense(1, 1, nil))
	var nf *errors.NotFittedError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFittedError, got %v", err)
	}

	if err := scaler.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	_, err = scaler.Transform(mat.NewDense(2, 3, nil))
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected DimensionError, got %v", err)
	}
	if dimErr.Expected != 2 || dimErr.Got != 3 {
		t.Errorf("DimensionError = %+v", dimErr)
	}
}
