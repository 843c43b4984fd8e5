package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/YuminosukeSato/featsel/pkg/errors"
	"github.com/YuminosukeSato/featsel/selection"
	"gonum.org/v1/gonum/mat"
)

// Linear generates X with standard normal entries and
// y = X·coef + noise·N(0, 1). The number of features is len(coef).
// Identical arguments give identical data.
func Linear(nSamples int, coef []float64, noise float64, seed uint64) (*selection.Table, *mat.VecDense, error) {
	const op = "dataset.Linear"
	if nSamples < 1 {
		return nil, nil, errors.NewConfigurationError(op, "n_samples", nSamples, "must be positive")
	}
	if len(coef) == 0 {
		return nil, nil, errors.NewConfigurationError(op, "coef", len(coef), "at least one coefficient is required")
	}
	if noise < 0 {
		return nil, nil, errors.NewConfigurationError(op, "noise", noise, "must be non-negative")
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	nFeatures := len(coef)
	X := mat.NewDense(nSamples, nFeatures, nil)
	y := mat.NewVecDense(nSamples, nil)
	for i := 0; i < nSamples; i++ {
		target := 0.0
		for j := 0; j < nFeatures; j++ {
			v := rng.NormFloat64()
			X.Set(i, j, v)
			target += coef[j] * v
		}
		y.SetVec(i, target+noise*rng.NormFloat64())
	}

	table, err := selection.NewTable(X, nil)
	if err != nil {
		return nil, nil, err
	}
	return table, y, nil
}

// MakeRegression generates a linear problem in which only the first
// nInformative features carry signal. Their coefficients are drawn from
// U[1, 100); the remaining coefficients are zero.
func MakeRegression(nSamples, nFeatures, nInformative int, noise float64, seed uint64) (*selection.Table, *mat.VecDense, error) {
	const op = "dataset.MakeRegression"
	if nFeatures < 1 {
		return nil, nil, errors.NewConfigurationError(op, "n_features", nFeatures, "must be positive")
	}
	if nInformative < 0 || nInformative > nFeatures {
		return nil, nil, errors.NewConfigurationError(op, "n_informative", nInformative,
			fmt.Sprintf("must be in [0, %d]", nFeatures))
	}

	rng := rand.New(rand.NewPCG(seed^0xda3e39cb94b95bdb, seed))
	coef := make([]float64, nFeatures)
	for j := 0; j < nInformative; j++ {
		coef[j] = 1 + 99*rng.Float64()
	}
	return Linear(nSamples, coef, noise, seed)
}

// Friedman1 generates the Friedman #1 problem:
//
//	y = 10 sin(π x0 x1) + 20 (x2 - 0.5)² + 10 x3 + 5 x4 + noise·N(0, 1)
//
// with x ~ U[0, 1). Features beyond the first five are pure noise.
func Friedman1(nSamples, nFeatures int, noise float64, seed uint64) (*selection.Table, *mat.VecDense, error) {
	const op = "dataset.Friedman1"
	if nSamples < 1 {
		return nil, nil, errors.NewConfigurationError(op, "n_samples", nSamples, "must be positive")
	}
	if nFeatures < 5 {
		return nil, nil, errors.NewConfigurationError(op, "n_features", nFeatures, "must be at least 5")
	}
	if noise < 0 {
		return nil, nil, errors.NewConfigurationError(op, "noise", noise, "must be non-negative")
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	X := mat.NewDense(nSamples, nFeatures, nil)
	y := mat.NewVecDense(nSamples, nil)
	for i := 0; i < nSamples; i++ {
		for j := 0; j < nFeatures; j++ {
			X.Set(i, j, rng.Float64())
		}
		x := X.RawRowView(i)
		v := 10*math.Sin(math.Pi*x[0]*x[1]) + 20*(x[2]-0.5)*(x[2]-0.5) + 10*x[3] + 5*x[4]
		y.SetVec(i, v+noise*rng.NormFloat64())
	}

	table, err := selection.NewTable(X, nil)
	if err != nil {
		return nil, nil, err
	}
	return table, y, nil
}

// ToFrame converts a table and target into a frame with the target appended
// as a numeric column.
func ToFrame(X *selection.Table, y mat.Vector, target string) (*Frame, error) {
	r, c := X.Dims()
	if y.Len() != r {
		return nil, errors.NewDimensionError("dataset.ToFrame", r, y.Len(), 0)
	}

	f := NewFrame()
	for j := 0; j < c; j++ {
		values := make([]float64, r)
		mat.Col(values, j, X)
		name := X.Name(j)
		if !X.HasNames() {
			name = "x" + name
		}
		if err := f.AddNumeric(name, values); err != nil {
			return nil, err
		}
	}

	values := make([]float64, r)
	for i := range values {
		values[i] = y.AtVec(i)
	}
	if err := f.AddNumeric(target, values); err != nil {
		return nil, err
	}
	return f, nil
}
