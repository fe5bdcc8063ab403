package dataset

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/linfit/pkg/errors"
)

// MakeRegression draws an nSamples × nFeatures standard normal design
// matrix, a standard normal coefficient vector and targets
// y = X·coef + noise·ε with ε ~ N(0, 1). The same rng seed reproduces the
// same data.
func MakeRegression(nSamples, nFeatures int, noise float64, rng *rand.Rand) (y *mat.VecDense, X *mat.Dense, coef *mat.VecDense, err error) {
	if err := checkSynthetic(nSamples, nFeatures, rng); err != nil {
		return nil, nil, nil, err
	}
	if noise < 0 || math.IsNaN(noise) {
		return nil, nil, nil, errors.NewValidationError("noise", "must be non-negative", noise)
	}

	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
	X, coef = gaussianDesign(nSamples, nFeatures, normal)

	y = mat.NewVecDense(nSamples, nil)
	y.MulVec(X, coef)
	if noise > 0 {
		for i := 0; i < nSamples; i++ {
			y.SetVec(i, y.AtVec(i)+noise*normal.Rand())
		}
	}
	return y, X, coef, nil
}

// MakeClassification draws a standard normal design matrix and a hidden
// coefficient vector and labels each row ±1 by the sign of X·coef (zero
// counts as −1). Each label is then flipped with probability flipRate.
func MakeClassification(nSamples, nFeatures int, flipRate float64, rng *rand.Rand) (y *mat.VecDense, X *mat.Dense, coef *mat.VecDense, err error) {
	if err := checkSynthetic(nSamples, nFeatures, rng); err != nil {
		return nil, nil, nil, err
	}
	if flipRate < 0 || flipRate > 1 || math.IsNaN(flipRate) {
		return nil, nil, nil, errors.NewValidationError("flip_rate", "must be within [0, 1]", flipRate)
	}

	X, coef = gaussianDesign(nSamples, nFeatures, distuv.Normal{Mu: 0, Sigma: 1, Src: rng})
	flip := distuv.Bernoulli{P: flipRate, Src: rng}

	y = mat.NewVecDense(nSamples, nil)
	y.MulVec(X, coef)
	for i := 0; i < nSamples; i++ {
		label := -1.0
		if y.AtVec(i) > 0 {
			label = 1
		}
		if flipRate > 0 && flip.Rand() == 1 {
			label = -label
		}
		y.SetVec(i, label)
	}
	return y, X, coef, nil
}

func gaussianDesign(nSamples, nFeatures int, normal distuv.Normal) (*mat.Dense, *mat.VecDense) {
	data := make([]float64, nSamples*nFeatures)
	for i := range data {
		data[i] = normal.Rand()
	}
	coef := make([]float64, nFeatures)
	for j := range coef {
		coef[j] = normal.Rand()
	}
	return mat.NewDense(nSamples, nFeatures, data), mat.NewVecDense(nFeatures, coef)
}

func checkSynthetic(nSamples, nFeatures int, rng *rand.Rand) error {
	if nSamples <= 0 {
		return errors.NewValidationError("n_samples", "must be positive", nSamples)
	}
	if nFeatures <= 0 {
		return errors.NewValidationError("n_features", "must be positive", nFeatures)
	}
	if rng == nil {
		return errors.NewValidationError("rng", "a random source is required", nil)
	}
	return nil
}
