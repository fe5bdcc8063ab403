package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/pkg/errors"
)

// Predict returns tx·w.
func Predict(tx mat.Matrix, w mat.Vector) (*mat.VecDense, error) {
	if isNil(tx) || isNil(w) {
		return nil, errors.NewValueError("linear.Predict", "data and weights are required")
	}
	n, m := tx.Dims()
	if n == 0 || m == 0 {
		return nil, errors.NewModelError("linear.Predict", "empty data", errors.ErrEmptyData)
	}
	if w.Len() != m {
		return nil, errors.NewDimensionError("linear.Predict", m, w.Len(), 1)
	}
	out := mat.NewVecDense(n, nil)
	out.MulVec(tx, w)
	return out, nil
}

// PredictLabels maps the sign of tx·w to ±1 labels. Scores ≤ 0 become −1.
func PredictLabels(tx mat.Matrix, w mat.Vector) (*mat.VecDense, error) {
	scores, err := Predict(tx, w)
	if err != nil {
		return nil, err
	}
	for i := 0; i < scores.Len(); i++ {
		if scores.AtVec(i) <= 0 {
			scores.SetVec(i, -1)
		} else {
			scores.SetVec(i, 1)
		}
	}
	return scores, nil
}

// PredictProba returns sigmoid(tx·w), the probability of the positive class.
func PredictProba(tx mat.Matrix, w mat.Vector) (*mat.VecDense, error) {
	scores, err := Predict(tx, w)
	if err != nil {
		return nil, err
	}
	out, _ := sigmoidInPlace(scores)
	return out, nil
}
