package linear

import (
	"math"
	"reflect"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/pkg/errors"
)

// ProbabilityClip bounds predicted probabilities away from 0 and 1 before
// taking logarithms in LogLikelihoodLoss.
const ProbabilityClip = 1e-9

// ComputeLoss returns the mean squared error (1/2N)·eᵗe with e = y − tx·w.
func ComputeLoss(y mat.Vector, tx mat.Matrix, w mat.Vector) (float64, error) {
	if err := checkShapes("linear.ComputeLoss", y, tx, w); err != nil {
		return 0, err
	}
	return mseLoss(y, tx, w), nil
}

// ComputeGradient returns the MSE gradient −(1/N)·txᵗ·(y − tx·w).
func ComputeGradient(y mat.Vector, tx mat.Matrix, w mat.Vector) (*mat.VecDense, error) {
	if err := checkShapes("linear.ComputeGradient", y, tx, w); err != nil {
		return nil, err
	}
	return mseGradient(y, tx, w), nil
}

// LogLikelihoodLoss returns the negative log-likelihood of y under the
// logistic model sigmoid(tx·w). Predictions are clamped into
// [ProbabilityClip, 1−ProbabilityClip] so the logarithms stay finite.
// y is expected to hold {0,1} labels.
func LogLikelihoodLoss(y mat.Vector, tx mat.Matrix, w mat.Vector) (float64, error) {
	if err := checkShapes("linear.LogLikelihoodLoss", y, tx, w); err != nil {
		return 0, err
	}
	loss, _ := logLikelihood(y, tx, w)
	return loss, nil
}

// SigmoidGradient returns txᵗ·(sigmoid(tx·w) − y).
func SigmoidGradient(y mat.Vector, tx mat.Matrix, w mat.Vector) (*mat.VecDense, error) {
	if err := checkShapes("linear.SigmoidGradient", y, tx, w); err != nil {
		return nil, err
	}
	grad, _ := sigmoidGradient(y, tx, w)
	return grad, nil
}

// PenalizedSigmoidGradient returns SigmoidGradient plus the L2 penalty
// gradient 2λw.
func PenalizedSigmoidGradient(y mat.Vector, tx mat.Matrix, w mat.Vector, lambda float64) (*mat.VecDense, error) {
	if err := checkShapes("linear.PenalizedSigmoidGradient", y, tx, w); err != nil {
		return nil, err
	}
	grad, _ := sigmoidGradient(y, tx, w)
	grad.AddScaledVec(grad, 2*lambda, w)
	return grad, nil
}

// checkShapes enforces tx.rows == y.len and, when w is non-nil,
// w.len == tx.cols. A nil pointer stored in any argument is a ValueError.
func checkShapes(op string, y mat.Vector, tx mat.Matrix, w mat.Vector) error {
	if isNil(tx) || isNil(y) {
		return errors.NewValueError(op, "data is nil")
	}
	if w != nil && isNil(w) {
		return errors.NewValueError(op, "weights are nil")
	}
	n, m := tx.Dims()
	if n == 0 || m == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if y.Len() != n {
		return errors.NewDimensionError(op, n, y.Len(), 0)
	}
	if w != nil && w.Len() != m {
		return errors.NewDimensionError(op, m, w.Len(), 1)
	}
	return nil
}

// isNil reports whether v is nil or holds a nil pointer, such as a
// (*mat.VecDense)(nil) passed as a mat.Vector.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// residual returns e = y − tx·w in a fresh buffer.
func residual(y mat.Vector, tx mat.Matrix, w mat.Vector) *mat.VecDense {
	n, _ := tx.Dims()
	e := mat.NewVecDense(n, nil)
	e.MulVec(tx, w)
	e.SubVec(y, e)
	return e
}

func mseLoss(y mat.Vector, tx mat.Matrix, w mat.Vector) float64 {
	e := residual(y, tx, w)
	return mat.Dot(e, e) / (2 * float64(e.Len()))
}

func mseGradient(y mat.Vector, tx mat.Matrix, w mat.Vector) *mat.VecDense {
	n, m := tx.Dims()
	e := residual(y, tx, w)
	grad := mat.NewVecDense(m, nil)
	grad.MulVec(tx.T(), e)
	grad.ScaleVec(-1/float64(n), grad)
	return grad
}

// logLikelihood also reports how many predictions hit a clamp boundary.
func logLikelihood(y mat.Vector, tx mat.Matrix, w mat.Vector) (float64, int) {
	pred, _ := predictProba(tx, w)

	clamped := 0
	var loss float64
	for i := 0; i < pred.Len(); i++ {
		p := pred.AtVec(i)
		if p < ProbabilityClip || p >= 1-ProbabilityClip {
			clamped++
		}
		p = errors.ClipValue(p, ProbabilityClip, 1-ProbabilityClip)
		yi := y.AtVec(i)
		loss += yi*math.Log(p) + (1-yi)*math.Log(1-p)
	}
	return -loss, clamped
}

func sigmoidGradient(y mat.Vector, tx mat.Matrix, w mat.Vector) (*mat.VecDense, int) {
	_, m := tx.Dims()
	pred, clamped := predictProba(tx, w)
	pred.SubVec(pred, y)
	grad := mat.NewVecDense(m, nil)
	grad.MulVec(tx.T(), pred)
	return grad, clamped
}

// predictProba returns sigmoid(tx·w) and the number of clamped logits.
func predictProba(tx mat.Matrix, w mat.Vector) (*mat.VecDense, int) {
	n, _ := tx.Dims()
	z := mat.NewVecDense(n, nil)
	z.MulVec(tx, w)
	return sigmoidInPlace(z)
}
