package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/pkg/errors"
)

// SigmoidClip is the largest logit magnitude passed to exp. exp(100) is far
// from overflow and sigmoid(±100) is already 0 or 1 at float64 precision
// (up to the 3.7e-44 tail on the negative side).
const SigmoidClip = 100.0

// SigmoidScalar computes 1/(1+e^{−t}) after clamping t into
// [−SigmoidClip, SigmoidClip].
func SigmoidScalar(t float64) float64 {
	t = errors.ClipValue(t, -SigmoidClip, SigmoidClip)
	return 1.0 / (1.0 + math.Exp(-t))
}

// Sigmoid applies SigmoidScalar elementwise. t is left untouched; the
// result is a new vector.
func Sigmoid(t mat.Vector) *mat.VecDense {
	out, _ := sigmoidInPlace(mat.VecDenseCopyOf(t))
	return out
}

// sigmoidInPlace overwrites z with sigmoid(z) and returns how many entries
// were clamped. Only used on buffers the caller owns.
func sigmoidInPlace(z *mat.VecDense) (*mat.VecDense, int) {
	clamped := 0
	for i := 0; i < z.Len(); i++ {
		v := z.AtVec(i)
		if v > SigmoidClip || v < -SigmoidClip {
			clamped++
		}
		z.SetVec(i, SigmoidScalar(v))
	}
	return z, clamped
}
