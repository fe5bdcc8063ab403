package linear

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestSigmoidScalar_Midpoint(t *testing.T) {
	assert.Equal(t, 0.5, SigmoidScalar(0))
}

func TestSigmoid_StrictlyIncreasingAndBounded(t *testing.T) {
	// beyond ±37 float64 rounds sigmoid to exactly 0 or 1
	prev := SigmoidScalar(-30)
	for x := -29.9; x <= 30; x += 0.1 {
		s := SigmoidScalar(x)
		assert.Greater(t, s, prev, "x=%g", x)
		assert.Greater(t, s, 0.0)
		assert.Less(t, s, 1.0)
		prev = s
	}
}

func TestSigmoid_ClampsLargeInputs(t *testing.T) {
	inputs := []float64{100.5, 1e3, 1e10, math.MaxFloat64, math.Inf(1)}
	for _, v := range inputs {
		s := SigmoidScalar(v)
		assert.Equal(t, SigmoidScalar(SigmoidClip), s, "v=%g", v)
		assert.False(t, math.IsNaN(s))
	}

	for _, v := range []float64{-100.5, -1e10, -math.MaxFloat64, math.Inf(-1)} {
		s := SigmoidScalar(v)
		assert.Equal(t, SigmoidScalar(-SigmoidClip), s, "v=%g", v)
		assert.False(t, math.IsNaN(s))
		assert.False(t, math.IsInf(s, 0))
	}
}

func TestSigmoid_DoesNotMutateInput(t *testing.T) {
	in := mat.NewVecDense(3, []float64{-1000, 0, 1000})

	out := Sigmoid(in)

	assert.Equal(t, []float64{-1000, 0, 1000}, in.RawVector().Data)
	assert.Equal(t, 0.5, out.AtVec(1))
	assert.Equal(t, SigmoidScalar(SigmoidClip), out.AtVec(2))
}

func TestSigmoidInPlace_CountsClamps(t *testing.T) {
	z := mat.NewVecDense(4, []float64{-101, -100, 100, 250})

	_, clamped := sigmoidInPlace(z)
	assert.Equal(t, 2, clamped)
}
