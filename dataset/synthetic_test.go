package dataset

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/linfit/pkg/errors"
)

func TestMakeRegression_NoiselessIsExact(t *testing.T) {
	y, X, coef, err := MakeRegression(50, 3, 0, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)

	want := mat.NewVecDense(50, nil)
	want.MulVec(X, coef)
	assert.True(t, mat.EqualApprox(want, y, 1e-12))
}

func TestMakeRegression_Reproducible(t *testing.T) {
	y1, X1, _, err := MakeRegression(20, 4, 0.5, rand.New(rand.NewPCG(9, 9)))
	require.NoError(t, err)
	y2, X2, _, err := MakeRegression(20, 4, 0.5, rand.New(rand.NewPCG(9, 9)))
	require.NoError(t, err)

	assert.True(t, mat.Equal(X1, X2))
	assert.True(t, mat.Equal(y1, y2))
}

func TestMakeRegression_StandardNormalDesign(t *testing.T) {
	_, X, _, err := MakeRegression(4000, 1, 0, rand.New(rand.NewPCG(5, 5)))
	require.NoError(t, err)

	mean, std := stat.PopMeanStdDev(mat.Col(nil, 0, X), nil)
	assert.InDelta(t, 0, mean, 0.1)
	assert.InDelta(t, 1, std, 0.1)
}

func TestMakeClassification_Labels(t *testing.T) {
	y, X, coef, err := MakeClassification(100, 3, 0, rand.New(rand.NewPCG(2, 2)))
	require.NoError(t, err)

	scores := mat.NewVecDense(100, nil)
	scores.MulVec(X, coef)
	for i := 0; i < y.Len(); i++ {
		if scores.AtVec(i) > 0 {
			assert.Equal(t, 1.0, y.AtVec(i))
		} else {
			assert.Equal(t, -1.0, y.AtVec(i))
		}
	}
}

func TestMakeClassification_FlipAll(t *testing.T) {
	y, X, coef, err := MakeClassification(30, 2, 1, rand.New(rand.NewPCG(4, 4)))
	require.NoError(t, err)

	scores := mat.NewVecDense(30, nil)
	scores.MulVec(X, coef)
	for i := 0; i < y.Len(); i++ {
		if scores.AtVec(i) > 0 {
			assert.Equal(t, -1.0, y.AtVec(i))
		}
	}
}

func TestSynthetic_Validation(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	tests := []struct {
		name string
		fn   func() error
	}{
		{"zero samples", func() error { _, _, _, err := MakeRegression(0, 2, 0, rng); return err }},
		{"zero features", func() error { _, _, _, err := MakeRegression(2, 0, 0, rng); return err }},
		{"negative noise", func() error { _, _, _, err := MakeRegression(2, 2, -1, rng); return err }},
		{"nil rng", func() error { _, _, _, err := MakeClassification(2, 2, 0, nil); return err }},
		{"flip rate above one", func() error { _, _, _, err := MakeClassification(2, 2, 1.5, rng); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			var valErr *errors.ValidationError
			assert.True(t, errors.As(err, &valErr))
		})
	}
}
