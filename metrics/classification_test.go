package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/pkg/errors"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name  string
		yTrue []float64
		yPred []float64
		want  float64
	}{
		{"all correct", []float64{1, -1, 1}, []float64{1, -1, 1}, 1},
		{"all wrong", []float64{1, -1}, []float64{-1, 1}, 0},
		{"half", []float64{1, 1, -1, -1}, []float64{1, -1, -1, 1}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accuracy(mat.NewVecDense(len(tt.yTrue), tt.yTrue), mat.NewVecDense(len(tt.yPred), tt.yPred))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestAccuracy_Errors(t *testing.T) {
	_, err := Accuracy(mat.NewVecDense(2, nil), mat.NewVecDense(3, nil))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	_, err = Accuracy(&mat.VecDense{}, &mat.VecDense{})
	var valueErr *errors.ValueError
	assert.True(t, errors.As(err, &valueErr))
}

func TestF1Score(t *testing.T) {
	yTrue := mat.NewVecDense(6, []float64{1, 1, 1, -1, -1, -1})
	yPred := mat.NewVecDense(6, []float64{1, 1, -1, 1, -1, -1})

	// tp=2 fp=1 fn=1
	got, err := F1Score(yTrue, yPred, 1)
	require.NoError(t, err)
	assert.InDelta(t, 4.0/6.0, got, 1e-12)

	_, err = F1Score(mat.NewVecDense(2, []float64{-1, -1}), mat.NewVecDense(2, []float64{-1, -1}), 1)
	var valueErr *errors.ValueError
	assert.True(t, errors.As(err, &valueErr))
}
