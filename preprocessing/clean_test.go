package preprocessing

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/pkg/errors"
	"github.com/YuminosukeSato/linfit/pkg/log"
)

func faultyMatrix() *mat.Dense {
	return mat.NewDense(4, 3, []float64{
		1, 2, 3,
		4, -999, 6,
		7, 8, 9,
		-999, 11, 12,
	})
}

func TestRemoveFaultyRows(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	y := mat.NewVecDense(4, []float64{10, 20, 30, 40})

	out, yOut, err := RemoveFaultyRows(faultyMatrix(), y)
	require.NoError(t, err)

	assert.True(t, mat.Equal(mat.NewDense(2, 3, []float64{1, 2, 3, 7, 8, 9}), out))
	assert.Equal(t, []float64{10, 30}, yOut.RawVector().Data)
	assert.Contains(t, buf.String(), `"data.rows_kept":2`)
}

func TestRemoveFaultyRows_NilLabels(t *testing.T) {
	out, yOut, err := RemoveFaultyRows(faultyMatrix(), nil)
	require.NoError(t, err)
	assert.Nil(t, yOut)

	r, _ := out.Dims()
	assert.Equal(t, 2, r)
}

func TestRemoveFaultyRows_AllFaulty(t *testing.T) {
	_, _, err := RemoveFaultyRows(mat.NewDense(1, 2, []float64{-999, 1}), nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestRemoveFaultyRows_LabelMismatch(t *testing.T) {
	_, _, err := RemoveFaultyRows(faultyMatrix(), mat.NewVecDense(3, nil))
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 0, dimErr.Axis)
}

func TestFaultyColumnMask(t *testing.T) {
	assert.Equal(t, []bool{false, false, true}, FaultyColumnMask(faultyMatrix()))
}

func TestRemoveFaultyColumns_AppliesToTestSet(t *testing.T) {
	out, mask, err := RemoveFaultyColumns(faultyMatrix())
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDense(4, 1, []float64{3, 6, 9, 12}), out))

	test := mat.NewDense(1, 3, []float64{-999, 5, 6})
	testOut, err := SelectColumns(test, mask)
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDense(1, 1, []float64{6}), testOut))
}

func TestSelectColumns_MaskLength(t *testing.T) {
	_, err := SelectColumns(faultyMatrix(), []bool{true})
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestFaultyRowMask_LargeInputMatchesSequential(t *testing.T) {
	const n = 5000
	data := make([]float64, n*2)
	for i := 0; i < n; i++ {
		data[2*i] = float64(i)
		if i%3 == 0 {
			data[2*i+1] = DefaultMissingValue
		}
	}

	mask := FaultyRowMask(mat.NewDense(n, 2, data))
	for i, ok := range mask {
		assert.Equal(t, i%3 != 0, ok, "row %d", i)
	}
}
