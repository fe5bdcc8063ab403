package linear

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/pkg/errors"
	"github.com/YuminosukeSato/linfit/pkg/log"
)

func TestLeastSquaresGD_ConvergesToClosedForm(t *testing.T) {
	y, tx := randomProblem(rand.New(rand.NewPCG(21, 21)), 80, 3)

	want, wantLoss, err := LeastSquares(y, tx, quiet)
	require.NoError(t, err)

	w, loss, err := LeastSquaresGD(y, tx, mat.NewVecDense(3, nil), 3000, 0.2, quiet)
	require.NoError(t, err)

	assert.True(t, floats.EqualApprox(want.RawVector().Data, w.RawVector().Data, 1e-6), "got %v want %v", mat.Formatted(w.T()), mat.Formatted(want.T()))
	assert.InDelta(t, wantLoss, loss, 1e-9)
}

func TestLeastSquaresGD_ZeroIterationsReturnsInitialWeights(t *testing.T) {
	y, tx := randomProblem(rand.New(rand.NewPCG(22, 22)), 10, 2)
	w0 := mat.NewVecDense(2, []float64{0.5, -0.5})

	w, loss, err := LeastSquaresGD(y, tx, w0, 0, 0.1, quiet)
	require.NoError(t, err)

	assert.True(t, mat.Equal(w0, w))
	want, _ := ComputeLoss(y, tx, w0)
	assert.Equal(t, want, loss)

	w.SetVec(0, 99)
	assert.Equal(t, 0.5, w0.AtVec(0), "returned weights must not alias the initial weights")
}

func TestLeastSquaresGD_CheckpointsEveryInterval(t *testing.T) {
	y, tx := randomProblem(rand.New(rand.NewPCG(23, 23)), 10, 2)
	logger, _ := log.NewTestLogger(log.LevelInfo)

	var seen []int
	_, _, err := LeastSquaresGD(y, tx, mat.NewVecDense(2, nil), 120, 0.1,
		WithLogger(logger),
		WithCheckpoint(func(c Checkpoint) { seen = append(seen, c.Iteration) }),
	)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 50, 100}, seen)

	entries := logger.EntriesWithMessage("checkpoint")
	require.Len(t, entries, 3)
	assert.Equal(t, float64(50), entries[1][log.IterationKey])
	assert.Equal(t, "LeastSquaresGD", entries[1][log.ModelNameKey])
	assert.True(t, logger.ContainsField(log.StateKey, MaxItersReached.String()))
}

func TestLeastSquaresGD_DivergenceIsReported(t *testing.T) {
	y, tx := randomProblem(rand.New(rand.NewPCG(24, 24)), 10, 2)

	_, _, err := LeastSquaresGD(y, tx, mat.NewVecDense(2, nil), 500, 1e150, quiet)
	require.Error(t, err)

	var numErr *errors.NumericalInstabilityError
	require.True(t, errors.As(err, &numErr))
	assert.Equal(t, "gradient_update", numErr.Operation)
}

func TestLeastSquaresGD_NonFiniteLossIsReported(t *testing.T) {
	// finite weights, but the squared residual overflows
	y := mat.NewVecDense(2, []float64{1e200, -1e200})
	tx := mat.NewDense(2, 1, []float64{1, 1})

	tests := []struct {
		name     string
		maxIters int
		wantOp   string
	}{
		{name: "at a checkpoint", maxIters: 10, wantOp: "checkpoint_loss"},
		{name: "after zero iterations", maxIters: 0, wantOp: "final_loss"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var checkpoints []Checkpoint
			w, _, err := LeastSquaresGD(y, tx, mat.NewVecDense(1, nil), tt.maxIters, 0.1,
				quiet,
				WithCheckpoint(func(c Checkpoint) { checkpoints = append(checkpoints, c) }),
			)

			var numErr *errors.NumericalInstabilityError
			require.True(t, errors.As(err, &numErr))
			assert.Equal(t, tt.wantOp, numErr.Operation)
			assert.Nil(t, w)
			assert.Empty(t, checkpoints)
		})
	}
}

func TestLeastSquaresSGD_ReproducibleWithSeed(t *testing.T) {
	y, tx := randomProblem(rand.New(rand.NewPCG(25, 25)), 30, 3)
	w0 := mat.NewVecDense(3, nil)

	run := func() (*mat.VecDense, float64) {
		w, loss, err := LeastSquaresSGD(y, tx, w0, 200, 0.05, quiet, WithRand(rand.New(rand.NewPCG(42, 42))))
		require.NoError(t, err)
		return w, loss
	}

	w1, loss1 := run()
	w2, loss2 := run()
	assert.True(t, mat.Equal(w1, w2))
	assert.Equal(t, loss1, loss2)
}

func TestLeastSquaresSGD_ReducesLoss(t *testing.T) {
	y, tx := randomProblem(rand.New(rand.NewPCG(26, 26)), 50, 3)
	w0 := mat.NewVecDense(3, nil)
	initial, _ := ComputeLoss(y, tx, w0)

	_, loss, err := LeastSquaresSGD(y, tx, w0, 2000, 0.02, quiet, WithRand(rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, err)

	assert.Less(t, loss, initial)
}

func TestLeastSquaresSGD_BatchSizeCoveringAllRowsIsGD(t *testing.T) {
	y, tx := randomProblem(rand.New(rand.NewPCG(27, 27)), 8, 2)
	w0 := mat.NewVecDense(2, nil)

	wGD, _, err := LeastSquaresGD(y, tx, w0, 50, 0.1, quiet)
	require.NoError(t, err)
	wSGD, _, err := LeastSquaresSGD(y, tx, w0, 50, 0.1, quiet, WithBatchSize(8), WithRand(rand.New(rand.NewPCG(5, 5))))
	require.NoError(t, err)

	// a full batch only reorders the summation
	assert.True(t, mat.EqualApprox(wGD, wSGD, 1e-10))
}

func TestIterativeSolvers_Validation(t *testing.T) {
	y := mat.NewVecDense(2, []float64{1, 2})
	tx := mat.NewDense(2, 1, []float64{1, 2})
	w0 := mat.NewVecDense(1, nil)

	tests := []struct {
		name     string
		maxIters int
		gamma    float64
		opts     []Option
	}{
		{"negative iterations", -1, 0.1, nil},
		{"zero gamma", 10, 0, nil},
		{"negative gamma", 10, -0.1, nil},
		{"NaN gamma", 10, math.NaN(), nil},
		{"infinite gamma", 10, math.Inf(1), nil},
		{"zero report interval", 10, 0.1, []Option{WithReportInterval(0)}},
		{"zero batch size", 10, 0.1, []Option{WithBatchSize(0)}},
		{"negative tolerance", 10, 0.1, []Option{WithTolerance(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{quiet}, tt.opts...)
			runs := map[string]func() error{
				"GD": func() error {
					_, _, err := LeastSquaresGD(y, tx, w0, tt.maxIters, tt.gamma, opts...)
					return err
				},
				"SGD": func() error {
					_, _, err := LeastSquaresSGD(y, tx, w0, tt.maxIters, tt.gamma, opts...)
					return err
				},
				"Logistic": func() error {
					_, _, err := LogisticRegression(y, tx, w0, tt.maxIters, tt.gamma, opts...)
					return err
				},
				"RegLogistic": func() error {
					_, _, err := RegLogisticRegression(y, tx, 0.1, w0, tt.maxIters, tt.gamma, opts...)
					return err
				},
			}
			for name, run := range runs {
				var valErr *errors.ValidationError
				assert.True(t, errors.As(run(), &valErr), name)
			}
		})
	}
}

func TestIterativeSolvers_NilPointerInitialWeights(t *testing.T) {
	y := mat.NewVecDense(2, []float64{1, 0})
	tx := mat.NewDense(2, 1, []float64{1, 2})
	var w0 *mat.VecDense

	runs := map[string]func() error{
		"GD": func() error {
			_, _, err := LeastSquaresGD(y, tx, w0, 10, 0.1, quiet)
			return err
		},
		"SGD": func() error {
			_, _, err := LeastSquaresSGD(y, tx, w0, 10, 0.1, quiet)
			return err
		},
		"Logistic": func() error {
			_, _, err := LogisticRegression(y, tx, w0, 10, 0.1, quiet)
			return err
		},
		"RegLogistic": func() error {
			_, _, err := RegLogisticRegression(y, tx, 0.1, w0, 10, 0.1, quiet)
			return err
		},
	}
	for name, run := range runs {
		var valueErr *errors.ValueError
		assert.True(t, errors.As(run(), &valueErr), name)
	}
}

func TestIterativeSolvers_ShapeErrors(t *testing.T) {
	y := mat.NewVecDense(2, []float64{1, 2})
	tx := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	_, _, err := LeastSquaresGD(y, tx, mat.NewVecDense(3, nil), 10, 0.1, quiet)
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 1, dimErr.Axis)

	_, _, err = LeastSquaresSGD(y, tx, nil, 10, 0.1, quiet)
	var valueErr *errors.ValueError
	assert.True(t, errors.As(err, &valueErr))

	_, _, err = LogisticRegression(y, &mat.Dense{}, mat.NewVecDense(2, nil), 10, 0.1, quiet)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}
