package linear

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/dataset"
	"github.com/YuminosukeSato/linfit/pkg/errors"
	"github.com/YuminosukeSato/linfit/pkg/log"
)

// LeastSquaresGD fits w by full-batch gradient descent on the MSE loss:
// w ← w − γ·ComputeGradient(y, tx, w), repeated maxIters times.
// initialW is copied; the returned vector belongs to the caller.
func LeastSquaresGD(y mat.Vector, tx mat.Matrix, initialW mat.Vector, maxIters int, gamma float64, opts ...Option) (*mat.VecDense, float64, error) {
	const op = "linear.LeastSquaresGD"
	cfg, err := prepareRun(op, "LeastSquaresGD", y, tx, initialW, maxIters, gamma, opts)
	if err != nil {
		return nil, 0, err
	}

	start := time.Now()
	w := mat.VecDenseCopyOf(initialW)
	for iter := 0; iter < maxIters; iter++ {
		if iter%cfg.reportInterval == 0 {
			if err := cfg.checkpoint(iter, mseLoss(y, tx, w), 0); err != nil {
				return nil, 0, err
			}
		}
		w.AddScaledVec(w, -gamma, mseGradient(y, tx, w))
		if err := errors.CheckVector("gradient_update", w, iter); err != nil {
			cfg.logger.Error("weights diverged", err, log.LearningRateKey, gamma)
			return nil, 0, err
		}
	}

	loss := mseLoss(y, tx, w)
	if err := finishRun(cfg, MaxItersReached, maxIters, loss, start); err != nil {
		return nil, 0, err
	}
	return w, loss, nil
}

// LeastSquaresSGD fits w by stochastic gradient descent. Each iteration
// shuffles the sample indices, takes one minibatch (size 2 unless
// WithBatchSize says otherwise) and applies w ← w − γ·∇MSE(batch).
// Shuffling draws from the WithRand generator; without one a time-seeded
// generator is used, so results differ between runs.
func LeastSquaresSGD(y mat.Vector, tx mat.Matrix, initialW mat.Vector, maxIters int, gamma float64, opts ...Option) (*mat.VecDense, float64, error) {
	const op = "linear.LeastSquaresSGD"
	cfg, err := prepareRun(op, "LeastSquaresSGD", y, tx, initialW, maxIters, gamma, opts)
	if err != nil {
		return nil, 0, err
	}

	cfg.logger.Debug("minibatch sampling", log.BatchSizeKey, cfg.batchSize)

	start := time.Now()
	w := mat.VecDenseCopyOf(initialW)
	for iter := 0; iter < maxIters; iter++ {
		if iter%cfg.reportInterval == 0 {
			if err := cfg.checkpoint(iter, mseLoss(y, tx, w), 0); err != nil {
				return nil, 0, err
			}
		}
		for yBatch, txBatch := range dataset.BatchIter(y, tx, cfg.batchSize, 1, true, cfg.rng) {
			w.AddScaledVec(w, -gamma, mseGradient(yBatch, txBatch, w))
		}
		if err := errors.CheckVector("gradient_update", w, iter); err != nil {
			cfg.logger.Error("weights diverged", err, log.LearningRateKey, gamma)
			return nil, 0, err
		}
	}

	loss := mseLoss(y, tx, w)
	if err := finishRun(cfg, MaxItersReached, maxIters, loss, start); err != nil {
		return nil, 0, err
	}
	return w, loss, nil
}

// prepareRun validates shapes and the iteration schedule shared by every
// iterative optimizer and logs the start of training.
func prepareRun(op, name string, y mat.Vector, tx mat.Matrix, initialW mat.Vector, maxIters int, gamma float64, opts []Option) (*config, error) {
	cfg, err := newConfig(name, opts)
	if err != nil {
		return nil, err
	}
	if isNil(initialW) {
		return nil, errors.NewValueError(op, "initial weights are required")
	}
	if err := checkShapes(op, y, tx, initialW); err != nil {
		return nil, err
	}
	if maxIters < 0 {
		return nil, errors.NewValidationError("max_iters", "must be non-negative", maxIters)
	}
	if gamma <= 0 || math.IsNaN(gamma) || math.IsInf(gamma, 0) {
		return nil, errors.NewValidationError("gamma", "must be a positive finite step size", gamma)
	}

	n, m := tx.Dims()
	cfg.logger.Info("training started",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, n,
		log.FeaturesKey, m,
		log.MaxItersKey, maxIters,
		log.LearningRateKey, gamma,
	)
	return cfg, nil
}

// finishRun rejects a non-finite final loss and logs the outcome.
func finishRun(cfg *config, state TrainingState, iterations int, loss float64, start time.Time) error {
	if err := errors.CheckScalar("final_loss", loss, iterations); err != nil {
		cfg.logger.Error("final loss is not finite", err, log.StateKey, state.String())
		return err
	}
	cfg.logger.Info("training finished",
		log.OperationKey, log.OperationFit,
		log.StateKey, state.String(),
		log.IterationKey, iterations,
		log.LossKey, loss,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}
