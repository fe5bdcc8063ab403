package linear

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/pkg/errors"
	"github.com/YuminosukeSato/linfit/pkg/log"
)

// TrainingState is the state of an iterative optimizer.
type TrainingState int

const (
	// Running is the state of every optimizer until its loop exits.
	Running TrainingState = iota
	// Converged means two consecutive checkpoint losses differed by less
	// than the tolerance.
	Converged
	// MaxItersReached means the loop ran all maxIters iterations.
	MaxItersReached
)

// String returns the log representation of the state.
func (s TrainingState) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case MaxItersReached:
		return "max_iters_reached"
	default:
		return "unknown"
	}
}

// lossWindow keeps the last two checkpoint losses.
type lossWindow struct {
	prev, last float64
	n          int
}

func (lw *lossWindow) push(loss float64) {
	lw.prev, lw.last = lw.last, loss
	lw.n++
}

func (lw *lossWindow) converged(tol float64) bool {
	return lw.n >= 2 && math.Abs(lw.last-lw.prev) < tol
}

// LogisticRegression fits w by gradient descent on the negative
// log-likelihood: w ← w − γ·SigmoidGradient(y, tx, w).
//
// Negative labels are treated as 0 (so ±1 labels work); y itself is not
// modified. At every checkpoint (iteration 0, 50, 100, ... by default) the
// log-likelihood is recorded, and training stops once two consecutive
// checkpoint losses differ by less than the tolerance (1e-20 by default).
// The returned loss is the log-likelihood of the final weights.
func LogisticRegression(y mat.Vector, tx mat.Matrix, initialW mat.Vector, maxIters int, gamma float64, opts ...Option) (*mat.VecDense, float64, error) {
	return logisticDescent("linear.LogisticRegression", "LogisticRegression", y, tx, initialW, maxIters, gamma, 0, false, opts)
}

// RegLogisticRegression is LogisticRegression with an L2 penalty: the step
// uses PenalizedSigmoidGradient. Checkpoint losses include λ·wᵗw for display,
// there is no early stopping, and the returned loss is the unpenalized
// log-likelihood of the final weights.
func RegLogisticRegression(y mat.Vector, tx mat.Matrix, lambda float64, initialW mat.Vector, maxIters int, gamma float64, opts ...Option) (*mat.VecDense, float64, error) {
	if lambda < 0 || math.IsNaN(lambda) {
		return nil, 0, errors.NewValidationError("lambda", "must be non-negative", lambda)
	}
	return logisticDescent("linear.RegLogisticRegression", "RegLogisticRegression", y, tx, initialW, maxIters, gamma, lambda, true, opts)
}

func logisticDescent(op, name string, y mat.Vector, tx mat.Matrix, initialW mat.Vector, maxIters int, gamma, lambda float64, penalized bool, opts []Option) (*mat.VecDense, float64, error) {
	cfg, err := prepareRun(op, name, y, tx, initialW, maxIters, gamma, opts)
	if err != nil {
		return nil, 0, err
	}
	if penalized {
		cfg.logger.Debug("penalty configured", log.RegularizationKey, lambda)
	}

	start := time.Now()
	labels := binaryLabels(y)
	w := mat.VecDenseCopyOf(initialW)

	var window lossWindow
	state := Running
	iter := 0
	for ; iter < maxIters; iter++ {
		if iter%cfg.reportInterval == 0 {
			loss, clamped := logLikelihood(labels, tx, w)
			if penalized {
				loss += lambda * mat.Dot(w, w)
			}
			if err := cfg.checkpoint(iter, loss, clamped); err != nil {
				return nil, 0, err
			}

			if !penalized {
				window.push(loss)
				if window.converged(cfg.tolerance) {
					state = Converged
					break
				}
			}
		}

		grad, _ := sigmoidGradient(labels, tx, w)
		if penalized {
			grad.AddScaledVec(grad, 2*lambda, w)
		}
		w.AddScaledVec(w, -gamma, grad)
		if err := errors.CheckVector("gradient_update", w, iter); err != nil {
			cfg.logger.Error("weights diverged", err, log.LearningRateKey, gamma)
			return nil, 0, err
		}
	}

	if state == Running {
		state = MaxItersReached
		if !penalized && maxIters > 0 {
			errors.Warn(errors.NewConvergenceWarning(name, maxIters, "checkpoint loss still changing"))
		}
	} else {
		cfg.logger.Info("loss is not evolving, stopping early", log.IterationKey, iter)
	}

	loss, _ := logLikelihood(labels, tx, w)
	if err := finishRun(cfg, state, iter, loss, start); err != nil {
		return nil, 0, err
	}
	return w, loss, nil
}

// binaryLabels returns a copy of y with negative entries mapped to 0.
func binaryLabels(y mat.Vector) *mat.VecDense {
	out := mat.VecDenseCopyOf(y)
	for i := 0; i < out.Len(); i++ {
		if out.AtVec(i) < 0 {
			out.SetVec(i, 0)
		}
	}
	return out
}
