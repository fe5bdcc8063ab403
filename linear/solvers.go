package linear

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/pkg/errors"
	"github.com/YuminosukeSato/linfit/pkg/log"
)

// LeastSquares solves the normal equations (txᵗtx)w = txᵗy with an LU
// factorization. A singular or ill-conditioned txᵗtx yields a ModelError
// wrapping errors.ErrSingularMatrix.
func LeastSquares(y mat.Vector, tx mat.Matrix, opts ...Option) (*mat.VecDense, float64, error) {
	return solveNormalEquations("linear.LeastSquares", "LeastSquares", y, tx, 0, opts)
}

// RidgeRegression solves (txᵗtx + 2λN·I)w = txᵗy. For λ > 0 the system is
// positive definite, so it succeeds where LeastSquares reports a singular
// matrix. λ = 0 reduces to LeastSquares.
func RidgeRegression(y mat.Vector, tx mat.Matrix, lambda float64, opts ...Option) (*mat.VecDense, float64, error) {
	if lambda < 0 || math.IsNaN(lambda) {
		return nil, 0, errors.NewValidationError("lambda", "must be non-negative", lambda)
	}
	n, _ := tx.Dims()
	return solveNormalEquations("linear.RidgeRegression", "RidgeRegression", y, tx, 2*lambda*float64(n), opts)
}

func solveNormalEquations(op, name string, y mat.Vector, tx mat.Matrix, ridge float64, opts []Option) (*mat.VecDense, float64, error) {
	cfg, err := newConfig(name, opts)
	if err != nil {
		return nil, 0, err
	}
	if err := checkShapes(op, y, tx, nil); err != nil {
		return nil, 0, err
	}

	start := time.Now()
	n, m := tx.Dims()

	// gonum reports shape violations by panicking
	w := mat.NewVecDense(m, nil)
	solveErr := errors.SafeExecute(op, func() error {
		var gram mat.Dense
		gram.Mul(tx.T(), tx)
		if ridge != 0 {
			for i := 0; i < m; i++ {
				gram.Set(i, i, gram.At(i, i)+ridge)
			}
		}

		rhs := mat.NewVecDense(m, nil)
		rhs.MulVec(tx.T(), y)
		return w.SolveVec(&gram, rhs)
	})
	var panicErr *errors.PanicError
	if errors.As(solveErr, &panicErr) {
		cfg.logger.Error("linear algebra panicked", solveErr)
		return nil, 0, solveErr
	}
	if solveErr != nil {
		var cond mat.Condition
		if errors.As(solveErr, &cond) {
			solveErr = errors.Wrapf(errors.ErrSingularMatrix, "condition number %g", float64(cond))
		}
		cfg.logger.Error("normal equations not solvable", solveErr,
			log.SamplesKey, n,
			log.FeaturesKey, m,
		)
		return nil, 0, errors.NewModelError(op, "system not solvable", solveErr)
	}

	loss := mseLoss(y, tx, w)
	if err := errors.CheckScalar("final_loss", loss, 0); err != nil {
		cfg.logger.Error("final loss is not finite", err)
		return nil, 0, err
	}
	cfg.logger.Info("normal equations solved",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.FeaturesKey, m,
		log.LossKey, loss,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return w, loss, nil
}
