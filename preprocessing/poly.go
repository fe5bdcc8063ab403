package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/pkg/errors"
	"github.com/YuminosukeSato/linfit/pkg/log"
)

// BuildPoly expands tx (N × M) to [tx, tx², …, txᵈ] (N × M·degree).
// Cells equal to DefaultMissingValue stay at the sentinel in every power,
// so a later cleaning pass still recognizes them. degree 1 returns a copy.
func BuildPoly(tx mat.Matrix, degree int) (*mat.Dense, error) {
	if degree < 1 {
		return nil, errors.NewValidationError("degree", "must be at least 1", degree)
	}
	n, m := tx.Dims()
	if n == 0 || m == 0 {
		return nil, errors.NewModelError("preprocessing.BuildPoly", "empty data", errors.ErrEmptyData)
	}

	out := mat.NewDense(n, m*degree, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			v := tx.At(i, j)
			for d := 1; d <= degree; d++ {
				col := (d-1)*m + j
				if v == DefaultMissingValue {
					out.Set(i, col, DefaultMissingValue)
					continue
				}
				out.Set(i, col, math.Pow(v, float64(d)))
			}
		}
	}

	log.GetLoggerWithName("preprocessing").Debug("polynomial expansion",
		log.OperationKey, log.OperationTransform,
		log.DegreeKey, degree,
		log.FeaturesKey, m*degree,
	)
	return out, nil
}

// AddBias prepends a column of ones to tx.
func AddBias(tx mat.Matrix) *mat.Dense {
	n, m := tx.Dims()
	out := mat.NewDense(n, m+1, nil)
	for i := 0; i < n; i++ {
		out.Set(i, 0, 1)
		for j := 0; j < m; j++ {
			out.Set(i, j+1, tx.At(i, j))
		}
	}
	return out
}
