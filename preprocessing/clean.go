package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/core/parallel"
	"github.com/YuminosukeSato/linfit/pkg/errors"
	"github.com/YuminosukeSato/linfit/pkg/log"
)

const parallelRowThreshold = 1000

// FaultyRowMask reports, per row, whether the row is free of the sentinel.
func FaultyRowMask(tx mat.Matrix) []bool {
	n, m := tx.Dims()
	valid := make([]bool, n)
	parallel.ParallelizeWithThreshold(n, parallelRowThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			valid[i] = true
			for j := 0; j < m; j++ {
				if tx.At(i, j) == DefaultMissingValue {
					valid[i] = false
					break
				}
			}
		}
	})
	return valid
}

// FaultyColumnMask reports, per column, whether the column is free of the
// sentinel. Apply it to a test matrix with SelectColumns.
func FaultyColumnMask(tx mat.Matrix) []bool {
	n, m := tx.Dims()
	valid := make([]bool, m)
	parallel.ParallelizeWithThreshold(m, parallelColumnThreshold, func(start, end int) {
		for j := start; j < end; j++ {
			valid[j] = true
			for i := 0; i < n; i++ {
				if tx.At(i, j) == DefaultMissingValue {
					valid[j] = false
					break
				}
			}
		}
	})
	return valid
}

// RemoveFaultyRows drops every row of tx holding the sentinel, together with
// the matching entry of y. y may be nil. It fails with ErrEmptyData when no
// row survives.
func RemoveFaultyRows(tx mat.Matrix, y mat.Vector) (*mat.Dense, *mat.VecDense, error) {
	const op = "preprocessing.RemoveFaultyRows"
	n, m := tx.Dims()
	if y != nil && y.Len() != n {
		return nil, nil, errors.NewDimensionError(op, n, y.Len(), 0)
	}

	valid := FaultyRowMask(tx)
	var rows []int
	for i, ok := range valid {
		if ok {
			rows = append(rows, i)
		}
	}

	log.GetLoggerWithName("preprocessing").Info("rows without faulty values",
		log.OperationKey, log.OperationTransform,
		log.RowsKeptKey, len(rows),
		log.SamplesKey, n,
	)
	if len(rows) == 0 {
		return nil, nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}

	out := mat.NewDense(len(rows), m, nil)
	for k, i := range rows {
		for j := 0; j < m; j++ {
			out.Set(k, j, tx.At(i, j))
		}
	}

	var yOut *mat.VecDense
	if y != nil {
		yOut = mat.NewVecDense(len(rows), nil)
		for k, i := range rows {
			yOut.SetVec(k, y.AtVec(i))
		}
	}
	return out, yOut, nil
}

// RemoveFaultyColumns drops every column of tx holding the sentinel and
// returns the mask it applied.
func RemoveFaultyColumns(tx mat.Matrix) (*mat.Dense, []bool, error) {
	mask := FaultyColumnMask(tx)
	out, err := SelectColumns(tx, mask)
	if err != nil {
		return nil, nil, err
	}
	return out, mask, nil
}

// SelectColumns keeps the columns of tx whose mask entry is true.
func SelectColumns(tx mat.Matrix, mask []bool) (*mat.Dense, error) {
	const op = "preprocessing.SelectColumns"
	n, m := tx.Dims()
	if len(mask) != m {
		return nil, errors.NewDimensionError(op, m, len(mask), 1)
	}

	var cols []int
	for j, ok := range mask {
		if ok {
			cols = append(cols, j)
		}
	}

	log.GetLoggerWithName("preprocessing").Info("columns without faulty values",
		log.OperationKey, log.OperationTransform,
		log.ColumnsKeptKey, len(cols),
		log.FeaturesKey, m,
	)
	if len(cols) == 0 || n == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}

	out := mat.NewDense(n, len(cols), nil)
	for i := 0; i < n; i++ {
		for k, j := range cols {
			out.Set(i, k, tx.At(i, j))
		}
	}
	return out, nil
}
