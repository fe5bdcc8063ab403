// Package dataset loads tabular data and slices it into minibatches.
package dataset

import (
	"iter"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"
)

// BatchIter yields up to numBatches aligned (y, tx) minibatches of
// batchSize rows. With shuffle set the rows are drawn from a permutation
// produced by rng; otherwise they are taken in order. Batch k covers rows
// [k·batchSize, min((k+1)·batchSize, N)) of that order, so the last batch
// may be shorter and batches past the end of the data are skipped. Each
// sample appears in at most one batch per call.
//
// Yielded values are fresh copies; y and tx are never modified. A nil rng
// with shuffle set falls back to a time-seeded generator.
func BatchIter(y mat.Vector, tx mat.Matrix, batchSize, numBatches int, shuffle bool, rng *rand.Rand) iter.Seq2[*mat.VecDense, *mat.Dense] {
	return func(yield func(*mat.VecDense, *mat.Dense) bool) {
		n, m := tx.Dims()
		if n == 0 || batchSize <= 0 || numBatches <= 0 || y.Len() != n {
			return
		}

		order := identity(n)
		if shuffle {
			if rng == nil {
				seed := uint64(time.Now().UnixNano())
				rng = rand.New(rand.NewPCG(seed, seed))
			}
			order = rng.Perm(n)
		}

		for b := 0; b < numBatches; b++ {
			start := b * batchSize
			end := min(start+batchSize, n)
			if start >= end {
				return
			}

			size := end - start
			yBatch := mat.NewVecDense(size, nil)
			txBatch := mat.NewDense(size, m, nil)
			for i, idx := range order[start:end] {
				yBatch.SetVec(i, y.AtVec(idx))
				for j := 0; j < m; j++ {
					txBatch.Set(i, j, tx.At(idx, j))
				}
			}
			if !yield(yBatch, txBatch) {
				return
			}
		}
	}
}

func identity(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
