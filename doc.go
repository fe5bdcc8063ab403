// Package linfit fits linear and logistic regression models to dense,
// in-memory tabular data.
//
// linfit bundles the whole workflow of a small classification or regression
// study: loading a CSV file, cleaning measurement errors encoded as -999,
// standardizing, polynomial feature expansion, and six estimators that all
// share one calling convention and return (weights, loss, error).
//
// # Features
//
//   - Closed-form least squares and ridge regression (LU solve via gonum)
//   - Gradient descent, minibatch SGD with an explicit random source
//   - Logistic regression with early stopping, and an L2-regularized variant
//   - Overflow-safe sigmoid and clamped log-likelihood
//   - Structured progress logging (zerolog) that never changes results
//   - Typed errors with stack traces (cockroachdb/errors)
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/linfit/linear"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    tx := mat.NewDense(4, 2, []float64{1, 0, 1, 1, 1, 2, 1, 3})
//	    y := mat.NewVecDense(4, []float64{1, 3, 5, 7})
//
//	    w, loss, err := linear.LeastSquares(y, tx)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(mat.Formatted(w.T()), loss)
//	}
//
// # Packages
//
//   - linear: loss primitives, sigmoid, solvers and optimizers
//   - preprocessing: StandardScaler, BuildPoly, faulty row/column removal
//   - dataset: CSV loading, BatchIter, synthetic data
//   - metrics: MSE, RMSE, MAE, R², accuracy, F1
//   - viz: loss curves with gonum/plot
//   - core/model: Transformer interface and fitted-state tracking
//   - core/parallel: index-range parallelism for preprocessing
//   - pkg/errors, pkg/log: error types, warnings and structured logging
//
// A complete command-line pipeline lives in examples/pipeline.
package linfit
