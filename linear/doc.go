// Package linear fits linear and logistic models to a dense feature matrix.
//
// Every routine takes the labels y (length N), the design matrix tx (N × M)
// and returns the fitted weights (length M) together with the final loss:
//
//	w, loss, err := linear.LeastSquares(y, tx)
//	w, loss, err := linear.RidgeRegression(y, tx, lambda)
//	w, loss, err := linear.LeastSquaresGD(y, tx, w0, maxIters, gamma)
//	w, loss, err := linear.LeastSquaresSGD(y, tx, w0, maxIters, gamma, linear.WithRand(rng))
//	w, loss, err := linear.LogisticRegression(y, tx, w0, maxIters, gamma)
//	w, loss, err := linear.RegLogisticRegression(y, tx, lambda, w0, maxIters, gamma)
//
// The least-squares routines report the MSE loss (1/2N)·‖y − tx·w‖². The
// logistic routines accept {0,1} or ±1 labels and report the negative
// log-likelihood of the final weights, without the penalty term.
//
// Inputs are never modified. Progress is written to the pkg/log logger as
// structured "checkpoint" records every 50 iterations; WithLogger,
// WithCheckpoint and WithReportInterval control that side channel without
// affecting the returned values.
package linear
