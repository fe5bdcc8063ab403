// Package metrics scores predictions produced by the linear package.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/linfit/pkg/errors"
)

// MSE は平均二乗誤差 (1/n)·Σ(yTrue − yPred)² を計算する
// linear.ComputeLoss の (1/2N) 版とは係数が異なる点に注意。
func MSE(yTrue, yPred mat.Vector) (float64, error) {
	if err := checkPair("MSE", yTrue, yPred); err != nil {
		return 0, err
	}
	diff := residuals(yTrue, yPred)
	return mat.Dot(diff, diff) / float64(diff.Len()), nil
}

// RMSE は平方根平均二乗誤差を計算する
func RMSE(yTrue, yPred mat.Vector) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差を計算する
func MAE(yTrue, yPred mat.Vector) (float64, error) {
	if err := checkPair("MAE", yTrue, yPred); err != nil {
		return 0, err
	}
	diff := residuals(yTrue, yPred)
	return mat.Norm(diff, 1) / float64(diff.Len()), nil
}

// R2Score は決定係数 1 − RSS/TSS を計算する
// yTrue が定数（TSS = 0）の場合はエラーを返す。
func R2Score(yTrue, yPred mat.Vector) (float64, error) {
	if err := checkPair("R2Score", yTrue, yPred); err != nil {
		return 0, err
	}

	values := mat.Col(nil, 0, yTrue)
	yMean := stat.Mean(values, nil)

	var tss float64
	for _, v := range values {
		tss += (v - yMean) * (v - yMean)
	}
	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}

	diff := residuals(yTrue, yPred)
	return 1 - mat.Dot(diff, diff)/tss, nil
}

func checkPair(op string, yTrue, yPred mat.Vector) error {
	n := yTrue.Len()
	if n == 0 {
		return errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return nil
}

func residuals(yTrue, yPred mat.Vector) *mat.VecDense {
	diff := mat.NewVecDense(yTrue.Len(), nil)
	diff.SubVec(yTrue, yPred)
	return diff
}
