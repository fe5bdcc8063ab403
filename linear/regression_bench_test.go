package linear

import (
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// createBenchmarkData はベンチマーク用の回帰・分類データを生成する
// 1列目は切片用の 1 で、ラベル yClass は ±1
func createBenchmarkData(rows, cols int) (y, yClass *mat.VecDense, tx *mat.Dense) {
	// シードを固定して再現性を確保
	rng := rand.New(rand.NewPCG(42, 42))

	tx = mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		tx.Set(i, 0, 1.0)
		for j := 1; j < cols; j++ {
			// -1.0 から 1.0 の範囲のランダムな値
			tx.Set(i, j, rng.Float64()*2.0-1.0)
		}
	}

	y = mat.NewVecDense(rows, nil)
	yClass = mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		sum := 0.0
		for j := 0; j < cols; j++ {
			sum += tx.At(i, j) * float64(j+1) * 0.5
		}
		// 小さなノイズを追加
		y.SetVec(i, sum+(rng.Float64()-0.5)*0.1)
		if sum > float64(cols) {
			yClass.SetVec(i, 1)
		} else {
			yClass.SetVec(i, -1)
		}
	}
	return y, yClass, tx
}

var benchSizes = []struct {
	name string
	rows int
	cols int
}{
	{"Small_100x10", 100, 10},
	{"Medium_1000x10", 1000, 10},
	{"Large_10000x20", 10000, 20},
}

func BenchmarkLeastSquares(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(size.name, func(b *testing.B) {
			y, _, tx := createBenchmarkData(size.rows, size.cols)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, _, err := LeastSquares(y, tx, quiet); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkLeastSquaresGD は 100 反復あたりのコスト
func BenchmarkLeastSquaresGD(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(size.name, func(b *testing.B) {
			y, _, tx := createBenchmarkData(size.rows, size.cols)
			w0 := mat.NewVecDense(size.cols, nil)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, _, err := LeastSquaresGD(y, tx, w0, 100, 0.1, quiet); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkLeastSquaresSGD(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(size.name, func(b *testing.B) {
			y, _, tx := createBenchmarkData(size.rows, size.cols)
			w0 := mat.NewVecDense(size.cols, nil)
			rng := rand.New(rand.NewPCG(1, 1))

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, _, err := LeastSquaresSGD(y, tx, w0, 100, 0.01, quiet, WithRand(rng)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkRegLogisticRegression(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(size.name, func(b *testing.B) {
			_, y, tx := createBenchmarkData(size.rows, size.cols)
			w0 := mat.NewVecDense(size.cols, nil)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, _, err := RegLogisticRegression(y, tx, 0.01, w0, 100, 1e-3, quiet); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
