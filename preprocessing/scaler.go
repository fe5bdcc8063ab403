package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/linfit/core/model"
	"github.com/YuminosukeSato/linfit/core/parallel"
	"github.com/YuminosukeSato/linfit/pkg/errors"
	"github.com/YuminosukeSato/linfit/pkg/log"
)

const (
	// DefaultMissingValue は測定エラーを表す番兵値
	DefaultMissingValue = -999.0

	// DefaultMinScale を下回る標準偏差の列は中心化のみ行う
	DefaultMinScale = 0.1

	// 列数がこれを超えると列ごとの統計計算を並列化する
	parallelColumnThreshold = 64
)

var _ model.Transformer = (*StandardScaler)(nil)

// StandardScaler は番兵値を考慮して各列を平均0、標準偏差1に変換する
//
// 平均と標準偏差（母標準偏差）は番兵値を除いた値から計算する。
// 変換時、番兵値は列の平均で置き換えられるため中心化後は 0 になる。
// 標準偏差が MinScale 未満の列は中心化のみ行い、LowVarianceWarning を発行する。
type StandardScaler struct {
	state *model.StateManager

	// Mean は各特徴量の平均値（番兵値を除く）
	Mean []float64

	// Scale は各特徴量の除数。低分散の列では 1
	Scale []float64

	// MissingValue は欠損を表す番兵値 (デフォルト: -999)
	MissingValue float64

	// MinScale は標準偏差による除算を行う下限 (デフォルト: 0.1)
	MinScale float64
}

// NewStandardScaler は番兵値 -999、閾値 0.1 の StandardScaler を作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler()
//	trainScaled, err := scaler.FitTransform(tx)
//	testScaled, err := scaler.Transform(txTest)
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{
		state:        model.NewStateManager(),
		MissingValue: DefaultMissingValue,
		MinScale:     DefaultMinScale,
	}
}

// IsFitted は Fit 済みかどうかを返す
func (s *StandardScaler) IsFitted() bool {
	return s.state.IsFitted()
}

// Fit は訓練データから番兵値を除いた平均と標準偏差を計算する
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	mean := make([]float64, c)
	scale := make([]float64, c)
	std := make([]float64, c)
	empty := make([]bool, c)

	parallel.ParallelizeWithThreshold(c, parallelColumnThreshold, func(start, end int) {
		clean := make([]float64, 0, r)
		for j := start; j < end; j++ {
			clean = clean[:0]
			for i := 0; i < r; i++ {
				if v := X.At(i, j); v != s.MissingValue {
					clean = append(clean, v)
				}
			}
			if len(clean) == 0 {
				empty[j] = true
				scale[j] = 1
				continue
			}
			mean[j], std[j] = stat.PopMeanStdDev(clean, nil)
			scale[j] = std[j]
		}
	})

	logger := log.GetLoggerWithName("preprocessing")
	for j := 0; j < c; j++ {
		if empty[j] {
			logger.Warn("column holds only missing values", "column", j)
			continue
		}
		// 中心化のみ
		if std[j] < s.MinScale {
			scale[j] = 1
			errors.Warn(errors.NewLowVarianceWarning(j, std[j], s.MinScale))
		}
	}

	// 無限大を含む列は統計量が NaN になる
	if err := errors.CheckNumericalStability("StandardScaler.Fit mean", mean, 0); err != nil {
		return err
	}
	if err := errors.CheckNumericalStability("StandardScaler.Fit scale", scale, 0); err != nil {
		return err
	}

	s.Mean = mean
	s.Scale = scale
	s.state.SetFitted(c, r)
	logger.Debug("scaler fitted",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhasePreprocessing,
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)
	return nil
}

// Transform は学習済みの統計情報を使ってデータを標準化する
// 番兵値は 0（平均で置換した後の中心化値）になる。入力は変更しない。
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	r, c := X.Dims()
	if err := s.state.RequireFitted("StandardScaler", "Transform", c); err != nil {
		return nil, err
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if v == s.MissingValue {
				continue
			}
			result.Set(i, j, (v-s.Mean[j])/s.Scale[j])
		}
	}
	return result, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
// 番兵値だった要素は列の平均として復元される。
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	r, c := X.Dims()
	if err := s.state.RequireFitted("StandardScaler", "InverseTransform", c); err != nil {
		return nil, err
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)*s.Scale[j]+s.Mean[j])
		}
	}
	return result, nil
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("StandardScaler(missing_value=%g, min_scale=%g)", s.MissingValue, s.MinScale)
	}
	nFeatures, _ := s.state.Dimensions()
	return fmt.Sprintf("StandardScaler(missing_value=%g, min_scale=%g, n_features=%d)",
		s.MissingValue, s.MinScale, nFeatures)
}

// Standardize は tx で学習した統計情報で tx と txTest の両方を標準化する
// 番兵値は訓練データの列平均で置換される。入力は変更しない。
func Standardize(tx, txTest mat.Matrix) (*mat.Dense, *mat.Dense, error) {
	scaler := NewStandardScaler()
	train, err := scaler.FitTransform(tx)
	if err != nil {
		return nil, nil, err
	}
	test, err := scaler.Transform(txTest)
	if err != nil {
		return nil, nil, err
	}
	return train.(*mat.Dense), test.(*mat.Dense), nil
}
