package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/pkg/errors"
)

// Accuracy は yTrue と yPred が一致する割合を返す
// ラベルは ±1 でも {0,1} でもよいが、両者で同じ符号化を使うこと。
func Accuracy(yTrue, yPred mat.Vector) (float64, error) {
	if err := checkPair("Accuracy", yTrue, yPred); err != nil {
		return 0, err
	}
	hits := 0
	for i := 0; i < yTrue.Len(); i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			hits++
		}
	}
	return float64(hits) / float64(yTrue.Len()), nil
}

// F1Score は正例を positive とした F1 値を返す
// 正例の予測も正解も存在しない場合はエラーを返す。
func F1Score(yTrue, yPred mat.Vector, positive float64) (float64, error) {
	if err := checkPair("F1Score", yTrue, yPred); err != nil {
		return 0, err
	}

	var tp, fp, fn float64
	for i := 0; i < yTrue.Len(); i++ {
		t, p := yTrue.AtVec(i) == positive, yPred.AtVec(i) == positive
		switch {
		case t && p:
			tp++
		case p:
			fp++
		case t:
			fn++
		}
	}
	if tp+fp+fn == 0 {
		return 0, errors.NewValueError("F1Score", "no positive labels in yTrue or yPred")
	}
	return 2 * tp / (2*tp + fp + fn), nil
}
