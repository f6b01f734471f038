// Package metrics はスコアカードの判別性能指標（AUC、KS、Gini）を提供する。
// いずれも二値ターゲットとスコアのベクトルを取り、スコアの単調変換に対して
// 不変な順位ベースの指標を返す。
package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scorego/pkg/errors"
)

// AUC はROC曲線下面積を順位法（Mann-WhitneyのU統計量）で計算する。
// 同点スコアには平均順位を割り当てる
//
// パラメータ:
//   - yTrue: {0,1}の二値ターゲット
//   - yScore: 対応するスコア（大きいほどイベント寄り）
//
// 戻り値:
//   - float64: AUC（0.5が無判別、1.0が完全判別）
//   - error: 入力が不正な場合のエラー
func AUC(yTrue, yScore *mat.VecDense) (float64, error) {
	const op = "AUC"
	events, nonEvents, err := validateInputs(op, yTrue, yScore)
	if err != nil {
		return 0, err
	}

	n := yTrue.Len()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return yScore.AtVec(idx[a]) < yScore.AtVec(idx[b])
	})

	// 同点グループに平均順位（1始まり）を割り当てる
	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && yScore.AtVec(idx[j+1]) == yScore.AtVec(idx[i]) {
			j++
		}
		avg := float64(i+j+2) / 2
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}

	var rankSum float64
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == 1 {
			rankSum += ranks[i]
		}
	}

	nPos := float64(events)
	nNeg := float64(nonEvents)
	return (rankSum - nPos*(nPos+1)/2) / (nPos * nNeg), nil
}

// AUCMatrix は行列形式（n×1）の入力に対してAUCを計算する
func AUCMatrix(yTrue, yScore mat.Matrix) (float64, error) {
	const op = "AUCMatrix"
	rTrue, cTrue := yTrue.Dims()
	rScore, cScore := yScore.Dims()

	if rTrue == 0 || cTrue == 0 {
		return 0, errors.NewEmptyInputError(op, "target matrix")
	}
	if rTrue != rScore || cTrue != cScore {
		return 0, errors.NewDimensionError(op, rTrue, rScore, 0)
	}
	if cTrue != 1 {
		return 0, errors.NewValueError(op, "must be a column vector (n×1 matrix)")
	}

	yTrueVec := mat.NewVecDense(rTrue, nil)
	yScoreVec := mat.NewVecDense(rScore, nil)
	for i := 0; i < rTrue; i++ {
		yTrueVec.SetVec(i, yTrue.At(i, 0))
		yScoreVec.SetVec(i, yScore.At(i, 0))
	}

	return AUC(yTrueVec, yScoreVec)
}

// KS はKolmogorov-Smirnov統計量を計算する:
// イベントと非イベントのスコア累積分布の最大乖離。
// 同点スコアはまとめて処理されるため、閾値の取り方に依存しない
func KS(yTrue, yScore *mat.VecDense) (float64, error) {
	const op = "KS"
	events, nonEvents, err := validateInputs(op, yTrue, yScore)
	if err != nil {
		return 0, err
	}

	n := yTrue.Len()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return yScore.AtVec(idx[a]) < yScore.AtVec(idx[b])
	})

	var ks, cumEvents, cumNonEvents float64
	for i := 0; i < n; {
		j := i
		for j+1 < n && yScore.AtVec(idx[j+1]) == yScore.AtVec(idx[i]) {
			j++
		}
		for k := i; k <= j; k++ {
			if yTrue.AtVec(idx[k]) == 1 {
				cumEvents++
			} else {
				cumNonEvents++
			}
		}
		d := math.Abs(cumEvents/float64(events) - cumNonEvents/float64(nonEvents))
		if d > ks {
			ks = d
		}
		i = j + 1
	}

	return ks, nil
}

// Gini はGini係数（2*AUC - 1）を計算する
func Gini(yTrue, yScore *mat.VecDense) (float64, error) {
	auc, err := AUC(yTrue, yScore)
	if err != nil {
		return 0, err
	}
	return 2*auc - 1, nil
}

// validateInputs は指標計算入力の共通検証を行い、イベント数と
// 非イベント数を返す
func validateInputs(op string, yTrue, yScore *mat.VecDense) (events, nonEvents int, err error) {
	if yTrue == nil || yTrue.Len() == 0 {
		return 0, 0, errors.NewEmptyInputError(op, "target vector")
	}
	if yScore == nil || yScore.Len() == 0 {
		return 0, 0, errors.NewEmptyInputError(op, "score vector")
	}
	if yTrue.Len() != yScore.Len() {
		return 0, 0, errors.NewDimensionError(op, yTrue.Len(), yScore.Len(), 0)
	}

	for i := 0; i < yTrue.Len(); i++ {
		switch yTrue.AtVec(i) {
		case 0:
			nonEvents++
		case 1:
			events++
		default:
			return 0, 0, errors.NewInvalidTargetError(op, yTrue.AtVec(i), i)
		}
		if s := yScore.AtVec(i); math.IsNaN(s) || math.IsInf(s, 0) {
			return 0, 0, errors.NewNumericalInstabilityError(op, []float64{s}, i)
		}
	}
	if events == 0 {
		return 0, 0, errors.NewSingleClassTargetError(op, 0)
	}
	if nonEvents == 0 {
		return 0, 0, errors.NewSingleClassTargetError(op, 1)
	}
	return events, nonEvents, nil
}
