package model

import (
	"encoding/json"
	"math"

	"github.com/YuminosukeSato/scorego/pkg/errors"
)

// ModelWeights は外部で学習されたロジスティック回帰の係数を受け渡す
// 構造体。WoE変換後のデータで学習した係数をJSONで持ち込み、
// スコアカードの構築に使う。FeaturesとCoefficientsは同じ順序で対応する。
type ModelWeights struct {
	// ModelType はモデルの種類（LogisticRegression等）
	ModelType string `json:"model_type"`

	// Version はモデルのバージョン（互換性チェック用）
	Version string `json:"version"`

	// Coefficients はWoE変換後の特徴量に対する係数
	Coefficients []float64 `json:"coefficients"`

	// Intercept は切片
	Intercept float64 `json:"intercept"`

	// Features は係数に対応する特徴量の名前
	Features []string `json:"features,omitempty"`

	// Hyperparameters は学習時のハイパーパラメータ
	Hyperparameters map[string]interface{} `json:"hyperparameters,omitempty"`

	// Metadata は追加のメタデータ（学習時の統計等）
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool `json:"is_fitted"`
}

// ToJSON はModelWeightsをJSON形式にシリアライズする
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	return json.MarshalIndent(mw, "", "  ")
}

// FromJSON はJSON形式からModelWeightsをデシリアライズする
func (mw *ModelWeights) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, mw); err != nil {
		return errors.Wrap(err, "model: failed to decode weights")
	}
	return nil
}

// Validate はModelWeightsの妥当性を検証する。スコアカード構築前に
// 呼ばれ、係数の欠落や数値の破綻をここで検出する
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return errors.New("model: model_type is required")
	}
	if mw.Version == "" {
		return errors.New("model: version is required")
	}
	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return errors.New("model: unfitted weights should not carry coefficients")
	}
	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return errors.New("model: fitted weights must carry coefficients")
	}
	if len(mw.Features) > 0 && len(mw.Features) != len(mw.Coefficients) {
		return errors.Newf("model: %d feature name(s) for %d coefficient(s)",
			len(mw.Features), len(mw.Coefficients))
	}
	for i, c := range mw.Coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return errors.Newf("model: coefficient %d is %g", i, c)
		}
	}
	if math.IsNaN(mw.Intercept) || math.IsInf(mw.Intercept, 0) {
		return errors.Newf("model: intercept is %g", mw.Intercept)
	}
	return nil
}

// Clone はModelWeightsのディープコピーを作成する
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := &ModelWeights{
		ModelType:    mw.ModelType,
		Version:      mw.Version,
		Intercept:    mw.Intercept,
		IsFitted:     mw.IsFitted,
		Coefficients: make([]float64, len(mw.Coefficients)),
		Features:     make([]string, len(mw.Features)),
	}
	copy(clone.Coefficients, mw.Coefficients)
	copy(clone.Features, mw.Features)

	if mw.Hyperparameters != nil {
		clone.Hyperparameters = make(map[string]interface{}, len(mw.Hyperparameters))
		for k, v := range mw.Hyperparameters {
			clone.Hyperparameters[k] = v
		}
	}
	if mw.Metadata != nil {
		clone.Metadata = make(map[string]interface{}, len(mw.Metadata))
		for k, v := range mw.Metadata {
			clone.Metadata[k] = v
		}
	}
	return clone
}
