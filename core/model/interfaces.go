package model

import "github.com/YuminosukeSato/scorego/frame"

// Fitter はデータセットと二値ターゲットから状態を学習するコンポーネントの
// インターフェース。WoEエンコーダが代表的な実装。
type Fitter interface {
	// Fit はデータセットのターゲット列以外を対象に学習する
	Fit(f *frame.Frame, target []float64) error
}

// CoefficientSource は学習済み線形モデルの係数をスコアカードへ受け渡す
// インターフェース。ロジスティック回帰をどこで学習したかに関わらず、
// 特徴量名と係数の対応さえ提供すればスコアカードを構築できる。
// 外部システムからの受け渡しにはModelWeightsを使う。
type CoefficientSource interface {
	// FeatureNames は係数に対応する特徴量名を返す
	FeatureNames() []string
	// Coef は特徴量名と同じ順序の係数ベクトルを返す
	Coef() []float64
	// InterceptValue はモデルの切片を返す
	InterceptValue() float64
}

// ParameterGetter はハイパーパラメータを公開するコンポーネントの
// インターフェース
type ParameterGetter interface {
	// GetParams はコンポーネントのパラメータを取得する
	GetParams() map[string]interface{}
}

// Persistable はファイルへの保存・復元が可能なコンポーネントの
// インターフェース
type Persistable interface {
	// Save はコンポーネントをファイルに保存する
	Save(path string) error

	// Load はファイルからコンポーネントを復元する
	Load(path string) error
}
