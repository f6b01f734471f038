package model

// EstimatorState は変換器・スコアカードの学習状態を表す
type EstimatorState int

const (
	// NotFitted は未学習の状態。TransformやApplyは呼び出せない
	NotFitted EstimatorState = iota
	// Fitted は学習済みの状態
	Fitted
)

// BaseEstimator は学習状態を持つコンポーネントの基底となる構造体。
// エンコーダのように単一ゴルーチンで学習してから使うコンポーネントが
// 埋め込む。並行アクセスされる場合はStateManagerを使うこと。
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted は学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted は学習済み状態に設定する
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset は初期状態にリセットする
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
