// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// スコアカード構築の各段階（ビニング、WoE変換、スコアスケーリング）で発生する
// 条件を構造化されたエラー型として表現します。
package errors

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("ScoreGo-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はScoreGoライブラリ全体の警告ハンドラを設定します。
// これにより、OutlierDropWarningなどの非致命的な報告の処理方法を制御できます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
// 警告は処理を中断しません。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	// zerologが設定されている場合は優先的に使用
	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	// フォールバック: 従来のハンドラ
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	ドメイン警告型
//
// ===========================================================================

// OutlierDropWarning は本番モードの変換で辞書に無い値を持つ行が
// 除外された場合に発生する警告です。除外は黙って行われてはならず、
// 件数と該当特徴量を必ず報告します。
type OutlierDropWarning struct {
	Op       string
	Dropped  int
	Rows     int
	Features []string
}

func (w *OutlierDropWarning) Error() string {
	return fmt.Sprintf("%s: dropped %d of %d rows with out-of-dictionary values (features: %s)",
		w.Op, w.Dropped, w.Rows, strings.Join(w.Features, ", "))
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *OutlierDropWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Int("dropped", w.Dropped).
		Int("rows", w.Rows).
		Strs("features", w.Features).
		Str("type", "OutlierDropWarning")
}

// NewOutlierDropWarning は新しいOutlierDropWarningを作成します。
func NewOutlierDropWarning(op string, dropped, rows int, features []string) *OutlierDropWarning {
	return &OutlierDropWarning{Op: op, Dropped: dropped, Rows: rows, Features: features}
}

// ScoreRangeWarning は算出されたスコアがスコアカードの想定レンジ外に
// 出た場合の警告です。レンジは報告用であり、スコアは切り詰められません。
type ScoreRangeWarning struct {
	Below int
	Above int
	Min   float64
	Max   float64
}

func (w *ScoreRangeWarning) Error() string {
	return fmt.Sprintf("%d score(s) below %g and %d above %g, outside the advisory range", w.Below, w.Min, w.Above, w.Max)
}

// NewScoreRangeWarning は新しいScoreRangeWarningを作成します。
func NewScoreRangeWarning(below, above int, min, max float64) *ScoreRangeWarning {
	return &ScoreRangeWarning{Below: below, Above: above, Min: min, Max: max}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError はモデルが未学習の状態で `Transform` や `Apply` を呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("scorego: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("scorego: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
// `ValueError`よりも具体的なバリデーションロジックの失敗を示します。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("scorego: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
// 例えば、区間が昇順に並んでいない分割を渡した場合など。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("scorego: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	ビニング・変換・スケーリングのエラー型
//
// ===========================================================================

// EmptyInputError は空の特徴量列・ターゲット列・データセットが渡された場合のエラーです。
type EmptyInputError struct {
	Op   string
	What string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("scorego: %s: empty %s", e.Op, e.What)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *EmptyInputError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("what", e.What).
		Str("type", "EmptyInputError")
}

// NewEmptyInputError は新しいEmptyInputErrorを作成し、スタックトレースを付与します。
func NewEmptyInputError(op, what string) error {
	err := &EmptyInputError{Op: op, What: what}
	return errors.WithStack(err)
}

// InvalidTargetError はターゲット列が二値(0/1)でない場合のエラーです。
// 不正な値とその行番号、または単一クラスなどの理由を保持します。
type InvalidTargetError struct {
	Op     string
	Row    int
	Value  float64
	Reason string
}

func (e *InvalidTargetError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("scorego: %s: invalid target: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("scorego: %s: invalid target value %g at row %d (binary 0/1 required)", e.Op, e.Value, e.Row)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InvalidTargetError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("row", e.Row).
		Float64("value", e.Value).
		Str("reason", e.Reason).
		Str("type", "InvalidTargetError")
}

// NewInvalidTargetError はターゲット値が0/1以外だった場合のエラーを作成します。
func NewInvalidTargetError(op string, value float64, row int) error {
	err := &InvalidTargetError{Op: op, Value: value, Row: row}
	return errors.WithStack(err)
}

// NewSingleClassTargetError はターゲットが片方のクラスしか含まない場合のエラーを作成します。
// WoEはイベント・非イベント両方の総数を分母に取るため、単一クラスでは定義できません。
func NewSingleClassTargetError(op string, class float64) error {
	err := &InvalidTargetError{Op: op, Reason: fmt.Sprintf("target contains only class %g, both classes are required", class)}
	return errors.WithStack(err)
}

// CardinalityError は離散特徴量の異なり数が安全閾値を超えた場合のエラーです。
// ビン統計の計算前に検出され、部分的な結果は生成されません。
type CardinalityError struct {
	Feature  string
	Distinct int
	Limit    int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("scorego: feature '%s': %d distinct values exceed the cardinality limit %d. Consider continuous binning or raising the limit",
		e.Feature, e.Distinct, e.Limit)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *CardinalityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("feature", e.Feature).
		Int("distinct", e.Distinct).
		Int("limit", e.Limit).
		Str("type", "CardinalityError")
}

// NewCardinalityError は新しいCardinalityErrorを作成し、スタックトレースを付与します。
func NewCardinalityError(feature string, distinct, limit int) error {
	err := &CardinalityError{Feature: feature, Distinct: distinct, Limit: limit}
	return errors.WithStack(err)
}

// PartitionError は連続特徴量の分割が観測値を網羅していない場合のエラーです。
// 範囲外の値の件数と、診断用のサンプルを保持します。
type PartitionError struct {
	Feature string
	Outside int
	Sample  []float64
}

func (e *PartitionError) Error() string {
	var sb strings.Builder
	for i, v := range e.Sample {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%g", v)
	}
	return fmt.Sprintf("scorego: feature '%s': partition does not cover %d value(s) (e.g. [%s])", e.Feature, e.Outside, sb.String())
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *PartitionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("feature", e.Feature).
		Int("outside", e.Outside).
		Floats64("sample", e.Sample).
		Str("type", "PartitionError")
}

// NewPartitionError は新しいPartitionErrorを作成し、スタックトレースを付与します。
func NewPartitionError(feature string, outside int, sample []float64) error {
	err := &PartitionError{Feature: feature, Outside: outside, Sample: sample}
	return errors.WithStack(err)
}

// UnseenValueError は開発モードの変換で、学習済みビンに存在しない値に
// 遭遇した場合のエラーです。部分的な出力は生成されません。
type UnseenValueError struct {
	Feature string
	Values  []string
	Rows    int
}

func (e *UnseenValueError) Error() string {
	return fmt.Sprintf("scorego: feature '%s': %d row(s) with values outside the fitted bins: [%s]",
		e.Feature, e.Rows, strings.Join(e.Values, ", "))
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *UnseenValueError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("feature", e.Feature).
		Strs("values", e.Values).
		Int("rows", e.Rows).
		Str("type", "UnseenValueError")
}

// NewUnseenValueError は新しいUnseenValueErrorを作成し、スタックトレースを付与します。
func NewUnseenValueError(feature string, values []string, rows int) error {
	err := &UnseenValueError{Feature: feature, Values: values, Rows: rows}
	return errors.WithStack(err)
}

// CoefficientError はWoE辞書の特徴量と係数ベクトルの特徴量が一致しない場合のエラーです。
// Missingは係数の無い辞書特徴量、Extraは辞書に無い係数の特徴量です。
type CoefficientError struct {
	Missing []string
	Extra   []string
}

func (e *CoefficientError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("no coefficient for dictionary feature(s) [%s]", strings.Join(e.Missing, ", ")))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, fmt.Sprintf("no dictionary table for coefficient feature(s) [%s]", strings.Join(e.Extra, ", ")))
	}
	return "scorego: " + strings.Join(parts, "; ")
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *CoefficientError) MarshalZerologObject(event *zerolog.Event) {
	event.Strs("missing", e.Missing).
		Strs("extra", e.Extra).
		Str("type", "CoefficientError")
}

// NewCoefficientError は新しいCoefficientErrorを作成し、スタックトレースを付与します。
func NewCoefficientError(missing, extra []string) error {
	err := &CoefficientError{Missing: missing, Extra: extra}
	return errors.WithStack(err)
}

// NumericalInstabilityError は数値計算が不安定になった場合のエラーです。
// NaN、Inf、オーバーフロー、アンダーフローなどを検出します。
type NumericalInstabilityError struct {
	Operation string                 // 発生した操作（例: "woe_compute", "score_scaling"）
	Values    []float64              // 問題のある値
	Context   map[string]interface{} // デバッグ用の追加コンテキスト情報
	Row       int                    // 発生した行番号（行に紐づかない場合は0）
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("scorego: numerical instability detected in %s at row %d. Values: [%s]",
		e.Operation, e.Row, valStr)
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64, row int) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Row:       row,
		Context:   make(map[string]interface{}),
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}
