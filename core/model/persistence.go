package model

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/YuminosukeSato/scorego/pkg/errors"
)

// SaveModel は学習済みコンポーネントをgob形式でファイルに保存する
//
// パラメータ:
//   - model: 保存する値（WoE辞書、スコアカード等）
//   - filename: 保存先のファイルパス
//
// 戻り値:
//   - error: 保存に失敗した場合のエラー
//
// 使用例:
//
//	dict := enc.Dict()
//	err := model.SaveModel(dict, "dict.gob")
func SaveModel(model interface{}, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "model: failed to create file")
	}
	defer file.Close()

	if err := SaveModelToWriter(model, file); err != nil {
		return err
	}
	return nil
}

// LoadModel はgob形式のファイルからコンポーネントを読み込む
//
// パラメータ:
//   - model: 読み込み先の値のポインタ
//   - filename: 読み込み元のファイルパス
//
// 使用例:
//
//	var dict woe.Dict
//	err := model.LoadModel(&dict, "dict.gob")
func LoadModel(model interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "model: failed to open file")
	}
	defer file.Close()

	return LoadModelFromReader(model, file)
}

// SaveModelToWriter はコンポーネントをio.Writerにgob形式で書き出す
func SaveModelToWriter(model interface{}, w io.Writer) error {
	encoder := gob.NewEncoder(w)
	if err := encoder.Encode(model); err != nil {
		return errors.Wrap(err, "model: failed to encode")
	}
	return nil
}

// LoadModelFromReader はio.Readerからgob形式のコンポーネントを読み込む
func LoadModelFromReader(model interface{}, r io.Reader) error {
	decoder := gob.NewDecoder(r)
	if err := decoder.Decode(model); err != nil {
		return errors.Wrap(err, "model: failed to decode")
	}
	return nil
}
