package model

import (
	"errors"
	"fmt"
)

// パイプラインの外に伝播する数少ないエラー条件。
// 外部依存のエラーはフォールバックで吸収されるため、利用者に見えるのは
// 「前段のステージが未生成」が支配的となる
var (
	ErrTripNotFound      = errors.New("指定された旅行が見つかりません")
	ErrMacroPlanNotFound = errors.New("マクロプランが見つかりません。先にマクロプランを生成してください")
	ErrPOIPlanNotFound   = errors.New("POIプランが見つかりません。先にPOIプランを生成してください")
	ErrItineraryNotFound = errors.New("旅程が見つかりません。先に旅程を生成してください")
	ErrSavedTripNotFound = errors.New("保存済み旅行が見つかりません")
)

// IsNotFound エラーがNotFound系かどうかを判定する
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTripNotFound) ||
		errors.Is(err, ErrMacroPlanNotFound) ||
		errors.Is(err, ErrPOIPlanNotFound) ||
		errors.Is(err, ErrItineraryNotFound) ||
		errors.Is(err, ErrSavedTripNotFound)
}

// ConfigurationError 設定不備（認証情報の欠落など）。コンストラクタで即座に失敗させ、
// 呼び出し時まで発覚を遅らせない
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("設定エラー [%s]: %s", e.Field, e.Message)
}

// UpstreamError 外部API・ネットワーク起因の失敗。呼び出し元のコンポーネント境界で
// 捕捉され、フォールバックまたは部分的な結果に縮退する
type UpstreamError struct {
	Source string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("外部依存エラー [%s]: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError 外部依存エラーを作成する
func NewUpstreamError(source string, err error) *UpstreamError {
	return &UpstreamError{Source: source, Err: err}
}
