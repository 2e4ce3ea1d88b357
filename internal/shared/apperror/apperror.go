// Package apperror は外部APIの失敗を利用者向けの単一メッセージに縮約するためのエラー型を提供します。
package apperror

import (
	"errors"
	"fmt"
)

// Error はリモートAPIが返したエラーを表します。
// Message はサーバーの `mensaje` フィールドで、空の場合もあります。
type Error struct {
	Status  int    // HTTPステータスコード
	Message string // サーバーが返したメッセージ
	Err     error  // 元のエラー（任意）
}

// New はステータスとメッセージから Error を生成します。
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Wrap は元のエラーを保持した Error を生成します。
func Wrap(status int, message string, err error) *Error {
	return &Error{Status: status, Message: message, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("backend http %d: %s: %v", e.Status, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("backend http %d: %s", e.Status, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("backend http %d: %v", e.Status, e.Err)
	default:
		return fmt.Sprintf("backend http %d", e.Status)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Message はエラーを画面に表示する1つのメッセージに変換します。
// サーバーのメッセージがあればそれを、なければ fallback を返します。
// ネットワーク障害・サーバー側バリデーション・Not Found は区別しません。
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusOf はエラーに含まれるHTTPステータスを返します。含まれない場合は0です。
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
