// Package dto はバックエンドREST APIのワイヤーフォーマットを定義します。
// 管理画面のクライアントと開発用バックエンドの両方がこの定義を共有します。
package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout はワイヤー上の日付形式です。
const DateLayout = "2006-01-02"

// Envelope はすべての応答の共通形式 { "datos": ..., "mensaje": ... } です。
type Envelope[T any] struct {
	Datos   T      `json:"datos"`
	Mensaje string `json:"mensaje"`
}

// ErrorBody はエラー応答から mensaje だけを読み出すための型です。
type ErrorBody struct {
	Mensaje string `json:"mensaje"`
}

// Number はJSON数値と数値文字列の両方を受け付け、数値として出力する10進数です。
type Number struct {
	decimal.Decimal
}

// NewNumber は decimal.Decimal を Number に変換します。
func NewNumber(d decimal.Decimal) Number { return Number{Decimal: d} }

// MarshalJSON は引用符なしの数値として出力します。
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.Decimal.String()), nil
}

// UnmarshalJSON は 12.5 と "12.5" の両方を受け付けます。null と空文字はゼロです。
func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		n.Decimal = decimal.Zero
		return nil
	}
	return n.Decimal.UnmarshalJSON(b)
}

var _ json.Marshaler = Number{}

// ParseDate はワイヤー上の日付を解釈します。
// "YYYY-MM-DD" のほか、ORM がそのまま返す RFC3339 形式も日付部分として受け付けます。
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// FormatDate は日付をワイヤー形式に変換します。ゼロ値は空文字です。
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
