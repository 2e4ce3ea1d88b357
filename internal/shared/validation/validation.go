// Package validation は入力フォームのフィールド単位の検証を提供します。
//
// 結果はフィールド名からエラーメッセージへのマップで、空のマップは全フィールドが有効であることを示します。
// テンプレートは Errors.Has / Errors.Get で各フィールドの状態と補助テキストを描画します。
package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// NombreMaxLen は名前フィールドの最大文字数（ルーン数）です。
const NombreMaxLen = 50

// MinFecha は作成日として受け付ける最も古い日付です。
var MinFecha = time.Date(1800, time.January, 1, 0, 0, 0, 0, time.UTC)

// Errors はフィールド名ごとの検証エラーです。
type Errors map[string]string

// Valid はエラーが1件もない場合に true を返します。
func (e Errors) Valid() bool { return len(e) == 0 }

// Has は field が無効な場合に true を返します。
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get は field のエラーメッセージを返します。
func (e Errors) Get(field string) string { return e[field] }

// Add は field にまだエラーがなければ msg を記録します。最初のエラーが優先されます。
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Nombre は名前が空でなく NombreMaxLen 文字以内であることを検証します。
func (e Errors) Nombre(field, value string) {
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0:
		e.Add(field, "El nombre es obligatorio")
	case n > NombreMaxLen:
		e.Add(field, "El nombre no puede superar los 50 caracteres")
	}
}

// Fecha は日付が入力済みで [MinFecha, today] の範囲内であることを検証します。
// 比較は日付単位で行い、時刻は無視します。
func (e Errors) Fecha(field string, value, today time.Time) {
	if value.IsZero() {
		e.Add(field, "La fecha de creacion es obligatoria")
		return
	}
	d := DateOnly(value)
	switch {
	case d.Before(MinFecha):
		e.Add(field, "La fecha no puede ser anterior a 1800-01-01")
	case d.After(DateOnly(today)):
		e.Add(field, "La fecha no puede ser posterior a hoy")
	}
}

// MaxDecimal は value が max 以下であることを検証します。
func (e Errors) MaxDecimal(field string, value, max decimal.Decimal, msg string) {
	if value.GreaterThan(max) {
		e.Add(field, msg)
	}
}

// Required は id が選択済み（正の値）であることを検証します。
func (e Errors) Required(field string, id int64, msg string) {
	if id <= 0 {
		e.Add(field, msg)
	}
}

// DateOnly は t の日付部分だけを UTC の0時として返します。
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateLayout はフォームの日付入力の形式です。
const DateLayout = "2006-01-02"

// ParseDecimal はフォームの数値入力を解釈します。空入力は0で、数値でなければ field にエラーを記録します。
func (e Errors) ParseDecimal(field, raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		e.Add(field, "Debe ser un numero")
		return decimal.Zero
	}
	return d
}

// ParseDate はフォームの日付入力を解釈します。空入力はゼロ値で、必須チェックは Fecha が行います。
func (e Errors) ParseDate(field, raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		e.Add(field, "La fecha no es valida")
		return time.Time{}
	}
	return t
}

// Merge は other のエラーを追加します。既存のエラーが優先されます。
func (e Errors) Merge(other Errors) {
	for field, msg := range other {
		e.Add(field, msg)
	}
}
