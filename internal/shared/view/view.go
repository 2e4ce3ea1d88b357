// Package view は管理画面のHTMLテンプレートを提供します。
//
// テンプレートはバイナリに埋め込まれ、gin の SetHTMLTemplate で1つのセットとして登録されます。
// 各ページは "header" / "footer" を呼び出し、結果ダイアログは "dialog" で描画します。
package view

import (
	"embed"
	"html/template"
	"time"

	"empresas_admin/internal/platform/externalapi/backend/dto"
)

//go:embed templates/*.html
var files embed.FS

// Dialog は送信・取得結果を表示するダイアログです。
// 成功時は Token を閉じる操作 (POST /envios/:token/cerrar) で解放します。
// 失敗時はクライアント側で閉じるだけです。
type Dialog struct {
	Success bool
	Message string
	Token   string
}

// Success は成功ダイアログを作成します。
func Success(message, token string) *Dialog {
	return &Dialog{Success: true, Message: message, Token: token}
}

// Failure はエラーダイアログを作成します。
func Failure(message string) *Dialog {
	return &Dialog{Message: message}
}

// Funcs はテンプレート関数です。
func Funcs() template.FuncMap {
	return template.FuncMap{
		"fecha": func(t time.Time) string { return dto.FormatDate(t) },
		"siNo": func(b bool) string {
			if b {
				return "Si"
			}
			return "No"
		},
	}
}

// Parse は埋め込みテンプレートを解析します。
func Parse() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "templates/*.html")
}

// MustParse は Parse の失敗で panic します。起動時とテストで使います。
func MustParse() *template.Template {
	return template.Must(Parse())
}
