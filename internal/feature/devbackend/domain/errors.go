// Package domain は開発用バックエンドのドメインエラーを定義します。
package domain

import "errors"

var (
	// ErrEmpresaNotFound は会社が存在しない場合に返されます。
	ErrEmpresaNotFound = errors.New("empresa not found")

	// ErrProveedorNotFound は仕入先が存在しない場合に返されます。
	ErrProveedorNotFound = errors.New("proveedor not found")

	// ErrEmpresaEnUso は仕入先が残っている会社を削除しようとした場合に返されます。
	ErrEmpresaEnUso = errors.New("empresa has proveedores")
)

// ValidationError は入力検証エラーで、Message はそのまま応答の mensaje になります。
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return "validation: " + e.Message }
