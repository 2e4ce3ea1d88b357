// Package domain はempresasフィーチャーのドメインエラーを定義します。
package domain

import "errors"

var (
	// ErrInvalidEmpresa は入力検証に失敗した場合に返されます。
	ErrInvalidEmpresa = errors.New("invalid empresa")

	// ErrInvalidFacturacion は最低売上フィルタが数値でない場合に返されます。
	ErrInvalidFacturacion = errors.New("facturacion must be numeric")
)
