// Package domain はproveedoresフィーチャーのドメインエラーを定義します。
package domain

import "errors"

var (
	// ErrInvalidProveedor は入力検証に失敗した場合に返されます。
	ErrInvalidProveedor = errors.New("invalid proveedor")

	// ErrInvalidEmpresaID は会社IDの指定が正の整数でない場合に返されます。
	ErrInvalidEmpresaID = errors.New("empresa id must be a positive integer")
)
