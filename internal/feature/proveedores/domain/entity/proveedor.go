// Package entity はproveedoresフィーチャーのドメインモデルを定義します。
package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"empresas_admin/internal/shared/validation"
)

// SinEmpresa は所属会社が参照できない場合の表示名です。
const SinEmpresa = "Ninguna"

// EmpresaRef は仕入先が所属する会社への参照です。セレクタの選択肢にも使います。
type EmpresaRef struct {
	ID     int64
	Nombre string
}

// Proveedor は会社に所属する仕入先を表します。
type Proveedor struct {
	ID            int64
	Nombre        string
	FechaCreacion time.Time
	Activa        bool
	Recurso       string
	Cantidad      decimal.Decimal
	Facturacion   decimal.Decimal
	EmpresaID     int64
	// Empresa はAPIが結合して返した場合のみ設定されます。
	Empresa *EmpresaRef
}

// EmpresaNombre は所属会社名を返します。参照がなければ "Ninguna" です。
func (p Proveedor) EmpresaNombre() string {
	if p.Empresa == nil || p.Empresa.Nombre == "" {
		return SinEmpresa
	}
	return p.Empresa.Nombre
}

// Validate は作成・更新前の入力検証を行い、フィールドごとのエラーを返します。
func (p Proveedor) Validate(today time.Time) validation.Errors {
	errs := validation.Errors{}
	errs.Nombre("nombre", p.Nombre)
	errs.Fecha("fechaCreacion", p.FechaCreacion, today)
	errs.Required("empresaIdEmpresa", p.EmpresaID, "Debe seleccionar una empresa")
	return errs
}
