// Package dto はproveedoresフィーチャーのフォーム入力を定義します。
package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"empresas_admin/internal/feature/proveedores/domain"
	"empresas_admin/internal/feature/proveedores/domain/entity"
	"empresas_admin/internal/shared/validation"
)

// ProveedorForm は作成・更新フォームの入力です。
// EmpresaIDEmpresa は未選択なら0です。
type ProveedorForm struct {
	Token            string `form:"token"`
	Nombre           string `form:"nombre"`
	FechaCreacion    string `form:"fechaCreacion"`
	Activa           bool   `form:"activa"`
	Recurso          string `form:"recurso"`
	Cantidad         string `form:"cantidad"`
	Facturacion      string `form:"facturacion"`
	EmpresaIDEmpresa int64  `form:"empresaIdEmpresa"`
}

// ToEntity はフォームを Proveedor に変換し、解釈と検証のエラーをまとめて返します。
func (f ProveedorForm) ToEntity(today time.Time) (entity.Proveedor, validation.Errors) {
	errs := validation.Errors{}
	p := entity.Proveedor{
		Nombre:        f.Nombre,
		FechaCreacion: errs.ParseDate("fechaCreacion", f.FechaCreacion),
		Activa:        f.Activa,
		Recurso:       f.Recurso,
		Cantidad:      errs.ParseDecimal("cantidad", f.Cantidad),
		Facturacion:   errs.ParseDecimal("facturacion", f.Facturacion),
		EmpresaID:     f.EmpresaIDEmpresa,
	}
	errs.Merge(p.Validate(today))
	return p, errs
}

// FromEntity は更新フォームの初期値を作成します。
func FromEntity(p entity.Proveedor, token string) ProveedorForm {
	f := ProveedorForm{
		Token:            token,
		Nombre:           p.Nombre,
		Activa:           p.Activa,
		Recurso:          p.Recurso,
		Cantidad:         p.Cantidad.String(),
		Facturacion:      p.Facturacion.String(),
		EmpresaIDEmpresa: p.EmpresaID,
	}
	if !p.FechaCreacion.IsZero() {
		f.FechaCreacion = p.FechaCreacion.Format(validation.DateLayout)
	}
	return f
}

// ParseEmpresaID は会社フィルタの選択値を解釈します。
func ParseEmpresaID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidEmpresaID, raw)
	}
	return id, nil
}
