// Package dto はempresasフィーチャーのフォーム入力を定義します。
package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"empresas_admin/internal/feature/empresas/domain"
	"empresas_admin/internal/feature/empresas/domain/entity"
	"empresas_admin/internal/shared/validation"
)

// EmpresaForm は作成・更新フォームの入力です。
// 入力は文字列のまま保持し、エラー時にそのまま再描画します。
type EmpresaForm struct {
	Token             string `form:"token"`
	Nombre            string `form:"nombre"`
	Descripcion       string `form:"descripcion"`
	FechaCreacion     string `form:"fechaCreacion"`
	Activa            bool   `form:"activa"`
	Facturacion       string `form:"facturacion"`
	PorcentajeEnBolsa string `form:"porcentajeEnBolsa"`
}

// ToEntity はフォームを Empresa に変換し、解釈と検証のエラーをまとめて返します。
func (f EmpresaForm) ToEntity(today time.Time) (entity.Empresa, validation.Errors) {
	errs := validation.Errors{}
	e := entity.Empresa{
		Nombre:            f.Nombre,
		Descripcion:       f.Descripcion,
		FechaCreacion:     errs.ParseDate("fechaCreacion", f.FechaCreacion),
		Activa:            f.Activa,
		Facturacion:       errs.ParseDecimal("facturacion", f.Facturacion),
		PorcentajeEnBolsa: errs.ParseDecimal("porcentajeEnBolsa", f.PorcentajeEnBolsa),
	}
	errs.Merge(e.Validate(today))
	return e, errs
}

// FromEntity は更新フォームの初期値を作成します。
func FromEntity(e entity.Empresa, token string) EmpresaForm {
	return EmpresaForm{
		Token:             token,
		Nombre:            e.Nombre,
		Descripcion:       e.Descripcion,
		FechaCreacion:     formatDate(e.FechaCreacion),
		Activa:            e.Activa,
		Facturacion:       e.Facturacion.String(),
		PorcentajeEnBolsa: e.PorcentajeEnBolsa.String(),
	}
}

// ParseFacturacionMin は最低売上フィルタを解釈します。
func ParseFacturacionMin(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidFacturacion, raw)
	}
	return d, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(validation.DateLayout)
}
