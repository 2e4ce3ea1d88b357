// Package entity はempresasフィーチャーのドメインモデルを定義します。
package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"empresas_admin/internal/shared/validation"
)

// MaxPorcentajeEnBolsa は株式公開比率の上限です。
var MaxPorcentajeEnBolsa = decimal.NewFromInt(100)

// Empresa は管理対象の会社を表します。
// ID はリモートAPIが採番し、新規作成前のドラフトでは0です。
type Empresa struct {
	ID                int64
	Nombre            string
	Descripcion       string
	FechaCreacion     time.Time
	Activa            bool
	Facturacion       decimal.Decimal
	PorcentajeEnBolsa decimal.Decimal
}

// Validate は作成・更新前の入力検証を行い、フィールドごとのエラーを返します。
func (e Empresa) Validate(today time.Time) validation.Errors {
	errs := validation.Errors{}
	errs.Nombre("nombre", e.Nombre)
	errs.Fecha("fechaCreacion", e.FechaCreacion, today)
	errs.MaxDecimal("porcentajeEnBolsa", e.PorcentajeEnBolsa, MaxPorcentajeEnBolsa,
		"El porcentaje en bolsa no puede superar 100")
	return errs
}
