// Package entity は開発用バックエンドが永続化するモデルを定義します。
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Empresa は empresas テーブルの行です。
type Empresa struct {
	ID                int64           `gorm:"column:id_empresa;primaryKey;autoIncrement"`
	Nombre            string          `gorm:"size:50;not null"`
	Descripcion       string          `gorm:"type:text"`
	FechaCreacion     time.Time       `gorm:"not null"`
	Activa            bool            `gorm:"not null;default:false"`
	Facturacion       decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	PorcentajeEnBolsa decimal.Decimal `gorm:"type:numeric(7,4);not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName returns the table name for GORM.
func (Empresa) TableName() string {
	return "empresas"
}
