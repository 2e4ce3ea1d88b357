package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Proveedor は proveedores テーブルの行です。Empresa は読み取り時に Preload されます。
type Proveedor struct {
	ID               int64           `gorm:"column:id_proveedor;primaryKey;autoIncrement"`
	Nombre           string          `gorm:"size:50;not null"`
	FechaCreacion    time.Time       `gorm:"not null"`
	Activa           bool            `gorm:"not null;default:false"`
	Recurso          string          `gorm:"size:255"`
	Cantidad         decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	Facturacion      decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	EmpresaIDEmpresa int64           `gorm:"column:empresa_id_empresa;index;not null"`
	Empresa          *Empresa        `gorm:"foreignKey:EmpresaIDEmpresa;references:ID;constraint:OnDelete:RESTRICT"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName returns the table name for GORM.
func (Proveedor) TableName() string {
	return "proveedores"
}
