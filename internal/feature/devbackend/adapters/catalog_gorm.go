// Package adapters は開発用バックエンドのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"empresas_admin/internal/feature/devbackend/domain"
	"empresas_admin/internal/feature/devbackend/domain/entity"
	"empresas_admin/internal/feature/devbackend/usecase"
)

// catalogGorm はCatalogRepositoryインターフェースのGORM実装です。
type catalogGorm struct {
	db *gorm.DB
}

// catalogGormがCatalogRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.CatalogRepository = (*catalogGorm)(nil)

// NewCatalogGorm は指定されたgorm.DB接続でcatalogGormを生成します。
func NewCatalogGorm(db *gorm.DB) *catalogGorm {
	return &catalogGorm{db: db}
}

// Models はマイグレーション対象のモデルです。
func Models() []any {
	return []any{&entity.Empresa{}, &entity.Proveedor{}}
}

func (r *catalogGorm) ListEmpresas(ctx context.Context) ([]entity.Empresa, error) {
	var out []entity.Empresa
	if err := r.db.WithContext(ctx).Order("id_empresa").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	return out, nil
}

// ListEmpresasByMinFacturacion は売上が min 以上の会社を返します。
func (r *catalogGorm) ListEmpresasByMinFacturacion(ctx context.Context, min decimal.Decimal) ([]entity.Empresa, error) {
	var out []entity.Empresa
	err := r.db.WithContext(ctx).
		Where("facturacion >= ?", min).
		Order("id_empresa").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list empresas by facturacion: %w", err)
	}
	return out, nil
}

// FindEmpresa は会社を取得します。存在しない場合は domain.ErrEmpresaNotFound を返します。
func (r *catalogGorm) FindEmpresa(ctx context.Context, id int64) (*entity.Empresa, error) {
	var e entity.Empresa
	if err := r.db.WithContext(ctx).First(&e, "id_empresa = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmpresaNotFound
		}
		return nil, fmt.Errorf("find empresa: %w", err)
	}
	return &e, nil
}

func (r *catalogGorm) CreateEmpresa(ctx context.Context, e *entity.Empresa) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("create empresa: %w", err)
	}
	return nil
}

func (r *catalogGorm) UpdateEmpresa(ctx context.Context, e *entity.Empresa) error {
	err := r.db.WithContext(ctx).
		Model(&entity.Empresa{}).
		Where("id_empresa = ?", e.ID).
		Select("nombre", "descripcion", "fecha_creacion", "activa", "facturacion", "porcentaje_en_bolsa").
		Updates(e).Error
	if err != nil {
		return fmt.Errorf("update empresa: %w", err)
	}
	return nil
}

func (r *catalogGorm) DeleteEmpresa(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&entity.Empresa{}, "id_empresa = ?", id).Error; err != nil {
		return fmt.Errorf("delete empresa: %w", err)
	}
	return nil
}

// ListProveedores は所属会社を結合した全仕入先を返します。
func (r *catalogGorm) ListProveedores(ctx context.Context) ([]entity.Proveedor, error) {
	var out []entity.Proveedor
	if err := r.db.WithContext(ctx).Preload("Empresa").Order("id_proveedor").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	return out, nil
}

func (r *catalogGorm) ListProveedoresByEmpresa(ctx context.Context, empresaID int64) ([]entity.Proveedor, error) {
	var out []entity.Proveedor
	err := r.db.WithContext(ctx).
		Preload("Empresa").
		Where("empresa_id_empresa = ?", empresaID).
		Order("id_proveedor").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list proveedores by empresa: %w", err)
	}
	return out, nil
}

func (r *catalogGorm) FindProveedor(ctx context.Context, id int64) (*entity.Proveedor, error) {
	var p entity.Proveedor
	if err := r.db.WithContext(ctx).Preload("Empresa").First(&p, "id_proveedor = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProveedorNotFound
		}
		return nil, fmt.Errorf("find proveedor: %w", err)
	}
	return &p, nil
}

// CreateProveedor は仕入先だけを保存し、結合された会社は書き込みません。
func (r *catalogGorm) CreateProveedor(ctx context.Context, p *entity.Proveedor) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return fmt.Errorf("create proveedor: %w", err)
	}
	return nil
}

func (r *catalogGorm) UpdateProveedor(ctx context.Context, p *entity.Proveedor) error {
	err := r.db.WithContext(ctx).
		Model(&entity.Proveedor{}).
		Where("id_proveedor = ?", p.ID).
		Select("nombre", "fecha_creacion", "activa", "recurso", "cantidad", "facturacion", "empresa_id_empresa").
		Updates(p).Error
	if err != nil {
		return fmt.Errorf("update proveedor: %w", err)
	}
	return nil
}

func (r *catalogGorm) DeleteProveedor(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&entity.Proveedor{}, "id_proveedor = ?", id).Error; err != nil {
		return fmt.Errorf("delete proveedor: %w", err)
	}
	return nil
}
