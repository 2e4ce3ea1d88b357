// Package usecase は開発用バックエンドの会社・仕入先操作を実装します。
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"empresas_admin/internal/feature/devbackend/domain"
	"empresas_admin/internal/feature/devbackend/domain/entity"
	"empresas_admin/internal/shared/validation"
)

// CatalogRepository は会社と仕入先の永続化を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CatalogRepository interface {
	ListEmpresas(ctx context.Context) ([]entity.Empresa, error)
	ListEmpresasByMinFacturacion(ctx context.Context, min decimal.Decimal) ([]entity.Empresa, error)
	FindEmpresa(ctx context.Context, id int64) (*entity.Empresa, error)
	CreateEmpresa(ctx context.Context, e *entity.Empresa) error
	UpdateEmpresa(ctx context.Context, e *entity.Empresa) error
	DeleteEmpresa(ctx context.Context, id int64) error

	ListProveedores(ctx context.Context) ([]entity.Proveedor, error)
	ListProveedoresByEmpresa(ctx context.Context, empresaID int64) ([]entity.Proveedor, error)
	FindProveedor(ctx context.Context, id int64) (*entity.Proveedor, error)
	CreateProveedor(ctx context.Context, p *entity.Proveedor) error
	UpdateProveedor(ctx context.Context, p *entity.Proveedor) error
	DeleteProveedor(ctx context.Context, id int64) error
}

// CatalogUsecase は入力検証と参照整合性の確認を行います。
type CatalogUsecase struct {
	repo CatalogRepository
	now  func() time.Time
}

// NewCatalogUsecase は CatalogUsecase を生成します。
func NewCatalogUsecase(repo CatalogRepository) *CatalogUsecase {
	return &CatalogUsecase{repo: repo, now: time.Now}
}

func (u *CatalogUsecase) ListEmpresas(ctx context.Context) ([]entity.Empresa, error) {
	return u.repo.ListEmpresas(ctx)
}

func (u *CatalogUsecase) ListEmpresasByMinFacturacion(ctx context.Context, min decimal.Decimal) ([]entity.Empresa, error) {
	return u.repo.ListEmpresasByMinFacturacion(ctx, min)
}

func (u *CatalogUsecase) GetEmpresa(ctx context.Context, id int64) (*entity.Empresa, error) {
	return u.repo.FindEmpresa(ctx, id)
}

// CreateEmpresa は会社を検証して保存します。ID はデータベースが採番します。
func (u *CatalogUsecase) CreateEmpresa(ctx context.Context, e *entity.Empresa) error {
	if err := u.validateEmpresa(*e); err != nil {
		return err
	}
	e.ID = 0
	return u.repo.CreateEmpresa(ctx, e)
}

// UpdateEmpresa は既存の会社を上書きします。
func (u *CatalogUsecase) UpdateEmpresa(ctx context.Context, e *entity.Empresa) error {
	if err := u.validateEmpresa(*e); err != nil {
		return err
	}
	if _, err := u.repo.FindEmpresa(ctx, e.ID); err != nil {
		return err
	}
	return u.repo.UpdateEmpresa(ctx, e)
}

// DeleteEmpresa は仕入先が残っていない会社だけを削除します。
func (u *CatalogUsecase) DeleteEmpresa(ctx context.Context, id int64) error {
	if _, err := u.repo.FindEmpresa(ctx, id); err != nil {
		return err
	}
	proveedores, err := u.repo.ListProveedoresByEmpresa(ctx, id)
	if err != nil {
		return err
	}
	if len(proveedores) > 0 {
		return domain.ErrEmpresaEnUso
	}
	return u.repo.DeleteEmpresa(ctx, id)
}

func (u *CatalogUsecase) ListProveedores(ctx context.Context) ([]entity.Proveedor, error) {
	return u.repo.ListProveedores(ctx)
}

func (u *CatalogUsecase) ListProveedoresByEmpresa(ctx context.Context, empresaID int64) ([]entity.Proveedor, error) {
	return u.repo.ListProveedoresByEmpresa(ctx, empresaID)
}

func (u *CatalogUsecase) GetProveedor(ctx context.Context, id int64) (*entity.Proveedor, error) {
	return u.repo.FindProveedor(ctx, id)
}

// CreateProveedor は所属会社の存在を確認してから保存します。
func (u *CatalogUsecase) CreateProveedor(ctx context.Context, p *entity.Proveedor) error {
	if err := u.validateProveedor(ctx, *p); err != nil {
		return err
	}
	p.ID = 0
	return u.repo.CreateProveedor(ctx, p)
}

// UpdateProveedor は既存の仕入先を上書きします。
func (u *CatalogUsecase) UpdateProveedor(ctx context.Context, p *entity.Proveedor) error {
	if err := u.validateProveedor(ctx, *p); err != nil {
		return err
	}
	if _, err := u.repo.FindProveedor(ctx, p.ID); err != nil {
		return err
	}
	return u.repo.UpdateProveedor(ctx, p)
}

func (u *CatalogUsecase) DeleteProveedor(ctx context.Context, id int64) error {
	if _, err := u.repo.FindProveedor(ctx, id); err != nil {
		return err
	}
	return u.repo.DeleteProveedor(ctx, id)
}

func (u *CatalogUsecase) validateEmpresa(e entity.Empresa) error {
	errs := validation.Errors{}
	errs.Nombre("nombre", e.Nombre)
	errs.Fecha("fechaCreacion", e.FechaCreacion, u.now())
	errs.MaxDecimal("porcentajeEnBolsa", e.PorcentajeEnBolsa, decimal.NewFromInt(100),
		"El porcentaje en bolsa no puede superar 100")
	return firstError(errs, "nombre", "fechaCreacion", "porcentajeEnBolsa")
}

func (u *CatalogUsecase) validateProveedor(ctx context.Context, p entity.Proveedor) error {
	errs := validation.Errors{}
	errs.Nombre("nombre", p.Nombre)
	errs.Fecha("fechaCreacion", p.FechaCreacion, u.now())
	errs.Required("empresaIdEmpresa", p.EmpresaIDEmpresa, "Debe seleccionar una empresa")
	if err := firstError(errs, "nombre", "fechaCreacion", "empresaIdEmpresa"); err != nil {
		return err
	}
	if _, err := u.repo.FindEmpresa(ctx, p.EmpresaIDEmpresa); err != nil {
		if errors.Is(err, domain.ErrEmpresaNotFound) {
			return &domain.ValidationError{Message: "La empresa indicada no existe"}
		}
		return err
	}
	return nil
}

// firstError は fields の順で最初のエラーを ValidationError にします。
func firstError(errs validation.Errors, fields ...string) error {
	for _, f := range fields {
		if errs.Has(f) {
			return &domain.ValidationError{Message: errs.Get(f)}
		}
	}
	return nil
}
