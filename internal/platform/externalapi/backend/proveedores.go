package backend

import (
	"context"
	"fmt"
	"net/http"

	"empresas_admin/internal/feature/proveedores/domain/entity"
	"empresas_admin/internal/feature/proveedores/usecase"
	"empresas_admin/internal/platform/externalapi/backend/dto"
	"empresas_admin/internal/shared/apperror"
)

// ProveedorAPI は /proveedores エンドポイント群を扱う ProveedorRepository 実装です。
// 会社セレクタ用に GET /empresas/ も提供します。
type ProveedorAPI struct {
	c *Client
}

var (
	_ usecase.ProveedorRepository = (*ProveedorAPI)(nil)
	_ usecase.EmpresaDirectory    = (*ProveedorAPI)(nil)
)

// NewProveedorAPI は共通クライアントから ProveedorAPI を生成します。
func NewProveedorAPI(c *Client) *ProveedorAPI {
	return &ProveedorAPI{c: c}
}

// List は GET /proveedores/ で全仕入先を取得します。
func (a *ProveedorAPI) List(ctx context.Context) ([]entity.Proveedor, error) {
	var body []dto.Proveedor
	if _, err := a.c.do(ctx, http.MethodGet, "/proveedores/", "/proveedores/", nil, &body); err != nil {
		return nil, err
	}
	return toProveedores(body)
}

// ListByEmpresa は GET /proveedores/empresa/:id で会社に所属する仕入先を取得します。
func (a *ProveedorAPI) ListByEmpresa(ctx context.Context, empresaID int64) ([]entity.Proveedor, error) {
	var body []dto.Proveedor
	path := fmt.Sprintf("/proveedores/empresa/%d", empresaID)
	if _, err := a.c.do(ctx, http.MethodGet, "/proveedores/empresa/:id", path, nil, &body); err != nil {
		return nil, err
	}
	return toProveedores(body)
}

// Get は GET /proveedores/:id で1件取得します。
func (a *ProveedorAPI) Get(ctx context.Context, id int64) (*entity.Proveedor, error) {
	var body *dto.Proveedor
	msg, err := a.c.do(ctx, http.MethodGet, "/proveedores/:id", fmt.Sprintf("/proveedores/%d", id), nil, &body)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, apperror.New(http.StatusNotFound, msg)
	}
	p, err := toProveedor(*body)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create は POST /proveedores/ で仕入先を作成し、サーバーの mensaje を返します。
func (a *ProveedorAPI) Create(ctx context.Context, p entity.Proveedor) (string, error) {
	in := fromProveedor(p)
	in.IDProveedor = 0
	return a.c.do(ctx, http.MethodPost, "/proveedores/", "/proveedores/", in, nil)
}

// Update は PUT /proveedores/:id で仕入先を更新します。
func (a *ProveedorAPI) Update(ctx context.Context, p entity.Proveedor) (string, error) {
	return a.c.do(ctx, http.MethodPut, "/proveedores/:id", fmt.Sprintf("/proveedores/%d", p.ID), fromProveedor(p), nil)
}

// Delete は DELETE /proveedores/:id で仕入先を削除します。
func (a *ProveedorAPI) Delete(ctx context.Context, id int64) (string, error) {
	return a.c.do(ctx, http.MethodDelete, "/proveedores/:id", fmt.Sprintf("/proveedores/%d", id), nil, nil)
}

// ListEmpresas は会社セレクタ用に GET /empresas/ の id と名前だけを返します。
func (a *ProveedorAPI) ListEmpresas(ctx context.Context) ([]entity.EmpresaRef, error) {
	var body []dto.Empresa
	if _, err := a.c.do(ctx, http.MethodGet, "/empresas/", "/empresas/", nil, &body); err != nil {
		return nil, err
	}
	out := make([]entity.EmpresaRef, 0, len(body))
	for _, e := range body {
		out = append(out, entity.EmpresaRef{ID: e.IDEmpresa, Nombre: e.Nombre})
	}
	return out, nil
}
