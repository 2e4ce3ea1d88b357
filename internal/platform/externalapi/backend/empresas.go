package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"empresas_admin/internal/feature/empresas/domain/entity"
	"empresas_admin/internal/feature/empresas/usecase"
	"empresas_admin/internal/platform/externalapi/backend/dto"
	"empresas_admin/internal/shared/apperror"
)

// EmpresaAPI は /empresas エンドポイント群を扱う EmpresaRepository 実装です。
type EmpresaAPI struct {
	c *Client
}

// EmpresaAPIがEmpresaRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.EmpresaRepository = (*EmpresaAPI)(nil)

// NewEmpresaAPI は共通クライアントから EmpresaAPI を生成します。
func NewEmpresaAPI(c *Client) *EmpresaAPI {
	return &EmpresaAPI{c: c}
}

// List は GET /empresas/ で全社を取得します。
func (a *EmpresaAPI) List(ctx context.Context) ([]entity.Empresa, error) {
	var body []dto.Empresa
	if _, err := a.c.do(ctx, http.MethodGet, "/empresas/", "/empresas/", nil, &body); err != nil {
		return nil, err
	}
	return toEmpresas(body)
}

// ListByMinFacturacion は GET /empresas/facturation/:min で売上が min 以上の会社を取得します。
func (a *EmpresaAPI) ListByMinFacturacion(ctx context.Context, min decimal.Decimal) ([]entity.Empresa, error) {
	var body []dto.Empresa
	path := "/empresas/facturation/" + min.String()
	if _, err := a.c.do(ctx, http.MethodGet, "/empresas/facturation/:min", path, nil, &body); err != nil {
		return nil, err
	}
	return toEmpresas(body)
}

// Get は GET /empresas/:id で1社を取得します。
func (a *EmpresaAPI) Get(ctx context.Context, id int64) (*entity.Empresa, error) {
	var body *dto.Empresa
	msg, err := a.c.do(ctx, http.MethodGet, "/empresas/:id", fmt.Sprintf("/empresas/%d", id), nil, &body)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, apperror.New(http.StatusNotFound, msg)
	}
	e, err := toEmpresa(*body)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create は POST /empresas/ で会社を作成し、サーバーの mensaje を返します。
func (a *EmpresaAPI) Create(ctx context.Context, e entity.Empresa) (string, error) {
	in := fromEmpresa(e)
	in.IDEmpresa = 0
	return a.c.do(ctx, http.MethodPost, "/empresas/", "/empresas/", in, nil)
}

// Update は PUT /empresas/:id で会社を更新し、サーバーの mensaje を返します。
func (a *EmpresaAPI) Update(ctx context.Context, e entity.Empresa) (string, error) {
	return a.c.do(ctx, http.MethodPut, "/empresas/:id", fmt.Sprintf("/empresas/%d", e.ID), fromEmpresa(e), nil)
}

// Delete は DELETE /empresas/:id で会社を削除し、サーバーの mensaje を返します。
func (a *EmpresaAPI) Delete(ctx context.Context, id int64) (string, error) {
	return a.c.do(ctx, http.MethodDelete, "/empresas/:id", fmt.Sprintf("/empresas/%d", id), nil, nil)
}
