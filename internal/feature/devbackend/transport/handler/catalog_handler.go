// Package handler は開発用バックエンドのREST APIハンドラーを提供します。
// 応答は管理画面が消費する {datos, mensaje} 形式です。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"empresas_admin/internal/feature/devbackend/domain"
	"empresas_admin/internal/feature/devbackend/domain/entity"
	"empresas_admin/internal/platform/externalapi/backend/dto"
	"empresas_admin/internal/platform/logger"
)

// CatalogUsecase は会社・仕入先操作のユースケースインターフェースです。
type CatalogUsecase interface {
	ListEmpresas(ctx context.Context) ([]entity.Empresa, error)
	ListEmpresasByMinFacturacion(ctx context.Context, min decimal.Decimal) ([]entity.Empresa, error)
	GetEmpresa(ctx context.Context, id int64) (*entity.Empresa, error)
	CreateEmpresa(ctx context.Context, e *entity.Empresa) error
	UpdateEmpresa(ctx context.Context, e *entity.Empresa) error
	DeleteEmpresa(ctx context.Context, id int64) error

	ListProveedores(ctx context.Context) ([]entity.Proveedor, error)
	ListProveedoresByEmpresa(ctx context.Context, empresaID int64) ([]entity.Proveedor, error)
	GetProveedor(ctx context.Context, id int64) (*entity.Proveedor, error)
	CreateProveedor(ctx context.Context, p *entity.Proveedor) error
	UpdateProveedor(ctx context.Context, p *entity.Proveedor) error
	DeleteProveedor(ctx context.Context, id int64) error
}

// CatalogHandler は /empresas と /proveedores のREST APIを処理します。
type CatalogHandler struct {
	uc CatalogUsecase
}

// NewCatalogHandler は CatalogHandler を生成します。
func NewCatalogHandler(uc CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func respond[T any](c *gin.Context, status int, datos T, mensaje string) {
	c.JSON(status, dto.Envelope[T]{Datos: datos, Mensaje: mensaje})
}

func fail(c *gin.Context, status int, mensaje string) {
	c.JSON(status, dto.ErrorBody{Mensaje: mensaje})
}

// failErr はドメインエラーをHTTPステータスと mensaje に変換します。
func failErr(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		fail(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, domain.ErrEmpresaNotFound):
		fail(c, http.StatusNotFound, "Empresa no encontrada")
	case errors.Is(err, domain.ErrProveedorNotFound):
		fail(c, http.StatusNotFound, "Proveedor no encontrado")
	case errors.Is(err, domain.ErrEmpresaEnUso):
		fail(c, http.StatusConflict, "No se puede eliminar una empresa con proveedores")
	default:
		logger.FromGin(c).Error("catalog operation failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Error interno del servidor")
	}
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "Identificador no valido")
		return 0, false
	}
	return id, true
}

// ListEmpresas は GET /empresas/ を処理します。
func (h *CatalogHandler) ListEmpresas(c *gin.Context) {
	rows, err := h.uc.ListEmpresas(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, toEmpresaDTOs(rows), "")
}

// ListEmpresasByFacturacion は GET /empresas/facturation/:min を処理します。
func (h *CatalogHandler) ListEmpresasByFacturacion(c *gin.Context) {
	min, err := decimal.NewFromString(c.Param("min"))
	if err != nil {
		fail(c, http.StatusBadRequest, "La facturacion debe ser un numero")
		return
	}
	rows, err := h.uc.ListEmpresasByMinFacturacion(c.Request.Context(), min)
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, toEmpresaDTOs(rows), "")
}

// GetEmpresa は GET /empresas/:id を処理します。
func (h *CatalogHandler) GetEmpresa(c *gin.Context) {
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	e, err := h.uc.GetEmpresa(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, toEmpresaDTO(*e), "")
}

// CreateEmpresa は POST /empresas/ を処理します。
func (h *CatalogHandler) CreateEmpresa(c *gin.Context) {
	e, valid := bindEmpresa(c)
	if !valid {
		return
	}
	if err := h.uc.CreateEmpresa(c.Request.Context(), &e); err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusCreated, toEmpresaDTO(e), "Empresa creada correctamente")
}

// UpdateEmpresa は PUT /empresas/:id を処理します。パスのIDが本文より優先されます。
func (h *CatalogHandler) UpdateEmpresa(c *gin.Context) {
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	e, valid := bindEmpresa(c)
	if !valid {
		return
	}
	e.ID = id
	if err := h.uc.UpdateEmpresa(c.Request.Context(), &e); err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, toEmpresaDTO(e), "Empresa actualizada correctamente")
}

// DeleteEmpresa は DELETE /empresas/:id を処理します。
func (h *CatalogHandler) DeleteEmpresa(c *gin.Context) {
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	if err := h.uc.DeleteEmpresa(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	respond[any](c, http.StatusOK, nil, "Empresa eliminada correctamente")
}

// ListProveedores は GET /proveedores/ を処理します。
func (h *CatalogHandler) ListProveedores(c *gin.Context) {
	rows, err := h.uc.ListProveedores(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, toProveedorDTOs(rows), "")
}

// ListProveedoresByEmpresa は GET /proveedores/empresa/:empresaId を処理します。
func (h *CatalogHandler) ListProveedoresByEmpresa(c *gin.Context) {
	id, valid := paramID(c, "empresaId")
	if !valid {
		return
	}
	rows, err := h.uc.ListProveedoresByEmpresa(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, toProveedorDTOs(rows), "")
}

// GetProveedor は GET /proveedores/:id を処理します。
func (h *CatalogHandler) GetProveedor(c *gin.Context) {
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	p, err := h.uc.GetProveedor(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, toProveedorDTO(*p), "")
}

// CreateProveedor は POST /proveedores/ を処理します。
func (h *CatalogHandler) CreateProveedor(c *gin.Context) {
	p, valid := bindProveedor(c)
	if !valid {
		return
	}
	if err := h.uc.CreateProveedor(c.Request.Context(), &p); err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusCreated, toProveedorDTO(p), "Proveedor creado correctamente")
}

// UpdateProveedor は PUT /proveedores/:id を処理します。
func (h *CatalogHandler) UpdateProveedor(c *gin.Context) {
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	p, valid := bindProveedor(c)
	if !valid {
		return
	}
	p.ID = id
	if err := h.uc.UpdateProveedor(c.Request.Context(), &p); err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, toProveedorDTO(p), "Proveedor actualizado correctamente")
}

// DeleteProveedor は DELETE /proveedores/:id を処理します。
func (h *CatalogHandler) DeleteProveedor(c *gin.Context) {
	id, valid := paramID(c, "id")
	if !valid {
		return
	}
	if err := h.uc.DeleteProveedor(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	respond[any](c, http.StatusOK, nil, "Proveedor eliminado correctamente")
}

func bindEmpresa(c *gin.Context) (entity.Empresa, bool) {
	var in dto.Empresa
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Cuerpo de la peticion no valido")
		return entity.Empresa{}, false
	}
	e, err := fromEmpresaDTO(in)
	if err != nil {
		fail(c, http.StatusBadRequest, "La fecha de creacion no es valida")
		return entity.Empresa{}, false
	}
	return e, true
}

func bindProveedor(c *gin.Context) (entity.Proveedor, bool) {
	var in dto.Proveedor
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Cuerpo de la peticion no valido")
		return entity.Proveedor{}, false
	}
	p, err := fromProveedorDTO(in)
	if err != nil {
		fail(c, http.StatusBadRequest, "La fecha de creacion no es valida")
		return entity.Proveedor{}, false
	}
	return p, true
}
