// Package handler はproveedoresフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"empresas_admin/internal/feature/proveedores/domain/entity"
	"empresas_admin/internal/feature/proveedores/transport/http/dto"
	"empresas_admin/internal/feature/proveedores/usecase"
	"empresas_admin/internal/platform/logger"
	"empresas_admin/internal/shared/apperror"
	"empresas_admin/internal/shared/submission"
	"empresas_admin/internal/shared/validation"
	"empresas_admin/internal/shared/view"
)

// ProveedorUsecase は仕入先操作のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ProveedorUsecase interface {
	Today() time.Time
	Empresas(ctx context.Context) ([]entity.EmpresaRef, error)
	Get(ctx context.Context, id int64) (*entity.Proveedor, error)
	Create(ctx context.Context, p entity.Proveedor) (string, error)
	Update(ctx context.Context, p entity.Proveedor) (string, error)
	List(ctx context.Context, vistaID string) (usecase.Listado, error)
	ListByEmpresa(ctx context.Context, empresaID int64, vistaID string) (usecase.Listado, error)
	Delete(ctx context.Context, vistaID string, id int64) (string, error)
}

// Submitter はフォーム送信の二重実行を防ぎます。
type Submitter interface {
	NewToken() string
	Submit(ctx context.Context, form, token string, call submission.Call, fallback string) (submission.Result, error)
	RecordInvalid(form string)
}

const (
	formAlta      = "altaproveedor"
	formModificar = "modificarproveedor"

	tmplForm = "proveedor_form.html"
	tmplList = "proveedor_list.html"

	msgErrorCrear     = "Error al crear el proveedor"
	msgErrorEditar    = "Error al editar el proveedor"
	msgErrorRecuperar = "Error al recuperar los datos del proveedor"
	msgErrorEmpresas  = "Error al recuperar las empresas"
	msgErrorEliminar  = "Error al eliminar el proveedor"
	msgSinConexion    = "No se pudo conectar al servidor"
	msgEnCurso        = "El envio ya se esta procesando"
)

// ProveedorHandler は仕入先の画面を処理します。
type ProveedorHandler struct {
	uc    ProveedorUsecase
	guard Submitter
}

// NewProveedorHandler は ProveedorHandler を生成します。
func NewProveedorHandler(uc ProveedorUsecase, guard Submitter) *ProveedorHandler {
	return &ProveedorHandler{uc: uc, guard: guard}
}

type formPage struct {
	Title         string
	Action        string
	Submit        string
	Hoy           string
	Form          dto.ProveedorForm
	Errors        validation.Errors
	Dialog        *view.Dialog
	Empresas      []entity.EmpresaRef
	EmpresasError string
}

func (h *ProveedorHandler) newPage(c *gin.Context, title, action, submit string) formPage {
	page := formPage{
		Title:  title,
		Action: action,
		Submit: submit,
		Hoy:    h.uc.Today().Format(validation.DateLayout),
	}
	page.Empresas, page.EmpresasError = h.empresas(c)
	return page
}

// empresas はセレクタの選択肢を取得します。失敗してもフォームは表示します。
func (h *ProveedorHandler) empresas(c *gin.Context) ([]entity.EmpresaRef, string) {
	refs, err := h.uc.Empresas(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Warn("failed to load empresas for selector", zap.Error(err))
		return nil, apperror.Message(err, msgErrorEmpresas)
	}
	return refs, ""
}

func (h *ProveedorHandler) altaPage(c *gin.Context) formPage {
	return h.newPage(c, "Creacion de proveedor", "/altaproveedor", "Crear proveedor")
}

func (h *ProveedorHandler) modificarPage(c *gin.Context, rawID string) formPage {
	return h.newPage(c, "Modificar proveedor", "/modificarproveedor/"+rawID, "Guardar cambios")
}

// NewForm は空の作成フォームを表示します。
//
// GET /altaproveedor
func (h *ProveedorHandler) NewForm(c *gin.Context) {
	page := h.altaPage(c)
	page.Form.Token = h.guard.NewToken()
	c.HTML(http.StatusOK, tmplForm, page)
}

// Create は作成フォームを検証して送信します。
//
// POST /altaproveedor
func (h *ProveedorHandler) Create(c *gin.Context) {
	h.submit(c, h.altaPage(c), formAlta, msgErrorCrear, 0, h.uc.Create)
}

// EditForm は既存の仕入先を取得して更新フォームに設定します。
//
// GET /modificarproveedor/:id
func (h *ProveedorHandler) EditForm(c *gin.Context) {
	rawID := c.Param("id")
	page := h.modificarPage(c, rawID)
	page.Form.Token = h.guard.NewToken()

	id, ok := parseID(rawID)
	if !ok {
		page.Dialog = view.Failure(msgErrorRecuperar)
		c.HTML(http.StatusBadRequest, tmplForm, page)
		return
	}

	p, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		logger.FromGin(c).Warn("failed to load proveedor", zap.Int64("id", id), zap.Error(err))
		page.Dialog = view.Failure(apperror.Message(err, msgErrorRecuperar))
		c.HTML(http.StatusOK, tmplForm, page)
		return
	}
	page.Form = dto.FromEntity(*p, page.Form.Token)
	c.HTML(http.StatusOK, tmplForm, page)
}

// Update は更新フォームを検証して送信します。
//
// POST /modificarproveedor/:id
func (h *ProveedorHandler) Update(c *gin.Context) {
	rawID := c.Param("id")
	page := h.modificarPage(c, rawID)
	id, ok := parseID(rawID)
	if !ok {
		page.Form.Token = h.guard.NewToken()
		page.Dialog = view.Failure(msgErrorEditar)
		c.HTML(http.StatusBadRequest, tmplForm, page)
		return
	}
	h.submit(c, page, formModificar, msgErrorEditar, id, h.uc.Update)
}

func (h *ProveedorHandler) submit(c *gin.Context, page formPage, form, fallback string, id int64,
	call func(context.Context, entity.Proveedor) (string, error)) {
	log := logger.FromGin(c)

	var in dto.ProveedorForm
	if err := c.ShouldBind(&in); err != nil {
		log.Warn("invalid proveedor form", zap.Error(err))
		page.Form = in
		if page.Form.Token == "" {
			page.Form.Token = h.guard.NewToken()
		}
		page.Dialog = view.Failure(fallback)
		c.HTML(http.StatusBadRequest, tmplForm, page)
		return
	}
	page.Form = in

	p, errs := in.ToEntity(h.uc.Today())
	if !errs.Valid() {
		h.guard.RecordInvalid(form)
		page.Errors = errs
		c.HTML(http.StatusUnprocessableEntity, tmplForm, page)
		return
	}
	p.ID = id

	res, err := h.guard.Submit(c.Request.Context(), form, in.Token, func(ctx context.Context) (string, error) {
		return call(ctx, p)
	}, fallback)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, submission.ErrMissingToken) {
			status = http.StatusBadRequest
			page.Form.Token = h.guard.NewToken()
		} else {
			log.Error("submission unavailable", zap.String("form", form), zap.Error(err))
		}
		page.Dialog = view.Failure(fallback)
		c.HTML(status, tmplForm, page)
		return
	}

	// リモートの失敗もダイアログとして描画するため 200 を返す
	switch {
	case res.Pending:
		page.Dialog = view.Failure(msgEnCurso)
	case res.Outcome.Success:
		page.Dialog = view.Success(res.Outcome.Message, in.Token)
	default:
		page.Dialog = view.Failure(res.Outcome.Message)
	}
	c.HTML(http.StatusOK, tmplForm, page)
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
