// Package handler はempresasフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"empresas_admin/internal/feature/empresas/domain/entity"
	"empresas_admin/internal/feature/empresas/transport/http/dto"
	"empresas_admin/internal/feature/empresas/usecase"
	"empresas_admin/internal/platform/logger"
	"empresas_admin/internal/shared/apperror"
	"empresas_admin/internal/shared/submission"
	"empresas_admin/internal/shared/validation"
	"empresas_admin/internal/shared/view"
)

// EmpresaUsecase は会社操作のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type EmpresaUsecase interface {
	Today() time.Time
	Get(ctx context.Context, id int64) (*entity.Empresa, error)
	Create(ctx context.Context, e entity.Empresa) (string, error)
	Update(ctx context.Context, e entity.Empresa) (string, error)
	List(ctx context.Context, vistaID string) (usecase.Listado, error)
	ListByMinFacturacion(ctx context.Context, min decimal.Decimal, vistaID string) (usecase.Listado, error)
	Delete(ctx context.Context, vistaID string, id int64) (string, error)
}

// Submitter はフォーム送信の二重実行を防ぎます。
type Submitter interface {
	NewToken() string
	Submit(ctx context.Context, form, token string, call submission.Call, fallback string) (submission.Result, error)
	RecordInvalid(form string)
}

const (
	formAlta      = "altaempresa"
	formModificar = "modificarempresa"

	tmplForm = "empresa_form.html"
	tmplList = "empresa_list.html"

	msgErrorCrear     = "Error al crear la empresa"
	msgErrorEditar    = "Error al editar la empresa"
	msgErrorRecuperar = "Error al recuperar los datos de la empresa"
	msgErrorEliminar  = "Error al eliminar la empresa"
	msgSinConexion    = "No se pudo conectar al servidor"
	msgEnCurso        = "El envio ya se esta procesando"
)

// EmpresaHandler は会社の画面を処理します。
type EmpresaHandler struct {
	uc    EmpresaUsecase
	guard Submitter
}

// NewEmpresaHandler は EmpresaHandler を生成します。
func NewEmpresaHandler(uc EmpresaUsecase, guard Submitter) *EmpresaHandler {
	return &EmpresaHandler{uc: uc, guard: guard}
}

type formPage struct {
	Title  string
	Action string
	Submit string
	Hoy    string
	Form   dto.EmpresaForm
	Errors validation.Errors
	Dialog *view.Dialog
}

func (h *EmpresaHandler) altaPage() formPage {
	return formPage{
		Title:  "Creacion de empresa",
		Action: "/altaempresa",
		Submit: "Crear empresa",
		Hoy:    h.uc.Today().Format(validation.DateLayout),
	}
}

func (h *EmpresaHandler) modificarPage(rawID string) formPage {
	return formPage{
		Title:  "Modificar empresa",
		Action: "/modificarempresa/" + rawID,
		Submit: "Guardar cambios",
		Hoy:    h.uc.Today().Format(validation.DateLayout),
	}
}

// NewForm は空の作成フォームを表示します。
//
// GET /altaempresa
func (h *EmpresaHandler) NewForm(c *gin.Context) {
	page := h.altaPage()
	page.Form.Token = h.guard.NewToken()
	c.HTML(http.StatusOK, tmplForm, page)
}

// Create は作成フォームを検証して送信します。
//
// POST /altaempresa
func (h *EmpresaHandler) Create(c *gin.Context) {
	h.submit(c, h.altaPage(), formAlta, msgErrorCrear, 0, h.uc.Create)
}

// EditForm は既存の会社を取得して更新フォームに設定します。
// 取得に失敗した場合はエラーダイアログを表示し、空のフォームのまま操作できます。
//
// GET /modificarempresa/:id
func (h *EmpresaHandler) EditForm(c *gin.Context) {
	rawID := c.Param("id")
	page := h.modificarPage(rawID)
	page.Form.Token = h.guard.NewToken()

	id, ok := parseID(rawID)
	if !ok {
		page.Dialog = view.Failure(msgErrorRecuperar)
		c.HTML(http.StatusBadRequest, tmplForm, page)
		return
	}

	e, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		logger.FromGin(c).Warn("failed to load empresa", zap.Int64("id", id), zap.Error(err))
		page.Dialog = view.Failure(apperror.Message(err, msgErrorRecuperar))
		c.HTML(http.StatusOK, tmplForm, page)
		return
	}
	page.Form = dto.FromEntity(*e, page.Form.Token)
	c.HTML(http.StatusOK, tmplForm, page)
}

// Update は更新フォームを検証して送信します。
//
// POST /modificarempresa/:id
func (h *EmpresaHandler) Update(c *gin.Context) {
	rawID := c.Param("id")
	page := h.modificarPage(rawID)
	id, ok := parseID(rawID)
	if !ok {
		page.Form.Token = h.guard.NewToken()
		page.Dialog = view.Failure(msgErrorEditar)
		c.HTML(http.StatusBadRequest, tmplForm, page)
		return
	}
	h.submit(c, page, formModificar, msgErrorEditar, id, h.uc.Update)
}

func (h *EmpresaHandler) submit(c *gin.Context, page formPage, form, fallback string, id int64,
	call func(context.Context, entity.Empresa) (string, error)) {
	log := logger.FromGin(c)

	var in dto.EmpresaForm
	if err := c.ShouldBind(&in); err != nil {
		log.Warn("invalid empresa form", zap.Error(err))
		page.Form = in
		if page.Form.Token == "" {
			page.Form.Token = h.guard.NewToken()
		}
		page.Dialog = view.Failure(fallback)
		c.HTML(http.StatusBadRequest, tmplForm, page)
		return
	}
	page.Form = in

	e, errs := in.ToEntity(h.uc.Today())
	if !errs.Valid() {
		// 無効な入力ではリモート呼び出しを行わない
		h.guard.RecordInvalid(form)
		page.Errors = errs
		c.HTML(http.StatusUnprocessableEntity, tmplForm, page)
		return
	}
	e.ID = id

	res, err := h.guard.Submit(c.Request.Context(), form, in.Token, func(ctx context.Context) (string, error) {
		return call(ctx, e)
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
