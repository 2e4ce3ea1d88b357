package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"empresas_admin/internal/feature/empresas/domain/entity"
	"empresas_admin/internal/feature/empresas/transport/http/dto"
	"empresas_admin/internal/feature/empresas/usecase"
	"empresas_admin/internal/platform/logger"
	"empresas_admin/internal/shared/apperror"
)

const (
	pathListado     = "/listadoempresas"
	pathFacturacion = "/listadoempresasfacturacionmin"

	msgFiltroInvalido = "La facturacion debe ser un numero"
)

type listPage struct {
	Title       string
	Filtrado    bool
	Facturacion string
	FiltroError string
	Cargado     bool
	Error       string
	VistaID     string
	Volver      string
	PDFURL      string
	ChartURL    string
	Empresas    []entity.Empresa
}

func listadoPage() listPage {
	return listPage{Title: "Listado de empresas", Volver: pathListado}
}

func facturacionPage(raw string) listPage {
	return listPage{
		Title:       "Listado de empresas por facturacion",
		Filtrado:    true,
		Facturacion: raw,
		Volver:      pathFacturacion + "/" + url.PathEscape(raw),
	}
}

func (p *listPage) fill(l usecase.Listado) {
	p.Cargado = true
	p.VistaID = l.VistaID
	p.Empresas = l.Empresas
	q := vistaQuery(l.VistaID)
	p.PDFURL = p.Volver + "/pdf" + q
	if p.Filtrado {
		p.ChartURL = p.Volver + "/grafico" + q
	}
}

func vistaQuery(vistaID string) string {
	if vistaID == "" {
		return ""
	}
	return "?" + url.Values{"vista": {vistaID}}.Encode()
}

// List は全社一覧を表示します。
//
// GET /listadoempresas?vista=<id>
func (h *EmpresaHandler) List(c *gin.Context) {
	page := listadoPage()
	l, err := h.uc.List(c.Request.Context(), c.Query("vista"))
	if err != nil {
		logger.FromGin(c).Warn("failed to list empresas", zap.Error(err))
		page.Error = apperror.Message(err, msgSinConexion)
		c.HTML(http.StatusBadGateway, tmplList, page)
		return
	}
	page.fill(l)
	c.HTML(http.StatusOK, tmplList, page)
}

// FacturacionQuery はフィルタ入力フォームの送信先です。
// 未指定なら既定値0の一覧へ、空入力なら取得せずに画面だけを表示します。
//
// GET /listadoempresasfacturacionmin?facturacion=<min>
func (h *EmpresaHandler) FacturacionQuery(c *gin.Context) {
	raw, ok := c.GetQuery("facturacion")
	if !ok {
		c.Redirect(http.StatusFound, pathFacturacion+"/0")
		return
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		page := facturacionPage("")
		page.Volver = pathFacturacion
		c.HTML(http.StatusOK, tmplList, page)
		return
	}
	c.Redirect(http.StatusFound, pathFacturacion+"/"+url.PathEscape(raw))
}

// ListByFacturacion は最低売上以上の会社一覧とグラフを表示します。
//
// GET /listadoempresasfacturacionmin/:facturacion?vista=<id>
func (h *EmpresaHandler) ListByFacturacion(c *gin.Context) {
	raw := c.Param("facturacion")
	page := facturacionPage(raw)

	min, err := dto.ParseFacturacionMin(raw)
	if err != nil {
		page.FiltroError = msgFiltroInvalido
		c.HTML(http.StatusUnprocessableEntity, tmplList, page)
		return
	}

	l, err := h.uc.ListByMinFacturacion(c.Request.Context(), min, c.Query("vista"))
	if err != nil {
		logger.FromGin(c).Warn("failed to list empresas by facturacion", zap.String("min", min.String()), zap.Error(err))
		page.Error = apperror.Message(err, msgSinConexion)
		c.HTML(http.StatusBadGateway, tmplList, page)
		return
	}
	page.fill(l)
	c.HTML(http.StatusOK, tmplList, page)
}

// Delete はリモートで会社を削除し、成功時は同じスナップショットの一覧へ戻ります。
// 失敗時は一覧の代わりにエラーメッセージを表示します。
//
// POST /empresas/:id/eliminar (form: vista, volver)
func (h *EmpresaHandler) Delete(c *gin.Context) {
	volver := safeVolver(c.PostForm("volver"))
	vista := c.PostForm("vista")

	page := listadoPage()
	if strings.HasPrefix(volver, pathFacturacion+"/") {
		raw, _ := url.PathUnescape(strings.TrimPrefix(volver, pathFacturacion+"/"))
		page = facturacionPage(raw)
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		page.Error = msgErrorEliminar
		c.HTML(http.StatusBadRequest, tmplList, page)
		return
	}

	log := logger.FromGin(c).With(zap.Int64("id", id), zap.String("vista", vista))
	msg, err := h.uc.Delete(c.Request.Context(), vista, id)
	if err != nil {
		log.Warn("failed to delete empresa", zap.Error(err))
		page.Error = apperror.Message(err, msgErrorEliminar)
		c.HTML(http.StatusBadGateway, tmplList, page)
		return
	}
	log.Info("empresa deleted", zap.String("mensaje", msg))
	c.Redirect(http.StatusSeeOther, volver+vistaQuery(vista))
}

// safeVolver は削除後の戻り先を一覧画面に限定します。
func safeVolver(raw string) string {
	if raw == pathListado {
		return raw
	}
	rest, ok := strings.CutPrefix(raw, pathFacturacion+"/")
	if !ok || rest == "" || strings.ContainsAny(rest, "/?#\\") {
		return pathListado
	}
	return raw
}
