package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"empresas_admin/internal/feature/proveedores/domain/entity"
	"empresas_admin/internal/feature/proveedores/transport/http/dto"
	"empresas_admin/internal/feature/proveedores/usecase"
	"empresas_admin/internal/platform/logger"
	"empresas_admin/internal/shared/apperror"
)

const (
	pathListado    = "/listadoproveedores"
	pathPorEmpresa = "/listadoproveedoresporempresa"

	msgVacio          = "No hay proveedores disponibles"
	msgVacioFiltrado  = "No hay proveedores a mostrar"
	msgFiltroInvalido = "Debe seleccionar una empresa"
)

type listPage struct {
	Title         string
	Filtrado      bool
	EmpresaID     int64
	Empresas      []entity.EmpresaRef
	EmpresasError string
	FiltroError   string
	Cargado       bool
	Error         string
	Vacio         string
	VistaID       string
	Volver        string
	PDFURL        string
	Proveedores   []entity.Proveedor
}

func listadoPage() listPage {
	return listPage{Title: "Listado de proveedores", Volver: pathListado, Vacio: msgVacio}
}

func (h *ProveedorHandler) porEmpresaPage(c *gin.Context, empresaID int64) listPage {
	page := listPage{
		Title:     "Listado de proveedores por empresa",
		Filtrado:  true,
		EmpresaID: empresaID,
		Vacio:     msgVacioFiltrado,
		Volver:    pathPorEmpresa,
	}
	if empresaID > 0 {
		page.Volver = pathPorEmpresa + "/" + strconv.FormatInt(empresaID, 10)
	}
	page.Empresas, page.EmpresasError = h.empresas(c)
	return page
}

func (p *listPage) fill(l usecase.Listado) {
	p.Cargado = true
	p.VistaID = l.VistaID
	p.Proveedores = l.Proveedores
	p.PDFURL = p.Volver + "/pdf" + vistaQuery(l.VistaID)
}

func vistaQuery(vistaID string) string {
	if vistaID == "" {
		return ""
	}
	return "?" + url.Values{"vista": {vistaID}}.Encode()
}

// List は全仕入先の一覧を表示します。
//
// GET /listadoproveedores?vista=<id>
func (h *ProveedorHandler) List(c *gin.Context) {
	page := listadoPage()
	l, err := h.uc.List(c.Request.Context(), c.Query("vista"))
	if err != nil {
		logger.FromGin(c).Warn("failed to list proveedores", zap.Error(err))
		page.Error = apperror.Message(err, msgSinConexion)
		c.HTML(http.StatusBadGateway, tmplList, page)
		return
	}
	page.fill(l)
	c.HTML(http.StatusOK, tmplList, page)
}

// EmpresaQuery は会社セレクタの送信先です。会社が選択されるまで仕入先は取得しません。
//
// GET /listadoproveedoresporempresa?empresa=<id>
func (h *ProveedorHandler) EmpresaQuery(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("empresa"))
	if raw == "" {
		c.HTML(http.StatusOK, tmplList, h.porEmpresaPage(c, 0))
		return
	}
	c.Redirect(http.StatusFound, pathPorEmpresa+"/"+url.PathEscape(raw))
}

// ListByEmpresa は選択した会社の仕入先一覧を表示します。
//
// GET /listadoproveedoresporempresa/:empresa?vista=<id>
func (h *ProveedorHandler) ListByEmpresa(c *gin.Context) {
	empresaID, err := dto.ParseEmpresaID(c.Param("empresa"))
	if err != nil {
		page := h.porEmpresaPage(c, 0)
		page.FiltroError = msgFiltroInvalido
		c.HTML(http.StatusUnprocessableEntity, tmplList, page)
		return
	}

	page := h.porEmpresaPage(c, empresaID)
	l, err := h.uc.ListByEmpresa(c.Request.Context(), empresaID, c.Query("vista"))
	if err != nil {
		logger.FromGin(c).Warn("failed to list proveedores by empresa", zap.Int64("empresa", empresaID), zap.Error(err))
		page.Error = apperror.Message(err, msgSinConexion)
		c.HTML(http.StatusBadGateway, tmplList, page)
		return
	}
	page.fill(l)
	c.HTML(http.StatusOK, tmplList, page)
}

// Delete はリモートで仕入先を削除し、成功時は同じスナップショットの一覧へ戻ります。
//
// POST /proveedores/:id/eliminar (form: vista, volver)
func (h *ProveedorHandler) Delete(c *gin.Context) {
	volver := safeVolver(c.PostForm("volver"))
	vista := c.PostForm("vista")

	var page listPage
	if rest, ok := strings.CutPrefix(volver, pathPorEmpresa+"/"); ok {
		empresaID, _ := strconv.ParseInt(rest, 10, 64)
		page = h.porEmpresaPage(c, empresaID)
	} else {
		page = listadoPage()
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
		log.Warn("failed to delete proveedor", zap.Error(err))
		page.Error = apperror.Message(err, msgErrorEliminar)
		c.HTML(http.StatusBadGateway, tmplList, page)
		return
	}
	log.Info("proveedor deleted", zap.String("mensaje", msg))
	c.Redirect(http.StatusSeeOther, volver+vistaQuery(vista))
}

// safeVolver は削除後の戻り先を一覧画面に限定します。
func safeVolver(raw string) string {
	if raw == pathListado {
		return raw
	}
	rest, ok := strings.CutPrefix(raw, pathPorEmpresa+"/")
	if !ok {
		return pathListado
	}
	if _, ok := parseID(rest); !ok {
		return pathListado
	}
	return raw
}
