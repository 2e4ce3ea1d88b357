package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"empresas_admin/internal/feature/empresas/domain/entity"
	"empresas_admin/internal/feature/empresas/transport/http/dto"
	"empresas_admin/internal/feature/empresas/usecase"
	"empresas_admin/internal/platform/chart"
	infrahttp "empresas_admin/internal/platform/http"
	"empresas_admin/internal/platform/logger"
	"empresas_admin/internal/platform/pdf"
	"empresas_admin/internal/shared/apperror"
	"empresas_admin/internal/shared/validation"
)

var pdfHeaders = []string{
	"Nombre", "Descripcion", "Fecha creacion", "¿Esta activa?", "Facturacion", "Porcentaje en bolsa",
}

var pdfWidths = []float64{18, 18, 18, 16, 16, 16}

// ListPDF は全社一覧をPDFで返します。スナップショットがあればそれを使います。
//
// GET /listadoempresas/pdf?vista=<id>
func (h *EmpresaHandler) ListPDF(c *gin.Context) {
	l, err := h.uc.List(c.Request.Context(), c.Query("vista"))
	if err != nil {
		h.exportError(c, err)
		return
	}
	h.writePDF(c, l)
}

// FacturacionPDF は絞り込み一覧をPDFで返します。
//
// GET /listadoempresasfacturacionmin/:facturacion/pdf?vista=<id>
func (h *EmpresaHandler) FacturacionPDF(c *gin.Context) {
	l, ok := h.loadFacturacion(c)
	if !ok {
		return
	}
	h.writePDF(c, l)
}

// Grafico は絞り込み一覧の売上と株式公開比率の棒グラフを返します。
//
// GET /listadoempresasfacturacionmin/:facturacion/grafico?vista=<id>
func (h *EmpresaHandler) Grafico(c *gin.Context) {
	l, ok := h.loadFacturacion(c)
	if !ok {
		return
	}

	points := make([]chart.Point, 0, len(l.Empresas))
	for _, e := range l.Empresas {
		points = append(points, chart.Point{
			Nombre:            e.Nombre,
			Facturacion:       e.Facturacion,
			PorcentajeEnBolsa: e.PorcentajeEnBolsa,
		})
	}

	var buf bytes.Buffer
	if err := chart.RenderFacturacion(&buf, points); err != nil {
		logger.FromGin(c).Error("failed to render chart", zap.Error(err))
		c.String(http.StatusInternalServerError, msgSinConexion)
		return
	}
	infrahttp.WriteWithETag(c, "text/html; charset=utf-8", buf.Bytes())
}

func (h *EmpresaHandler) loadFacturacion(c *gin.Context) (usecase.Listado, bool) {
	min, err := dto.ParseFacturacionMin(c.Param("facturacion"))
	if err != nil {
		c.String(http.StatusBadRequest, msgFiltroInvalido)
		return usecase.Listado{}, false
	}
	l, err := h.uc.ListByMinFacturacion(c.Request.Context(), min, c.Query("vista"))
	if err != nil {
		h.exportError(c, err)
		return usecase.Listado{}, false
	}
	return l, true
}

func (h *EmpresaHandler) exportError(c *gin.Context, err error) {
	logger.FromGin(c).Warn("failed to load empresas for export", zap.Error(err))
	c.String(http.StatusBadGateway, apperror.Message(err, msgSinConexion))
}

func (h *EmpresaHandler) writePDF(c *gin.Context, l usecase.Listado) {
	doc, err := pdf.Bytes(empresasTable(l.Empresas, validation.DateOnly(h.uc.Today())))
	if err != nil {
		logger.FromGin(c).Error("failed to render pdf", zap.Error(err))
		c.String(http.StatusInternalServerError, "No se pudo generar el PDF")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="empresas.pdf"`)
	infrahttp.WriteWithETag(c, "application/pdf", doc)
}

func empresasTable(rows []entity.Empresa, date time.Time) pdf.Table {
	t := pdf.Table{
		Title:   "Listado de Empresas",
		Headers: pdfHeaders,
		Widths:  pdfWidths,
		Date:    date,
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, e := range rows {
		t.Rows = append(t.Rows, []string{
			e.Nombre,
			e.Descripcion,
			fecha(e.FechaCreacion),
			pdf.YesNo(e.Activa),
			e.Facturacion.String(),
			e.PorcentajeEnBolsa.String(),
		})
	}
	return t
}

func fecha(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(validation.DateLayout)
}
