package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"empresas_admin/internal/feature/proveedores/domain/entity"
	"empresas_admin/internal/feature/proveedores/transport/http/dto"
	"empresas_admin/internal/feature/proveedores/usecase"
	infrahttp "empresas_admin/internal/platform/http"
	"empresas_admin/internal/platform/logger"
	"empresas_admin/internal/platform/pdf"
	"empresas_admin/internal/shared/apperror"
	"empresas_admin/internal/shared/validation"
)

var pdfHeaders = []string{
	"Nombre", "Fecha de creacion", "Recurso", "Cantidad del recurso", "Facturacion",
	"Proove a la empresa:", "¿Esta activa?",
}

var pdfWidths = []float64{18, 14, 14, 14, 14, 16, 10}

// ListPDF は全仕入先の一覧をPDFで返します。
//
// GET /listadoproveedores/pdf?vista=<id>
func (h *ProveedorHandler) ListPDF(c *gin.Context) {
	l, err := h.uc.List(c.Request.Context(), c.Query("vista"))
	if err != nil {
		h.exportError(c, err)
		return
	}
	h.writePDF(c, l)
}

// EmpresaPDF は会社で絞り込んだ一覧をPDFで返します。
//
// GET /listadoproveedoresporempresa/:empresa/pdf?vista=<id>
func (h *ProveedorHandler) EmpresaPDF(c *gin.Context) {
	empresaID, err := dto.ParseEmpresaID(c.Param("empresa"))
	if err != nil {
		c.String(http.StatusBadRequest, msgFiltroInvalido)
		return
	}
	l, err := h.uc.ListByEmpresa(c.Request.Context(), empresaID, c.Query("vista"))
	if err != nil {
		h.exportError(c, err)
		return
	}
	h.writePDF(c, l)
}

func (h *ProveedorHandler) exportError(c *gin.Context, err error) {
	logger.FromGin(c).Warn("failed to load proveedores for export", zap.Error(err))
	c.String(http.StatusBadGateway, apperror.Message(err, msgSinConexion))
}

func (h *ProveedorHandler) writePDF(c *gin.Context, l usecase.Listado) {
	doc, err := pdf.Bytes(proveedoresTable(l.Proveedores, validation.DateOnly(h.uc.Today())))
	if err != nil {
		logger.FromGin(c).Error("failed to render pdf", zap.Error(err))
		c.String(http.StatusInternalServerError, "No se pudo generar el PDF")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="proveedores.pdf"`)
	infrahttp.WriteWithETag(c, "application/pdf", doc)
}

func proveedoresTable(rows []entity.Proveedor, date time.Time) pdf.Table {
	t := pdf.Table{
		Title:   "Listado de Proveedores",
		Headers: pdfHeaders,
		Widths:  pdfWidths,
		Date:    date,
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, p := range rows {
		fecha := ""
		if !p.FechaCreacion.IsZero() {
			fecha = p.FechaCreacion.Format(validation.DateLayout)
		}
		t.Rows = append(t.Rows, []string{
			p.Nombre,
			fecha,
			p.Recurso,
			p.Cantidad.String(),
			p.Facturacion.String(),
			p.EmpresaNombre(),
			pdf.YesNo(p.Activa),
		})
	}
	return t
}
