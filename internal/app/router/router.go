package router

import (
	"github.com/gin-gonic/gin"

	empresashandler "empresas_admin/internal/feature/empresas/transport/handler"
	envioshandler "empresas_admin/internal/feature/envios/transport/handler"
	proveedoreshandler "empresas_admin/internal/feature/proveedores/transport/handler"
	infrahttp "empresas_admin/internal/platform/http"
	"empresas_admin/internal/platform/http/handler"
	"empresas_admin/internal/platform/logger"
	"empresas_admin/internal/platform/metrics"
	"empresas_admin/internal/shared/view"
)

// AdminDeps は管理画面のルーターが必要とする依存関係です。
type AdminDeps struct {
	Empresas    *empresashandler.EmpresaHandler
	Proveedores *proveedoreshandler.ProveedorHandler
	Envios      *envioshandler.EnvioHandler
	Metrics     *metrics.Metrics
	Checks      map[string]handler.CheckFunc

	// AdminUser が空の場合、Basic認証は無効です。
	AdminUser         string
	AdminPasswordHash string
}

// base はリクエストID・ログ・メトリクス・リカバリを適用したエンジンを返します。
func base(m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(infrahttp.RequestID(), logger.Middleware(), gin.Recovery())
	if m != nil {
		r.Use(m.Middleware())
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	return r
}

// NewRouter は管理画面のルーターを生成します。
func NewRouter(d AdminDeps) *gin.Engine {
	r := base(d.Metrics)
	r.SetHTMLTemplate(view.MustParse())
	r.GET("/readyz", handler.Readiness(d.Checks))

	ui := r.Group("/")
	ui.Use(infrahttp.BasicAuth(d.AdminUser, d.AdminPasswordHash))
	{
		ui.GET("/", handler.Inicio)

		// 送信結果
		ui.GET("/envios/:token", d.Envios.Show)
		ui.POST("/envios/:token/cerrar", d.Envios.Close)

		// 会社
		e := d.Empresas
		ui.GET("/altaempresa", e.NewForm)
		ui.POST("/altaempresa", e.Create)
		ui.GET("/modificarempresa/:id", e.EditForm)
		ui.POST("/modificarempresa/:id", e.Update)
		ui.GET("/listadoempresas", e.List)
		ui.GET("/listadoempresas/pdf", e.ListPDF)
		ui.GET("/listadoempresasfacturacionmin", e.FacturacionQuery)
		ui.GET("/listadoempresasfacturacionmin/:facturacion", e.ListByFacturacion)
		ui.GET("/listadoempresasfacturacionmin/:facturacion/pdf", e.FacturacionPDF)
		ui.GET("/listadoempresasfacturacionmin/:facturacion/grafico", e.Grafico)
		ui.POST("/empresas/:id/eliminar", e.Delete)

		// 仕入先
		p := d.Proveedores
		ui.GET("/altaproveedor", p.NewForm)
		ui.POST("/altaproveedor", p.Create)
		ui.GET("/modificarproveedor/:id", p.EditForm)
		ui.POST("/modificarproveedor/:id", p.Update)
		ui.GET("/listadoproveedores", p.List)
		ui.GET("/listadoproveedores/pdf", p.ListPDF)
		ui.GET("/listadoproveedoresporempresa", p.EmpresaQuery)
		ui.GET("/listadoproveedoresporempresa/:empresa", p.ListByEmpresa)
		ui.GET("/listadoproveedoresporempresa/:empresa/pdf", p.EmpresaPDF)
		ui.POST("/proveedores/:id/eliminar", p.Delete)
	}

	return r
}
