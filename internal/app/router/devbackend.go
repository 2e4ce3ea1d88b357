package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	devhandler "empresas_admin/internal/feature/devbackend/transport/handler"
	jwtmw "empresas_admin/internal/platform/jwt"
	"empresas_admin/internal/platform/metrics"
)

// NewDevBackendRouter は開発用バックエンドのREST APIルーターを /api 配下に生成します。
// jwtSecret が空でなければ全APIでサービストークンを要求します。
func NewDevBackendRouter(h *devhandler.CatalogHandler, m *metrics.Metrics, jwtSecret string) *gin.Engine {
	r := base(m)
	// ブラウザから直接呼ばれる場合に備えてCORSを許可
	r.Use(cors.Default())

	api := r.Group("/api")
	if jwtSecret != "" {
		api.Use(jwtmw.AuthRequired(jwtSecret))
	}
	{
		api.GET("/empresas/", h.ListEmpresas)
		api.POST("/empresas/", h.CreateEmpresa)
		api.GET("/empresas/facturation/:min", h.ListEmpresasByFacturacion)
		api.GET("/empresas/:id", h.GetEmpresa)
		api.PUT("/empresas/:id", h.UpdateEmpresa)
		api.DELETE("/empresas/:id", h.DeleteEmpresa)

		api.GET("/proveedores/", h.ListProveedores)
		api.POST("/proveedores/", h.CreateProveedor)
		api.GET("/proveedores/empresa/:empresaId", h.ListProveedoresByEmpresa)
		api.GET("/proveedores/:id", h.GetProveedor)
		api.PUT("/proveedores/:id", h.UpdateProveedor)
		api.DELETE("/proveedores/:id", h.DeleteProveedor)
	}
	return r
}
