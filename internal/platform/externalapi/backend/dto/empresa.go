package dto

// Empresa は /empresas 系エンドポイントの会社表現です。
type Empresa struct {
	IDEmpresa         int64  `json:"id_empresa,omitempty"`
	Nombre            string `json:"nombre"`
	Descripcion       string `json:"descripcion"`
	FechaCreacion     string `json:"fechaCreacion"`
	Activa            bool   `json:"activa"`
	Facturacion       Number `json:"facturacion"`
	PorcentajeEnBolsa Number `json:"porcentajeEnBolsa"`
}
