package dto

// Proveedor は /proveedores 系エンドポイントの仕入先表現です。
// Empresa は読み取り時にサーバーが結合して返す場合のみ含まれます。
type Proveedor struct {
	IDProveedor      int64    `json:"id_proveedor,omitempty"`
	Nombre           string   `json:"nombre"`
	FechaCreacion    string   `json:"fechaCreacion"`
	Activa           bool     `json:"activa"`
	Recurso          string   `json:"recurso"`
	Cantidad         Number   `json:"cantidad"`
	Facturacion      Number   `json:"facturacion"`
	EmpresaIDEmpresa int64    `json:"empresaIdEmpresa"`
	Empresa          *Empresa `json:"empresa,omitempty"`
}
