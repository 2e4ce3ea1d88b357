package router_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"empresas_admin/internal/app/di"
	"empresas_admin/internal/app/router"
	devadapters "empresas_admin/internal/feature/devbackend/adapters"
	devhandler "empresas_admin/internal/feature/devbackend/transport/handler"
	devusecase "empresas_admin/internal/feature/devbackend/usecase"
	empresashandler "empresas_admin/internal/feature/empresas/transport/handler"
	empresasusecase "empresas_admin/internal/feature/empresas/usecase"
	envioshandler "empresas_admin/internal/feature/envios/transport/handler"
	proveedoreshandler "empresas_admin/internal/feature/proveedores/transport/handler"
	proveedoresusecase "empresas_admin/internal/feature/proveedores/usecase"
	"empresas_admin/internal/platform/config"
	"empresas_admin/internal/platform/externalapi/backend"
	"empresas_admin/internal/platform/http/handler"
	"empresas_admin/internal/platform/metrics"
	"empresas_admin/internal/shared/submission"
)

const jwtSecret = "test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newDevBackend はSQLiteファイル上の開発用バックエンドを起動します。
func newDevBackend(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(devadapters.Models()...))

	h := devhandler.NewCatalogHandler(devusecase.NewCatalogUsecase(devadapters.NewCatalogGorm(db)))
	srv := httptest.NewServer(router.NewDevBackendRouter(h, nil, jwtSecret))
	t.Cleanup(srv.Close)
	return srv
}

// newAdmin は開発用バックエンドに接続した管理画面ルーターを生成します。
func newAdmin(t *testing.T, backendURL string, d router.AdminDeps) *gin.Engine {
	t.Helper()

	m := metrics.New("test")
	client, err := di.NewBackendClient(config.BackendConfig{
		BaseURL:   backendURL + "/api",
		Timeout:   5 * time.Second,
		JWTSecret: jwtSecret,
		JWTTTL:    time.Minute,
	}, m)
	require.NoError(t, err)
	guard := submission.NewGuard(di.NewSubmissionStore(nil, time.Minute), m)

	empresasUC := empresasusecase.NewEmpresaUsecase(backend.NewEmpresaAPI(client), di.NewEmpresaSnapshots(nil, time.Minute))
	proveedorAPI := backend.NewProveedorAPI(client)
	proveedoresUC := proveedoresusecase.NewProveedorUsecase(proveedorAPI, proveedorAPI, di.NewProveedorSnapshots(nil, time.Minute))

	d.Empresas = empresashandler.NewEmpresaHandler(empresasUC, guard)
	d.Proveedores = proveedoreshandler.NewProveedorHandler(proveedoresUC, guard)
	d.Envios = envioshandler.NewEnvioHandler(guard)
	d.Metrics = m
	return router.NewRouter(d)
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func post(r http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

var (
	tokenRe = regexp.MustCompile(`name="token" value="([^"]+)"`)
	vistaRe = regexp.MustCompile(`name="vista" value="([^"]+)"`)
)

func extract(t *testing.T, re *regexp.Regexp, body string) string {
	t.Helper()
	m := re.FindStringSubmatch(body)
	require.Len(t, m, 2, "pattern %s not found", re)
	return m[1]
}

func TestNewRouter_PlatformEndpoints(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("clave"), bcrypt.MinCost)
	require.NoError(t, err)

	r := newAdmin(t, "http://127.0.0.1:1", router.AdminDeps{
		AdminUser:         "admin",
		AdminPasswordHash: string(hash),
		Checks:            map[string]handler.CheckFunc{},
	})

	assert.Equal(t, http.StatusOK, get(r, "/healthz").Code)
	assert.Equal(t, http.StatusOK, get(r, "/readyz").Code)

	// /metrics と /healthz は認証不要
	m := get(r, "/metrics")
	assert.Equal(t, http.StatusOK, m.Code)
	assert.Contains(t, m.Body.String(), "http_requests_total")

	assert.Equal(t, http.StatusUnauthorized, get(r, "/").Code)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("admin", "clave")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/altaempresa")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestNewDevBackendRouter_RequiresToken(t *testing.T) {
	srv := newDevBackend(t)

	res, err := http.Get(srv.URL + "/api/empresas/")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAdmin_EndToEnd(t *testing.T) {
	srv := newDevBackend(t)
	r := newAdmin(t, srv.URL, router.AdminDeps{})

	// 会社を登録
	form := get(r, "/altaempresa")
	require.Equal(t, http.StatusOK, form.Code)
	token := extract(t, tokenRe, form.Body.String())

	created := post(r, "/altaempresa", url.Values{
		"token":             {token},
		"nombre":            {"Acme"},
		"descripcion":       {"Fabricante"},
		"fechaCreacion":     {"2000-01-01"},
		"activa":            {"true"},
		"facturacion":       {"1500"},
		"porcentajeEnBolsa": {"25"},
	})
	require.Equal(t, http.StatusOK, created.Code)
	assert.Contains(t, created.Body.String(), "Empresa creada correctamente")

	// 結果ダイアログは再表示できる
	envio := get(r, "/envios/"+token)
	assert.Equal(t, http.StatusOK, envio.Code)
	assert.Contains(t, envio.Body.String(), "Empresa creada correctamente")

	closed := post(r, "/envios/"+token+"/cerrar", url.Values{})
	assert.Equal(t, http.StatusSeeOther, closed.Code)

	list := get(r, "/listadoempresas")
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), "Acme")
	vista := extract(t, vistaRe, list.Body.String())

	filtered := get(r, "/listadoempresasfacturacionmin/2000")
	require.Equal(t, http.StatusOK, filtered.Code)
	assert.NotContains(t, filtered.Body.String(), "Acme")

	pdf := get(r, "/listadoempresas/pdf?vista="+url.QueryEscape(vista))
	require.Equal(t, http.StatusOK, pdf.Code)
	assert.Equal(t, "application/pdf", pdf.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(pdf.Body.String(), "%PDF"))

	// 仕入先を登録
	pform := get(r, "/altaproveedor")
	require.Equal(t, http.StatusOK, pform.Code)
	assert.Contains(t, pform.Body.String(), "Acme")
	ptoken := extract(t, tokenRe, pform.Body.String())

	pcreated := post(r, "/altaproveedor", url.Values{
		"token":             {ptoken},
		"nombre":            {"Tornillos SA"},
		"descripcion":       {"Ferreteria"},
		"fechaCreacion":     {"2010-06-15"},
		"facturacion":       {"300"},
		"porcentajeEnBolsa": {"5"},
		"recurso":           {"Tornillos"},
		"cantidad":          {"1000"},
		"empresaIdEmpresa":  {"1"},
	})
	require.Equal(t, http.StatusOK, pcreated.Code)
	assert.Contains(t, pcreated.Body.String(), "Proveedor creado correctamente")

	byEmpresa := get(r, "/listadoproveedoresporempresa/1")
	require.Equal(t, http.StatusOK, byEmpresa.Code)
	assert.Contains(t, byEmpresa.Body.String(), "Tornillos SA")

	// 仕入先を持つ会社は削除できない
	deleted := post(r, "/empresas/1/eliminar", url.Values{
		"vista":  {vista},
		"volver": {"/listadoempresas"},
	})
	assert.Equal(t, http.StatusBadGateway, deleted.Code)
	assert.Contains(t, deleted.Body.String(), "No se puede eliminar una empresa con proveedores")

	plist := get(r, "/listadoproveedores")
	require.Equal(t, http.StatusOK, plist.Code)
	pvista := extract(t, vistaRe, plist.Body.String())

	pdeleted := post(r, "/proveedores/1/eliminar", url.Values{
		"vista":  {pvista},
		"volver": {"/listadoproveedores"},
	})
	assert.Equal(t, http.StatusSeeOther, pdeleted.Code)
	assert.Equal(t, "/listadoproveedores?vista="+url.QueryEscape(pvista), pdeleted.Header().Get("Location"))
}
