package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	empresaentity "empresas_admin/internal/feature/empresas/domain/entity"
	proveedorentity "empresas_admin/internal/feature/proveedores/domain/entity"
	jwtmw "empresas_admin/internal/platform/jwt"
	"empresas_admin/internal/shared/apperror"
)

type observerStub struct {
	calls []string
}

func (o *observerStub) ObserveBackendCall(method, endpoint string, err error, _ time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	o.calls = append(o.calls, method+" "+endpoint+" "+outcome)
}

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL + "/api/"}, server.Client(), opts...), server
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	cfg := Config{BaseURL: "http://api.test", Timeout: 10 * time.Second}
	c := NewClient(cfg, &http.Client{})
	require.NotNil(t, c)
	assert.Equal(t, cfg, c.cfg)
	assert.NotNil(t, c.tracer)
}

func TestEmpresaAPI_List_Success(t *testing.T) {
	t.Parallel()

	obs := &observerStub{}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/empresas/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"datos": [
				{"id_empresa": 1, "nombre": "Acme", "descripcion": "d", "fechaCreacion": "2001-05-04",
				 "activa": true, "facturacion": "1500.50", "porcentajeEnBolsa": 12.5},
				{"id_empresa": 2, "nombre": "Globex", "fechaCreacion": "1999-01-02T00:00:00.000Z",
				 "activa": false, "facturacion": 10, "porcentajeEnBolsa": null}
			],
			"mensaje": "ok"
		}`))
	}, WithObserver(obs))

	got, err := NewEmpresaAPI(c).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, "Acme", got[0].Nombre)
	assert.True(t, got[0].Activa)
	assert.True(t, decimal.RequireFromString("1500.5").Equal(got[0].Facturacion))
	assert.True(t, decimal.RequireFromString("12.5").Equal(got[0].PorcentajeEnBolsa))
	assert.Equal(t, time.Date(2001, 5, 4, 0, 0, 0, 0, time.UTC), got[0].FechaCreacion)
	assert.Equal(t, time.Date(1999, 1, 2, 0, 0, 0, 0, time.UTC), got[1].FechaCreacion)
	assert.True(t, got[1].PorcentajeEnBolsa.IsZero())

	assert.Equal(t, []string{"GET /empresas/ ok"}, obs.calls)
}

func TestEmpresaAPI_List_NullDatos(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"datos": null, "mensaje": "sin datos"}`))
	})
	got, err := NewEmpresaAPI(c).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEmpresaAPI_ErrorResponses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"server mensaje", http.StatusBadRequest, `{"mensaje":"Nombre duplicado"}`, 400, "Nombre duplicado"},
		{"no body", http.StatusInternalServerError, ``, 500, ""},
		{"html body", http.StatusBadGateway, `<html>bad gateway</html>`, 502, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := NewEmpresaAPI(c).Create(context.Background(), empresaentity.Empresa{Nombre: "x"})
			require.Error(t, err)

			var apiErr *apperror.Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.wantStatus, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestEmpresaAPI_NetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	c := NewClient(Config{BaseURL: server.URL}, &http.Client{Timeout: time.Second})
	_, err := NewEmpresaAPI(c).List(context.Background())
	require.Error(t, err)
	assert.Equal(t, "No se pudo conectar al servidor", apperror.Message(err, "No se pudo conectar al servidor"))
}

func TestEmpresaAPI_InvalidJSON(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{invalid json`))
	})
	_, err := NewEmpresaAPI(c).List(context.Background())
	assert.ErrorContains(t, err, "decode response")
}

func TestEmpresaAPI_CreateAndUpdate_RequestBody(t *testing.T) {
	t.Parallel()

	type captured struct {
		method, path string
		body         map[string]any
	}
	var got []captured
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		assert.NoError(t, json.Unmarshal(raw, &body))
		got = append(got, captured{r.Method, r.URL.Path, body})
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"datos": {"id_empresa": 7}, "mensaje": "Guardado"}`))
	})
	api := NewEmpresaAPI(c)

	e := empresaentity.Empresa{
		ID:                7,
		Nombre:            "Acme",
		FechaCreacion:     time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC),
		Activa:            true,
		Facturacion:       decimal.RequireFromString("99.90"),
		PorcentajeEnBolsa: decimal.NewFromInt(100),
	}

	msg, err := api.Create(context.Background(), e)
	require.NoError(t, err)
	assert.Equal(t, "Guardado", msg)

	_, err = api.Update(context.Background(), e)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, http.MethodPost, got[0].method)
	assert.Equal(t, "/api/empresas/", got[0].path)
	assert.NotContains(t, got[0].body, "id_empresa")
	assert.Equal(t, "2020-02-29", got[0].body["fechaCreacion"])
	assert.Equal(t, 99.9, got[0].body["facturacion"])
	assert.Equal(t, true, got[0].body["activa"])

	assert.Equal(t, http.MethodPut, got[1].method)
	assert.Equal(t, "/api/empresas/7", got[1].path)
	assert.Equal(t, float64(7), got[1].body["id_empresa"])
}

func TestEmpresaAPI_GetAndFilters(t *testing.T) {
	t.Parallel()

	var paths []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/empresas/facturation/"):
			_, _ = w.Write([]byte(`{"datos": [], "mensaje": ""}`))
		case r.Method == http.MethodDelete:
			_, _ = w.Write([]byte(`{"mensaje": "Empresa eliminada"}`))
		case r.URL.Path == "/api/empresas/404":
			_, _ = w.Write([]byte(`{"datos": null, "mensaje": "No existe"}`))
		default:
			_, _ = w.Write([]byte(`{"datos": {"id_empresa": 3, "nombre": "Initech", "fechaCreacion": "2010-10-10"}}`))
		}
	})
	api := NewEmpresaAPI(c)
	ctx := context.Background()

	e, err := api.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Initech", e.Nombre)

	_, err = api.Get(ctx, 404)
	assert.Equal(t, http.StatusNotFound, apperror.StatusOf(err))
	assert.Equal(t, "No existe", apperror.Message(err, "fallback"))

	rows, err := api.ListByMinFacturacion(ctx, decimal.RequireFromString("1500.5"))
	require.NoError(t, err)
	assert.Empty(t, rows)

	msg, err := api.Delete(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Empresa eliminada", msg)

	assert.Equal(t, []string{
		"GET /api/empresas/3",
		"GET /api/empresas/404",
		"GET /api/empresas/facturation/1500.5",
		"DELETE /api/empresas/3",
	}, paths)
}

func TestProveedorAPI_ListAndJoin(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/proveedores/empresa/4":
			_, _ = w.Write([]byte(`{"datos": [{"id_proveedor": 1, "nombre": "Hierros", "fechaCreacion": "2015-06-01",
				"activa": true, "recurso": "Acero", "cantidad": "250", "facturacion": 1000,
				"empresaIdEmpresa": 4, "empresa": {"id_empresa": 4, "nombre": "Acme"}}]}`))
		case "/api/proveedores/":
			_, _ = w.Write([]byte(`{"datos": [{"id_proveedor": 2, "nombre": "Suelto", "fechaCreacion": "2015-06-01",
				"empresaIdEmpresa": 9}]}`))
		case "/api/empresas/":
			_, _ = w.Write([]byte(`{"datos": [{"id_empresa": 4, "nombre": "Acme"}, {"id_empresa": 5, "nombre": "Globex"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	api := NewProveedorAPI(c)
	ctx := context.Background()

	rows, err := api.ListByEmpresa(ctx, 4)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0].EmpresaNombre())
	assert.Equal(t, "Acero", rows[0].Recurso)
	assert.True(t, decimal.NewFromInt(250).Equal(rows[0].Cantidad))

	all, err := api.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, proveedorentity.SinEmpresa, all[0].EmpresaNombre())

	refs, err := api.ListEmpresas(ctx)
	require.NoError(t, err)
	assert.Equal(t, []proveedorentity.EmpresaRef{{ID: 4, Nombre: "Acme"}, {ID: 5, Nombre: "Globex"}}, refs)
}

func TestProveedorAPI_WriteOmitsJoinedEmpresa(t *testing.T) {
	t.Parallel()

	var body map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/proveedores/12", r.URL.Path)
		assert.Equal(t, http.MethodPut, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"mensaje": "Proveedor actualizado"}`))
	})

	p := proveedorentity.Proveedor{
		ID: 12, Nombre: "Hierros", EmpresaID: 4,
		Empresa: &proveedorentity.EmpresaRef{ID: 4, Nombre: "Acme"},
	}
	msg, err := NewProveedorAPI(c).Update(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "Proveedor actualizado", msg)
	assert.NotContains(t, body, "empresa")
	assert.Equal(t, float64(4), body["empresaIdEmpresa"])
}

func TestClient_ServiceTokenAndRequestID(t *testing.T) {
	t.Parallel()

	const secret = "service-secret"
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		assert.True(t, strings.HasPrefix(auth, "Bearer "))

		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), claims, func(*jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		assert.NoError(t, err)
		assert.Equal(t, Subject, claims.Subject)
		_, _ = w.Write([]byte(`{"datos": []}`))
	}, WithTokenSource(jwtmw.NewGenerator(secret, time.Minute, "empresas-admin")))

	_, err := NewEmpresaAPI(c).List(context.Background())
	require.NoError(t, err)
}

type failingTokens struct{}

func (failingTokens) GenerateToken(string) (string, error) { return "", errors.New("no secret") }

func TestClient_TokenFailure(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	}, WithTokenSource(failingTokens{}))

	_, err := NewEmpresaAPI(c).List(context.Background())
	assert.ErrorContains(t, err, "service token")
}

type limiterStub struct {
	waits int
	err   error
}

func (l *limiterStub) Wait(context.Context) error {
	l.waits++
	return l.err
}

func TestClient_Limiter(t *testing.T) {
	t.Parallel()

	var sent atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		sent.Add(1)
		_, _ = io.WriteString(w, `{"datos":[],"mensaje":""}`)
	}, WithLimiter(&limiterStub{}))

	_, err := NewEmpresaAPI(c).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, c.limiter.(*limiterStub).waits)
	assert.Equal(t, int32(1), sent.Load())

	blocked, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	}, WithLimiter(&limiterStub{err: context.Canceled}))

	_, err = NewEmpresaAPI(blocked).List(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
}
