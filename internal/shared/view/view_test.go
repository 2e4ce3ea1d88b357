package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AllPages(t *testing.T) {
	t.Parallel()

	tmpl, err := Parse()
	require.NoError(t, err)

	for _, name := range []string{
		"inicio.html", "envio.html",
		"empresa_form.html", "empresa_list.html",
		"proveedor_form.html", "proveedor_list.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestDialog_SuccessPostsDismissal(t *testing.T) {
	t.Parallel()

	tmpl := MustParse()
	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "dialog", Success("Empresa creada", "tok-1")))

	html := buf.String()
	assert.Contains(t, html, "Empresa creada")
	assert.Contains(t, html, `action="/envios/tok-1/cerrar"`)
}

func TestDialog_FailureClosesLocally(t *testing.T) {
	t.Parallel()

	tmpl := MustParse()
	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "dialog", Failure("No se pudo conectar al servidor")))

	html := buf.String()
	assert.Contains(t, html, `method="dialog"`)
	assert.NotContains(t, html, "/envios/")
}

func TestDialog_NilRendersNothing(t *testing.T) {
	t.Parallel()

	tmpl := MustParse()
	var buf bytes.Buffer
	var d *Dialog
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "dialog", d))
	assert.Empty(t, bytes.TrimSpace(buf.Bytes()))
}

func TestInicio_ShowsMenu(t *testing.T) {
	t.Parallel()

	tmpl := MustParse()
	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "inicio.html", map[string]any{"Title": "Inicio"}))

	html := buf.String()
	for _, link := range []string{
		"/altaempresa", "/listadoempresas", "/listadoempresasfacturacionmin/0",
		"/altaproveedor", "/listadoproveedores", "/listadoproveedoresporempresa",
	} {
		assert.Contains(t, html, `href="`+link+`"`)
	}
}
