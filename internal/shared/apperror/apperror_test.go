package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		fallback string
		want     string
	}{
		{"nil error", nil, "fallback", ""},
		{"server message", New(http.StatusBadRequest, "Nombre duplicado"), "fallback", "Nombre duplicado"},
		{"wrapped server message", fmt.Errorf("create: %w", New(http.StatusConflict, "Conflicto")), "fallback", "Conflicto"},
		{"empty server message", New(http.StatusInternalServerError, ""), "Error al crear la empresa", "Error al crear la empresa"},
		{"network error", errors.New("dial tcp: connection refused"), "No se pudo conectar al servidor", "No se pudo conectar al servidor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Message(tt.err, tt.fallback))
		})
	}
}

func TestStatusOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusNotFound, StatusOf(fmt.Errorf("get: %w", New(http.StatusNotFound, "no existe"))))
	assert.Equal(t, 0, StatusOf(errors.New("boom")))
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("decode failed")
	err := Wrap(http.StatusOK, "", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "decode failed")
}
