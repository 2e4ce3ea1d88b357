package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestErrors_Nombre(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"empty", "", false},
		{"one char", "a", true},
		{"exactly 50", strings.Repeat("a", 50), true},
		{"51 chars", strings.Repeat("a", 51), false},
		{"50 multibyte runes", strings.Repeat("ñ", 50), true},
		{"51 multibyte runes", strings.Repeat("ñ", 51), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			errs := Errors{}
			errs.Nombre("nombre", tt.value)
			assert.Equal(t, tt.valid, errs.Valid())
			assert.Equal(t, !tt.valid, errs.Has("nombre"))
		})
	}
}

func TestErrors_Fecha(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, time.June, 15, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value time.Time
		valid bool
	}{
		{"missing", time.Time{}, false},
		{"lower bound", MinFecha, true},
		{"before lower bound", MinFecha.AddDate(0, 0, -1), false},
		{"today", time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), true},
		{"tomorrow", time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC), false},
		{"mid range", time.Date(1999, time.March, 3, 0, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			errs := Errors{}
			errs.Fecha("fechaCreacion", tt.value, today)
			assert.Equal(t, tt.valid, errs.Valid(), errs.Get("fechaCreacion"))
		})
	}
}

func TestErrors_MaxDecimal(t *testing.T) {
	t.Parallel()

	hundred := decimal.NewFromInt(100)
	errs := Errors{}
	errs.MaxDecimal("p", decimal.NewFromInt(100), hundred, "too big")
	assert.True(t, errs.Valid())

	errs.MaxDecimal("p", decimal.RequireFromString("100.01"), hundred, "too big")
	assert.Equal(t, "too big", errs.Get("p"))
}

func TestErrors_Required(t *testing.T) {
	t.Parallel()

	errs := Errors{}
	errs.Required("empresa", 3, "required")
	assert.True(t, errs.Valid())
	errs.Required("empresa", 0, "required")
	assert.True(t, errs.Has("empresa"))
}

func TestErrors_FirstErrorWins(t *testing.T) {
	t.Parallel()

	errs := Errors{}
	errs.Add("f", "first")
	errs.Add("f", "second")
	assert.Equal(t, "first", errs.Get("f"))
}

func TestErrors_ParseDecimal(t *testing.T) {
	t.Parallel()

	errs := Errors{}
	assert.True(t, errs.ParseDecimal("f", "").IsZero())
	assert.True(t, errs.ParseDecimal("f", "  ").IsZero())
	assert.Equal(t, "12.5", errs.ParseDecimal("f", " 12.5 ").String())
	assert.True(t, errs.Valid())

	assert.True(t, errs.ParseDecimal("g", "doce").IsZero())
	assert.Equal(t, "Debe ser un numero", errs.Get("g"))
}

func TestErrors_ParseDate(t *testing.T) {
	t.Parallel()

	errs := Errors{}
	assert.True(t, errs.ParseDate("f", "").IsZero())
	assert.Equal(t, time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC), errs.ParseDate("f", "2020-02-29"))
	assert.True(t, errs.Valid())

	errs.ParseDate("g", "29/02/2020")
	assert.Equal(t, "La fecha no es valida", errs.Get("g"))
}

func TestErrors_MergeKeepsExisting(t *testing.T) {
	t.Parallel()

	errs := Errors{"a": "first"}
	errs.Merge(Errors{"a": "second", "b": "other"})
	assert.Equal(t, "first", errs.Get("a"))
	assert.Equal(t, "other", errs.Get("b"))
}
