// Package chart renders the revenue bar chart of the filtered company list.
package chart

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/shopspring/decimal"
)

// Series names shown in the legend.
const (
	SeriesFacturacion = "Facturacion"
	SeriesPorcentaje  = "Porcentaje en bolsa"
)

// Point is one category of the chart.
type Point struct {
	Nombre            string
	Facturacion       decimal.Decimal
	PorcentajeEnBolsa decimal.Decimal
}

// NewFacturacionBar builds the two-series bar chart, one category per company.
func NewFacturacionBar(points []Point) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Facturacion y porcentaje en bolsa",
			Width:     "100%",
			Height:    "480px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Facturacion y porcentaje en bolsa de las empresas",
		}),
	)

	names := make([]string, 0, len(points))
	facturacion := make([]opts.BarData, 0, len(points))
	porcentaje := make([]opts.BarData, 0, len(points))
	for _, p := range points {
		names = append(names, p.Nombre)
		facturacion = append(facturacion, opts.BarData{Value: p.Facturacion.InexactFloat64()})
		porcentaje = append(porcentaje, opts.BarData{Value: p.PorcentajeEnBolsa.InexactFloat64()})
	}

	bar.SetXAxis(names).
		AddSeries(SeriesFacturacion, facturacion, charts.WithItemStyleOpts(opts.ItemStyle{Color: "#333"})).
		AddSeries(SeriesPorcentaje, porcentaje, charts.WithItemStyleOpts(opts.ItemStyle{Color: "#AAA"}))
	return bar
}

// RenderFacturacion writes the chart as a standalone HTML page.
func RenderFacturacion(w io.Writer, points []Point) error {
	return NewFacturacionBar(points).Render(w)
}
