// Package pdf renders list tables as A4 PDF documents.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	margin     = 10.0
	pageWidth  = 210.0 // A4 portrait, mm
	lineHeight = 5.0
	cellPad    = 1.5
)

// ErrColumnMismatch is returned when a row or the widths do not match the headers.
var ErrColumnMismatch = errors.New("pdf: column count mismatch")

// Table is a titled table. Widths are relative weights; nil means equal widths.
type Table struct {
	Title   string
	Headers []string
	Widths  []float64
	Rows    [][]string
	// Date is written as the document creation date. A fixed date keeps the
	// output byte-identical for identical data.
	Date time.Time
}

// YesNo formats a boolean the way list exports show it.
func YesNo(b bool) string {
	if b {
		return "Si"
	}
	return "No"
}

// Render writes t as a PDF document to w.
func Render(w io.Writer, t Table) error {
	widths, err := columnWidths(t)
	if err != nil {
		return err
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(true, margin)
	if !t.Date.IsZero() {
		doc.SetCreationDate(t.Date)
	}
	// core fonts are cp1252; translate UTF-8 accents and ¿
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 12, tr(t.Title), "", 1, "C", false, 0, "")
	doc.Ln(4)

	header := func() {
		doc.SetFont("Helvetica", "B", 9)
		doc.SetFillColor(0, 0, 0)
		doc.SetTextColor(255, 255, 255)
		doc.SetDrawColor(191, 191, 191)
		drawRow(doc, tr, widths, t.Headers, true)
		doc.SetFont("Helvetica", "", 8)
		doc.SetTextColor(0, 0, 0)
	}
	header()

	_, pageHeight := doc.GetPageSize()
	for _, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return fmt.Errorf("%w: row has %d cells, want %d", ErrColumnMismatch, len(row), len(t.Headers))
		}
		h := rowHeight(doc, tr, widths, row)
		if doc.GetY()+h > pageHeight-margin {
			doc.AddPage()
			header()
		}
		drawRow(doc, tr, widths, row, false)
	}

	if err := doc.Error(); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return doc.Output(w)
}

// Bytes renders t into memory.
func Bytes(t Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func columnWidths(t Table) ([]float64, error) {
	n := len(t.Headers)
	if n == 0 {
		return nil, fmt.Errorf("%w: no headers", ErrColumnMismatch)
	}
	weights := t.Widths
	if weights == nil {
		weights = make([]float64, n)
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != n {
		return nil, fmt.Errorf("%w: %d widths for %d headers", ErrColumnMismatch, len(weights), n)
	}

	var total float64
	for _, w := range weights {
		total += w
	}
	usable := pageWidth - 2*margin
	out := make([]float64, n)
	for i, w := range weights {
		out[i] = usable * w / total
	}
	return out, nil
}

// rowHeight returns the height of the tallest wrapped cell.
func rowHeight(doc *fpdf.Fpdf, tr func(string) string, widths []float64, cells []string) float64 {
	lines := 1
	for i, c := range cells {
		if n := len(doc.SplitText(tr(c), widths[i]-2*cellPad)); n > lines {
			lines = n
		}
	}
	return float64(lines)*lineHeight + 2*cellPad
}

// drawRow draws bordered cells of equal height, wrapping long text.
func drawRow(doc *fpdf.Fpdf, tr func(string) string, widths []float64, cells []string, fill bool) {
	h := rowHeight(doc, tr, widths, cells)
	x0, y0 := doc.GetXY()
	x := x0
	for i, c := range cells {
		style := "D"
		if fill {
			style = "FD"
		}
		doc.Rect(x, y0, widths[i], h, style)
		doc.SetXY(x+cellPad, y0+cellPad)
		doc.MultiCell(widths[i]-2*cellPad, lineHeight, tr(c), "", "L", false)
		x += widths[i]
	}
	doc.SetXY(x0, y0+h)
}
