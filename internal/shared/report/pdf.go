package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Field is one labelled line of a key/value document.
type Field struct {
	Label string
	Value string
}

// RenderTablePDF lays t out landscape with one cell per value. Column widths
// are shared evenly unless widths is given.
func RenderTablePDF(t Table, widths []float64) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, t.Title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(widths) != len(t.Headers) {
		pageW, _ := pdf.GetPageSize()
		left, _, right, _ := pdf.GetMargins()
		w := (pageW - left - right) / float64(max(len(t.Headers), 1))
		widths = make([]float64, len(t.Headers))
		for i := range widths {
			widths[i] = w
		}
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(221, 235, 247)
	for i, h := range t.Headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range t.Rows {
		for i, v := range row {
			if i >= len(widths) {
				break
			}
			pdf.CellFormat(widths[i], 6, fmt.Sprint(v), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(t.Rows) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 8, "No records.", "", 1, "L", false, 0, "")
	}

	return output(pdf)
}

// RenderFieldsPDF renders a portrait document with a heading and labelled
// lines, used for payslips and ID cards.
func RenderFieldsPDF(title, subtitle string, fields []Field) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	if subtitle != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, subtitle, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	for _, f := range fields {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(55, 8, f.Label, "B", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, f.Value, "B", 1, "L", false, 0, "")
	}

	return output(pdf)
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
