// Package report renders tabular and key/value documents as XLSX and PDF.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

type Table struct {
	Title   string
	Headers []string
	Rows    [][]any
}

// RenderXLSX writes t into a single sheet named after its title.
func RenderXLSX(t Table) (out []byte, err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	sheet := "Sheet1"
	row, err := writeHeader(f, sheet, t.Headers)
	if err != nil {
		return nil, fmt.Errorf("write xlsx header: %w", err)
	}

	if len(t.Rows) > 0 {
		if err := applyDataCellStyle(f, sheet, 1, row+1, len(t.Headers), row+len(t.Rows)); err != nil {
			return nil, err
		}
	}
	for _, values := range t.Rows {
		row++
		for col, v := range values {
			if err := writeCell(f, sheet, col+1, row, v); err != nil {
				return nil, fmt.Errorf("write xlsx row %d: %w", row, err)
			}
		}
	}

	if t.Title != "" {
		if err := f.SetSheetName(sheet, sheetName(t.Title)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

func writeHeader(f *excelize.File, sheet string, headers []string) (int, error) {
	const row = 1
	if len(headers) == 0 {
		return 0, nil
	}

	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return row, err
	}

	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return row, err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), row)
	if err != nil {
		return row, err
	}
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return row, err
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return row, err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 20); err != nil {
		return row, err
	}

	for i, h := range headers {
		if err := writeCell(f, sheet, i+1, row, h); err != nil {
			return row, err
		}
	}
	return row, nil
}

func applyDataCellStyle(f *excelize.File, sheet string, colFrom, rowFrom, colTo, rowTo int) error {
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Font:      &excelize.Font{Size: 11},
	})
	if err != nil {
		return err
	}
	first, err := excelize.CoordinatesToCellName(colFrom, rowFrom)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(colTo, rowTo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

// sheetName trims to the 31 characters excel allows.
func sheetName(title string) string {
	if len(title) > 31 {
		return title[:31]
	}
	return title
}
