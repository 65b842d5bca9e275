package report_test

import (
	"bytes"
	"testing"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRenderXLSX(t *testing.T) {
	out, err := report.RenderXLSX(report.Table{
		Title:   "Leaves",
		Headers: []string{"Employee", "Days"},
		Rows:    [][]any{{"EMP-000001", 5}, {"EMP-000002", 3}},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Leaves", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Employee", header)

	days, err := f.GetCellValue("Leaves", "B3")
	require.NoError(t, err)
	assert.Equal(t, "3", days)
}

func TestRenderTablePDF(t *testing.T) {
	out, err := report.RenderTablePDF(report.Table{
		Title:   "Leave report",
		Headers: []string{"A", "B"},
		Rows:    [][]any{{"x", 1}},
	}, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderFieldsPDF(t *testing.T) {
	out, err := report.RenderFieldsPDF("Payslip", "March 2024", []report.Field{{Label: "Net", Value: "1000.00"}})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
