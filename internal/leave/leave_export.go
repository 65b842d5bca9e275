package leave

import (
	"fmt"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/report"
)

var exportHeaders = []string{
	"Employee No", "Employee", "Type", "Paid", "Start", "End", "Working Days", "Status", "Reason",
}

func renderExport(format string, year int, leaves []Leave) (ExportFile, error) {
	table := report.Table{
		Title:   fmt.Sprintf("Leaves %d", year),
		Headers: exportHeaders,
		Rows:    make([][]any, 0, len(leaves)),
	}
	for _, l := range leaves {
		var number, name string
		if l.Employee != nil {
			number, name = l.Employee.EmployeeNumber, l.Employee.FullName
		}
		paid := "No"
		if l.IsPaidLeave {
			paid = "Yes"
		}
		table.Rows = append(table.Rows, []any{
			number,
			name,
			l.LeaveType,
			paid,
			l.StartDate.Format(dateLayout),
			l.EndDate.Format(dateLayout),
			l.WorkingDays,
			l.Status,
			l.Reason,
		})
	}

	filename := fmt.Sprintf("leaves-%d.%s", year, format)
	if format == "pdf" {
		content, err := report.RenderTablePDF(table, []float64{25, 45, 25, 12, 22, 22, 22, 22, 82})
		if err != nil {
			return ExportFile{}, err
		}
		return ExportFile{Filename: filename, ContentType: report.ContentTypePDF, Content: content}, nil
	}

	content, err := report.RenderXLSX(table)
	if err != nil {
		return ExportFile{}, err
	}
	return ExportFile{Filename: filename, ContentType: report.ContentTypeXLSX, Content: content}, nil
}
