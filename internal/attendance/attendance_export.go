package attendance

import (
	"context"
	"fmt"
	"time"

	attendanceerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/attendance/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/report"
)

func (s *service) Export(ctx context.Context, actor domain.Actor, query ExportAttendanceQuery) (ExportFile, error) {
	if !actor.IsPrivileged() {
		return ExportFile{}, attendanceerrors.ErrForbidden
	}

	from, err := parseOptionalDate(query.From)
	if err != nil {
		return ExportFile{}, err
	}
	to, err := parseOptionalDate(query.To)
	if err != nil {
		return ExportFile{}, err
	}
	if from == nil || to == nil || from.After(*to) {
		return ExportFile{}, attendanceerrors.ErrInvalidRange
	}
	if to.Sub(*from) > maxExportDays*24*time.Hour {
		return ExportFile{}, attendanceerrors.ErrRangeTooLarge
	}

	employeeID, err := s.resolveEmployee(actor, query.EmployeeID)
	if err != nil {
		return ExportFile{}, err
	}

	rows, _, err := s.repo.FindAll(ctx, ListFilter{EmployeeID: employeeID, From: from, To: to})
	if err != nil {
		return ExportFile{}, err
	}

	table := report.Table{
		Title:   fmt.Sprintf("Attendance %s to %s", query.From, query.To),
		Headers: []string{"Date", "Employee No", "Employee", "Clock In", "Clock Out", "Hours", "Status", "Source"},
		Rows:    make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		number, name := "", ""
		if r.Employee != nil {
			number, name = r.Employee.EmployeeNumber, r.Employee.FullName
		}
		clockOut, hours := "", ""
		if r.ClockOut != nil {
			clockOut = r.ClockOut.Format("15:04")
			hours = fmt.Sprintf("%.2f", r.ClockOut.Sub(r.ClockIn).Hours())
		}
		table.Rows = append(table.Rows, []any{
			r.AttendanceDate.Format(dateLayout),
			number,
			name,
			r.ClockIn.Format("15:04"),
			clockOut,
			hours,
			r.Status,
			r.Source,
		})
	}

	content, err := report.RenderXLSX(table)
	if err != nil {
		return ExportFile{}, err
	}

	return ExportFile{
		Filename:    fmt.Sprintf("attendance-%s-%s.xlsx", query.From, query.To),
		ContentType: report.ContentTypeXLSX,
		Content:     content,
	}, nil
}
