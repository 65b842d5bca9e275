package employee

import (
	"context"
	"fmt"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/report"
)

func (s *service) IDCard(ctx context.Context, actor domain.Actor, id string) (IDCard, error) {
	empl, err := s.findAccessible(ctx, actor, id)
	if err != nil {
		return IDCard{}, err
	}

	department := "-"
	if empl.Department != nil {
		department = empl.Department.Name
	}
	jobTitle := empl.JobTitle
	if jobTitle == "" {
		jobTitle = "-"
	}

	content, err := report.RenderFieldsPDF("WorkSphere Employee ID", empl.FullName, []report.Field{
		{Label: "Employee number", Value: empl.EmployeeNumber},
		{Label: "Department", Value: department},
		{Label: "Job title", Value: jobTitle},
		{Label: "Email", Value: empl.Email},
		{Label: "Hire date", Value: empl.HireDate.Format(dateLayout)},
		{Label: "Status", Value: empl.EmploymentStatus},
	})
	if err != nil {
		return IDCard{}, err
	}

	return IDCard{
		Filename: fmt.Sprintf("id-card-%s.pdf", empl.EmployeeNumber),
		Content:  content,
	}, nil
}
