package payroll

import (
	"context"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
	payrollerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/payroll/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/report"
)

var moneyPrinter = message.NewPrinter(language.English)

// Payslip renders the PDF payslip of an approved or paid payroll.
func (s *service) Payslip(ctx context.Context, actor domain.Actor, id string) (Payslip, error) {
	p, err := s.findAccessible(ctx, actor, id)
	if err != nil {
		return Payslip{}, err
	}
	if p.Status == StatusDraft {
		return Payslip{}, payrollerrors.ErrPayslipNotAvailable
	}

	name, number := "", ""
	if p.Employee != nil {
		name, number = p.Employee.FullName, p.Employee.EmployeeNumber
	}

	fields := []report.Field{
		{Label: "Employee", Value: name},
		{Label: "Employee number", Value: number},
		{Label: "Period", Value: p.PeriodStart.Format(dateLayout) + " to " + p.PeriodEnd.Format(dateLayout)},
		{Label: "Base salary", Value: formatMoney(p.BaseSalary)},
		{Label: "Allowance", Value: formatMoney(p.Allowance)},
		{Label: "Deduction", Value: "-" + formatMoney(p.Deduction)},
		{Label: "Net salary", Value: formatMoney(p.NetSalary)},
		{Label: "Status", Value: p.Status},
	}
	if p.PaidAt != nil {
		fields = append(fields, report.Field{Label: "Paid at", Value: p.PaidAt.Format(dateLayout)})
	}

	content, err := report.RenderFieldsPDF("WorkSphere Payslip", p.PeriodStart.Format("January 2006"), fields)
	if err != nil {
		return Payslip{}, err
	}

	return Payslip{
		Filename: fmt.Sprintf("payslip-%s-%s.pdf", number, p.PeriodStart.Format("2006-01")),
		Content:  content,
	}, nil
}

// formatMoney renders minor units with thousands separators, e.g. 1,250,000.50.
func formatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return sign + moneyPrinter.Sprintf("%d", cents/100) + fmt.Sprintf(".%02d", cents%100)
}
