package payroll

const dateLayout = "2006-01-02"

// CreatePayrollRequest takes amounts in minor units. A zero base_salary is
// filled from the employee's salary history.
type CreatePayrollRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
	BaseSalary  int64  `json:"base_salary" binding:"gte=0"`
	Allowance   int64  `json:"allowance" binding:"gte=0"`
	Deduction   int64  `json:"deduction" binding:"gte=0"`
	Notes       string `json:"notes" binding:"max=1000"`
}

type ListPayrollsQuery struct {
	EmployeeID string `form:"employee_id"`
	Status     string `form:"status"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type PayrollResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeNumber string  `json:"employee_number,omitempty"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	PeriodStart    string  `json:"period_start"`
	PeriodEnd      string  `json:"period_end"`
	BaseSalary     int64   `json:"base_salary"`
	Allowance      int64   `json:"allowance"`
	Deduction      int64   `json:"deduction"`
	NetSalary      int64   `json:"net_salary"`
	Status         string  `json:"status"`
	Notes          string  `json:"notes,omitempty"`
	CreatedBy      string  `json:"created_by"`
	ApprovedBy     *string `json:"approved_by,omitempty"`
	ApprovedAt     *string `json:"approved_at,omitempty"`
	PaidAt         *string `json:"paid_at,omitempty"`
}

type Payslip struct {
	Filename string
	Content  []byte
}
