package employeesalary

const dateLayout = "2006-01-02"

type CreateEmployeeSalaryRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	BaseSalary    int64  `json:"base_salary" binding:"gte=0"`
	EffectiveDate string `json:"effective_date" binding:"required"`
}

// UpdateEmployeeSalaryRequest records a salary change. The previous row is
// kept as history.
type UpdateEmployeeSalaryRequest struct {
	BaseSalary    int64  `json:"base_salary" binding:"gte=0"`
	EffectiveDate string `json:"effective_date" binding:"required"`
}

type EmployeeSalaryResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name,omitempty"`
	BaseSalary    int64  `json:"base_salary"`
	EffectiveDate string `json:"effective_date"`
}
