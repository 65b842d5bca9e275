package employee

const dateLayout = "2006-01-02"

type CreateEmployeeRequest struct {
	EmployeeNumber   string `json:"employee_number" binding:"omitempty,max=20"`
	FullName         string `json:"full_name" binding:"required,max=150"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone" binding:"omitempty,max=30"`
	Address          string `json:"address"`
	DepartmentID     string `json:"department_id" binding:"omitempty,uuid"`
	JobTitle         string `json:"job_title" binding:"omitempty,max=100"`
	HireDate         string `json:"hire_date" binding:"required"`
	DateOfBirth      string `json:"date_of_birth"`
	EmploymentStatus string `json:"employment_status" binding:"omitempty,oneof=ACTIVE ON_LEAVE TERMINATED"`
}

type UpdateEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required,max=150"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone" binding:"omitempty,max=30"`
	Address          string `json:"address"`
	DepartmentID     string `json:"department_id" binding:"omitempty,uuid"`
	JobTitle         string `json:"job_title" binding:"omitempty,max=100"`
	HireDate         string `json:"hire_date" binding:"required"`
	DateOfBirth      string `json:"date_of_birth"`
	EmploymentStatus string `json:"employment_status" binding:"required,oneof=ACTIVE ON_LEAVE TERMINATED"`
}

type ListEmployeesQuery struct {
	Q            string `form:"q"`
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	Status       string `form:"status" binding:"omitempty,oneof=ACTIVE ON_LEAVE TERMINATED"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
}

type EmployeeDepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployeeResponse struct {
	ID               string                      `json:"id"`
	EmployeeNumber   string                      `json:"employee_number"`
	FullName         string                      `json:"full_name"`
	Email            string                      `json:"email"`
	Phone            string                      `json:"phone,omitempty"`
	Address          string                      `json:"address,omitempty"`
	DepartmentID     string                      `json:"department_id,omitempty"`
	Department       *EmployeeDepartmentResponse `json:"department,omitempty"`
	JobTitle         string                      `json:"job_title,omitempty"`
	HireDate         string                      `json:"hire_date"`
	DateOfBirth      string                      `json:"date_of_birth,omitempty"`
	EmploymentStatus string                      `json:"employment_status"`
}

// EmployeeOption is the slim projection used by select inputs.
type EmployeeOption struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
}

type IDCard struct {
	Filename string
	Content  []byte
}
