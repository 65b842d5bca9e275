package jobposting

const dateLayout = "2006-01-02"

type CreateJobPostingRequest struct {
	Title          string `json:"title" binding:"required,max=150"`
	DepartmentID   string `json:"department_id" binding:"required,uuid"`
	Description    string `json:"description" binding:"required"`
	Location       string `json:"location" binding:"max=150"`
	EmploymentType string `json:"employment_type" binding:"required,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	ClosingDate    string `json:"closing_date"`
}

type UpdateJobPostingRequest struct {
	Title          string `json:"title" binding:"required,max=150"`
	DepartmentID   string `json:"department_id" binding:"required,uuid"`
	Description    string `json:"description" binding:"required"`
	Location       string `json:"location" binding:"max=150"`
	EmploymentType string `json:"employment_type" binding:"required,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	Status         string `json:"status" binding:"required,oneof=OPEN CLOSED"`
	ClosingDate    string `json:"closing_date"`
}

type ListJobPostingsQuery struct {
	Q            string `form:"q"`
	Status       string `form:"status"`
	DepartmentID string `form:"department_id"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
}

type JobPostingResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	DepartmentID   string  `json:"department_id"`
	DepartmentName string  `json:"department_name,omitempty"`
	Description    string  `json:"description"`
	Location       string  `json:"location,omitempty"`
	EmploymentType string  `json:"employment_type"`
	Status         string  `json:"status"`
	ClosingDate    *string `json:"closing_date,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}
