package leave

const dateLayout = "2006-01-02"

type CreateLeaveRequest struct {
	EmployeeID   string `json:"employee_id" binding:"required,uuid"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	LeaveType    string `json:"leave_type" binding:"required,oneof=ANNUAL SICK PERSONAL MATERNITY PATERNITY BEREAVEMENT UNPAID"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date" binding:"required"`
	Reason       string `json:"reason" binding:"required,max=1000"`
	IsPaidLeave  *bool  `json:"is_paid_leave"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"max=1000"`
}

type ListLeavesQuery struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	From       string `form:"from"`
	To         string `form:"to"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type ExportLeavesQuery struct {
	Format     string `form:"format" binding:"omitempty,oneof=pdf xlsx"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	Year       int    `form:"year"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeNumber  string  `json:"employee_number,omitempty"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	DepartmentID    string  `json:"department_id"`
	LeaveType       string  `json:"leave_type"`
	IsPaidLeave     bool    `json:"is_paid_leave"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	WorkingDays     int     `json:"working_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	CreatedBy       string  `json:"created_by"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type LeaveBalanceResponse struct {
	EmployeeID    string `json:"employee_id"`
	Year          int    `json:"year"`
	AnnualLimit   int    `json:"annual_limit"`
	DaysTaken     int    `json:"days_taken"`
	DaysRemaining int    `json:"days_remaining"`
}

// ExportFile is a rendered report ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
