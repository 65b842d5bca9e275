package events

import "time"

const (
	EmployeeCreatedTopic = "worksphere.employee.lifecycle.v1"
	EmployeeCreatedType  = "employee.created"
)

type EmployeeCreatedEvent struct {
	EventType      string    `json:"event_type"`
	EmployeeID     string    `json:"employee_id"`
	EmployeeNumber string    `json:"employee_number"`
	DepartmentID   string    `json:"department_id"`
	HireDate       string    `json:"hire_date"`
	OccurredAt     time.Time `json:"occurred_at"`
}
