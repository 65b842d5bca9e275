package events

import "time"

const (
	PayrollPaidTopic = "worksphere.payroll.paid.v1"
	PayrollPaidType  = "payroll.paid"
)

type PayrollPaidEvent struct {
	EventType  string    `json:"event_type"`
	PayrollID  string    `json:"payroll_id"`
	EmployeeID string    `json:"employee_id"`
	Period     string    `json:"period"`
	NetSalary  float64   `json:"net_salary"`
	OccurredAt time.Time `json:"occurred_at"`
}
