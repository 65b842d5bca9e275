package events

import "time"

const (
	LeaveDecidedTopic = "worksphere.leave.decided.v1"
	LeaveDecidedType  = "leave.decided"
)

// LeaveDecidedEvent is emitted once a leave request leaves PENDING.
type LeaveDecidedEvent struct {
	EventType       string    `json:"event_type"`
	LeaveID         string    `json:"leave_id"`
	EmployeeID      string    `json:"employee_id"`
	Status          string    `json:"status"`
	LeaveType       string    `json:"leave_type"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	WorkingDays     int       `json:"working_days"`
	DecidedBy       string    `json:"decided_by"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
