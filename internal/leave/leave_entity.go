package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	TypeAnnual      = "ANNUAL"
	TypeSick        = "SICK"
	TypePersonal    = "PERSONAL"
	TypeMaternity   = "MATERNITY"
	TypePaternity   = "PATERNITY"
	TypeBereavement = "BEREAVEMENT"
	TypeUnpaid      = "UNPAID"
)

var leaveTypes = map[string]struct{}{
	TypeAnnual:      {},
	TypeSick:        {},
	TypePersonal:    {},
	TypeMaternity:   {},
	TypePaternity:   {},
	TypeBereavement: {},
	TypeUnpaid:      {},
}

func IsValidLeaveType(t string) bool {
	_, ok := leaveTypes[t]
	return ok
}

// Leave rows are never deleted.
type Leave struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_status_start"`
	DepartmentID uuid.UUID `gorm:"type:uuid;not null;index"`

	LeaveType   string    `gorm:"type:varchar(20);not null;default:'ANNUAL'"`
	IsPaidLeave bool      `gorm:"not null;default:true"`
	StartDate   time.Time `gorm:"type:date;not null;index:idx_leaves_employee_status_start"`
	EndDate     time.Time `gorm:"type:date;not null"`
	WorkingDays int       `gorm:"type:int;not null"`
	Reason      string    `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leaves_employee_status_start"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *LeaveEmployee `gorm:"foreignKey:EmployeeID;references:ID"`
}

// LeaveEmployee is the employee projection shown next to a leave.
type LeaveEmployee struct {
	ID             uuid.UUID `gorm:"primaryKey"`
	EmployeeNumber string    `gorm:"column:employee_number"`
	FullName       string    `gorm:"column:full_name"`
}

func (LeaveEmployee) TableName() string {
	return "employees"
}

// DateRange is the slice of an approved leave the eligibility check reads.
type DateRange struct {
	StartDate time.Time `gorm:"column:start_date"`
	EndDate   time.Time `gorm:"column:end_date"`
}
