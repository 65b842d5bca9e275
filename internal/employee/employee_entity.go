package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive     = "ACTIVE"
	StatusOnLeave    = "ON_LEAVE"
	StatusTerminated = "TERMINATED"
)

type Employee struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeNumber   string     `gorm:"size:20;not null;uniqueIndex:uq_employee_number"`
	FullName         string     `gorm:"size:150;not null"`
	Email            string     `gorm:"size:255;not null;uniqueIndex:uq_employee_email"`
	Phone            string     `gorm:"size:30"`
	Address          string     `gorm:"type:text"`
	DepartmentID     *uuid.UUID `gorm:"type:uuid;index"`
	JobTitle         string     `gorm:"size:100"`
	HireDate         time.Time  `gorm:"type:date;not null"`
	DateOfBirth      *time.Time `gorm:"type:date"`
	EmploymentStatus string     `gorm:"size:20;not null;default:'ACTIVE'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Department *EmployeeDepartment `gorm:"foreignKey:DepartmentID;references:ID"`
}

type EmployeeDepartment struct {
	ID   uuid.UUID `gorm:"primaryKey"`
	Name string
}

func (EmployeeDepartment) TableName() string {
	return "departments"
}
