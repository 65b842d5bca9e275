package jobposting

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"
)

const (
	TypeFullTime   = "FULL_TIME"
	TypePartTime   = "PART_TIME"
	TypeContract   = "CONTRACT"
	TypeInternship = "INTERNSHIP"
)

type JobPosting struct {
	ID             uuid.UUID             `gorm:"type:uuid;primaryKey"`
	Title          string                `gorm:"size:150;not null"`
	DepartmentID   uuid.UUID             `gorm:"type:uuid;not null;index"`
	Department     *JobPostingDepartment `gorm:"foreignKey:DepartmentID;references:ID"`
	Description    string                `gorm:"type:text;not null"`
	Location       string                `gorm:"size:150"`
	EmploymentType string                `gorm:"type:varchar(20);not null"`
	Status         string                `gorm:"type:varchar(10);not null;default:'OPEN';index"`
	ClosingDate    *time.Time            `gorm:"type:date"`
	CreatedBy      uuid.UUID             `gorm:"type:uuid;not null"`
	CreatedAt      time.Time             `gorm:"autoCreateTime"`
	UpdatedAt      time.Time             `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt        `gorm:"index"`
}

type JobPostingDepartment struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (JobPostingDepartment) TableName() string {
	return "departments"
}
