package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  *uuid.UUID     `gorm:"column:employee_id;type:uuid;uniqueIndex"`
	Name        string         `gorm:"column:name;type:varchar(255);not null"`
	Email       string         `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	Password    string         `gorm:"column:password;type:text;not null"`
	Role        string         `gorm:"column:role;type:varchar(20);not null;default:'EMPLOYEE'"`
	IsActive    bool           `gorm:"column:is_active;not null;default:true"`
	LastLoginAt *time.Time     `gorm:"column:last_login_at"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Employee *UserEmployee `gorm:"foreignKey:EmployeeID;references:ID"`
}

// UserEmployee is the slice of employees needed to label a user.
type UserEmployee struct {
	ID             uuid.UUID `gorm:"primaryKey"`
	EmployeeNumber string    `gorm:"column:employee_number"`
	FullName       string    `gorm:"column:full_name"`
}

func (UserEmployee) TableName() string {
	return "employees"
}
