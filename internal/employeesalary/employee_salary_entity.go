package employeesalary

import (
	"time"

	"github.com/google/uuid"
)

// EmployeeSalary is one row of an employee's salary history. Amounts are in
// the smallest currency unit.
type EmployeeSalary struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_employee_salary_effective,priority:1"`
	BaseSalary    int64     `gorm:"type:bigint;not null;default:0"`
	EffectiveDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_employee_salary_effective,priority:2"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	EmployeeName string `gorm:"->;-:migration"`
}
