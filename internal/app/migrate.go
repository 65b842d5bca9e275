package app

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/attendance"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/department"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/employee"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/employeesalary"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/holiday"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/jobposting"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/leave"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/messaging/kafka"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/notification"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/payroll"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/rbac"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/counter"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/user"
)

// Migrate creates or updates every table the services use. Parents come
// before the tables that reference them.
func Migrate(db *gorm.DB) error {
	models := []any{
		&department.Department{},
		&employee.Employee{},
		&user.User{},
		&rbac.RolePermission{},
		&employeesalary.EmployeeSalary{},
		&leave.Leave{},
		&attendance.Attendance{},
		&holiday.Holiday{},
		&payroll.Payroll{},
		&jobposting.JobPosting{},
		&notification.Notification{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, ddl := range []string{counter.TableDDL, kafka.OutboxTableDDL} {
		for _, stmt := range strings.Split(ddl, ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("create table: %w", err)
			}
		}
	}
	return nil
}
