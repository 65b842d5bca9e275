package domain

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleHR       Role = "HR"
	RoleEmployee Role = "EMPLOYEE"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	}
	return false
}

// Actor is the authenticated caller of a request. Handlers build it from the
// verified token and pass it to services explicitly.
type Actor struct {
	UserID     uuid.UUID
	EmployeeID *uuid.UUID
	Role       Role
}

// IsPrivileged reports whether the actor may act on other employees' records.
func (a Actor) IsPrivileged() bool {
	return a.Role == RoleAdmin || a.Role == RoleHR
}

// Owns reports whether employeeID is the actor's own employee record.
func (a Actor) Owns(employeeID uuid.UUID) bool {
	return a.EmployeeID != nil && *a.EmployeeID == employeeID
}

// CanAccessEmployee is true for privileged actors and for the employee themself.
func (a Actor) CanAccessEmployee(employeeID uuid.UUID) bool {
	return a.IsPrivileged() || a.Owns(employeeID)
}
