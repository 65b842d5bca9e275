package rbac

import "github.com/ismailgraphix/WorkSphere-sub000/internal/domain"

type (
	EnforceRequest               = domain.EnforceRequest
	EnforceResponse              = domain.EnforceResponse
	UpdateRolePermissionsRequest = domain.UpdateRolePermissionsRequest
)

const (
	ActionRead    = "read"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionApprove = "approve"
	ActionExport  = "export"
	ActionManage  = "manage"
)

// RoleInheritance is applied as casbin grouping policy: a role inherits every
// permission of the roles listed after it.
var RoleInheritance = [][2]domain.Role{
	{domain.RoleAdmin, domain.RoleHR},
	{domain.RoleHR, domain.RoleEmployee},
}

// DefaultPermissions seeds role_permissions on an empty database.
var DefaultPermissions = []RolePermission{
	{Role: "EMPLOYEE", Resource: "leave", Action: ActionRead},
	{Role: "EMPLOYEE", Resource: "leave", Action: ActionCreate},
	{Role: "EMPLOYEE", Resource: "attendance", Action: ActionRead},
	{Role: "EMPLOYEE", Resource: "attendance", Action: ActionCreate},
	{Role: "EMPLOYEE", Resource: "employee", Action: ActionRead},
	{Role: "EMPLOYEE", Resource: "department", Action: ActionRead},
	{Role: "EMPLOYEE", Resource: "holiday", Action: ActionRead},
	{Role: "EMPLOYEE", Resource: "payroll", Action: ActionRead},
	{Role: "EMPLOYEE", Resource: "job_posting", Action: ActionRead},
	{Role: "EMPLOYEE", Resource: "notification", Action: ActionRead},

	{Role: "HR", Resource: "leave", Action: ActionApprove},
	{Role: "HR", Resource: "leave", Action: ActionExport},
	{Role: "HR", Resource: "attendance", Action: ActionExport},
	{Role: "HR", Resource: "employee", Action: ActionCreate},
	{Role: "HR", Resource: "employee", Action: ActionUpdate},
	{Role: "HR", Resource: "employee", Action: ActionDelete},
	{Role: "HR", Resource: "department", Action: ActionCreate},
	{Role: "HR", Resource: "department", Action: ActionUpdate},
	{Role: "HR", Resource: "holiday", Action: ActionCreate},
	{Role: "HR", Resource: "holiday", Action: ActionUpdate},
	{Role: "HR", Resource: "holiday", Action: ActionDelete},
	{Role: "HR", Resource: "payroll", Action: ActionCreate},
	{Role: "HR", Resource: "salary", Action: ActionRead},
	{Role: "HR", Resource: "salary", Action: ActionUpdate},
	{Role: "HR", Resource: "job_posting", Action: ActionCreate},
	{Role: "HR", Resource: "job_posting", Action: ActionUpdate},
	{Role: "HR", Resource: "job_posting", Action: ActionDelete},

	{Role: "ADMIN", Resource: "department", Action: ActionDelete},
	{Role: "ADMIN", Resource: "payroll", Action: ActionApprove},
	{Role: "ADMIN", Resource: "payroll", Action: ActionDelete},
	{Role: "ADMIN", Resource: "user", Action: ActionManage},
	{Role: "ADMIN", Resource: "role", Action: ActionManage},
}
