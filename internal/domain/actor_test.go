package domain_test

import (
	"testing"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestActor(t *testing.T) {
	own := uuid.New()
	other := uuid.New()

	employee := domain.Actor{UserID: uuid.New(), EmployeeID: &own, Role: domain.RoleEmployee}
	assert.False(t, employee.IsPrivileged())
	assert.True(t, employee.CanAccessEmployee(own))
	assert.False(t, employee.CanAccessEmployee(other))

	hr := domain.Actor{UserID: uuid.New(), Role: domain.RoleHR}
	assert.True(t, hr.IsPrivileged())
	assert.True(t, hr.CanAccessEmployee(other))
	assert.False(t, hr.Owns(other))
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, domain.RoleAdmin.Valid())
	assert.True(t, domain.Role("HR").Valid())
	assert.False(t, domain.Role("OWNER").Valid())
}
