package rbac_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/rbac"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	perms    []rbac.RolePermission
	listErr  error
	replaced map[string][]rbac.RolePermission
}

func (f *fakeRepo) ListRolePermissions(ctx context.Context) ([]rbac.RolePermission, error) {
	return f.perms, f.listErr
}

func (f *fakeRepo) ReplaceRolePermissions(ctx context.Context, role string, perms []rbac.RolePermission) error {
	if f.replaced == nil {
		f.replaced = map[string][]rbac.RolePermission{}
	}
	f.replaced[role] = perms
	kept := f.perms[:0]
	for _, p := range f.perms {
		if p.Role != role {
			kept = append(kept, p)
		}
	}
	f.perms = append(kept, perms...)
	return nil
}

func (f *fakeRepo) SeedDefaults(ctx context.Context, perms []rbac.RolePermission) error {
	f.perms = append(f.perms, perms...)
	return nil
}

func newService(t *testing.T, repo rbac.Repository) rbac.Service {
	t.Helper()
	e, err := infra.NewDefaultEnforcer()
	assert.NoError(t, err)
	return rbac.NewService(repo, e)
}

func TestRBACService_Enforce(t *testing.T) {
	repo := &fakeRepo{perms: append([]rbac.RolePermission(nil), rbac.DefaultPermissions...)}
	svc := newService(t, repo)
	assert.NoError(t, svc.LoadPolicy(context.Background()))

	cases := []struct {
		role, resource, action string
		want                   bool
	}{
		{"EMPLOYEE", "leave", "create", true},
		{"EMPLOYEE", "leave", "approve", false},
		{"HR", "leave", "approve", true},
		{"HR", "leave", "create", true},
		{"ADMIN", "leave", "approve", true},
		{"ADMIN", "user", "manage", true},
		{"HR", "user", "manage", false},
		{"UNKNOWN", "leave", "read", false},
	}
	for _, tc := range cases {
		got, err := svc.Enforce(rbac.EnforceRequest{Role: tc.role, Resource: tc.resource, Action: tc.action})
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %s:%s", tc.role, tc.resource, tc.action)
	}
}

func TestRBACService_LoadPolicyError(t *testing.T) {
	svc := newService(t, &fakeRepo{listErr: errors.New("db down")})
	assert.Error(t, svc.LoadPolicy(context.Background()))
}

func TestRBACService_UpdateRolePermissions(t *testing.T) {
	t.Run("success reloads policy", func(t *testing.T) {
		repo := &fakeRepo{perms: []rbac.RolePermission{{Role: "EMPLOYEE", Resource: "leave", Action: "read"}}}
		svc := newService(t, repo)
		assert.NoError(t, svc.LoadPolicy(context.Background()))

		resp, err := svc.UpdateRolePermissions(context.Background(), "EMPLOYEE", []domain.Permission{
			{Resource: "holiday", Action: "read"},
			{Resource: "holiday", Action: "read"},
		})

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Len(t, repo.replaced["EMPLOYEE"], 1)

		allowed, _ := svc.Enforce(rbac.EnforceRequest{Role: "EMPLOYEE", Resource: "holiday", Action: "read"})
		assert.True(t, allowed)
		allowed, _ = svc.Enforce(rbac.EnforceRequest{Role: "EMPLOYEE", Resource: "leave", Action: "read"})
		assert.False(t, allowed)
	})

	t.Run("negative invalid role", func(t *testing.T) {
		svc := newService(t, &fakeRepo{})
		_, err := svc.UpdateRolePermissions(context.Background(), "OWNER", nil)
		assert.ErrorIs(t, err, rbac.ErrInvalidRole)
	})
}
