package rbac_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubService struct {
	updateFn func(ctx context.Context, role string, perms []domain.Permission) ([]domain.PermissionResponse, error)
}

func (s *stubService) LoadPolicy(ctx context.Context) error { return nil }

func (s *stubService) Enforce(req rbac.EnforceRequest) (bool, error) {
	return req.Role == "HR" && req.Resource == "leave" && req.Action == "approve", nil
}

func (s *stubService) ListPermissions(ctx context.Context) ([]domain.PermissionResponse, error) {
	return []domain.PermissionResponse{{Role: "HR", Resource: "leave", Action: "approve"}}, nil
}

func (s *stubService) UpdateRolePermissions(ctx context.Context, role string, perms []domain.Permission) ([]domain.PermissionResponse, error) {
	return s.updateFn(ctx, role, perms)
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := rbac.NewHandler(&stubService{})
	router := gin.New()
	router.POST("/rbac/enforce", h.Enforce)

	t.Run("allowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", strings.NewReader(`{"role":" hr ","resource":"leave","action":"approve"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var got rbac.EnforceResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.True(t, got.Allowed)
	})

	t.Run("negative validation error", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", strings.NewReader(`{"role":"HR"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_UpdateRolePermissions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubService{
		updateFn: func(ctx context.Context, role string, perms []domain.Permission) ([]domain.PermissionResponse, error) {
			assert.Equal(t, "EMPLOYEE", role)
			assert.Len(t, perms, 1)
			return []domain.PermissionResponse{{Role: role, Resource: perms[0].Resource, Action: perms[0].Action}}, nil
		},
	}
	h := rbac.NewHandler(svc)
	router := gin.New()
	router.PUT("/rbac/roles/:role/permissions", h.UpdateRolePermissions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/rbac/roles/employee/permissions", strings.NewReader(`{"permissions":[{"resource":"holiday","action":"read"}]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Ok)
}
