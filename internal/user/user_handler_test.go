package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/request"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/user"
	usererrors "github.com/ismailgraphix/WorkSphere-sub000/internal/user/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeUserService struct {
	GetAllFn         func(ctx context.Context, q string) ([]user.UserResponse, error)
	GetByIDFn        func(ctx context.Context, id string) (user.UserResponse, error)
	CreateFn         func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error)
	UpdateRoleFn     func(ctx context.Context, actor domain.Actor, id, role string) error
	ToggleStatusFn   func(ctx context.Context, actor domain.Actor, id string, isActive bool) error
	ChangePasswordFn func(ctx context.Context, actor domain.Actor, current, next string) error
	ResetPasswordFn  func(ctx context.Context, id, next string) error
}

func (f *fakeUserService) GetAll(ctx context.Context, q string) ([]user.UserResponse, error) {
	return f.GetAllFn(ctx, q)
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	return f.GetByIDFn(ctx, id)
}

func (f *fakeUserService) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	return f.CreateFn(ctx, req)
}

func (f *fakeUserService) UpdateRole(ctx context.Context, actor domain.Actor, id, role string) error {
	return f.UpdateRoleFn(ctx, actor, id, role)
}

func (f *fakeUserService) ToggleStatus(ctx context.Context, actor domain.Actor, id string, isActive bool) error {
	return f.ToggleStatusFn(ctx, actor, id, isActive)
}

func (f *fakeUserService) ChangePassword(ctx context.Context, actor domain.Actor, current, next string) error {
	return f.ChangePasswordFn(ctx, actor, current, next)
}

func (f *fakeUserService) ResetPassword(ctx context.Context, id, next string) error {
	return f.ResetPasswordFn(ctx, id, next)
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  json.RawMessage `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func newRouter(h *user.Handler, actor *domain.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if actor != nil {
		r.Use(func(c *gin.Context) {
			request.SetActor(c, *actor)
			c.Next()
		})
	}
	r.GET("/users", h.GetAll)
	r.GET("/users/:id", h.GetByID)
	r.POST("/users", h.Create)
	r.PATCH("/users/:id/status", h.ToggleStatus)
	r.PUT("/me/password", h.ChangePassword)
	return r
}

func TestUserHandler_GetAll(t *testing.T) {
	svc := &fakeUserService{
		GetAllFn: func(ctx context.Context, q string) ([]user.UserResponse, error) {
			assert.Equal(t, "ann", q)
			return []user.UserResponse{{Email: "ann1@worksphere.io"}, {Email: "ann2@worksphere.io"}, {Email: "ann3@worksphere.io"}}, nil
		},
	}
	r := newRouter(user.NewHandler(svc), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users?q=ann&page=2&page_size=2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	var items []user.UserResponse
	assert.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 1)
	assert.Equal(t, "ann3@worksphere.io", items[0].Email)
}

func TestUserHandler_GetByID_NotFound(t *testing.T) {
	svc := &fakeUserService{
		GetByIDFn: func(ctx context.Context, id string) (user.UserResponse, error) {
			return user.UserResponse{}, usererrors.ErrUserNotFound
		},
	}
	r := newRouter(user.NewHandler(svc), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Ok)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestUserHandler_Create(t *testing.T) {
	svc := &fakeUserService{
		CreateFn: func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
			return user.UserResponse{ID: uuid.NewString(), Email: req.Email, Role: req.Role}, nil
		},
	}
	r := newRouter(user.NewHandler(svc), nil)

	t.Run("created", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"Ann","email":"ann@worksphere.io","password":"secret123","role":"HR"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("negative invalid role", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"Ann","email":"ann@worksphere.io","password":"secret123","role":"ROOT"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_INPUT", decodeEnvelope(t, w).Error.Code)
	})
}

func TestUserHandler_ToggleStatus(t *testing.T) {
	actor := domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
	target := uuid.NewString()
	svc := &fakeUserService{
		ToggleStatusFn: func(ctx context.Context, a domain.Actor, id string, isActive bool) error {
			assert.Equal(t, actor.UserID, a.UserID)
			assert.Equal(t, target, id)
			assert.False(t, isActive)
			return nil
		},
	}
	r := newRouter(user.NewHandler(svc), &actor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/users/"+target+"/status", strings.NewReader(`{"is_active":false}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserHandler_ChangePassword_Unauthenticated(t *testing.T) {
	r := newRouter(user.NewHandler(&fakeUserService{}), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/me/password", strings.NewReader(`{"current_password":"a","new_password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
