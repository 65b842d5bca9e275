package user

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/contextutil"
	usererrors "github.com/ismailgraphix/WorkSphere-sub000/internal/user/errors"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, q string) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	UpdateRole(ctx context.Context, actor domain.Actor, id, role string) error
	ToggleStatus(ctx context.Context, actor domain.Actor, id string, isActive bool) error
	ChangePassword(ctx context.Context, actor domain.Actor, currentPassword, newPassword string) error
	ResetPassword(ctx context.Context, id, newPassword string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context, q string) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx, strings.TrimSpace(q))
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	var employeeID *uuid.UUID
	if req.EmployeeID != nil && *req.EmployeeID != "" {
		parsed, err := uuid.Parse(*req.EmployeeID)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidEmployeeID
		}
		employeeID = &parsed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		EmployeeID: employeeID,
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Password:   string(hashed),
		Role:       req.Role,
		IsActive:   true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		l.Warn("failed to create user", zap.String("email", u.Email), zap.Error(err))
		return UserResponse{}, err
	}

	l.Info("user created", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return mapToResponse(*u), nil
}

func (s *service) UpdateRole(ctx context.Context, actor domain.Actor, id, role string) error {
	r := domain.Role(role)
	if !r.Valid() {
		return usererrors.ErrInvalidRole
	}

	u, err := s.loadOther(ctx, actor, id)
	if err != nil {
		return err
	}
	u.Role = string(r)
	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}

	contextutil.GetLogger(ctx, s.logger).Info("user role updated",
		zap.String("user_id", id),
		zap.String("role", role),
	)
	return nil
}

func (s *service) ToggleStatus(ctx context.Context, actor domain.Actor, id string, isActive bool) error {
	u, err := s.loadOther(ctx, actor, id)
	if err != nil {
		return err
	}
	u.IsActive = isActive
	return s.repo.Update(ctx, u)
}

func (s *service) ChangePassword(ctx context.Context, actor domain.Actor, currentPassword, newPassword string) error {
	u, err := s.repo.FindByID(ctx, actor.UserID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(currentPassword)); err != nil {
		return usererrors.ErrWrongPassword
	}

	return s.setPassword(ctx, u, newPassword)
}

func (s *service) ResetPassword(ctx context.Context, id, newPassword string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	return s.setPassword(ctx, u, newPassword)
}

// loadOther fetches a user that is not the caller.
func (s *service) loadOther(ctx context.Context, actor domain.Actor, id string) (*User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	if userID == actor.UserID {
		return nil, usererrors.ErrSelfModification
	}
	return s.repo.FindByID(ctx, userID)
}

func (s *service) setPassword(ctx context.Context, u *User, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return s.repo.Update(ctx, u)
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if u.EmployeeID != nil {
		id := u.EmployeeID.String()
		resp.EmployeeID = &id
	}
	if u.Employee != nil {
		resp.EmployeeNumber = u.Employee.EmployeeNumber
		resp.FullName = u.Employee.FullName
	}
	if u.LastLoginAt != nil {
		ts := u.LastLoginAt.Format(time.RFC3339)
		resp.LastLoginAt = &ts
	}
	return resp
}
