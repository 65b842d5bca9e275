package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	autherrors "github.com/ismailgraphix/WorkSphere-sub000/internal/auth/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/contextutil"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/user"
	usererrors "github.com/ismailgraphix/WorkSphere-sub000/internal/user/errors"
)

// UserFinder is the part of the user store auth needs. user.Repository
// satisfies it.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

type Tokens interface {
	Issue(actor domain.Actor) (access, refresh string, err error)
	ParseRefresh(token string) (domain.Actor, error)
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error)
	GetMe(ctx context.Context, userID uuid.UUID) (AuthResponse, error)
}

type service struct {
	users  UserFinder
	tokens Tokens
	logger *zap.Logger
}

func NewService(users UserFinder, tokens Tokens, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, tokens: tokens, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if !errors.Is(err, usererrors.ErrUserNotFound) {
			l.Error("login lookup failed", zap.Error(err))
			return TokenPair{}, AuthResponse{}, err
		}
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if !u.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserInactive
	}

	pair, err := s.issue(u)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}

	if err := s.users.TouchLastLogin(ctx, u.ID); err != nil {
		l.Warn("failed to record last login", zap.String("user_id", u.ID.String()), zap.Error(err))
	}

	l.Info("user logged in", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return pair, toAuthResponse(u), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error) {
	claimed, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}

	// Role and employee link are re-read so changes apply on the next refresh.
	u, err := s.users.FindByID(ctx, claimed.UserID)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserNotFound
	}
	if !u.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserInactive
	}

	pair, err := s.issue(u)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}
	return pair, toAuthResponse(u), nil
}

func (s *service) GetMe(ctx context.Context, userID uuid.UUID) (AuthResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrUserNotFound
	}
	return toAuthResponse(u), nil
}

func (s *service) issue(u *user.User) (TokenPair, error) {
	access, refresh, err := s.tokens.Issue(domain.Actor{
		UserID:     u.ID,
		EmployeeID: u.EmployeeID,
		Role:       domain.Role(u.Role),
	})
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func toAuthResponse(u *user.User) AuthResponse {
	resp := AuthResponse{
		ID:    u.ID.String(),
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
	if u.EmployeeID != nil {
		id := u.EmployeeID.String()
		resp.EmployeeID = &id
	}
	if u.Employee != nil {
		resp.EmployeeNumber = u.Employee.EmployeeNumber
		if u.Employee.FullName != "" {
			resp.Name = u.Employee.FullName
		}
	}
	return resp
}
