package rbac

import (
	"context"
	"net/http"
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/apperror"
)

var ErrInvalidRole = apperror.New(apperror.CodeInvalidInput, "invalid role", http.StatusBadRequest)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadPolicy(ctx context.Context) error
	Enforce(req EnforceRequest) (bool, error)
	ListPermissions(ctx context.Context) ([]domain.PermissionResponse, error)
	UpdateRolePermissions(ctx context.Context, role string, perms []domain.Permission) ([]domain.PermissionResponse, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

// LoadPolicy replaces the in-memory policy with the stored role permissions.
func (s *service) LoadPolicy(ctx context.Context) error {
	rolePerms, err := s.repo.ListRolePermissions(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyUnlocked(rolePerms)
}

func (s *service) applyUnlocked(rolePerms []RolePermission) error {
	s.enforcer.ClearPolicy()

	for _, pair := range RoleInheritance {
		if _, err := s.enforcer.AddGroupingPolicy(string(pair[0]), string(pair[1])); err != nil {
			return err
		}
	}
	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.Role, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.logger.Info("rbac policy loaded", zap.Int("role_permissions", len(rolePerms)))
	return nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) ListPermissions(ctx context.Context) ([]domain.PermissionResponse, error) {
	rolePerms, err := s.repo.ListRolePermissions(ctx)
	if err != nil {
		return nil, err
	}
	return mapToPermissionResponses(rolePerms), nil
}

func (s *service) UpdateRolePermissions(ctx context.Context, role string, perms []domain.Permission) ([]domain.PermissionResponse, error) {
	if !domain.Role(role).Valid() {
		return nil, ErrInvalidRole
	}

	rows := make([]RolePermission, 0, len(perms))
	seen := make(map[domain.Permission]struct{}, len(perms))
	for _, p := range perms {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		rows = append(rows, RolePermission{Role: role, Resource: p.Resource, Action: p.Action})
	}

	if err := s.repo.ReplaceRolePermissions(ctx, role, rows); err != nil {
		s.logger.Error("replace role permissions failed", zap.String("role", role), zap.Error(err))
		return nil, err
	}
	if err := s.LoadPolicy(ctx); err != nil {
		return nil, err
	}
	s.logger.Info("role permissions updated", zap.String("role", role), zap.Int("count", len(rows)))
	return mapToPermissionResponses(rows), nil
}

func mapToPermissionResponses(rows []RolePermission) []domain.PermissionResponse {
	resp := make([]domain.PermissionResponse, len(rows))
	for i, rp := range rows {
		resp[i] = domain.PermissionResponse{Role: rp.Role, Resource: rp.Resource, Action: rp.Action}
	}
	return resp
}
