package department

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	departmenterrors "github.com/ismailgraphix/WorkSphere-sub000/internal/department/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/cache"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/contextutil"
)

// DepartmentAllKey prefixes the versioned cache of the unfiltered list.
const (
	DepartmentAllKey = "departments:all"
	cacheTTL         = 30 * time.Minute
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, q string) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	cache  *cache.Versioned
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewService builds the department service. rdb may be nil to disable the
// list cache.
func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	s := &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
	if rdb != nil {
		s.cache = cache.NewVersioned(rdb, DepartmentAllKey)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept := &Department{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}

	if err := qtx.Create(ctx, dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidate(ctx)
	return mapToResponse(*dept), nil
}

// GetAll serves the unfiltered list from redis when it can. Searches always
// go to the database.
func (s *service) GetAll(ctx context.Context, q string) ([]DepartmentResponse, error) {
	q = strings.TrimSpace(q)
	var key string
	if q == "" && s.cache != nil {
		k, err := s.cache.Key(ctx)
		if err != nil {
			contextutil.GetLogger(ctx, s.logger).Warn("resolve department cache key failed", zap.Error(err))
		}
		key = k
	}
	if key == "" {
		depts, err := s.repo.FindAll(ctx, q)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(depts), nil
	}

	if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
		var resp []DepartmentResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return resp, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		depts, err := s.repo.FindAll(ctx, "")
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(depts)
		if jsonData, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, key, jsonData, cacheTTL).Err(); err != nil {
				contextutil.GetLogger(ctx, s.logger).Warn("cache department list failed", zap.Error(err))
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]DepartmentResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	deptID, err := uuid.Parse(id)
	if err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	dept, err := s.repo.FindByID(ctx, deptID)
	if err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	deptID, err := uuid.Parse(id)
	if err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, deptID)
	if err != nil {
		return DepartmentResponse{}, err
	}

	dept.Name = strings.TrimSpace(req.Name)
	dept.Description = strings.TrimSpace(req.Description)

	if err := qtx.Update(ctx, dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidate(ctx)
	return mapToResponse(*dept), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	deptID, err := uuid.Parse(id)
	if err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	count, err := qtx.CountEmployees(ctx, deptID)
	if err != nil {
		return err
	}
	if count > 0 {
		return departmenterrors.ErrDepartmentInUse
	}

	if err := qtx.Delete(ctx, deptID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("invalidate department cache failed",
			zap.String("key", DepartmentAllKey),
			zap.Error(err),
		)
	}
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          dept.ID.String(),
		Name:        dept.Name,
		Description: dept.Description,
		CreatedAt:   dept.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   dept.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
