package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
	employeeerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/employee/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/events"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/messaging/kafka"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/cache"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/contextutil"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/counter"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/response"
)

// EmployeeOptionsKey prefixes the versioned cache of the picker options.
const (
	EmployeeOptionsKey = "employees:options"
	optionsTTL         = time.Hour
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, actor domain.Actor, query ListEmployeesQuery) ([]EmployeeResponse, int64, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	IDCard(ctx context.Context, actor domain.Actor, id string) (IDCard, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	cache   *cache.Versioned
	sf      *singleflight.Group
	now     func() time.Time
	logger  *zap.Logger
}

// NewService wires the employee service. outbox and rdb are optional.
func NewService(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	s := &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outbox,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		now:     time.Now,
		logger:  l,
	}
	if rdb != nil {
		s.cache = cache.NewVersioned(rdb, EmployeeOptionsKey)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	rid := contextutil.GetRequestID(ctx)
	log.Debug("create employee requested",
		zap.String("department_id", req.DepartmentID),
		zap.String("email", req.Email),
	)

	hireDate, err := parseDate(req.HireDate)
	if err != nil {
		log.Warn("create employee invalid hire_date", zap.String("hire_date", req.HireDate))
		return EmployeeResponse{}, err
	}
	birthDate, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		return EmployeeResponse{}, err
	}
	departmentID, err := parseDepartmentID(req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := s.ensureDepartment(ctx, qtx, departmentID); err != nil {
		return EmployeeResponse{}, err
	}

	number := strings.TrimSpace(req.EmployeeNumber)
	if number == "" {
		next, err := s.counter.WithTx(tx).GetNextValue(ctx, counter.TypeEmployeeNumber)
		if err != nil {
			log.Error("create employee generate number failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		number = fmt.Sprintf("EMP-%06d", next)
	}

	status := req.EmploymentStatus
	if status == "" {
		status = StatusActive
	}

	empl := &Employee{
		ID:               uuid.New(),
		EmployeeNumber:   number,
		FullName:         strings.TrimSpace(req.FullName),
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:            req.Phone,
		Address:          req.Address,
		DepartmentID:     departmentID,
		JobTitle:         req.JobTitle,
		HireDate:         hireDate,
		DateOfBirth:      birthDate,
		EmploymentStatus: status,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		log.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:      events.EmployeeCreatedType,
			EmployeeID:     empl.ID.String(),
			EmployeeNumber: empl.EmployeeNumber,
			DepartmentID:   uuidToString(empl.DepartmentID),
			HireDate:       empl.HireDate.Format(dateLayout),
			OccurredAt:     s.now().UTC(),
		}
		msg, err := kafka.NewOutboxEvent(rid, "employee", empl.ID.String(), event.EventType, events.EmployeeCreatedTopic, event)
		if err != nil {
			return EmployeeResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, msg); err != nil {
			log.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)

	log.Info("create employee success",
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Actor, query ListEmployeesQuery) ([]EmployeeResponse, int64, error) {
	filter := ListFilter{
		Q:        query.Q,
		Status:   query.Status,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	filter.Page, filter.PageSize = response.NormalizePage(filter.Page, filter.PageSize)
	if query.DepartmentID != "" {
		id, err := uuid.Parse(query.DepartmentID)
		if err != nil {
			return nil, 0, employeeerrors.ErrInvalidDepartmentID
		}
		filter.DepartmentID = &id
	}
	if !actor.IsPrivileged() {
		if actor.EmployeeID == nil {
			return []EmployeeResponse{}, 0, nil
		}
		filter.EmployeeID = actor.EmployeeID
	}

	empls, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get all employees failed", zap.Error(err))
		return nil, 0, err
	}
	return mapToListResponse(empls), total, nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	var key string
	if s.cache != nil {
		k, err := s.cache.Key(ctx)
		if err != nil {
			contextutil.GetLogger(ctx, s.logger).Warn("resolve employee options key failed", zap.Error(err))
		} else {
			key = k
			if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
				var resp []EmployeeOption
				if json.Unmarshal([]byte(cached), &resp) == nil {
					return resp, nil
				}
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsKey+"|"+key, func() (any, error) {
		empls, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]EmployeeOption, len(empls))
		for i, e := range empls {
			resp[i] = EmployeeOption{
				ID:             e.ID.String(),
				EmployeeNumber: e.EmployeeNumber,
				FullName:       e.FullName,
			}
		}

		if key != "" {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, key, jsonData, optionsTTL).Err(); err != nil {
					contextutil.GetLogger(ctx, s.logger).Warn("cache employee options failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (EmployeeResponse, error) {
	empl, err := s.findAccessible(ctx, actor, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	emplID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	hireDate, err := parseDate(req.HireDate)
	if err != nil {
		return EmployeeResponse{}, err
	}
	birthDate, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		return EmployeeResponse{}, err
	}
	departmentID, err := parseDepartmentID(req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, emplID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if err := s.ensureDepartment(ctx, qtx, departmentID); err != nil {
		return EmployeeResponse{}, err
	}

	empl.FullName = strings.TrimSpace(req.FullName)
	empl.Email = strings.ToLower(strings.TrimSpace(req.Email))
	empl.Phone = req.Phone
	empl.Address = req.Address
	empl.DepartmentID = departmentID
	empl.JobTitle = req.JobTitle
	empl.HireDate = hireDate
	empl.DateOfBirth = birthDate
	empl.EmploymentStatus = req.EmploymentStatus
	empl.Department = nil

	if err := qtx.Update(ctx, empl); err != nil {
		log.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)

	log.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	emplID, err := uuid.Parse(id)
	if err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, emplID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx)

	log.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) findAccessible(ctx context.Context, actor domain.Actor, id string) (*Employee, error) {
	emplID, err := uuid.Parse(id)
	if err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}
	if !actor.CanAccessEmployee(emplID) {
		return nil, employeeerrors.ErrForbidden
	}
	return s.repo.FindByID(ctx, emplID)
}

func (s *service) ensureDepartment(ctx context.Context, repo Repository, departmentID *uuid.UUID) error {
	if departmentID == nil {
		return nil
	}
	ok, err := repo.DepartmentExists(ctx, *departmentID)
	if err != nil {
		return err
	}
	if !ok {
		return employeeerrors.ErrDepartmentNotFound
	}
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to invalidate employee options cache",
			zap.String("key", EmployeeOptionsKey),
			zap.Error(err),
		)
	}
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, employeeerrors.ErrInvalidDate
	}
	return t, nil
}

func parseOptionalDate(v string) (*time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	t, err := parseDate(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseDepartmentID(v string) (*uuid.UUID, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, employeeerrors.ErrInvalidDepartmentID
	}
	return &id, nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               empl.ID.String(),
		EmployeeNumber:   empl.EmployeeNumber,
		FullName:         empl.FullName,
		Email:            empl.Email,
		Phone:            empl.Phone,
		Address:          empl.Address,
		DepartmentID:     uuidToString(empl.DepartmentID),
		JobTitle:         empl.JobTitle,
		HireDate:         empl.HireDate.Format(dateLayout),
		EmploymentStatus: empl.EmploymentStatus,
	}
	if empl.DateOfBirth != nil {
		resp.DateOfBirth = empl.DateOfBirth.Format(dateLayout)
	}
	if empl.Department != nil {
		resp.Department = &EmployeeDepartmentResponse{
			ID:   empl.Department.ID.String(),
			Name: empl.Department.Name,
		}
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}

func uuidToString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}
