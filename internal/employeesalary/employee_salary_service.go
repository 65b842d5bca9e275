package employeesalary

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	employeesalaryerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/employeesalary/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/contextutil"
)

//go:generate mockgen -source=employee_salary_service.go -destination=mock/employee_salary_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeSalaryRequest) (EmployeeSalaryResponse, error)
	GetAll(ctx context.Context, employeeID string) ([]EmployeeSalaryResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeSalaryResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeSalaryRequest) (EmployeeSalaryResponse, error)
	Delete(ctx context.Context, id string) error
	EnsureDefault(ctx context.Context, employeeID uuid.UUID, effectiveDate string) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	defaultBase int64
	logger      *zap.Logger
}

// NewService builds the salary service. defaultBase is the amount written by
// EnsureDefault for newly hired employees.
func NewService(db *sql.DB, repo Repository, defaultBase int64, logger ...*zap.Logger) Service {
	l := zap.L().Named("employeesalary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeesalary.service")
	}
	return &service{db: db, repo: repo, defaultBase: defaultBase, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeSalaryRequest) (EmployeeSalaryResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidEmployeeID
	}
	effectiveDate, err := parseDate(req.EffectiveDate)
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}

	return s.insert(ctx, employeeID, req.BaseSalary, effectiveDate)
}

func (s *service) GetAll(ctx context.Context, employeeID string) ([]EmployeeSalaryResponse, error) {
	var filter *uuid.UUID
	if strings.TrimSpace(employeeID) != "" {
		id, err := uuid.Parse(employeeID)
		if err != nil {
			return nil, employeesalaryerrors.ErrInvalidEmployeeID
		}
		filter = &id
	}

	salaries, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(salaries), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeSalaryResponse, error) {
	salaryID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidSalaryID
	}

	salary, err := s.repo.FindByID(ctx, salaryID)
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}

	return mapToResponse(*salary), nil
}

// Update appends a new salary row for the same employee; the row identified by
// id stays as history.
func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeSalaryRequest) (EmployeeSalaryResponse, error) {
	salaryID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidSalaryID
	}
	effectiveDate, err := parseDate(req.EffectiveDate)
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}

	current, err := s.repo.FindByID(ctx, salaryID)
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}

	return s.insert(ctx, current.EmployeeID, req.BaseSalary, effectiveDate)
}

func (s *service) Delete(ctx context.Context, id string) error {
	salaryID, err := uuid.Parse(id)
	if err != nil {
		return employeesalaryerrors.ErrInvalidSalaryID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, salaryID); err != nil {
		return err
	}

	return tx.Commit()
}

// EnsureDefault creates the first salary row for employeeID unless one
// already exists. Redelivered employee.created events are no-ops.
func (s *service) EnsureDefault(ctx context.Context, employeeID uuid.UUID, effectiveDate string) error {
	log := contextutil.GetLogger(ctx, s.logger).With(zap.String("employee_id", employeeID.String()))

	effective, err := parseDate(effectiveDate)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.HasSalary(ctx, employeeID)
	if err != nil {
		return err
	}
	if exists {
		log.Debug("default salary already present")
		return nil
	}

	err = qtx.Create(ctx, &EmployeeSalary{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		BaseSalary:    s.defaultBase,
		EffectiveDate: effective,
	})
	if errors.Is(err, employeesalaryerrors.ErrSalaryEffectiveDateAlreadyExists) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("default salary created", zap.Int64("base_salary", s.defaultBase))
	return nil
}

func (s *service) insert(ctx context.Context, employeeID uuid.UUID, base int64, effective time.Time) (EmployeeSalaryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	salary := &EmployeeSalary{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		BaseSalary:    base,
		EffectiveDate: effective,
	}
	if err := qtx.Create(ctx, salary); err != nil {
		return EmployeeSalaryResponse{}, err
	}

	created, err := qtx.FindByID(ctx, salary.ID)
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeSalaryResponse{}, err
	}

	return mapToResponse(*created), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, employeesalaryerrors.ErrInvalidEffectiveDate
	}
	return t, nil
}

func mapToResponse(salary EmployeeSalary) EmployeeSalaryResponse {
	return EmployeeSalaryResponse{
		ID:            salary.ID.String(),
		EmployeeID:    salary.EmployeeID.String(),
		EmployeeName:  salary.EmployeeName,
		BaseSalary:    salary.BaseSalary,
		EffectiveDate: salary.EffectiveDate.Format(dateLayout),
	}
}

func mapToListResponse(salaries []EmployeeSalary) []EmployeeSalaryResponse {
	res := make([]EmployeeSalaryResponse, len(salaries))
	for i, salary := range salaries {
		res[i] = mapToResponse(salary)
	}
	return res
}
