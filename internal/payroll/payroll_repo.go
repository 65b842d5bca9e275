package payroll

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	payrollerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/payroll/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/scope"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/connection"
)

type ListFilter struct {
	EmployeeID *uuid.UUID
	Status     string
	Page       int
	PageSize   int
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payroll) error
	FindAll(ctx context.Context, filter ListFilter) ([]Payroll, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Payroll, error)
	EmployeeExists(ctx context.Context, employeeID uuid.UUID) (bool, error)
	// LatestBaseSalary returns the salary effective on asOf, or false when the
	// employee has no salary row that early.
	LatestBaseSalary(ctx context.Context, employeeID uuid.UUID, asOf time.Time) (int64, bool, error)
	HasOverlappingPeriod(ctx context.Context, employeeID uuid.UUID, start, end time.Time) (bool, error)
	// UpdateStatus writes p's workflow fields only while the stored status is from.
	UpdateStatus(ctx context.Context, p *Payroll, from string) error
	DeleteDraft(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) session(ctx context.Context) *gorm.DB {
	return connection.Session(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, p *Payroll) error {
	return mapRepositoryError(r.session(ctx).Omit("Employee").Create(p).Error)
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Payroll, int64, error) {
	q := r.session(ctx).Model(&Payroll{})
	if filter.EmployeeID != nil {
		q = q.Scopes(scope.Employee(filter.EmployeeID.String()))
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payrolls []Payroll
	err := q.Preload("Employee").
		Scopes(scope.Paginate(filter.Page, filter.PageSize)).
		Order("period_start DESC").
		Find(&payrolls).Error
	return payrolls, total, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Payroll, error) {
	var p Payroll
	err := r.session(ctx).
		Preload("Employee").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &p, nil
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID uuid.UUID) (bool, error) {
	var count int64
	err := r.session(ctx).
		Table("employees").
		Where("id = ? AND deleted_at IS NULL", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) LatestBaseSalary(ctx context.Context, employeeID uuid.UUID, asOf time.Time) (int64, bool, error) {
	var row struct{ BaseSalary int64 }
	err := r.session(ctx).
		Table("employee_salaries").
		Select("base_salary").
		Where("employee_id = ? AND effective_date <= ?", employeeID, asOf).
		Order("effective_date DESC").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return row.BaseSalary, true, nil
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID uuid.UUID, start, end time.Time) (bool, error) {
	var count int64
	err := r.session(ctx).
		Model(&Payroll{}).
		Where("employee_id = ?", employeeID).
		Where("NOT (period_end < ? OR period_start > ?)", start, end).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdateStatus(ctx context.Context, p *Payroll, from string) error {
	res := r.session(ctx).
		Model(&Payroll{}).
		Where("id = ? AND status = ?", p.ID, from).
		Updates(map[string]any{
			"status":      p.Status,
			"approved_by": p.ApprovedBy,
			"approved_at": p.ApprovedAt,
			"paid_at":     p.PaidAt,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return payrollerrors.ErrInvalidStatusTransition
	}
	return nil
}

func (r *repository) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	res := r.session(ctx).
		Where("id = ? AND status = ?", id, StatusDraft).
		Delete(&Payroll{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return payrollerrors.ErrDeleteOnlyDraft
	}
	return nil
}
