package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	leaveerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/leave/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/scope"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/connection"
)

type ListFilter struct {
	EmployeeID *uuid.UUID
	Status     string
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id uuid.UUID) (*Leave, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Leave, int64, error)
	FindApprovedInYear(ctx context.Context, employeeID uuid.UUID, year int) ([]DateRange, error)
	UpdateStatus(ctx context.Context, l *Leave) error
	LockEmployee(ctx context.Context, employeeID uuid.UUID) error
	DepartmentExists(ctx context.Context, departmentID uuid.UUID) (bool, error)
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

// Create always stores the leave as PENDING.
func (r *repository) Create(ctx context.Context, l *Leave) error {
	l.Status = StatusPending
	return r.session(ctx).Omit("Employee").Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Leave, error) {
	var l Leave
	err := r.session(ctx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, leaveerrors.ErrLeaveNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Leave, int64, error) {
	q := r.session(ctx).Model(&Leave{})
	if filter.EmployeeID != nil {
		q = q.Scopes(scope.Employee(filter.EmployeeID.String()))
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	q = q.Scopes(scope.DateRange("start_date", filter.From, filter.To))

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		q = q.Scopes(scope.Paginate(filter.Page, filter.PageSize))
	}

	var leaves []Leave
	err := q.Preload("Employee").
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, total, err
}

func (r *repository) FindApprovedInYear(ctx context.Context, employeeID uuid.UUID, year int) ([]DateRange, error) {
	var ranges []DateRange
	err := r.session(ctx).
		Model(&Leave{}).
		Select("start_date", "end_date").
		Where("employee_id = ? AND status = ?", employeeID, StatusApproved).
		Scopes(scope.YearRange("start_date", year)).
		Find(&ranges).Error
	return ranges, err
}

func (r *repository) UpdateStatus(ctx context.Context, l *Leave) error {
	res := r.session(ctx).
		Model(&Leave{}).
		Where("id = ? AND status = ?", l.ID, StatusPending).
		Updates(map[string]any{
			"status":           l.Status,
			"approved_by":      l.ApprovedBy,
			"approved_at":      l.ApprovedAt,
			"rejection_reason": l.RejectionReason,
			"updated_at":       time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return leaveerrors.ErrInvalidStatusTransition
	}
	return nil
}

// LockEmployee takes a row lock on the employee for the rest of the
// transaction. Leave writes for one employee are serialized through it.
func (r *repository) LockEmployee(ctx context.Context, employeeID uuid.UUID) error {
	var row struct{ ID uuid.UUID }
	err := r.session(ctx).
		Table("employees").
		Select("id").
		Where("id = ? AND deleted_at IS NULL", employeeID).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrEmployeeNotFound
	}
	return err
}

func (r *repository) DepartmentExists(ctx context.Context, departmentID uuid.UUID) (bool, error) {
	var count int64
	err := r.session(ctx).
		Table("departments").
		Where("id = ? AND deleted_at IS NULL", departmentID).
		Count(&count).Error
	return count > 0, err
}
