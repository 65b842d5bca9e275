package employee

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/scope"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/connection"
)

type ListFilter struct {
	Q            string
	DepartmentID *uuid.UUID
	Status       string
	// EmployeeID narrows the list to a single record for non-privileged callers.
	EmployeeID *uuid.UUID
	Page       int
	PageSize   int
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	DepartmentExists(ctx context.Context, departmentID uuid.UUID) (bool, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) session(ctx context.Context) *gorm.DB {
	return connection.Session(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return mapRepositoryError(r.session(ctx).Omit("Department").Create(empl).Error)
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Employee, int64, error) {
	q := r.session(ctx).Model(&Employee{}).
		Scopes(scope.Search(filter.Q, "full_name", "email", "employee_number"))
	if filter.EmployeeID != nil {
		q = q.Where("id = ?", *filter.EmployeeID)
	}
	if filter.DepartmentID != nil {
		q = q.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.Status != "" {
		q = q.Where("employment_status = ?", filter.Status)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var empls []Employee
	err := q.Preload("Department").
		Scopes(scope.Paginate(filter.Page, filter.PageSize)).
		Order("employee_number ASC").
		Find(&empls).Error
	if err != nil {
		return nil, 0, err
	}
	return empls, total, nil
}

// FindOptions returns active employees with only the columns select inputs need.
func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.session(ctx).
		Select("id", "employee_number", "full_name").
		Where("employment_status <> ?", StatusTerminated).
		Order("full_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var empl Employee
	err := r.session(ctx).
		Preload("Department").
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &empl, nil
}

func (r *repository) DepartmentExists(ctx context.Context, departmentID uuid.UUID) (bool, error) {
	var count int64
	err := r.session(ctx).
		Table("departments").
		Where("id = ? AND deleted_at IS NULL", departmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return mapRepositoryError(r.session(ctx).Omit("Department").Save(empl).Error)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.session(ctx).Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return mapRepositoryError(gorm.ErrRecordNotFound)
	}
	return nil
}
