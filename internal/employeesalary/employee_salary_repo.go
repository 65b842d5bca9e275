package employeesalary

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/connection"
)

//go:generate mockgen -source=employee_salary_repo.go -destination=mock/employee_salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, salary *EmployeeSalary) error
	FindAll(ctx context.Context, employeeID *uuid.UUID) ([]EmployeeSalary, error)
	FindByID(ctx context.Context, id uuid.UUID) (*EmployeeSalary, error)
	HasSalary(ctx context.Context, employeeID uuid.UUID) (bool, error)
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

func (r *repository) Create(ctx context.Context, salary *EmployeeSalary) error {
	return mapRepositoryError(r.session(ctx).Create(salary).Error)
}

func (r *repository) FindAll(ctx context.Context, employeeID *uuid.UUID) ([]EmployeeSalary, error) {
	var salaries []EmployeeSalary
	q := r.session(ctx).
		Table("employee_salaries").
		Select("employee_salaries.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = employee_salaries.employee_id AND employees.deleted_at IS NULL")
	if employeeID != nil {
		q = q.Where("employee_salaries.employee_id = ?", *employeeID)
	}
	err := q.Order("employees.full_name ASC").
		Order("employee_salaries.effective_date DESC").
		Order("employee_salaries.created_at DESC").
		Scan(&salaries).Error
	return salaries, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*EmployeeSalary, error) {
	var salary EmployeeSalary
	err := r.session(ctx).
		Table("employee_salaries").
		Select("employee_salaries.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = employee_salaries.employee_id").
		Where("employee_salaries.id = ?", id).
		First(&salary).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &salary, nil
}

func (r *repository) HasSalary(ctx context.Context, employeeID uuid.UUID) (bool, error) {
	var count int64
	err := r.session(ctx).
		Model(&EmployeeSalary{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.session(ctx).Delete(&EmployeeSalary{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return mapRepositoryError(gorm.ErrRecordNotFound)
	}
	return nil
}
