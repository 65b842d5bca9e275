package jobposting

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	jobpostingerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/jobposting/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/scope"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/connection"
)

type ListFilter struct {
	Q            string
	Status       string
	DepartmentID *uuid.UUID
	Page         int
	PageSize     int
}

//go:generate mockgen -source=job_posting_repo.go -destination=mock/job_posting_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, post *JobPosting) error
	FindAll(ctx context.Context, filter ListFilter) ([]JobPosting, int64, error)
	// FindOpen lists OPEN postings whose closing date is unset or not before today.
	FindOpen(ctx context.Context, today time.Time) ([]JobPosting, error)
	FindByID(ctx context.Context, id uuid.UUID) (*JobPosting, error)
	DepartmentExists(ctx context.Context, departmentID uuid.UUID) (bool, error)
	Update(ctx context.Context, post *JobPosting) error
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

func (r *repository) Create(ctx context.Context, post *JobPosting) error {
	return r.session(ctx).Omit("Department").Create(post).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]JobPosting, int64, error) {
	q := r.session(ctx).Model(&JobPosting{}).
		Scopes(scope.Search(filter.Q, "title", "location"))
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.DepartmentID != nil {
		q = q.Where("department_id = ?", *filter.DepartmentID)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []JobPosting
	err := q.Preload("Department").
		Scopes(scope.Paginate(filter.Page, filter.PageSize)).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, total, err
}

func (r *repository) FindOpen(ctx context.Context, today time.Time) ([]JobPosting, error) {
	var posts []JobPosting
	err := r.session(ctx).
		Preload("Department").
		Where("status = ?", StatusOpen).
		Where("closing_date IS NULL OR closing_date >= ?", today).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*JobPosting, error) {
	var post JobPosting
	err := r.session(ctx).
		Preload("Department").
		First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, jobpostingerrors.ErrJobPostingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *repository) DepartmentExists(ctx context.Context, departmentID uuid.UUID) (bool, error) {
	var count int64
	err := r.session(ctx).
		Table("departments").
		Where("id = ? AND deleted_at IS NULL", departmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, post *JobPosting) error {
	// The preloaded Department must not be written back.
	return r.session(ctx).Omit("Department").Save(post).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.session(ctx).Delete(&JobPosting{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return jobpostingerrors.ErrJobPostingNotFound
	}
	return nil
}
