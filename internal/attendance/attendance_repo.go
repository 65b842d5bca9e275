package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	attendanceerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/attendance/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/scope"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/connection"
)

type ListFilter struct {
	EmployeeID *uuid.UUID
	From       *time.Time
	To         *time.Time
	Page       int
	// PageSize 0 returns every matching row.
	PageSize int
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	// FindByEmployeeAndDate returns nil, nil when there is no row.
	FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*Attendance, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Attendance, int64, error)
	Update(ctx context.Context, a *Attendance) error
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	err := r.session(ctx).Omit("Employee").Create(a).Error
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return attendanceerrors.ErrAlreadyClockedIn
	}
	return err
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.session(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format(dateLayout)).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Attendance, int64, error) {
	q := r.session(ctx).Model(&Attendance{})
	if filter.EmployeeID != nil {
		q = q.Scopes(scope.Employee(filter.EmployeeID.String()))
	}
	q = q.Scopes(scope.DateRange("attendance_date", filter.From, filter.To))

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		q = q.Scopes(scope.Paginate(filter.Page, filter.PageSize))
	}

	var rows []Attendance
	err := q.Preload("Employee").
		Order("attendance_date DESC, clock_in DESC").
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update only touches rows that are still open so a concurrent clock-out
// cannot be overwritten.
func (r *repository) Update(ctx context.Context, a *Attendance) error {
	res := r.session(ctx).
		Model(&Attendance{}).
		Where("id = ? AND clock_out IS NULL", a.ID).
		Updates(map[string]any{
			"clock_out": a.ClockOut,
			"latitude":  a.Latitude,
			"longitude": a.Longitude,
			"notes":     a.Notes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return attendanceerrors.ErrAlreadyClockedOut
	}
	return nil
}
