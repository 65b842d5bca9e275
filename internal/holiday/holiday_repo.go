package holiday

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	holidayerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/holiday/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/scope"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/connection"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, h *Holiday) error
	// FindForYear returns holidays dated in year plus every recurring holiday.
	FindForYear(ctx context.Context, year int) ([]Holiday, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Holiday, error)
	Update(ctx context.Context, h *Holiday) error
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
	return &repository{db: r.db, tx: tx}
}

func (r *repository) session(ctx context.Context) *gorm.DB {
	return connection.Session(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return mapRepositoryError(r.session(ctx).Create(h).Error)
}

func (r *repository) FindForYear(ctx context.Context, year int) ([]Holiday, error) {
	from, to := scope.YearBounds(year)
	var rows []Holiday
	err := r.session(ctx).
		Where("(date >= ? AND date < ?) OR recurring = ?", from, to, true).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Holiday, error) {
	var h Holiday
	if err := r.session(ctx).First(&h, "id = ?", id).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return &h, nil
}

func (r *repository) Update(ctx context.Context, h *Holiday) error {
	return mapRepositoryError(r.session(ctx).Save(h).Error)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.session(ctx).Delete(&Holiday{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return holidayerrors.ErrHolidayNotFound
	}
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return holidayerrors.ErrHolidayNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return holidayerrors.ErrHolidayAlreadyExists
	}
	return err
}
