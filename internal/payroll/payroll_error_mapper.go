package payroll

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	payrollerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/payroll/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return payrollerrors.ErrPayrollOverlap
		case "23503":
			return payrollerrors.ErrEmployeeNotFound
		}
	}

	return err
}
