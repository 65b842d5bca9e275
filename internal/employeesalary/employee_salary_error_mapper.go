package employeesalary

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	employeesalaryerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/employeesalary/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeesalaryerrors.ErrSalaryNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == "uq_employee_salary_effective":
			return employeesalaryerrors.ErrSalaryEffectiveDateAlreadyExists
		case pgErr.Code == "23503":
			return employeesalaryerrors.ErrEmployeeNotFound
		}
	}

	return err
}
