package leave_test

import (
	"context"
	"testing"
	"time"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/leave"
	leaveerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/leave/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/dbtest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_FindApprovedInYear(t *testing.T) {
	gdb, _, mock := dbtest.NewGormMock(t)
	repo := leave.NewRepository(gdb)
	employeeID := uuid.New()

	mock.ExpectQuery(`SELECT "start_date","end_date" FROM "leaves" WHERE .*employee_id = \$1 AND status = \$2.* AND .*start_date >= \$3 AND start_date < \$4`).
		WithArgs(employeeID, leave.StatusApproved,
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)).
		WillReturnRows(sqlmock.NewRows([]string{"start_date", "end_date"}).
			AddRow(date("2024-03-04"), date("2024-03-08")).
			AddRow(date("2024-05-13"), date("2024-05-14")))

	ranges, err := repo.FindApprovedInYear(context.Background(), employeeID, 2024)

	require.NoError(t, err)
	assert.Len(t, ranges, 2)
	assert.Equal(t, 7, leave.DaysTaken(ranges))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	gdb, _, mock := dbtest.NewGormMock(t)
	repo := leave.NewRepository(gdb)

	mock.ExpectQuery(`SELECT \* FROM "leaves" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
}

func TestRepository_UpdateStatus(t *testing.T) {
	approver := uuid.New()
	now := time.Now()
	l := &leave.Leave{ID: uuid.New(), Status: leave.StatusApproved, ApprovedBy: &approver, ApprovedAt: &now}

	t.Run("pending row updated", func(t *testing.T) {
		gdb, _, mock := dbtest.NewGormMock(t)
		repo := leave.NewRepository(gdb)

		mock.ExpectExec(`UPDATE "leaves" SET .* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(context.Background(), l))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already decided", func(t *testing.T) {
		gdb, _, mock := dbtest.NewGormMock(t)
		repo := leave.NewRepository(gdb)

		mock.ExpectExec(`UPDATE "leaves" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), l)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
	})
}

func TestRepository_LockEmployee(t *testing.T) {
	t.Run("locks row", func(t *testing.T) {
		gdb, _, mock := dbtest.NewGormMock(t)
		repo := leave.NewRepository(gdb)
		employeeID := uuid.New()

		mock.ExpectQuery(`SELECT "id" FROM "employees" WHERE id = \$1 AND deleted_at IS NULL .*FOR UPDATE`).
			WithArgs(employeeID, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(employeeID.String()))

		assert.NoError(t, repo.LockEmployee(context.Background(), employeeID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing employee", func(t *testing.T) {
		gdb, _, mock := dbtest.NewGormMock(t)
		repo := leave.NewRepository(gdb)
		employeeID := uuid.New()

		mock.ExpectQuery(`SELECT "id" FROM "employees" WHERE id = \$1 AND deleted_at IS NULL .*FOR UPDATE`).
			WithArgs(employeeID, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		err := repo.LockEmployee(context.Background(), employeeID)

		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_DepartmentExists(t *testing.T) {
	gdb, _, mock := dbtest.NewGormMock(t)
	repo := leave.NewRepository(gdb)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "departments"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.DepartmentExists(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.True(t, ok)
}
