package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/notification"
	notificationerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/notification/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/dbtest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRepository_UserIDForEmployee(t *testing.T) {
	t.Run("linked user", func(t *testing.T) {
		gdb, _, mock := dbtest.NewGormMock(t)
		repo := notification.NewRepository(gdb)
		userID := uuid.New()
		employeeID := uuid.New()

		mock.ExpectQuery(`SELECT "id" FROM "users" WHERE employee_id = \$1 AND is_active = \$2 AND deleted_at IS NULL`).
			WithArgs(employeeID, true, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID.String()))

		got, ok, err := repo.UserIDForEmployee(context.Background(), employeeID)

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, userID, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no user", func(t *testing.T) {
		gdb, _, mock := dbtest.NewGormMock(t)
		repo := notification.NewRepository(gdb)

		mock.ExpectQuery(`SELECT "id" FROM "users" WHERE employee_id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, ok, err := repo.UserIDForEmployee(context.Background(), uuid.New())

		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRepository_Insert(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"new row", 1, true},
		{"duplicate dedup key", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gdb, _, mock := dbtest.NewGormMock(t)
			repo := notification.NewRepository(gdb)

			mock.ExpectExec(`INSERT INTO "notifications" .* ON CONFLICT \("dedup_key"\) DO NOTHING`).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			created, err := repo.Insert(context.Background(), &notification.Notification{
				ID:       uuid.New(),
				UserID:   uuid.New(),
				Kind:     "leave.decided",
				Title:    "Leave approved",
				Body:     "ok",
				DedupKey: "leave.decided:1",
			})

			assert.NoError(t, err)
			assert.Equal(t, tt.want, created)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_MarkRead(t *testing.T) {
	t.Run("updates own row", func(t *testing.T) {
		gdb, _, mock := dbtest.NewGormMock(t)
		repo := notification.NewRepository(gdb)

		mock.ExpectExec(`UPDATE "notifications" SET "read_at"=COALESCE\(read_at, \$1\) WHERE id = \$2 AND user_id = \$3`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkRead(context.Background(), uuid.New(), uuid.New(), time.Now())

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("foreign or missing row", func(t *testing.T) {
		gdb, _, mock := dbtest.NewGormMock(t)
		repo := notification.NewRepository(gdb)

		mock.ExpectExec(`UPDATE "notifications" SET "read_at"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkRead(context.Background(), uuid.New(), uuid.New(), time.Now())

		assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
	})
}

func TestRepository_MarkAllRead(t *testing.T) {
	gdb, _, mock := dbtest.NewGormMock(t)
	repo := notification.NewRepository(gdb)

	mock.ExpectExec(`UPDATE "notifications" SET "read_at"=\$1 WHERE user_id = \$2 AND read_at IS NULL`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.MarkAllRead(context.Background(), uuid.New(), time.Now())

	assert.NoError(t, err)
	assert.EqualValues(t, 3, n)
}
