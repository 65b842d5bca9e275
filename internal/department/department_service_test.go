package department_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/department"
	departmenterrors "github.com/ismailgraphix/WorkSphere-sub000/internal/department/errors"
	departmentMock "github.com/ismailgraphix/WorkSphere-sub000/internal/department/mock"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/cache"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var (
	deptGenKey = cache.GenerationKey(department.DepartmentAllKey)
	deptV0Key  = cache.VersionKey(department.DepartmentAllKey, 0)
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   department.Service
	repo      *departmentMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dbRedis, redisMock := redismock.NewClientMock()
	repo := departmentMock.NewMockRepository(ctrl)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   department.NewService(db, repo, dbRedis),
		repo:      repo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestDepartmentService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the database", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached, _ := json.Marshal([]department.DepartmentResponse{
			{ID: "d-1", Name: "Engineering"},
			{ID: "d-2", Name: "People"},
		})
		deps.redismock.ExpectGet(deptGenKey).RedisNil()
		deps.redismock.ExpectGet(deptV0Key).SetVal(string(cached))
		deps.repo.EXPECT().FindAll(gomock.Any(), gomock.Any()).Times(0)

		resp, err := deps.service.GetAll(ctx, "")

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Engineering", resp[0].Name)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		depts := []department.Department{{ID: uuid.New(), Name: "Finance"}}

		deps.redismock.ExpectGet(deptGenKey).RedisNil()
		deps.redismock.ExpectGet(deptV0Key).RedisNil()
		deps.repo.EXPECT().FindAll(gomock.Any(), "").Return(depts, nil).Times(1)

		want, _ := json.Marshal([]department.DepartmentResponse{{
			ID:        depts[0].ID.String(),
			Name:      "Finance",
			CreatedAt: time.Time{}.Format(time.RFC3339),
			UpdatedAt: time.Time{}.Format(time.RFC3339),
		}})
		deps.redismock.ExpectSet(deptV0Key, want, 30*time.Minute).SetVal("OK")

		resp, err := deps.service.GetAll(ctx, "")

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Finance", resp[0].Name)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("search bypasses cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAll(gomock.Any(), "eng").Return([]department.Department{{ID: uuid.New(), Name: "Engineering"}}, nil)

		resp, err := deps.service.GetAll(ctx, " eng ")

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(deptGenKey).RedisNil()
		deps.redismock.ExpectGet(deptV0Key).RedisNil()
		deps.repo.EXPECT().FindAll(gomock.Any(), "").Return(nil, errors.New("db connection error"))

		resp, err := deps.service.GetAll(ctx, "")

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, d *department.Department) error {
				assert.Equal(t, "Engineering", d.Name)
				assert.NotEqual(t, uuid.Nil, d.ID)
				return nil
			})
		deps.redismock.ExpectIncr(deptGenKey).SetVal(1)

		resp, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: " Engineering "})

		assert.NoError(t, err)
		assert.Equal(t, "Engineering", resp.Name)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("duplicate name", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(departmenterrors.ErrDepartmentAlreadyExists)

		_, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "Engineering"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestDepartmentService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(gomock.Any(), id).Return(&department.Department{ID: id, Name: "Old"}, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, d *department.Department) error {
				assert.Equal(t, "New", d.Name)
				return nil
			})
		deps.redismock.ExpectIncr(deptGenKey).SetVal(1)

		resp, err := deps.service.Update(ctx, id.String(), department.UpdateDepartmentRequest{Name: "New"})

		assert.NoError(t, err)
		assert.Equal(t, "New", resp.Name)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Update(ctx, "abc", department.UpdateDepartmentRequest{Name: "New"})

		assert.ErrorIs(t, err, departmenterrors.ErrInvalidDepartmentID)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, departmenterrors.ErrDepartmentNotFound)

		_, err := deps.service.Update(ctx, id.String(), department.UpdateDepartmentRequest{Name: "New"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().CountEmployees(gomock.Any(), id).Return(int64(0), nil)
		deps.repo.EXPECT().Delete(gomock.Any(), id).Return(nil)
		deps.redismock.ExpectIncr(deptGenKey).SetVal(1)

		err := deps.service.Delete(ctx, id.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("still in use", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().CountEmployees(gomock.Any(), id).Return(int64(3), nil)
		deps.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

		err := deps.service.Delete(ctx, id.String())

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentInUse)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
