package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendanceerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/attendance/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
)

type fakeRepo struct {
	rows      map[string]*Attendance
	lastQuery ListFilter
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[string]*Attendance{}}
}

func key(employeeID uuid.UUID, date time.Time) string {
	return employeeID.String() + "|" + date.Format(dateLayout)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error {
	f.rows[key(a.EmployeeID, a.AttendanceDate)] = a
	return nil
}

func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*Attendance, error) {
	row, ok := f.rows[key(employeeID, date)]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeRepo) FindAll(ctx context.Context, filter ListFilter) ([]Attendance, int64, error) {
	f.lastQuery = filter
	var out []Attendance
	for _, r := range f.rows {
		if filter.EmployeeID == nil || r.EmployeeID == *filter.EmployeeID {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error {
	f.rows[key(a.EmployeeID, a.AttendanceDate)] = a
	return nil
}

func newTestService(t *testing.T, repo Repository, now time.Time) (*service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewService(db, repo).(*service)
	svc.now = func() time.Time { return now }
	return svc, mock
}

func employeeActor() domain.Actor {
	id := uuid.New()
	return domain.Actor{UserID: uuid.New(), EmployeeID: &id, Role: domain.RoleEmployee}
}

func TestService_ClockInAndClockOut(t *testing.T) {
	ctx := context.Background()
	actor := employeeActor()
	repo := newFakeRepo()
	svc, mock := newTestService(t, repo, time.Date(2024, 3, 4, 8, 55, 0, 0, time.UTC))

	mock.ExpectBegin()
	mock.ExpectCommit()
	inResp, err := svc.ClockIn(ctx, actor, ClockInRequest{})
	require.NoError(t, err)
	assert.Equal(t, StatusPresent, inResp.Status)
	assert.Equal(t, SourceManual, inResp.Source)
	assert.Equal(t, "2024-03-04", inResp.AttendanceDate)

	svc.now = func() time.Time { return time.Date(2024, 3, 4, 17, 5, 0, 0, time.UTC) }
	mock.ExpectBegin()
	mock.ExpectCommit()
	outResp, err := svc.ClockOut(ctx, actor, ClockOutRequest{})
	require.NoError(t, err)
	require.NotNil(t, outResp.ClockOut)
	assert.Equal(t, "2024-03-04T17:05:00Z", *outResp.ClockOut)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ClockIn_Late(t *testing.T) {
	svc, mock := newTestService(t, newFakeRepo(), time.Date(2024, 3, 4, 9, 16, 0, 0, time.UTC))
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.ClockIn(context.Background(), employeeActor(), ClockInRequest{Source: "mobile"})

	require.NoError(t, err)
	assert.Equal(t, StatusLate, resp.Status)
	assert.Equal(t, "MOBILE", resp.Source)
}

func TestService_ClockIn_Duplicate(t *testing.T) {
	ctx := context.Background()
	actor := employeeActor()
	repo := newFakeRepo()
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	repo.rows[key(*actor.EmployeeID, now.Truncate(24*time.Hour))] = &Attendance{ID: uuid.New()}
	svc, mock := newTestService(t, repo, now)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.ClockIn(ctx, actor, ClockInRequest{})

	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ClockOut_Errors(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC)

	t.Run("without clock in", func(t *testing.T) {
		svc, mock := newTestService(t, newFakeRepo(), now)
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.ClockOut(ctx, employeeActor(), ClockOutRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrNotClockedIn)
	})

	t.Run("twice", func(t *testing.T) {
		actor := employeeActor()
		repo := newFakeRepo()
		out := now.Add(-time.Hour)
		repo.rows[key(*actor.EmployeeID, now.Truncate(24*time.Hour))] = &Attendance{ID: uuid.New(), ClockOut: &out}
		svc, mock := newTestService(t, repo, now)
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.ClockOut(ctx, actor, ClockOutRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedOut)
	})

	t.Run("no employee link", func(t *testing.T) {
		svc, _ := newTestService(t, newFakeRepo(), now)

		_, err := svc.ClockOut(ctx, domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}, ClockOutRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrNoEmployeeLink)
	})
}

func TestService_GetAll_Scoping(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("employee is narrowed to self", func(t *testing.T) {
		repo := newFakeRepo()
		svc, _ := newTestService(t, repo, now)
		actor := employeeActor()

		_, _, err := svc.GetAll(ctx, actor, ListAttendanceQuery{From: "2024-03-01", To: "2024-03-31"})

		require.NoError(t, err)
		require.NotNil(t, repo.lastQuery.EmployeeID)
		assert.Equal(t, *actor.EmployeeID, *repo.lastQuery.EmployeeID)
		require.NotNil(t, repo.lastQuery.From)
		assert.Equal(t, "2024-03-01", repo.lastQuery.From.Format(dateLayout))
		assert.Equal(t, 20, repo.lastQuery.PageSize)
	})

	t.Run("employee cannot read others", func(t *testing.T) {
		svc, _ := newTestService(t, newFakeRepo(), now)

		_, _, err := svc.GetAll(ctx, employeeActor(), ListAttendanceQuery{EmployeeID: uuid.NewString()})

		assert.ErrorIs(t, err, attendanceerrors.ErrForbidden)
	})

	t.Run("hr reads everyone", func(t *testing.T) {
		repo := newFakeRepo()
		svc, _ := newTestService(t, repo, now)

		_, _, err := svc.GetAll(ctx, domain.Actor{UserID: uuid.New(), Role: domain.RoleHR}, ListAttendanceQuery{})

		require.NoError(t, err)
		assert.Nil(t, repo.lastQuery.EmployeeID)
	})

	t.Run("bad date", func(t *testing.T) {
		svc, _ := newTestService(t, newFakeRepo(), now)

		_, _, err := svc.GetAll(ctx, employeeActor(), ListAttendanceQuery{From: "March"})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
	})
}

func TestService_Export(t *testing.T) {
	ctx := context.Background()
	hr := domain.Actor{UserID: uuid.New(), Role: domain.RoleHR}
	repo := newFakeRepo()
	empID := uuid.New()
	in := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	out := in.Add(9 * time.Hour)
	repo.rows["x"] = &Attendance{
		ID:             uuid.New(),
		EmployeeID:     empID,
		AttendanceDate: in.Truncate(24 * time.Hour),
		ClockIn:        in,
		ClockOut:       &out,
		Status:         StatusPresent,
		Source:         SourceManual,
		Employee:       &EmployeeRef{ID: empID, EmployeeNumber: "EMP-000001", FullName: "Joko"},
	}
	svc, _ := newTestService(t, repo, in)

	t.Run("renders xlsx", func(t *testing.T) {
		file, err := svc.Export(ctx, hr, ExportAttendanceQuery{From: "2024-03-01", To: "2024-03-31"})

		require.NoError(t, err)
		assert.Equal(t, "attendance-2024-03-01-2024-03-31.xlsx", file.Filename)
		assert.Equal(t, "PK", string(file.Content[:2]))
		assert.Zero(t, repo.lastQuery.PageSize)
	})

	t.Run("employee forbidden", func(t *testing.T) {
		_, err := svc.Export(ctx, employeeActor(), ExportAttendanceQuery{From: "2024-03-01", To: "2024-03-31"})

		assert.ErrorIs(t, err, attendanceerrors.ErrForbidden)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := svc.Export(ctx, hr, ExportAttendanceQuery{From: "2024-03-31", To: "2024-03-01"})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidRange)
	})

	t.Run("range too large", func(t *testing.T) {
		_, err := svc.Export(ctx, hr, ExportAttendanceQuery{From: "2022-01-01", To: "2024-01-01"})

		assert.ErrorIs(t, err, attendanceerrors.ErrRangeTooLarge)
	})
}
