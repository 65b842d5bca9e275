package attendance

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	attendanceerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/attendance/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/contextutil"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/response"
)

// Clock-ins after 09:15 UTC are marked LATE.
const (
	lateHour   = 9
	lateMinute = 15

	maxExportDays = 366
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, actor domain.Actor, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, actor domain.Actor, req ClockOutRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, actor domain.Actor, query ListAttendanceQuery) ([]AttendanceResponse, int64, error)
	Export(ctx context.Context, actor domain.Actor, query ExportAttendanceQuery) (ExportFile, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, now: time.Now, logger: l}
}

func (s *service) ClockIn(ctx context.Context, actor domain.Actor, req ClockInRequest) (AttendanceResponse, error) {
	if actor.EmployeeID == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNoEmployeeLink
	}
	employeeID := *actor.EmployeeID

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().UTC()
	today := now.Truncate(24 * time.Hour)

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if existing != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
	}

	status := StatusPresent
	if now.Hour() > lateHour || (now.Hour() == lateHour && now.Minute() > lateMinute) {
		status = StatusLate
	}

	source := strings.ToUpper(strings.TrimSpace(req.Source))
	if source == "" {
		source = SourceManual
	}

	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     employeeID,
		AttendanceDate: today,
		ClockIn:        now,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Status:         status,
		Source:         source,
		Notes:          req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("clock in recorded",
		zap.String("employee_id", employeeID.String()),
		zap.String("status", status),
	)
	return mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, actor domain.Actor, req ClockOutRequest) (AttendanceResponse, error) {
	if actor.EmployeeID == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNoEmployeeLink
	}
	employeeID := *actor.EmployeeID

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().UTC()
	today := now.Truncate(24 * time.Hour)

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if row == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNotClockedIn
	}
	if row.ClockOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}

	row.ClockOut = &now
	if req.Latitude != nil {
		row.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		row.Longitude = req.Longitude
	}
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Actor, query ListAttendanceQuery) ([]AttendanceResponse, int64, error) {
	filter := ListFilter{Page: query.Page, PageSize: query.PageSize}
	filter.Page, filter.PageSize = response.NormalizePage(filter.Page, filter.PageSize)

	var err error
	if filter.From, err = parseOptionalDate(query.From); err != nil {
		return nil, 0, err
	}
	if filter.To, err = parseOptionalDate(query.To); err != nil {
		return nil, 0, err
	}

	employeeID, err := s.resolveEmployee(actor, query.EmployeeID)
	if err != nil {
		return nil, 0, err
	}
	filter.EmployeeID = employeeID

	rows, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, total, nil
}

// resolveEmployee narrows non-privileged actors to their own rows.
func (s *service) resolveEmployee(actor domain.Actor, requested string) (*uuid.UUID, error) {
	var id *uuid.UUID
	if requested != "" {
		parsed, err := uuid.Parse(requested)
		if err != nil {
			return nil, attendanceerrors.ErrForbidden
		}
		id = &parsed
	}

	if actor.IsPrivileged() {
		return id, nil
	}
	if actor.EmployeeID == nil {
		return nil, attendanceerrors.ErrNoEmployeeLink
	}
	if id != nil && *id != *actor.EmployeeID {
		return nil, attendanceerrors.ErrForbidden
	}
	return actor.EmployeeID, nil
}

func parseOptionalDate(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDate
	}
	return &t, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format(dateLayout),
		ClockIn:        a.ClockIn.Format(time.RFC3339),
		Latitude:       a.Latitude,
		Longitude:      a.Longitude,
		Status:         a.Status,
		Source:         a.Source,
		Notes:          a.Notes,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
	}
	if a.ClockOut != nil {
		v := a.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}
