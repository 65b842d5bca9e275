package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/events"
	leaveerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/leave/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/messaging/kafka"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/apperror"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/contextutil"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/response"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, actor domain.Actor, q ListLeavesQuery) ([]LeaveResponse, int64, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error)
	GetBalance(ctx context.Context, actor domain.Actor, employeeID string, year int) (LeaveBalanceResponse, error)
	Approve(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error)
	Reject(ctx context.Context, actor domain.Actor, id, reason string) (LeaveResponse, error)
	Export(ctx context.Context, actor domain.Actor, q ExportLeavesQuery) (ExportFile, error)
}

type Options struct {
	AnnualLimitDays        int
	RequireRejectionReason bool
	Metrics                *Metrics
}

type service struct {
	db      *sql.DB
	repo    Repository
	outbox  kafka.OutboxRepository
	opts    Options
	metrics *Metrics
	now     func() time.Time
	logger  *zap.Logger
}

// NewService wires the leave workflow. outbox may be nil, in which case no
// leave.decided events are written.
func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if opts.AnnualLimitDays <= 0 {
		opts.AnnualLimitDays = DefaultAnnualLimitDays
	}
	return &service{
		db:      db,
		repo:    repo,
		outbox:  outbox,
		opts:    opts,
		metrics: opts.Metrics,
		now:     time.Now,
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	in, err := parseCreateRequest(req)
	if err != nil {
		s.metrics.observeRequest("invalid")
		return LeaveResponse{}, err
	}
	if !actor.IsPrivileged() && !actor.Owns(in.employeeID) {
		return LeaveResponse{}, leaveerrors.ErrForbidden
	}
	if err := ValidateRange(in.start, in.end); err != nil {
		s.metrics.observeRequest("invalid")
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.LockEmployee(ctx, in.employeeID); err != nil {
		return LeaveResponse{}, s.storeError(log, "create leave lock employee failed", err)
	}

	exists, err := qtx.DepartmentExists(ctx, in.departmentID)
	if err != nil {
		return LeaveResponse{}, s.storeError(log, "create leave department check failed", err)
	}
	if !exists {
		return LeaveResponse{}, leaveerrors.ErrDepartmentNotFound
	}

	workingDays, err := NewEligibilityChecker(qtx, s.opts.AnnualLimitDays).Check(ctx, in.employeeID, in.start, in.end)
	if err != nil {
		if isBusinessRule(err) {
			s.metrics.observeRequest("limit_exceeded")
			log.Info("leave rejected by annual limit",
				zap.String("employee_id", in.employeeID.String()),
				zap.String("start_date", req.StartDate),
				zap.String("end_date", req.EndDate),
			)
			return LeaveResponse{}, err
		}
		return LeaveResponse{}, s.storeError(log, "create leave eligibility read failed", err)
	}

	l := &Leave{
		ID:           uuid.New(),
		EmployeeID:   in.employeeID,
		DepartmentID: in.departmentID,
		LeaveType:    req.LeaveType,
		IsPaidLeave:  in.isPaid,
		StartDate:    in.start,
		EndDate:      in.end,
		WorkingDays:  workingDays,
		Reason:       strings.TrimSpace(req.Reason),
		Status:       StatusPending,
		CreatedBy:    actor.UserID,
		CreatedAt:    s.now(),
	}

	if err := qtx.Create(ctx, l); err != nil {
		return LeaveResponse{}, s.storeError(log, "create leave persist failed", err)
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, s.storeError(log, "create leave commit failed", err)
	}

	s.metrics.observeRequest("created")
	log.Info("leave created",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", l.EmployeeID.String()),
		zap.Int("working_days", workingDays),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Actor, q ListLeavesQuery) ([]LeaveResponse, int64, error) {
	filter := ListFilter{Status: q.Status, Page: q.Page, PageSize: q.PageSize}
	filter.Page, filter.PageSize = response.NormalizePage(filter.Page, filter.PageSize)

	var err error
	if filter.From, err = parseOptionalDate(q.From); err != nil {
		return nil, 0, err
	}
	if filter.To, err = parseOptionalDate(q.To); err != nil {
		return nil, 0, err
	}

	switch {
	case !actor.IsPrivileged():
		if actor.EmployeeID == nil {
			return []LeaveResponse{}, 0, nil
		}
		filter.EmployeeID = actor.EmployeeID
	case q.EmployeeID != "":
		id, err := uuid.Parse(q.EmployeeID)
		if err != nil {
			return nil, 0, leaveerrors.ErrInvalidEmployeeID
		}
		filter.EmployeeID = &id
	}

	leaves, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(leaves), total, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error) {
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !actor.CanAccessEmployee(l.EmployeeID) {
		return LeaveResponse{}, leaveerrors.ErrForbidden
	}
	return mapToResponse(*l), nil
}

func (s *service) GetBalance(ctx context.Context, actor domain.Actor, employeeID string, year int) (LeaveBalanceResponse, error) {
	var empID uuid.UUID
	switch {
	case employeeID != "":
		id, err := uuid.Parse(employeeID)
		if err != nil {
			return LeaveBalanceResponse{}, leaveerrors.ErrInvalidEmployeeID
		}
		empID = id
	case actor.EmployeeID != nil:
		empID = *actor.EmployeeID
	default:
		return LeaveBalanceResponse{}, apperror.RequiredField("Employee ID")
	}

	if !actor.CanAccessEmployee(empID) {
		return LeaveBalanceResponse{}, leaveerrors.ErrForbidden
	}
	if year <= 0 {
		year = s.now().Year()
	}

	approved, err := s.repo.FindApprovedInYear(ctx, empID, year)
	if err != nil {
		return LeaveBalanceResponse{}, err
	}

	taken := DaysTaken(approved)
	return LeaveBalanceResponse{
		EmployeeID:    empID.String(),
		Year:          year,
		AnnualLimit:   s.opts.AnnualLimitDays,
		DaysTaken:     taken,
		DaysRemaining: max(s.opts.AnnualLimitDays-taken, 0),
	}, nil
}

// Approve moves a PENDING leave to APPROVED. The annual limit is checked
// again under the employee lock because other requests may have been
// approved since this one was filed.
func (s *service) Approve(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	leaveID, err := s.authorizeDecision(actor, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("approve leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.loadPending(ctx, qtx, actor, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}

	if err := qtx.LockEmployee(ctx, l.EmployeeID); err != nil {
		return LeaveResponse{}, s.storeError(log, "approve leave lock employee failed", err)
	}

	approved, err := qtx.FindApprovedInYear(ctx, l.EmployeeID, l.StartDate.Year())
	if err != nil {
		return LeaveResponse{}, s.storeError(log, "approve leave eligibility read failed", err)
	}
	if _, err := Evaluate(l.StartDate, l.EndDate, approved, s.opts.AnnualLimitDays); err != nil {
		log.Info("leave approval blocked by annual limit", zap.String("leave_id", l.ID.String()))
		return LeaveResponse{}, err
	}

	now := s.now()
	l.Status = StatusApproved
	l.ApprovedBy = &actor.UserID
	l.ApprovedAt = &now
	l.RejectionReason = nil

	if err := s.decide(ctx, tx, qtx, actor, l); err != nil {
		return LeaveResponse{}, s.storeError(log, "approve leave persist failed", err)
	}

	s.metrics.observeDecision(StatusApproved)
	log.Info("leave approved",
		zap.String("leave_id", l.ID.String()),
		zap.String("approved_by", actor.UserID.String()),
	)
	return mapToResponse(*l), nil
}

func (s *service) Reject(ctx context.Context, actor domain.Actor, id, reason string) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	leaveID, err := s.authorizeDecision(actor, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" && s.opts.RequireRejectionReason {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("reject leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.loadPending(ctx, qtx, actor, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}

	l.Status = StatusRejected
	l.ApprovedBy = nil
	l.ApprovedAt = nil
	if reason != "" {
		l.RejectionReason = &reason
	}

	if err := s.decide(ctx, tx, qtx, actor, l); err != nil {
		return LeaveResponse{}, s.storeError(log, "reject leave persist failed", err)
	}

	s.metrics.observeDecision(StatusRejected)
	log.Info("leave rejected",
		zap.String("leave_id", l.ID.String()),
		zap.String("rejected_by", actor.UserID.String()),
	)
	return mapToResponse(*l), nil
}

func (s *service) Export(ctx context.Context, actor domain.Actor, q ExportLeavesQuery) (ExportFile, error) {
	if !actor.IsPrivileged() {
		return ExportFile{}, leaveerrors.ErrForbidden
	}

	format := strings.ToLower(q.Format)
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "pdf" {
		return ExportFile{}, leaveerrors.ErrInvalidExportFormat
	}

	year := q.Year
	if year <= 0 {
		year = s.now().Year()
	}

	filter := ListFilter{Status: q.Status}
	if q.EmployeeID != "" {
		id, err := uuid.Parse(q.EmployeeID)
		if err != nil {
			return ExportFile{}, leaveerrors.ErrInvalidEmployeeID
		}
		filter.EmployeeID = &id
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	filter.From, filter.To = &from, &to

	leaves, _, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return ExportFile{}, err
	}

	return renderExport(format, year, leaves)
}

func (s *service) authorizeDecision(actor domain.Actor, id string) (uuid.UUID, error) {
	if !actor.IsPrivileged() {
		return uuid.Nil, leaveerrors.ErrForbidden
	}
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, leaveerrors.ErrInvalidLeaveID
	}
	return leaveID, nil
}

// loadPending fetches a leave that is still awaiting a decision by someone
// other than its owner.
func (s *service) loadPending(ctx context.Context, qtx Repository, actor domain.Actor, leaveID uuid.UUID) (*Leave, error) {
	l, err := qtx.FindByID(ctx, leaveID)
	if err != nil {
		return nil, err
	}
	if actor.Owns(l.EmployeeID) {
		return nil, leaveerrors.ErrForbidden
	}
	if l.Status != StatusPending {
		return nil, leaveerrors.ErrInvalidStatusTransition
	}
	return l, nil
}

func (s *service) decide(ctx context.Context, tx *sql.Tx, qtx Repository, actor domain.Actor, l *Leave) error {
	if err := qtx.UpdateStatus(ctx, l); err != nil {
		return err
	}

	if s.outbox != nil {
		event := events.LeaveDecidedEvent{
			EventType:   events.LeaveDecidedType,
			LeaveID:     l.ID.String(),
			EmployeeID:  l.EmployeeID.String(),
			Status:      l.Status,
			LeaveType:   l.LeaveType,
			StartDate:   l.StartDate.Format(dateLayout),
			EndDate:     l.EndDate.Format(dateLayout),
			WorkingDays: l.WorkingDays,
			DecidedBy:   actor.UserID.String(),
			OccurredAt:  s.now().UTC(),
		}
		if l.RejectionReason != nil {
			event.RejectionReason = *l.RejectionReason
		}

		msg, err := kafka.NewOutboxEvent(
			contextutil.GetRequestID(ctx),
			"leave",
			l.ID.String(),
			events.LeaveDecidedType,
			events.LeaveDecidedTopic,
			event,
		)
		if err != nil {
			return err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, msg); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// storeError logs unexpected failures and passes typed errors through.
func (s *service) storeError(log *zap.Logger, msg string, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	log.Error(msg, zap.Error(err))
	return err
}

func isBusinessRule(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code == apperror.CodeBusinessRule
}

type createInput struct {
	employeeID   uuid.UUID
	departmentID uuid.UUID
	start        time.Time
	end          time.Time
	isPaid       bool
}

func parseCreateRequest(req CreateLeaveRequest) (createInput, error) {
	var in createInput
	var err error

	if in.employeeID, err = uuid.Parse(req.EmployeeID); err != nil {
		return in, leaveerrors.ErrInvalidEmployeeID
	}
	if in.departmentID, err = uuid.Parse(req.DepartmentID); err != nil {
		return in, leaveerrors.ErrInvalidDepartmentID
	}
	if !IsValidLeaveType(req.LeaveType) {
		return in, leaveerrors.ErrInvalidLeaveType
	}
	if strings.TrimSpace(req.Reason) == "" {
		return in, apperror.RequiredField("Reason")
	}
	if in.start, err = parseDate(req.StartDate); err != nil {
		return in, err
	}
	if in.end, err = parseDate(req.EndDate); err != nil {
		return in, err
	}

	in.isPaid = req.LeaveType != TypeUnpaid
	if req.IsPaidLeave != nil {
		in.isPaid = *req.IsPaidLeave && req.LeaveType != TypeUnpaid
	}
	return in, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func parseOptionalDate(v string) (*time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	t, err := parseDate(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		EmployeeID:      l.EmployeeID.String(),
		DepartmentID:    l.DepartmentID.String(),
		LeaveType:       l.LeaveType,
		IsPaidLeave:     l.IsPaidLeave,
		StartDate:       l.StartDate.Format(dateLayout),
		EndDate:         l.EndDate.Format(dateLayout),
		WorkingDays:     l.WorkingDays,
		Reason:          l.Reason,
		Status:          l.Status,
		CreatedBy:       l.CreatedBy.String(),
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.EmployeeNumber = l.Employee.EmployeeNumber
		resp.EmployeeName = l.Employee.FullName
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
