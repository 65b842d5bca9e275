package payroll

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/events"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/messaging/kafka"
	payrollerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/payroll/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/contextutil"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/response"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, actor domain.Actor, q ListPayrollsQuery) ([]PayrollResponse, int64, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (PayrollResponse, error)
	Approve(ctx context.Context, actor domain.Actor, id string) (PayrollResponse, error)
	MarkPaid(ctx context.Context, actor domain.Actor, id string) (PayrollResponse, error)
	Delete(ctx context.Context, id string) error
	Payslip(ctx context.Context, actor domain.Actor, id string) (Payslip, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires the payroll workflow. outbox may be nil, in which case no
// payroll.paid events are written.
func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, now: time.Now, logger: l}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreatePayrollRequest) (PayrollResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	start, err := parseDate(req.PeriodStart)
	if err != nil {
		return PayrollResponse{}, err
	}
	end, err := parseDate(req.PeriodEnd)
	if err != nil {
		return PayrollResponse{}, err
	}
	if start.After(end) {
		return PayrollResponse{}, payrollerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, employeeID)
	if err != nil {
		return PayrollResponse{}, err
	}
	if !exists {
		return PayrollResponse{}, payrollerrors.ErrEmployeeNotFound
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, employeeID, start, end)
	if err != nil {
		return PayrollResponse{}, err
	}
	if overlap {
		return PayrollResponse{}, payrollerrors.ErrPayrollOverlap
	}

	base := req.BaseSalary
	if base == 0 {
		salary, ok, err := qtx.LatestBaseSalary(ctx, employeeID, end)
		if err != nil {
			return PayrollResponse{}, err
		}
		if !ok {
			return PayrollResponse{}, payrollerrors.ErrSalaryNotConfigured
		}
		base = salary
	}

	net := base + req.Allowance - req.Deduction
	if net < 0 {
		return PayrollResponse{}, payrollerrors.ErrNegativeNetSalary
	}

	p := &Payroll{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		PeriodStart: start,
		PeriodEnd:   end,
		BaseSalary:  base,
		Allowance:   req.Allowance,
		Deduction:   req.Deduction,
		NetSalary:   net,
		Status:      StatusDraft,
		Notes:       strings.TrimSpace(req.Notes),
		CreatedBy:   actor.UserID,
	}

	if err := qtx.Create(ctx, p); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	log.Info("payroll drafted",
		zap.String("payroll_id", p.ID.String()),
		zap.String("employee_id", employeeID.String()),
		zap.Int64("net_salary", net),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Actor, q ListPayrollsQuery) ([]PayrollResponse, int64, error) {
	filter := ListFilter{Status: strings.ToUpper(q.Status), Page: q.Page, PageSize: q.PageSize}
	filter.Page, filter.PageSize = response.NormalizePage(filter.Page, filter.PageSize)
	if filter.Status != "" && !isValidStatus(filter.Status) {
		return nil, 0, payrollerrors.ErrInvalidStatusFilter
	}

	switch {
	case !actor.IsPrivileged():
		if actor.EmployeeID == nil {
			return []PayrollResponse{}, 0, nil
		}
		filter.EmployeeID = actor.EmployeeID
	case q.EmployeeID != "":
		id, err := uuid.Parse(q.EmployeeID)
		if err != nil {
			return nil, 0, payrollerrors.ErrInvalidEmployeeID
		}
		filter.EmployeeID = &id
	}

	payrolls, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(payrolls), total, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (PayrollResponse, error) {
	p, err := s.findAccessible(ctx, actor, id)
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*p), nil
}

// Approve moves a DRAFT payroll to APPROVED. Nobody approves their own pay.
func (s *service) Approve(ctx context.Context, actor domain.Actor, id string) (PayrollResponse, error) {
	return s.transition(ctx, actor, id, StatusDraft, StatusApproved)
}

// MarkPaid moves an APPROVED payroll to PAID and queues payroll.paid.
func (s *service) MarkPaid(ctx context.Context, actor domain.Actor, id string) (PayrollResponse, error) {
	return s.transition(ctx, actor, id, StatusApproved, StatusPaid)
}

func (s *service) transition(ctx context.Context, actor domain.Actor, id, from, to string) (PayrollResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	payrollID, err := uuid.Parse(id)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID
	}
	if !actor.IsPrivileged() {
		return PayrollResponse{}, payrollerrors.ErrForbidden
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, payrollID)
	if err != nil {
		return PayrollResponse{}, err
	}
	if actor.Owns(p.EmployeeID) {
		return PayrollResponse{}, payrollerrors.ErrForbidden
	}
	if p.Status != from {
		return PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	now := s.now()
	p.Status = to
	switch to {
	case StatusApproved:
		p.ApprovedBy = &actor.UserID
		p.ApprovedAt = &now
	case StatusPaid:
		p.PaidAt = &now
	}

	if err := qtx.UpdateStatus(ctx, p, from); err != nil {
		return PayrollResponse{}, err
	}

	if to == StatusPaid && s.outbox != nil {
		msg, err := kafka.NewOutboxEvent(
			contextutil.GetRequestID(ctx),
			"payroll",
			p.ID.String(),
			events.PayrollPaidType,
			events.PayrollPaidTopic,
			events.PayrollPaidEvent{
				EventType:  events.PayrollPaidType,
				PayrollID:  p.ID.String(),
				EmployeeID: p.EmployeeID.String(),
				Period:     p.PeriodStart.Format("2006-01"),
				NetSalary:  float64(p.NetSalary) / 100,
				OccurredAt: now.UTC(),
			},
		)
		if err != nil {
			return PayrollResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, msg); err != nil {
			log.Error("queue payroll.paid failed", zap.String("payroll_id", p.ID.String()), zap.Error(err))
			return PayrollResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	log.Info("payroll status changed",
		zap.String("payroll_id", p.ID.String()),
		zap.String("from", from),
		zap.String("to", to),
		zap.String("actor", actor.UserID.String()),
	)
	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	payrollID, err := uuid.Parse(id)
	if err != nil {
		return payrollerrors.ErrInvalidPayrollID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, payrollID)
	if err != nil {
		return err
	}
	if p.Status != StatusDraft {
		return payrollerrors.ErrDeleteOnlyDraft
	}

	if err := qtx.DeleteDraft(ctx, payrollID); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) findAccessible(ctx context.Context, actor domain.Actor, id string) (*Payroll, error) {
	payrollID, err := uuid.Parse(id)
	if err != nil {
		return nil, payrollerrors.ErrInvalidPayrollID
	}

	p, err := s.repo.FindByID(ctx, payrollID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessEmployee(p.EmployeeID) {
		return nil, payrollerrors.ErrForbidden
	}
	return p, nil
}

func isValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusApproved, StatusPaid:
		return true
	}
	return false
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:          p.ID.String(),
		EmployeeID:  p.EmployeeID.String(),
		PeriodStart: p.PeriodStart.Format(dateLayout),
		PeriodEnd:   p.PeriodEnd.Format(dateLayout),
		BaseSalary:  p.BaseSalary,
		Allowance:   p.Allowance,
		Deduction:   p.Deduction,
		NetSalary:   p.NetSalary,
		Status:      p.Status,
		Notes:       p.Notes,
		CreatedBy:   p.CreatedBy.String(),
		ApprovedAt:  formatTime(p.ApprovedAt),
		PaidAt:      formatTime(p.PaidAt),
	}
	if p.Employee != nil {
		resp.EmployeeNumber = p.Employee.EmployeeNumber
		resp.EmployeeName = p.Employee.FullName
	}
	if p.ApprovedBy != nil {
		v := p.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	return resp
}

func mapToListResponse(payrolls []Payroll) []PayrollResponse {
	resp := make([]PayrollResponse, len(payrolls))
	for i, p := range payrolls {
		resp[i] = mapToResponse(p)
	}
	return resp
}
