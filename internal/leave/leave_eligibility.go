package leave

import (
	"context"
	"time"

	"github.com/google/uuid"

	leaveerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/leave/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/apperror"
)

const DefaultAnnualLimitDays = 30

// ApprovedLeaveReader is the read side of the store the checker needs.
type ApprovedLeaveReader interface {
	FindApprovedInYear(ctx context.Context, employeeID uuid.UUID, year int) ([]DateRange, error)
}

// EligibilityChecker decides whether a leave range fits the yearly cap.
type EligibilityChecker struct {
	store ApprovedLeaveReader
	limit int
}

func NewEligibilityChecker(store ApprovedLeaveReader, limit int) *EligibilityChecker {
	if limit <= 0 {
		limit = DefaultAnnualLimitDays
	}
	return &EligibilityChecker{store: store, limit: limit}
}

// Check returns the number of business days in [start, end] when the request
// is eligible. Only the boundary days are checked for weekends. The window is
// the calendar year of start and only APPROVED leaves count towards it.
func (c *EligibilityChecker) Check(ctx context.Context, employeeID uuid.UUID, start, end time.Time) (int, error) {
	if err := ValidateRange(start, end); err != nil {
		return 0, err
	}

	approved, err := c.store.FindApprovedInYear(ctx, employeeID, start.Year())
	if err != nil {
		return 0, err
	}

	return Evaluate(start, end, approved, c.limit)
}

// Evaluate is the pure part of Check.
func Evaluate(start, end time.Time, approved []DateRange, limit int) (int, error) {
	if err := ValidateRange(start, end); err != nil {
		return 0, err
	}

	workingDays := CountBusinessDays(start, end)
	taken := DaysTaken(approved)
	if taken+workingDays > limit {
		return 0, annualLimitError(limit, taken, workingDays)
	}
	return workingDays, nil
}

// ValidateRange enforces start <= end and that neither boundary is a weekend.
func ValidateRange(start, end time.Time) error {
	if IsWeekend(start) || IsWeekend(end) {
		return leaveerrors.ErrWeekendBoundary
	}
	if dateOnly(start).After(dateOnly(end)) {
		return leaveerrors.ErrInvalidDateRange
	}
	return nil
}

func DaysTaken(approved []DateRange) int {
	total := 0
	for _, r := range approved {
		total += CountBusinessDays(r.StartDate, r.EndDate)
	}
	return total
}

func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// CountBusinessDays counts Monday to Friday in [start, end], both inclusive.
// It returns 0 when end is before start.
func CountBusinessDays(start, end time.Time) int {
	from, to := dateOnly(start), dateOnly(end)
	if to.Before(from) {
		return 0
	}

	days := int(to.Sub(from).Hours()/24) + 1
	weeks, rest := days/7, days%7
	count := weeks * 5

	wd := from.Weekday()
	for i := 0; i < rest; i++ {
		if wd != time.Saturday && wd != time.Sunday {
			count++
		}
		wd = (wd + 1) % 7
	}
	return count
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func annualLimitError(limit, taken, requested int) *apperror.AppError {
	return leaveerrors.AnnualLimitExceeded(limit).WithDetails(map[string]int{
		"limit":      limit,
		"days_taken": taken,
		"requested":  requested,
	})
}
