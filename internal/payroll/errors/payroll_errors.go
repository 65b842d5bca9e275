package payrollerrors

import (
	"net/http"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/apperror"
)

var (
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidPayrollID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid payroll ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"period_start must be before or equal to period_end",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid payroll status filter",
		http.StatusBadRequest,
	)
	ErrPayrollOverlap = apperror.New(
		apperror.CodeConflict,
		"A payroll already exists for an overlapping period",
		http.StatusConflict,
	)
	ErrSalaryNotConfigured = apperror.New(
		apperror.CodeBusinessRule,
		"No base salary is configured for this employee and period",
		http.StatusUnprocessableEntity,
	)
	ErrNegativeNetSalary = apperror.New(
		apperror.CodeBusinessRule,
		"Deductions exceed base salary plus allowance",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Invalid payroll status transition",
		http.StatusUnprocessableEntity,
	)
	ErrDeleteOnlyDraft = apperror.New(
		apperror.CodeInvalidState,
		"Payroll can only be deleted while it is DRAFT",
		http.StatusUnprocessableEntity,
	)
	ErrPayslipNotAvailable = apperror.New(
		apperror.CodeInvalidState,
		"Payslip is available once the payroll is approved",
		http.StatusUnprocessableEntity,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You are not allowed to access this payroll",
		http.StatusForbidden,
	)
)
