package jobpostingerrors

import (
	"net/http"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/apperror"
)

var (
	ErrJobPostingNotFound = apperror.New(
		apperror.CodeNotFound,
		"Job posting not found",
		http.StatusNotFound,
	)

	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)

	ErrInvalidJobPostingID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid job posting ID",
		http.StatusBadRequest,
	)

	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid department ID",
		http.StatusBadRequest,
	)

	ErrInvalidClosingDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid closing_date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrClosingDateInPast = apperror.New(
		apperror.CodeBusinessRule,
		"closing_date cannot be in the past for an open posting",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid job posting status filter",
		http.StatusBadRequest,
	)
)
