package applicationerrors

import (
	"net/http"

	"go-leavehub/internal/shared/apperror"
)

var (
	ErrApplicationNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave application not found",
		http.StatusNotFound,
	)
	ErrInvalidStateTransition = apperror.New(
		apperror.CodeInvalidState,
		"requested status transition is not allowed",
		http.StatusUnprocessableEntity,
	)
	ErrNotApplicationOwner = apperror.New(
		apperror.CodeForbidden,
		"you may only act on your own leave applications",
		http.StatusForbidden,
	)
	ErrLeaveTypeNotInScheme = apperror.New(
		apperror.CodeInvalidInput,
		"leave type is not covered by the employee's current scheme",
		http.StatusBadRequest,
	)
	ErrNoSchemeAssigned = apperror.New(
		apperror.CodeInvalidInput,
		"employee has no leave scheme effective for the requested period",
		http.StatusBadRequest,
	)
	ErrEmployeeUnknown = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not exist",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrNoWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"requested period contains no working days",
		http.StatusBadRequest,
	)
	ErrUnknownStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of pending, approved, rejected, cancelled",
		http.StatusBadRequest,
	)
	ErrPendingOnlyEdit = apperror.New(
		apperror.CodeInvalidState,
		"only pending applications can be edited",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidApplicationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave application id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
)
