package assignmenterrors

import (
	"net/http"

	"go-leavehub/internal/shared/apperror"
)

var (
	ErrAssignmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"scheme assignment not found",
		http.StatusNotFound,
	)
	ErrEmployeeUnknown = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not exist",
		http.StatusBadRequest,
	)
	ErrSchemeUnknown = apperror.New(
		apperror.CodeInvalidInput,
		"leave scheme does not exist or is inactive",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"effective_from must be before or equal effective_to",
		http.StatusBadRequest,
	)
	ErrAssignmentOverlap = apperror.New(
		apperror.CodeConflict,
		"assignment overlaps an existing scheme membership interval",
		http.StatusConflict,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
)
