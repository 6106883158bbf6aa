package balanceerrors

import (
	"net/http"

	"go-leavehub/internal/shared/apperror"
)

var (
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found for this employee, leave type and year",
		http.StatusNotFound,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"insufficient leave balance",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"year is out of the supported range",
		http.StatusBadRequest,
	)
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"days must be a positive amount",
		http.StatusBadRequest,
	)
	ErrNotBalanceOwner = apperror.New(
		apperror.CodeForbidden,
		"you may only view your own leave balances",
		http.StatusForbidden,
	)
)
