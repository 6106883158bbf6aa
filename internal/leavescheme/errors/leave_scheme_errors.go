package leaveschemeerrors

import (
	"net/http"

	"go-leavehub/internal/shared/apperror"
)

var (
	ErrSchemeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave scheme not found",
		http.StatusNotFound,
	)
	ErrSchemeNameExists = apperror.New(
		apperror.CodeConflict,
		"leave scheme name already exists",
		http.StatusConflict,
	)
	ErrSchemeAssigned = apperror.New(
		apperror.CodeConflict,
		"leave scheme is assigned to employees and cannot be deleted",
		http.StatusConflict,
	)
	ErrSchemeLeaveTypeExists = apperror.New(
		apperror.CodeConflict,
		"leave type is already attached to this scheme",
		http.StatusConflict,
	)
	ErrSchemeLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type is not attached to this scheme",
		http.StatusNotFound,
	)
	ErrLeaveTypeUnknown = apperror.New(
		apperror.CodeInvalidInput,
		"leave type does not exist or is inactive",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
)
