package permissionerrors

import (
	"net/http"

	"go-madrasa/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"permission request not found",
		http.StatusNotFound,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrAlreadyReviewed = apperror.New(
		apperror.CodeInvalidState,
		"permission request has already been reviewed",
		http.StatusBadRequest,
	)
	ErrDuplicateWaiver = apperror.New(
		apperror.CodeConflict,
		"a waiver already exists for this teacher and date",
		http.StatusConflict,
	)
)
