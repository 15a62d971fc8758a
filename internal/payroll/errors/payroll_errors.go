package payrollerrors

import (
	"net/http"

	"go-madrasa/internal/shared/apperror"
)

var (
	ErrTeacherNotFound = apperror.New(
		apperror.CodeNotFound,
		"teacher not found",
		http.StatusNotFound,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must not be after end_date",
		http.StatusBadRequest,
	)
	ErrAlreadyPaid = apperror.New(
		apperror.CodeConflict,
		"payment for this period is already marked Paid",
		http.StatusConflict,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be Paid or Unpaid",
		http.StatusBadRequest,
	)
	// Gateway failure is a 400 by contract: the bookkeeping row has already
	// committed and the caller is expected to retry processing, not the upsert.
	ErrGatewayFailed = apperror.New(
		apperror.CodeServiceUnavailable,
		"payment gateway did not accept the payment",
		http.StatusBadRequest,
	)
)
