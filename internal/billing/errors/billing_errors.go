package billingerrors

import (
	"net/http"

	"go-madrasa/internal/shared/apperror"
)

var (
	ErrNoActiveSubscription = apperror.New(
		apperror.CodeNotFound,
		"student has no active subscription",
		http.StatusNotFound,
	)
	ErrSubscriptionExists = apperror.New(
		apperror.CodeConflict,
		"student already has an active subscription",
		http.StatusConflict,
	)
	ErrSamePackage = apperror.New(
		apperror.CodeInvalidInput,
		"new package must differ from the current one",
		http.StatusBadRequest,
	)
)
