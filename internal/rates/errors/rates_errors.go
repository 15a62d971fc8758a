package rateserrors

import (
	"net/http"

	"go-madrasa/internal/shared/apperror"
)

var (
	ErrOverlappingTiers = apperror.New(
		apperror.CodeInvalidInput,
		"lateness tiers must not overlap",
		http.StatusBadRequest,
	)
	ErrInvalidTierRange = apperror.New(
		apperror.CodeInvalidInput,
		"tier start_minute must be less than or equal to end_minute",
		http.StatusBadRequest,
	)
)
