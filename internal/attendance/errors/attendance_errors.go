package attendanceerrors

import (
	"net/http"

	"go-madrasa/internal/shared/apperror"
)

var (
	ErrInvalidStudentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid student id",
		http.StatusBadRequest,
	)
	ErrStudentNotInSchool = apperror.New(
		apperror.CodeInvalidInput,
		"student does not belong to this school",
		http.StatusBadRequest,
	)
	ErrInvalidSentAt = apperror.New(
		apperror.CodeInvalidInput,
		"invalid sent_at, expected RFC3339",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"from must be before or equal to",
		http.StatusBadRequest,
	)
)
