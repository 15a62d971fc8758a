package studenterrors

import (
	"net/http"

	"go-madrasa/internal/shared/apperror"
)

var (
	ErrStudentNotFound = apperror.New(
		apperror.CodeNotFound,
		"student not found",
		http.StatusNotFound,
	)
	ErrInvalidStudentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid student id",
		http.StatusBadRequest,
	)
	ErrInvalidTeacherID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid teacher id",
		http.StatusBadRequest,
	)
	ErrSameTeacher = apperror.New(
		apperror.CodeInvalidState,
		"student is already assigned to this teacher",
		http.StatusBadRequest,
	)
)
