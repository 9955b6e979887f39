package employeeerrors

import (
	"net/http"

	"out-of-office/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrReferenceNotFound = apperror.New(
		apperror.CodeValidation,
		"Referenced people partner or project does not exist",
		http.StatusBadRequest,
	)
)
