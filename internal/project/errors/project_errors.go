package projecterrors

import (
	"net/http"

	"out-of-office/internal/shared/apperror"
)

var (
	ErrProjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"Project not found",
		http.StatusNotFound,
	)
	ErrProjectInUse = apperror.New(
		apperror.CodeConflict,
		"Project still has assigned employees",
		http.StatusConflict,
	)
)
