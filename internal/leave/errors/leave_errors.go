package leaveerrors

import (
	"net/http"

	"out-of-office/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee of the leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Invalid leave request status transition",
		http.StatusBadRequest,
	)
	ErrDetailsImmutable = apperror.New(
		apperror.CodeInvalidState,
		"Leave request details can only change while it is new or canceled",
		http.StatusBadRequest,
	)
	ErrApproverNotAssigned = apperror.New(
		apperror.CodePreconditionFailed,
		"Employee has no people partner to approve the leave request",
		http.StatusUnprocessableEntity,
	)
	ErrConcurrentModification = apperror.New(
		apperror.CodeConflict,
		"Leave request was modified by another request, retry",
		http.StatusConflict,
	)
)
