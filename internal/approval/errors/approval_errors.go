package approvalerrors

import (
	"net/http"

	"out-of-office/internal/shared/apperror"
)

var (
	ErrApprovalNotFound = apperror.New(
		apperror.CodeNotFound,
		"Approval request not found",
		http.StatusNotFound,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"Approval request has already been decided",
		http.StatusBadRequest,
	)
	ErrConcurrentDecision = apperror.New(
		apperror.CodeConflict,
		"Approval request was decided by another request",
		http.StatusConflict,
	)
	ErrLeaveNotAwaitingApproval = apperror.New(
		apperror.CodeInvalidState,
		"Leave request is not awaiting approval",
		http.StatusBadRequest,
	)
	ErrDecidedApprovalImmutable = apperror.New(
		apperror.CodeInvalidState,
		"Decided approval requests cannot be deleted",
		http.StatusBadRequest,
	)
	ErrActiveApprovalExists = apperror.New(
		apperror.CodeConflict,
		"Leave request already has a pending approval request",
		http.StatusConflict,
	)
)
