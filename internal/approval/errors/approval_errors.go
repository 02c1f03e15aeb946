package approvalerrors

import (
	"net/http"

	"github.com/azirkitai/utamaHR-sub001/internal/shared/apperror"
)

var (
	ErrSettingNotFound = apperror.New(
		apperror.CodeNotFound,
		"approval setting not found for this workflow",
		http.StatusNotFound,
	)
	ErrInvalidWorkflowType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown workflow type",
		http.StatusBadRequest,
	)
	ErrNotAnApprover = apperror.New(
		apperror.CodeUnauthorized,
		"actor is not an approver for this workflow",
		http.StatusForbidden,
	)
	ErrWorkflowDisabled = apperror.New(
		apperror.CodeUnauthorized,
		"approval workflow is disabled",
		http.StatusForbidden,
	)
)
