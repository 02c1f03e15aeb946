package claimerrors

import (
	"net/http"

	"github.com/azirkitai/utamaHR-sub001/internal/shared/apperror"
)

var (
	ErrClaimNotFound = apperror.New(
		apperror.CodeNotFound,
		"claim application not found",
		http.StatusNotFound,
	)
	ErrInvalidClaimType = apperror.New(
		apperror.CodeInvalidInput,
		"claim type must be FINANCIAL or OVERTIME",
		http.StatusBadRequest,
	)
	ErrInvalidClaimAmount = apperror.New(
		apperror.CodeInvalidInput,
		"claim amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidActor = apperror.New(
		apperror.CodeInvalidInput,
		"actor identity must be a valid UUID",
		http.StatusBadRequest,
	)
	ErrInvalidClaimDate = apperror.New(
		apperror.CodeInvalidInput,
		"claim date must be formatted YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrPolicyDisabled = apperror.New(
		apperror.CodePolicyViolation,
		"claims are disabled for this category",
		http.StatusUnprocessableEntity,
	)
	ErrEmployeeExcluded = apperror.New(
		apperror.CodePolicyViolation,
		"employee is excluded from this claim category",
		http.StatusUnprocessableEntity,
	)
	ErrPerApplicationLimitExceeded = apperror.New(
		apperror.CodePolicyViolation,
		"claim amount exceeds the per-application limit",
		http.StatusUnprocessableEntity,
	)
	ErrAnnualLimitExceeded = apperror.New(
		apperror.CodePolicyViolation,
		"claim amount exceeds the remaining annual limit",
		http.StatusUnprocessableEntity,
	)
	ErrStatusConflict = apperror.New(
		apperror.CodeConflict,
		"claim status changed concurrently",
		http.StatusConflict,
	)
	ErrNotApprovable = apperror.New(
		apperror.CodeInvalidState,
		"claim is not in an approvable status",
		http.StatusUnprocessableEntity,
	)
)
